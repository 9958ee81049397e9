package models

import "fmt"

type RoleMsg struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

func (m RoleMsg) ToPrompt() string {
	return fmt.Sprintf("%s: %s", m.Speaker, m.Text)
}

// TurnRequest is one stateless exchange: what the user said plus however
// much of the conversation the caller wants the bot to remember.
type TurnRequest struct {
	Utterance string    `json:"utterance"`
	History   []RoleMsg `json:"history"`
}

// TurnResponse always carries text; audio is optional and its absence is
// flagged via Partial, never silently dropped.
type TurnResponse struct {
	ResponseText string  `json:"responseText"`
	AudioURL     *string `json:"audioUrl"`
	Partial      bool    `json:"partial"`
}

// DebateReply is the session-endpoint shape (start/turn).
type DebateReply struct {
	DebateID   string  `json:"debate_id"`
	AIText     string  `json:"ai_text"`
	AIAudioURL *string `json:"ai_audio_url"`
	Partial    bool    `json:"partial"`
	Winner     string  `json:"winner,omitempty"`
	IsFinished bool    `json:"is_finished"`
}

// gemini generateContent wire types

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiGenConfig struct {
	Temperature        float32  `json:"temperature,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type GeminiReq struct {
	Contents         []GeminiContent  `json:"contents"`
	GenerationConfig *GeminiGenConfig `json:"generationConfig,omitempty"`
}

type GeminiResp struct {
	Candidates []struct {
		Content      GeminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// yarngpt tts wire type

type YarnReq struct {
	Text           string `json:"text"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}
