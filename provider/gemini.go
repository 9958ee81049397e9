package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"debator/config"
	"debator/models"
)

const geminiName = "gemini"

// GeminiClient talks to the generateContent REST API directly.
type GeminiClient struct {
	baseURL     string
	model       string
	key         string
	temperature float32
	timeout     time.Duration
	log         *slog.Logger
}

func NewGeminiClient(cfg *config.Config, log *slog.Logger) *GeminiClient {
	return &GeminiClient{
		baseURL:     cfg.LLMAPI,
		model:       cfg.LLMModel,
		key:         cfg.GoogleAPIKey,
		temperature: cfg.LLMTemperature,
		timeout:     time.Duration(cfg.ProviderTimeout) * time.Second,
		log:         log,
	}
}

func (g *GeminiClient) generateContent(ctx context.Context, payload *models.GeminiReq) (*models.GeminiResp, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.key)
	resp, err := httpClient.Do(req)
	if err != nil {
		g.log.Error("gemini request failed", "error", err)
		return nil, classifyTransport(geminiName, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(geminiName, err)
	}
	if resp.StatusCode != http.StatusOK {
		g.log.Error("gemini bad status", "code", resp.StatusCode, "body", string(body))
		return nil, classifyStatus(geminiName, resp.StatusCode, string(body))
	}
	out := &models.GeminiResp{}
	if err := json.Unmarshal(body, out); err != nil {
		g.log.Error("failed to decode gemini response", "error", err, "body", string(body))
		return nil, &models.ProviderError{Provider: geminiName, Kind: models.ErrUnknown, Message: err.Error()}
	}
	return out, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := &models.GeminiReq{
		Contents: []models.GeminiContent{
			{Parts: []models.GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &models.GeminiGenConfig{Temperature: g.temperature},
	}
	resp, err := g.generateContent(ctx, payload)
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", &models.ProviderError{Provider: geminiName, Kind: models.ErrUnknown, Message: "no text in response"}
}

// GenerateImage asks for an image-only response and returns it as a data
// URL the frontend can drop straight into an img tag.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload := &models.GeminiReq{
		Contents: []models.GeminiContent{
			{Parts: []models.GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &models.GeminiGenConfig{ResponseModalities: []string{"IMAGE"}},
	}
	resp, err := g.generateContent(ctx, payload)
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}
	return "", &models.ProviderError{Provider: geminiName, Kind: models.ErrUnknown, Message: "no image in response"}
}
