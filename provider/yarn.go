package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"debator/config"
	"debator/models"
)

const yarnName = "yarngpt"

// YarnClient renders text as speech through the YarnGPT TTS API.
type YarnClient struct {
	url     string
	key     string
	voice   string
	format  string
	timeout time.Duration
	log     *slog.Logger
}

func NewYarnClient(cfg *config.Config, log *slog.Logger) *YarnClient {
	return &YarnClient{
		url:     cfg.TTSAPI,
		key:     cfg.YarnGPTKey,
		voice:   cfg.TTSVoice,
		format:  cfg.TTSFormat,
		timeout: time.Duration(cfg.ProviderTimeout) * time.Second,
		log:     log,
	}
}

func (y *YarnClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()
	payload := models.YarnReq{
		Text:           text,
		Voice:          y.voice,
		ResponseFormat: y.format,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+y.key)
	resp, err := httpClient.Do(req)
	if err != nil {
		y.log.Error("yarngpt request failed", "error", err)
		return nil, classifyTransport(yarnName, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(yarnName, err)
	}
	if resp.StatusCode != http.StatusOK {
		y.log.Error("yarngpt bad status", "code", resp.StatusCode, "body", string(body))
		return nil, classifyStatus(yarnName, resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return nil, &models.ProviderError{Provider: yarnName, Kind: models.ErrUnknown, Message: "empty audio payload"}
	}
	return body, nil
}
