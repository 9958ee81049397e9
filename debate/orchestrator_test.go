package debate

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"debator/config"
	"debator/models"
)

type fakeLLM struct {
	calls      int
	lastPrompt string
	resp       string
	err        error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

type fakeTTS struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeAudio struct {
	saves int
	url   string
}

func (f *fakeAudio) Save(data []byte) (string, error) {
	f.saves++
	return f.url, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig() *config.Config {
	return &config.Config{
		RetryAttempts: 2,
		RetryBaseMs:   1,
		RetryMaxMs:    2,
		MaxHistory:    20,
		MaxSentences:  2,
	}
}

func TestProduceTurnSuccess(t *testing.T) {
	llm := &fakeLLM{resp: "Remote work dey sweet but e fit isolate person o"}
	tts := &fakeTTS{data: []byte("mp3")}
	store := &fakeAudio{url: "/static/audio_test.mp3"}
	orc := New(testConfig(), llm, tts, nil, store, testLogger())
	resp, err := orc.ProduceTurn(context.Background(), models.TurnRequest{
		Utterance: "Wetin you think about remote work?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Partial {
		t.Error("expected full response, got partial")
	}
	if resp.ResponseText != "Remote work dey sweet but e fit isolate person o" {
		t.Errorf("unexpected text: %q", resp.ResponseText)
	}
	if resp.AudioURL == nil || *resp.AudioURL != "/static/audio_test.mp3" {
		t.Errorf("unexpected audio url: %v", resp.AudioURL)
	}
	if tts.calls != 1 || store.saves != 1 {
		t.Errorf("expected one synthesis and one save, got %d/%d", tts.calls, store.saves)
	}
}

func TestProduceTurnTextFailureSkipsSpeech(t *testing.T) {
	llm := &fakeLLM{err: &models.ProviderError{Provider: "gemini", Kind: models.ErrUpstream, Code: 502}}
	tts := &fakeTTS{data: []byte("mp3")}
	orc := New(testConfig(), llm, tts, nil, &fakeAudio{}, testLogger())
	_, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "oya talk"})
	var provErr *models.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if tts.calls != 0 {
		t.Errorf("speech must not be attempted after text failure, got %d calls", tts.calls)
	}
}

func TestProduceTurnAuthFailureNotRetried(t *testing.T) {
	llm := &fakeLLM{err: &models.ProviderError{Provider: "gemini", Kind: models.ErrAuthFailure, Code: 401}}
	orc := New(testConfig(), llm, &fakeTTS{}, nil, &fakeAudio{}, testLogger())
	_, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "oya talk"})
	if err == nil {
		t.Fatal("expected error")
	}
	if llm.calls != 1 {
		t.Errorf("auth failure must not be retried, got %d calls", llm.calls)
	}
}

func TestProduceTurnSpeechExhaustionGoesPartial(t *testing.T) {
	llm := &fakeLLM{resp: "Abeg, you no get point."}
	tts := &fakeTTS{err: &models.ProviderError{Provider: "yarngpt", Kind: models.ErrTimeout}}
	orc := New(testConfig(), llm, tts, nil, &fakeAudio{url: "/static/x.mp3"}, testLogger())
	resp, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "oya talk"})
	if err != nil {
		t.Fatalf("partial success must not be an error: %v", err)
	}
	if !resp.Partial {
		t.Error("expected partial response")
	}
	if resp.ResponseText == "" {
		t.Error("partial response must keep the text")
	}
	if resp.AudioURL != nil {
		t.Errorf("expected no audio url, got %v", *resp.AudioURL)
	}
	// retry budget of 1 means the provider saw exactly two calls
	if tts.calls != 2 {
		t.Errorf("expected 2 synthesis attempts, got %d", tts.calls)
	}
}

func TestProduceTurnSpeechAuthSingleAttempt(t *testing.T) {
	llm := &fakeLLM{resp: "Na so."}
	tts := &fakeTTS{err: &models.ProviderError{Provider: "yarngpt", Kind: models.ErrAuthFailure, Code: 401}}
	orc := New(testConfig(), llm, tts, nil, &fakeAudio{}, testLogger())
	resp, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "oya talk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Partial {
		t.Error("expected partial response")
	}
	if tts.calls != 1 {
		t.Errorf("auth failure must not be retried, got %d calls", tts.calls)
	}
}

func TestProduceTurnFallbackRescuesAudio(t *testing.T) {
	llm := &fakeLLM{resp: "Na so e be."}
	tts := &fakeTTS{err: &models.ProviderError{Provider: "yarngpt", Kind: models.ErrTimeout}}
	fallback := &fakeTTS{data: []byte("fallback-mp3")}
	store := &fakeAudio{url: "/static/audio_fb.mp3"}
	orc := New(testConfig(), llm, tts, fallback, store, testLogger())
	resp, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "oya talk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Partial {
		t.Error("fallback audio should make the turn complete")
	}
	if resp.AudioURL == nil || *resp.AudioURL != "/static/audio_fb.mp3" {
		t.Errorf("unexpected audio url: %v", resp.AudioURL)
	}
	if fallback.calls != 1 {
		t.Errorf("expected one fallback call, got %d", fallback.calls)
	}
}

func TestProduceTurnEmptyUtterance(t *testing.T) {
	llm := &fakeLLM{resp: "should not be called"}
	orc := New(testConfig(), llm, &fakeTTS{}, nil, &fakeAudio{}, testLogger())
	_, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "   "})
	if !errors.Is(err, ErrEmptyUtterance) {
		t.Fatalf("expected ErrEmptyUtterance, got %v", err)
	}
	if llm.calls != 0 {
		t.Errorf("validation failure must not reach the provider, got %d calls", llm.calls)
	}
}

func TestProduceTurnHistoryTruncation(t *testing.T) {
	llm := &fakeLLM{resp: "ok"}
	cfg := testConfig()
	cfg.MaxHistory = 2
	orc := New(cfg, llm, &fakeTTS{data: []byte("a")}, nil, &fakeAudio{url: "/static/a.mp3"}, testLogger())
	history := []models.RoleMsg{
		{Speaker: "Tiger", Text: "oldest point"},
		{Speaker: "Lion", Text: "older point"},
		{Speaker: "Tiger", Text: "recent point"},
		{Speaker: "Lion", Text: "latest point"},
	}
	_, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "wetin dey", History: history})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(llm.lastPrompt, "oldest point") || strings.Contains(llm.lastPrompt, "older point") {
		t.Errorf("oldest history entries must be dropped, prompt: %q", llm.lastPrompt)
	}
	for _, want := range []string{"recent point", "latest point", "wetin dey"} {
		if !strings.Contains(llm.lastPrompt, want) {
			t.Errorf("prompt missing %q: %q", want, llm.lastPrompt)
		}
	}
}

func TestProduceTurnTrimsLongReplies(t *testing.T) {
	llm := &fakeLLM{resp: "First point here. Second point here. Third point wey too long."}
	orc := New(testConfig(), llm, &fakeTTS{data: []byte("a")}, nil, &fakeAudio{url: "/static/a.mp3"}, testLogger())
	resp, err := orc.ProduceTurn(context.Background(), models.TurnRequest{Utterance: "go on"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(resp.ResponseText, "Third point") {
		t.Errorf("reply should be cut to two sentences, got %q", resp.ResponseText)
	}
	if !strings.Contains(resp.ResponseText, "Second point") {
		t.Errorf("second sentence should survive, got %q", resp.ResponseText)
	}
}
