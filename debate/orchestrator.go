package debate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"debator/config"
	"debator/models"
	"debator/provider"
)

var ErrEmptyUtterance = errors.New("utterance must not be empty")

// AudioStore persists a synthesized clip and returns its public URL.
type AudioStore interface {
	Save(data []byte) (string, error)
}

// Orchestrator coordinates one debate turn: text generation first, then
// speech synthesis on its output. Audio is best-effort; text is not.
type Orchestrator struct {
	llm          provider.TextGenerator
	tts          provider.SpeechSynthesizer
	fallback     provider.SpeechSynthesizer // optional
	audio        AudioStore
	policy       provider.RetryPolicy
	maxHistory   int
	maxSentences int
	tokenizer    *sentences.DefaultSentenceTokenizer
	log          *slog.Logger
}

func New(cfg *config.Config, llm provider.TextGenerator, tts, fallback provider.SpeechSynthesizer, store AudioStore, log *slog.Logger) *Orchestrator {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		// trimming then degrades to passing text through untouched
		log.Warn("failed to build sentence tokenizer", "error", err)
	}
	return &Orchestrator{
		llm:      llm,
		tts:      tts,
		fallback: fallback,
		audio:    store,
		policy: provider.RetryPolicy{
			MaxAttempts: cfg.RetryAttempts,
			BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.RetryMaxMs) * time.Millisecond,
		},
		maxHistory:   cfg.MaxHistory,
		maxSentences: cfg.MaxSentences,
		tokenizer:    tokenizer,
		log:          log,
	}
}

// ProduceTurn runs the full pipeline for one stateless exchange. Text
// generation failures surface as errors with no synthesis attempted; a
// synthesis failure after retries degrades to a partial response.
func (o *Orchestrator) ProduceTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error) {
	if strings.TrimSpace(req.Utterance) == "" {
		return nil, ErrEmptyUtterance
	}
	history := truncateHistory(req.History, o.maxHistory)
	prompt := turnPrompt(req.Utterance, history, o.maxSentences)
	return o.produce(ctx, prompt)
}

// produce is the shared text-then-speech pipeline behind both the
// stateless endpoint and the debate sessions.
func (o *Orchestrator) produce(ctx context.Context, prompt string) (*models.TurnResponse, error) {
	text, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	text = trimSentences(o.tokenizer, text, o.maxSentences)
	resp := &models.TurnResponse{ResponseText: text}
	url, err := o.synthesize(ctx, cleanForSpeech(text))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		o.log.Warn("speech synthesis failed, degrading to text-only turn", "error", err)
		resp.Partial = true
		return resp, nil
	}
	resp.AudioURL = &url
	return resp, nil
}

func (o *Orchestrator) generate(ctx context.Context, prompt string) (string, error) {
	var out string
	err := o.policy.Do(ctx, func(ctx context.Context) error {
		text, err := o.llm.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		o.log.Error("text generation failed", "error", err)
		return "", err
	}
	return out, nil
}

func (o *Orchestrator) synthesize(ctx context.Context, text string) (string, error) {
	var data []byte
	err := o.policy.Do(ctx, func(ctx context.Context) error {
		audio, err := o.tts.Synthesize(ctx, text)
		if err != nil {
			return err
		}
		data = audio
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) && o.fallback != nil {
		o.log.Warn("primary tts exhausted, trying fallback synth", "error", err)
		data, err = o.fallback.Synthesize(ctx, text)
	}
	if err != nil {
		return "", err
	}
	return o.audio.Save(data)
}
