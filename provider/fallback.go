package provider

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	google_translate_tts "github.com/GrailFinder/google-translate-tts"

	"debator/config"
	"debator/models"
)

const gtransName = "google-translate-tts"

// GoogleTranslateSynthesizer is the local, keyless fallback used when the
// primary TTS provider exhausts its retry budget. Lower voice quality, but
// a turn with any audio beats a partial one.
type GoogleTranslateSynthesizer struct {
	speech *google_translate_tts.Speech
	log    *slog.Logger
}

func NewGoogleTranslateSynthesizer(cfg *config.Config, log *slog.Logger) *GoogleTranslateSynthesizer {
	return &GoogleTranslateSynthesizer{
		speech: &google_translate_tts.Speech{
			Folder:   filepath.Join(os.TempDir(), "debator-tts"),
			Language: cfg.TTSFallbackLang,
			Speed:    cfg.TTSSpeed,
		},
		log: log,
	}
}

func (s *GoogleTranslateSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reader, err := s.speech.GenerateSpeech(text)
	if err != nil {
		s.log.Error("fallback speech generation failed", "error", err)
		return nil, &models.ProviderError{Provider: gtransName, Kind: models.ErrUnknown, Message: err.Error()}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &models.ProviderError{Provider: gtransName, Kind: models.ErrUnknown, Message: err.Error()}
	}
	return data, nil
}
