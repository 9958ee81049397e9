package provider

import (
	"context"
	"errors"
	"net"
	"net/http"

	"debator/models"
)

// process-wide client; both providers share its connection pool
var httpClient = &http.Client{}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// classifyTransport maps a transport-level failure onto the provider error
// taxonomy. Caller-side cancellation passes through untouched so it keeps
// its context.Canceled identity.
func classifyTransport(name string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &models.ProviderError{Provider: name, Kind: models.ErrTimeout, Message: err.Error()}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &models.ProviderError{Provider: name, Kind: models.ErrTimeout, Message: err.Error()}
	}
	return &models.ProviderError{Provider: name, Kind: models.ErrUnknown, Message: err.Error()}
}

func classifyStatus(name string, code int, body string) error {
	kind := models.ErrUnknown
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = models.ErrAuthFailure
	case code == http.StatusTooManyRequests:
		kind = models.ErrRateLimited
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		kind = models.ErrTimeout
	case code >= 500:
		kind = models.ErrUpstream
	}
	return &models.ProviderError{Provider: name, Kind: kind, Code: code, Message: body}
}
