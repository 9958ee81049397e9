package models

import "fmt"

type ErrorKind uint8

const (
	ErrUnknown ErrorKind = iota
	ErrTimeout
	ErrAuthFailure
	ErrRateLimited
	ErrUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTimeout:
		return "timeout"
	case ErrAuthFailure:
		return "auth_failure"
	case ErrRateLimited:
		return "rate_limited"
	case ErrUpstream:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// ProviderError is what provider clients hand back instead of raw transport
// or status errors, so the orchestrator can decide retry vs surface.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Provider, e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// Retryable reports whether the failure is worth one more attempt. Auth
// failures are config problems and unknown failure modes must not be
// assumed transient.
func (e *ProviderError) Retryable() bool {
	return e.Kind == ErrTimeout || e.Kind == ErrRateLimited
}
