// Package llm provides the model-provider abstraction used by the
// extraction fallback and the financial assistant.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable wraps network or provider outages so callers can tell
// "the model could not be reached" apart from "the model found nothing".
var ErrUnavailable = errors.New("llm provider unavailable")

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
