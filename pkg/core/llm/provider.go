// Package llm wraps the language-model backends used for report commentary.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrMissingAPIKey is returned when a remote provider has no credentials.
var ErrMissingAPIKey = errors.New("missing API key")

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// Options keys understood by the providers.
const (
	OptionModel       = "model"
	OptionTemperature = "temperature"
)

func stringOption(options map[string]interface{}, key, fallback string) string {
	if val, ok := options[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

func temperatureOption(options map[string]interface{}, fallback float32) float32 {
	switch v := options[OptionTemperature].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	}
	return fallback
}

func resolveKey(explicit, env string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: set %s", ErrMissingAPIKey, env)
}
