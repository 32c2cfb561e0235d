// Package ai wraps the generative content service. Output from the service is
// untrusted free text; callers parse it with the helpers in parse.go and fall
// back to fixed values when parsing fails.
package ai

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("generative content service not configured")
	ErrEmptyResponse = errors.New("empty response from generative content service")
)

// Generator turns a prompt into free-form text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Disabled is used when no API key is configured; every call fails so
// callers take their fallback path.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
