package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AnthropicConfig configures the Claude backed generator
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// AnthropicGenerator implements Generator with the Anthropic Messages API
type AnthropicGenerator struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

func NewAnthropicGenerator(cfg AnthropicConfig, logger *slog.Logger) *AnthropicGenerator {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
	)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &AnthropicGenerator{
		client:    client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
		timeout:   timeout,
		logger:    logger,
	}
}

// NewGenerator returns an Anthropic generator, or Disabled without an API key
func NewGenerator(cfg AnthropicConfig, logger *slog.Logger) Generator {
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("ANTHROPIC_API_KEY not set, generative features will use fallbacks")
		return Disabled{}
	}
	return NewAnthropicGenerator(cfg, logger)
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("careerkit/ai").Start(ctx, "ai.generate", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.model", string(g.model)),
		attribute.Int("ai.prompt_length", len(prompt)),
	)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	response, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "messages.new failed")
		g.logger.Warn("Generative content call failed", "error", err, "model", g.model)
		return "", fmt.Errorf("failed to call generative content service: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		span.SetStatus(codes.Error, "empty response")
		return "", ErrEmptyResponse
	}

	g.logger.Debug("Generative content call completed",
		"model", g.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(out))

	return out, nil
}
