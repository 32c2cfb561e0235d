package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultQuoteTimeout = 10 * time.Second

type quoteService struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewQuoteService(url string, client *http.Client, logger *slog.Logger) QuoteService {
	if client == nil {
		client = &http.Client{Timeout: defaultQuoteTimeout}
	}
	return &quoteService{url: url, client: client, logger: logger}
}

// Today relays the first element of the upstream array without reshaping it
func (s *quoteService) Today(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Quote fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Quote upstream returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: quote upstream status %d", ErrUpstreamFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	var quotes []json.RawMessage
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("%w: failed to decode quotes: %w", ErrUpstreamFailure, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: empty quote list", ErrUpstreamFailure)
	}

	return quotes[0], nil
}
