// Package llm talks to the upstream chat-completion service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subtrack/pkg/config"

	"go.uber.org/zap"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatClient sends one chat completion and returns the first choice's text.
// Implementations never retry.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

var (
	// ErrRateLimited means the upstream answered 429.
	ErrRateLimited = errors.New("upstream rate limit exceeded")
	// ErrQuotaExhausted means the upstream answered 402: credits or billing exhausted.
	ErrQuotaExhausted = errors.New("upstream quota exhausted")
	// ErrEmptyResponse means the upstream returned no usable text.
	ErrEmptyResponse = errors.New("empty response from upstream")
)

// StatusError is any other non-success upstream status. Body is kept for logs only.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// statusToError maps an upstream HTTP status to the package errors.
func statusToError(status int, body string) error {
	switch status {
	case 429:
		return fmt.Errorf("%w: %s", ErrRateLimited, truncate(body, 200))
	case 402:
		return fmt.Errorf("%w: %s", ErrQuotaExhausted, truncate(body, 200))
	default:
		return &StatusError{StatusCode: status, Body: body}
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// NewClient builds the client selected by cfg.AI.Provider.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ChatClient, error) {
	switch strings.ToLower(cfg.AI.Provider) {
	case "", "gateway":
		if cfg.AI.APIKey == "" {
			return nil, errors.New("AI_API_KEY is not configured")
		}
		return NewGatewayClient(&cfg.AI, logger), nil
	case "gigachat":
		return NewGigaChatClient(ctx, &cfg.GigaChat, logger)
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is not configured")
		}
		return NewAnthropicClient(&cfg.Anthropic, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}
