package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"subtrack/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// GigaChatClient sends completions through the gigago SDK.
type GigaChatClient struct {
	client *gigago.Client
	model  string
	logger *zap.Logger
}

func NewGigaChatClient(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatClient, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))
	return &GigaChatClient{
		client: client,
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func (c *GigaChatClient) Complete(ctx context.Context, messages []Message) (string, error) {
	// a model per call: SystemInstruction is a field on the model
	model := c.client.GenerativeModel(c.model)
	model.Temperature = 0.3

	var system []string
	var gigaMessages []gigago.Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		gigaMessages = append(gigaMessages, gigago.Message{Role: gigaRole(m.Role), Content: m.Content})
	}
	model.SystemInstruction = strings.Join(system, "\n\n")

	resp, err := model.Generate(ctx, gigaMessages)
	if err != nil {
		return "", classifyGigaChatError(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func gigaRole(role Role) gigago.Role {
	if role == RoleAssistant {
		return gigago.RoleAssistant
	}
	return gigago.RoleUser
}

// gigago only exposes the status code inside the error text,
// as "unexpected status NNN: body".
var gigaStatusPattern = regexp.MustCompile(`\bstatus (\d{3})\b`)

func classifyGigaChatError(err error) error {
	m := gigaStatusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return fmt.Errorf("failed to generate response: %w", err)
	}
	status, _ := strconv.Atoi(m[1])
	switch status {
	case 429:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case 402:
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	default:
		return fmt.Errorf("failed to generate response: %w", err)
	}
}

func (c *GigaChatClient) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
