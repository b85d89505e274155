package service

import (
	"errors"
	"fmt"

	"subtrack/internal/llm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")

	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrInternal     = errors.New("internal error")

	ErrUpstreamRateLimited    = errors.New("upstream rate limited")
	ErrUpstreamQuotaExhausted = errors.New("upstream quota exhausted")
	ErrUpstream               = errors.New("upstream error")
)

// upstreamError maps a chat client failure onto the service error kinds.
// The original error is kept in the chain for logging.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return fmt.Errorf("%w: %v", ErrUpstreamRateLimited, err)
	case errors.Is(err, llm.ErrQuotaExhausted):
		return fmt.Errorf("%w: %v", ErrUpstreamQuotaExhausted, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}
