package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/pkg/retry"
)

type scriptedProvider struct {
	errs  []error
	calls int
}

func (s *scriptedProvider) Chat(ctx context.Context, _ []core.Message, _ []core.Tool) (core.Message, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return core.Message{}, s.errs[s.calls-1]
	}
	return core.Message{Role: core.RoleAssistant, Content: "ok"}, nil
}

func fastRetry(maxRetries int) *retry.Config {
	cfg := DefaultRetryConfig(maxRetries)
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = time.Millisecond
	return cfg
}

func TestRetrying_RecoversFromTransientErrors(t *testing.T) {
	rateLimited := &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}
	p := &scriptedProvider{errs: []error{rateLimited, fmt.Errorf("wrapped: %w", rateLimited)}}

	msg, err := NewRetrying(p, fastRetry(2), 0).Chat(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Content)
	assert.Equal(t, 3, p.calls)
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	unavailable := &openai.APIError{HTTPStatusCode: 503}
	p := &scriptedProvider{errs: []error{unavailable, unavailable, unavailable, unavailable}}

	_, err := NewRetrying(p, fastRetry(2), 0).Chat(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestRetrying_StopsOnPermanentError(t *testing.T) {
	p := &scriptedProvider{errs: []error{&openai.APIError{HTTPStatusCode: 401}}}

	_, err := NewRetrying(p, fastRetry(2), 0).Chat(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, p.calls)
}

type slowProvider struct{ calls int }

func (s *slowProvider) Chat(ctx context.Context, _ []core.Message, _ []core.Tool) (core.Message, error) {
	s.calls++
	<-ctx.Done()
	return core.Message{}, ctx.Err()
}

func TestRetrying_PerAttemptTimeout(t *testing.T) {
	p := &slowProvider{}

	_, err := NewRetrying(p, fastRetry(1), 10*time.Millisecond).Chat(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 2, p.calls)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limit", err: &openai.APIError{HTTPStatusCode: 429}, want: true},
		{name: "request timeout", err: &openai.RequestError{HTTPStatusCode: 408}, want: true},
		{name: "server error", err: &openai.APIError{HTTPStatusCode: 502}, want: true},
		{name: "bad request", err: &openai.APIError{HTTPStatusCode: 400}, want: false},
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "network", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: true},
		{name: "plain", err: errors.New("bad tool schema"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
