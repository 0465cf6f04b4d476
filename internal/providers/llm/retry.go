package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/salesdash/internal/core"
	"github.com/sandevgo/salesdash/pkg/log"
	"github.com/sandevgo/salesdash/pkg/retry"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Retrying retries transient provider failures with exponential backoff.
type Retrying struct {
	next    core.AIProvider
	retrier *retry.Retrier
}

func DefaultRetryConfig(maxRetries int) *retry.Config {
	return &retry.Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      8 * time.Second,
		Jitter:        100 * time.Millisecond,
		Retryable:     IsTransient,
	}
}

// NewRetrying wraps next. timeout bounds each attempt; zero disables it.
func NewRetrying(next core.AIProvider, cfg *retry.Config, timeout time.Duration) *Retrying {
	c := *cfg
	c.AttemptTimeout = timeout
	return &Retrying{
		next:    next,
		retrier: retry.NewRetrier(&c),
	}
}

func (r *Retrying) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	logger := log.FromCtx(ctx)

	var out core.Message
	err := r.retrier.Do(ctx, func(ctx context.Context, attempt int) error {
		msg, err := r.next.Chat(ctx, history, tools)
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Bool("transient", IsTransient(err)).Msg("llm call failed")
			return err
		}
		out = msg
		return nil
	})
	if err != nil {
		return core.Message{}, err
	}
	return out, nil
}

// IsTransient reports whether err is a rate limit, server-side failure,
// timeout or network error.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return transientStatus(reqErr.HTTPStatusCode)
	}
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return transientStatus(gErr.Code)
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return transientStatus(gErrPtr.Code)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func transientStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}
