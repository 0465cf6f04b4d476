package sqltool

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrConnection = errors.New("database connection failed")
	ErrQuery      = errors.New("query failed")
	ErrTimeout    = errors.New("query timed out")
)

// classify tags err with kind, or with ErrTimeout when the deadline was hit.
func classify(ctx context.Context, kind, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}
