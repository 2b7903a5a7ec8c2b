package pacing

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
)

// Retry is a bounded retry policy with a fixed, unjittered delay.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// NoRetry runs an operation exactly once.
var NoRetry = Retry{Attempts: 1}

// Do runs fn until it succeeds or the attempt budget is spent. Exhaustion
// returns an *errors.RetryError wrapping the last failure. Cancelling ctx
// stops the loop between attempts.
func (r Retry) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := max(r.Attempts, 1)
	logger := logging.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", errors.ErrCanceled, op, ctxErr)
		}

		if err = fn(ctx); err == nil {
			return nil
		}

		logger.Warn().
			Err(err).
			Str("operation", op).
			Int("attempt", attempt).
			Int("attempts", attempts).
			Msg("Attempt failed")

		if attempt == attempts {
			break
		}

		if r.Delay > 0 {
			timer := time.NewTimer(r.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%w: %s: %w", errors.ErrCanceled, op, ctx.Err())
			case <-timer.C:
			}
		}
	}

	logger.Error().
		Err(err).
		Str("operation", op).
		Int("attempts", attempts).
		Msg("Retries exhausted")
	return errors.NewRetryError(op, attempts, err)
}
