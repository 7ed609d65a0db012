package usecase

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"barorder/internal/errors"
	"barorder/internal/infrastructure/mysql"
)

// Notifier is told when the set of active orders has changed.
type Notifier interface {
	Refresh()
}

// Backoff intervals: attempt 1 (0ms), attempt 2 (100ms), attempt 3 (200ms), and 200ms after that.
var backoffs = []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

// withRetry runs fn until it succeeds, fails with an error other than a
// deadlock or lock wait timeout, or maxAttempts is used up.
func withRetry(ctx context.Context, logger *zap.Logger, maxAttempts int, op string, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !mysql.IsRetryable(err) {
			return err
		}

		if attempt == maxAttempts {
			logger.Warn("deadlock retries exhausted", zap.String("op", op), zap.Int("attempts", attempt), zap.Error(err))
			break
		}

		wait := backoff(attempt)
		logger.Warn("deadlock detected, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Duration("backoff", wait),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return errors.NewDeadlockError("max retries exceeded")
}

// backoff is the wait before attempt+1, with ±20% jitter.
func backoff(attempt int) time.Duration {
	base := backoffs[len(backoffs)-1]
	if attempt < len(backoffs) {
		base = backoffs[attempt]
	}
	jitter := time.Duration(float64(base) * (rand.Float64()*0.4 - 0.2))
	return base + jitter
}
