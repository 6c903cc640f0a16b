package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

// RetryPolicy bounds retries of idempotent reads. Writes are never retried.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// classify marks connectivity failures and deadlines as domain.ErrTransient.
func classify(err error) error {
	if err == nil || errors.Is(err, domain.ErrTransient) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	return err
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.Delay > 0 {
		b.InitialInterval = p.Delay
	}
	retries := p.Attempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

func withReadRetry[T any](ctx context.Context, policy RetryPolicy, logger *slog.Logger, op string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := backoff.RetryNotify(func() error {
		v, err := fn(ctx)
		if err != nil {
			err = classify(err)
			if !errors.Is(err, domain.ErrTransient) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}, policy.backOff(ctx), func(err error, next time.Duration) {
		logger.Warn("read failed, retrying", "op", op, "error", err, "retry_in", next)
	})
	return result, err
}
