package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Retry runs op until it succeeds, returns a Permanent error, exhausts
// cfg.MaxRetries extra attempts, or ctx is done. notify is called before each wait.
func Retry[T any](ctx context.Context, cfg RetryConfig, op func() (T, error), notify func(err error, wait time.Duration)) (T, error) {
	cfg = NormalizeRetryConfig(cfg)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.InitialInterval
	policy.MaxInterval = cfg.MaxInterval
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	opts := []backoff.RetryOption{
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(cfg.MaxRetries + 1)),
	}
	if notify != nil {
		opts = append(opts, backoff.WithNotify(notify))
	}

	return backoff.Retry[T](ctx, backoff.Operation[T](op), opts...)
}
