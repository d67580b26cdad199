package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy is the declarative per-step retry configuration handed to the
// backoff engine: exponential intervals bounded by MaxInterval, capped at
// MaxAttempts total attempts. Non-retryable errors are marked with
// backoff.Permanent by the step itself.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxAttempts     uint64
}

// newBackOff builds the context-aware backoff for one step execution.
func (p RetryPolicy) newBackOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.MaxElapsedTime = 0 // attempts are bounded by count, not wall clock

	var bo backoff.BackOff = b
	if p.MaxAttempts > 0 {
		bo = backoff.WithMaxRetries(bo, p.MaxAttempts-1)
	}
	return backoff.WithContext(bo, ctx)
}

// Default step budgets and policies, mirroring the workflow the agent ran
// in production: analysis gets the long budget, delivery a shorter one.
var (
	defaultAnalyzePolicy = RetryPolicy{
		InitialInterval: 1 * time.Second,
		MaxInterval:     10 * time.Second,
		MaxAttempts:     3,
	}
	defaultNotifyPolicy = RetryPolicy{
		InitialInterval: 1 * time.Second,
		MaxInterval:     5 * time.Second,
		MaxAttempts:     3,
	}
	defaultHealthPolicy = RetryPolicy{
		InitialInterval: 1 * time.Second,
		MaxInterval:     5 * time.Second,
		MaxAttempts:     2,
	}
)

const (
	defaultAnalyzeTimeout = 5 * time.Minute
	defaultNotifyTimeout  = 2 * time.Minute
	defaultHealthTimeout  = 1 * time.Minute
)
