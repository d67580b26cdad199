package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/hunter/internal/analyzer"
	"github.com/ternarybob/hunter/internal/config"
	"github.com/ternarybob/hunter/internal/notify"
	"github.com/ternarybob/hunter/internal/store"
)

// countingSender wraps delivery results so tests can drive failures.
type countingSender struct {
	calls     int
	failUntil int // fail attempts 1..failUntil
	err       error
}

func (c *countingSender) Name() string { return "counting" }

func (c *countingSender) Post(context.Context, notify.Message) (notify.PostResult, error) {
	c.calls++
	if c.calls <= c.failUntil {
		if c.err == nil {
			c.err = errors.New("delivery refused")
		}
		return notify.PostResult{}, c.err
	}
	return notify.PostResult{MessageID: "msg-1", Timestamp: "123"}, nil
}

func fastPolicy(attempts uint64) RetryPolicy {
	return RetryPolicy{
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxAttempts:     attempts,
	}
}

func newTestEngine(sender notify.Sender) *Engine {
	a := analyzer.New(config.LLMConfig{}, nil)
	n := notify.NewWithSender(sender, "#gtm-opportunities")

	e := NewEngine(a, n)
	e.analyzePolicy = fastPolicy(3)
	e.notifyPolicy = fastPolicy(3)
	e.healthPolicy = fastPolicy(2)
	return e
}

func highIntentAccount() store.Account {
	return store.Account{
		AccountID:     "a1",
		CompanyName:   "TechFlow",
		Industry:      "SaaS",
		IntentScore:   92,
		IntentSignals: []store.IntentSignal{{Type: "demo_request"}},
	}
}

func TestProcessOpportunity_Completed(t *testing.T) {
	sender := &countingSender{}
	e := newTestEngine(sender)

	result := e.ProcessOpportunity(context.Background(), "run-1", highIntentAccount())

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "run-1", result.RunID)
	assert.Empty(t, result.Error)

	require.NotNil(t, result.Analysis)
	assert.Equal(t, analyzer.UrgencyUrgent, result.Analysis.UrgencyLevel)

	require.NotNil(t, result.Notification)
	assert.True(t, result.Notification.Success)
	assert.Equal(t, 1, sender.calls)
}

func TestProcessOpportunity_NotifyRetriesThenSucceeds(t *testing.T) {
	sender := &countingSender{failUntil: 2}
	e := newTestEngine(sender)

	result := e.ProcessOpportunity(context.Background(), "run-2", highIntentAccount())

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 3, sender.calls, "two failures then success")
}

func TestProcessOpportunity_NotifyExhaustsRetries(t *testing.T) {
	sender := &countingSender{failUntil: 100, err: errors.New("channel rejected the message")}
	e := newTestEngine(sender)

	result := e.ProcessOpportunity(context.Background(), "run-3", highIntentAccount())

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Error, "channel rejected the message")
	assert.Equal(t, 3, sender.calls, "attempt cap honored")

	// Step 1 output is retained; the failed delivery outcome is surfaced.
	require.NotNil(t, result.Analysis)
	require.NotNil(t, result.Notification)
	assert.False(t, result.Notification.Success)
}

func TestProcessOpportunity_NonRetryableAnalysisInput(t *testing.T) {
	sender := &countingSender{}
	e := newTestEngine(sender)

	acct := highIntentAccount()
	acct.AccountID = ""

	result := e.ProcessOpportunity(context.Background(), "run-4", acct)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Error, "missing account_id")
	assert.Nil(t, result.Analysis)
	assert.Equal(t, 0, sender.calls, "notify step never runs")
}

func TestProcessOpportunity_ContextCancelled(t *testing.T) {
	sender := &countingSender{failUntil: 100}
	e := newTestEngine(sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := e.ProcessOpportunity(ctx, "run-5", highIntentAccount())
	assert.Equal(t, StatusFailed, result.Status)
}

func TestHealthProbe_Healthy(t *testing.T) {
	e := newTestEngine(&countingSender{})

	result := e.HealthProbe(context.Background(), "health-1", "System check")

	assert.Equal(t, StatusHealthy, result.Status)
	require.NotNil(t, result.Notification)
	assert.True(t, result.Notification.Success)
	assert.False(t, result.Timestamp.IsZero())
}

func TestHealthProbe_Unhealthy(t *testing.T) {
	sender := &countingSender{failUntil: 100, err: errors.New("no route to service")}
	e := newTestEngine(sender)

	result := e.HealthProbe(context.Background(), "health-2", "System check")

	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Contains(t, result.Error, "no route to service")
	assert.Equal(t, 2, sender.calls, "health probe has the smaller retry budget")
}

func TestRetryPolicy_AttemptCap(t *testing.T) {
	policy := fastPolicy(3)
	bo := policy.newBackOff(context.Background())

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return errors.New("still failing")
	}, bo)

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}
