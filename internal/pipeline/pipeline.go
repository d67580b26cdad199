// Package pipeline sequences account analysis and notification as a
// two-step durable pipeline with independent per-step timeout and retry
// policies.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ternarybob/hunter/internal/analyzer"
	"github.com/ternarybob/hunter/internal/logger"
	"github.com/ternarybob/hunter/internal/notify"
	"github.com/ternarybob/hunter/internal/store"
)

// Status is the terminal state of a pipeline run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// ErrNonRetryableAnalysis marks analysis input errors that are permanent:
// retrying cannot fix a record with no identity.
var ErrNonRetryableAnalysis = errors.New("non-retryable analysis input")

// Result is the composite outcome of one opportunity pipeline run.
// Step outputs that succeeded before a failure are retained.
type Result struct {
	RunID        string             `json:"run_id"`
	CompanyName  string             `json:"company_name"`
	Account      store.Account      `json:"account"`
	Analysis     *analyzer.Brief    `json:"analysis,omitempty"`
	Notification *notify.Outcome    `json:"notification,omitempty"`
	Status       Status             `json:"status"`
	Error        string             `json:"error,omitempty"`
}

// HealthResult is the outcome of one health-probe run.
type HealthResult struct {
	RunID        string          `json:"run_id"`
	Status       Status          `json:"status"`
	Notification *notify.Outcome `json:"notification,omitempty"`
	Error        string          `json:"error,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Engine runs pipelines. It holds no state between invocations; each run is
// identified by the caller-supplied run id.
type Engine struct {
	analyzer *analyzer.Analyzer
	notifier *notify.Notifier

	analyzePolicy RetryPolicy
	notifyPolicy  RetryPolicy
	healthPolicy  RetryPolicy

	analyzeTimeout time.Duration
	notifyTimeout  time.Duration
	healthTimeout  time.Duration
}

// NewEngine creates an Engine with the default step budgets and policies.
func NewEngine(a *analyzer.Analyzer, n *notify.Notifier) *Engine {
	return &Engine{
		analyzer:       a,
		notifier:       n,
		analyzePolicy:  defaultAnalyzePolicy,
		notifyPolicy:   defaultNotifyPolicy,
		healthPolicy:   defaultHealthPolicy,
		analyzeTimeout: defaultAnalyzeTimeout,
		notifyTimeout:  defaultNotifyTimeout,
		healthTimeout:  defaultHealthTimeout,
	}
}

// ProcessOpportunity runs the two-step pipeline for one account:
// analyze, then notify, each under its own timeout and retry policy.
// Steps are strictly sequential; there is no partial-completion replay.
func (e *Engine) ProcessOpportunity(ctx context.Context, runID string, acct store.Account) Result {
	log := logger.GetLogger()
	log.Info().Str("run_id", runID).Str("company", acct.CompanyName).Msg("Starting opportunity pipeline")

	result := Result{
		RunID:       runID,
		CompanyName: acct.CompanyName,
		Account:     acct,
	}

	// Step 1: analyze.
	var brief analyzer.Brief
	err := e.runStep(ctx, "analyze", e.analyzeTimeout, e.analyzePolicy, func(stepCtx context.Context) error {
		if acct.AccountID == "" {
			// Permanent: the record can never be attributed or marked processed.
			return backoff.Permanent(fmt.Errorf("%w: missing account_id", ErrNonRetryableAnalysis))
		}
		brief = e.analyzer.Analyze(stepCtx, acct)
		return stepCtx.Err()
	})
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		log.Error().Str("run_id", runID).Err(err).Msg("Pipeline failed at analyze step")
		return result
	}
	result.Analysis = &brief

	// Step 2: notify.
	var outcome notify.Outcome
	err = e.runStep(ctx, "notify", e.notifyTimeout, e.notifyPolicy, func(stepCtx context.Context) error {
		outcome = e.notifier.Notify(stepCtx, brief)
		if !outcome.Success {
			return fmt.Errorf("%w: %s", notify.ErrDeliveryFailed, outcome.Error)
		}
		return nil
	})
	if err != nil {
		result.Notification = &outcome
		result.Status = StatusFailed
		result.Error = err.Error()
		log.Error().Str("run_id", runID).Err(err).Msg("Pipeline failed at notify step")
		return result
	}

	result.Notification = &outcome
	result.Status = StatusCompleted
	log.Info().Str("run_id", runID).Str("company", acct.CompanyName).Msg("Pipeline completed")
	return result
}

// HealthProbe runs the single-step health pipeline: deliver a test message
// under a short budget and a smaller retry allowance.
func (e *Engine) HealthProbe(ctx context.Context, runID, message string) HealthResult {
	log := logger.GetLogger()
	log.Info().Str("run_id", runID).Msg("Running health probe")

	result := HealthResult{RunID: runID, Timestamp: time.Now().UTC()}

	var outcome notify.Outcome
	err := e.runStep(ctx, "health", e.healthTimeout, e.healthPolicy, func(stepCtx context.Context) error {
		outcome = e.notifier.SendTest(stepCtx, message)
		if !outcome.Success {
			return fmt.Errorf("%w: %s", notify.ErrDeliveryFailed, outcome.Error)
		}
		return nil
	})
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
		log.Error().Str("run_id", runID).Err(err).Msg("Health probe failed")
		return result
	}

	result.Status = StatusHealthy
	result.Notification = &outcome
	return result
}

// runStep executes one step under its retry policy. The step's time budget
// applies per attempt; the backoff stops on context cancellation or when
// the attempt cap is exhausted.
func (e *Engine) runStep(ctx context.Context, name string, timeout time.Duration, policy RetryPolicy, fn func(context.Context) error) error {
	log := logger.GetLogger()
	attempt := 0

	operation := func() error {
		attempt++
		stepCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := fn(stepCtx)
		if err != nil {
			log.Warn().Str("step", name).Int("attempt", attempt).Err(err).Msg("Step attempt failed")
		}
		return err
	}

	if err := backoff.Retry(operation, policy.newBackOff(ctx)); err != nil {
		return fmt.Errorf("%s step: %w", name, err)
	}
	return nil
}
