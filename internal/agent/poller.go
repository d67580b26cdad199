package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ternarybob/hunter/internal/config"
	"github.com/ternarybob/hunter/internal/logger"
	"github.com/ternarybob/hunter/internal/pipeline"
	"github.com/ternarybob/hunter/internal/store"
)

// Metrics is a snapshot of poller activity counters.
type Metrics struct {
	Cycles    int       `json:"cycles"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	LastCycle time.Time `json:"last_cycle"`
}

// Poller drives the agent loop: scan the account store on a fixed interval,
// run the opportunity pipeline for each unprocessed high-intent account, and
// mark accounts processed only after the pipeline completes.
type Poller struct {
	store     *store.Store
	engine    *pipeline.Engine
	interval  time.Duration
	threshold int
	watcher   *Watcher

	stopCh   chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	metrics Metrics
}

// New creates a poller over the given store and pipeline engine.
func New(st *store.Store, engine *pipeline.Engine, cfg config.AgentConfig) *Poller {
	return &Poller{
		store:     st,
		engine:    engine,
		interval:  time.Duration(cfg.PollIntervalSeconds) * time.Second,
		threshold: cfg.IntentThreshold,
		stopCh:    make(chan struct{}),
	}
}

// WithWatcher attaches a file watcher whose wake signal cuts the current
// poll interval short. Must be called before Run.
func (p *Poller) WithWatcher(w *Watcher) *Poller {
	p.watcher = w
	return p
}

// Run executes poll cycles until the context is cancelled or Stop is called.
func (p *Poller) Run(ctx context.Context) error {
	log := logger.GetLogger()
	log.Info().
		Str("interval", p.interval.String()).
		Int("threshold", p.threshold).
		Msg("Starting agent poll loop")

	var wake <-chan struct{}
	if p.watcher != nil {
		wake = p.watcher.Wake()
	}

	for {
		p.RunOnce(ctx)

		select {
		case <-ctx.Done():
			log.Info().Msg("Agent loop stopping: context cancelled")
			return ctx.Err()
		case <-p.stopCh:
			log.Info().Msg("Agent loop stopping: stop requested")
			return nil
		case <-wake:
			log.Info().Msg("Agent loop woken by accounts change")
		case <-time.After(p.interval):
		}
	}
}

// RunOnce performs a single poll cycle and returns the number of accounts
// processed and failed. Failures are isolated per account: one failed
// pipeline never blocks the remaining candidates.
func (p *Poller) RunOnce(ctx context.Context) (processed, failed int) {
	log := logger.GetLogger()

	candidates := p.store.FilterHighIntent(p.threshold)
	if len(candidates) > 0 {
		log.Info().Int("count", len(candidates)).Msg("Found high-intent accounts")
	} else {
		log.Debug().Msg("No high-intent accounts found")
	}

	for _, acct := range candidates {
		if p.stopped() || ctx.Err() != nil {
			break
		}

		runID := fmt.Sprintf("opportunity-%s-%s", acct.AccountID, uuid.NewString()[:8])
		result := p.engine.ProcessOpportunity(ctx, runID, acct)

		if result.Status != pipeline.StatusCompleted {
			failed++
			log.Warn().
				Str("run_id", runID).
				Str("account_id", acct.AccountID).
				Str("error", result.Error).
				Msg("Opportunity pipeline failed, account left unprocessed")
			continue
		}

		if !p.store.MarkProcessed(acct.AccountID) {
			log.Warn().Str("account_id", acct.AccountID).Msg("Account vanished before it could be marked processed")
		}
		processed++
	}

	p.mu.Lock()
	p.metrics.Cycles++
	p.metrics.Processed += processed
	p.metrics.Failed += failed
	p.metrics.LastCycle = time.Now().UTC()
	p.mu.Unlock()

	return processed, failed
}

// Stop requests the poll loop to exit. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Metrics returns a snapshot of the poller counters.
func (p *Poller) Metrics() Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}

func (p *Poller) stopped() bool {
	select {
	case <-p.stopCh:
		return true
	default:
		return false
	}
}
