// Package main provides the entry point for the hunter agent.
//
// hunter watches a shared account store for high-intent sales accounts,
// analyzes each one against a sales playbook knowledge base, and posts an
// opportunity brief to the configured chat channel.
//
// Usage:
//
//	hunter                    Start the agent (default)
//	hunter run                Start the agent
//	hunter once               Run a single poll cycle and exit
//	hunter health             Send a health probe to the notify channel
//	hunter accounts           List accounts in the store
//	hunter reset              Clear the processed flag on all accounts
//	hunter version            Show version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/ternarybob/hunter/internal/agent"
	"github.com/ternarybob/hunter/internal/analyzer"
	"github.com/ternarybob/hunter/internal/api"
	"github.com/ternarybob/hunter/internal/config"
	"github.com/ternarybob/hunter/internal/knowledge"
	"github.com/ternarybob/hunter/internal/logger"
	"github.com/ternarybob/hunter/internal/notify"
	"github.com/ternarybob/hunter/internal/pipeline"
	"github.com/ternarybob/hunter/internal/service"
	"github.com/ternarybob/hunter/internal/store"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	api.SetVersion(version)

	if len(os.Args) < 2 {
		// Default: start the agent
		if err := cmdRun(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	switch os.Args[1] {
	case "run", "start":
		err = cmdRun()
	case "once":
		err = cmdOnce()
	case "health":
		err = cmdHealth()
	case "accounts":
		err = cmdAccounts()
	case "reset":
		err = cmdReset()
	case "version", "-v", "--version":
		cmdVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hunter - High-intent sales account agent

Usage:
  hunter [command]

Commands:
  run           Start the agent (default)
  once          Run a single poll cycle and exit
  health        Send a health probe to the notify channel
  accounts      List accounts in the store
  reset         Clear the processed flag on all accounts
  version       Show version information
  help          Show this help

Environment:
  GEMINI_API_KEY       API key for analysis and embeddings (optional)
  TOOL_EXEC_API_KEY    API key for chat delivery (optional)
  TOOL_EXEC_TOOL_ID    Tool id for chat delivery (optional)

Without the optional keys the agent degrades gracefully: analysis falls
back to a standard playbook and notifications are simulated to the log.

Configuration:
  Config file: hunter.yaml (working directory)

Examples:
  hunter                        Start the agent
  hunter once                   Process pending accounts once
  curl localhost:8430/status    Inspect the running agent`)
}

func cmdVersion() {
	fmt.Printf("hunter version %s\n", version)
}

// bootstrap loads config, wires logging, and builds the component graph
// shared by the long-running and one-shot commands.
func bootstrap() (*config.Config, *store.Store, *analyzer.Analyzer, *notify.Notifier, error) {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger.SetupLogger(cfg)

	st := store.New(cfg.Agent.AccountsPath)
	docs := knowledge.NewLoader(cfg.Agent.KnowledgePath).LoadDocuments()
	a := analyzer.New(cfg.LLM, docs)
	n := notify.New(cfg.Notify)

	printStartupStatus(cfg, a, n)

	return cfg, st, a, n, nil
}

// printStartupStatus reports which integrations are live so a misconfigured
// environment is visible immediately instead of at first delivery.
func printStartupStatus(cfg *config.Config, a *analyzer.Analyzer, n *notify.Notifier) {
	log := logger.GetLogger()

	llmStatus := "not configured (fallback strategy)"
	if cfg.LLM.APIKey != "" {
		llmStatus = "configured (" + cfg.LLM.Model + ")"
	}

	log.Info().Str("version", version).Msg("hunter agent starting")
	log.Info().Str("llm", llmStatus).Msg("Analysis")
	log.Info().Str("sender", n.SenderName()).Str("channel", cfg.Notify.Channel).Msg("Notifications")
	log.Info().Int("documents", a.KnowledgeSize()).Str("path", cfg.Agent.KnowledgePath).Msg("Knowledge base")
	log.Info().
		Str("accounts", cfg.Agent.AccountsPath).
		Int("threshold", cfg.Agent.IntentThreshold).
		Int("poll_seconds", cfg.Agent.PollIntervalSeconds).
		Msg("Account store")
}

func cmdRun() error {
	cfg, st, a, n, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Stop()
	log := logger.GetLogger()

	engine := pipeline.NewEngine(a, n)
	poller := agent.New(st, engine, cfg.Agent)

	// File watcher is best effort: polling alone still covers changes.
	if w, werr := agent.NewWatcher(cfg.Agent.AccountsPath); werr == nil {
		if werr = w.Start(); werr == nil {
			poller.WithWatcher(w)
			defer w.Stop()
		} else {
			log.Warn().Err(werr).Msg("Accounts watcher disabled")
		}
	} else {
		log.Warn().Err(werr).Msg("Accounts watcher disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	if cfg.API.Enabled {
		server := api.NewServer(cfg, st, poller, a, n)
		daemon := service.NewDaemon(cfg)
		if err := daemon.Start(server.Handler()); err != nil {
			return fmt.Errorf("start daemon: %w", err)
		}

		fmt.Printf("hunter v%s started, status API on http://%s/status\n", version, cfg.Address())

		daemon.Wait()
		cancel()
		<-done
	} else {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
			cancel()
			<-done
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		}
	}

	m := poller.Metrics()
	log.Info().
		Int("cycles", m.Cycles).
		Int("processed", m.Processed).
		Int("failed", m.Failed).
		Msg("Agent stopped")

	return nil
}

func cmdOnce() error {
	cfg, st, a, n, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Stop()

	engine := pipeline.NewEngine(a, n)
	poller := agent.New(st, engine, cfg.Agent)

	processed, failed := poller.RunOnce(context.Background())

	fmt.Printf("Cycle complete: %d processed, %d failed\n", processed, failed)
	if failed > 0 {
		return fmt.Errorf("%d account(s) failed", failed)
	}
	return nil
}

func cmdHealth() error {
	_, _, a, n, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Stop()

	engine := pipeline.NewEngine(a, n)

	runID := "health-check-" + uuid.NewString()[:8]
	result := engine.HealthProbe(context.Background(), runID, "GTM agent health check")

	if result.Status != pipeline.StatusHealthy {
		return fmt.Errorf("health probe failed: %s", result.Error)
	}

	fmt.Printf("Health probe delivered (message id %s)\n", result.Notification.MessageID)
	return nil
}

func cmdAccounts() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st := store.New(cfg.Agent.AccountsPath)
	accounts, err := st.Load()
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts in store")
		return nil
	}

	fmt.Printf("%-12s %-28s %-24s %6s  %s\n", "ID", "COMPANY", "INDUSTRY", "SCORE", "STATUS")
	for _, a := range accounts {
		status := "pending"
		if a.Processed {
			status = "processed"
		} else if a.IntentScore >= cfg.Agent.IntentThreshold {
			status = "high-intent"
		}
		fmt.Printf("%-12s %-28s %-24s %6d  %s\n", a.AccountID, a.CompanyName, a.Industry, a.IntentScore, status)
	}
	return nil
}

func cmdReset() error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st := store.New(cfg.Agent.AccountsPath)
	if err := st.ResetProcessed(); err != nil {
		return err
	}

	fmt.Println("Processed flags cleared")
	return nil
}
