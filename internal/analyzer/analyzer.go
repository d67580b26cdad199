package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/hunter/internal/config"
	"github.com/ternarybob/hunter/internal/knowledge"
	"github.com/ternarybob/hunter/internal/logger"
	"github.com/ternarybob/hunter/internal/store"
)

// retrievalTopK is how many playbook documents feed each strategy query.
const retrievalTopK = 3

// Analyzer produces opportunity briefs for account records.
//
// Analyze never fails: every internal error (missing index, query failure,
// generation failure) is converted into a deterministic fallback and
// reported on the brief's Degraded fields. The pipeline's retry policies
// exist for remote-call failures, not to make analysis more accurate.
type Analyzer struct {
	llm   *LLMClient
	index *knowledgeIndex
}

// New builds an Analyzer over the given knowledge documents. A missing or
// empty knowledge base degrades the analyzer rather than failing startup.
func New(cfg config.LLMConfig, docs []knowledge.Document) *Analyzer {
	log := logger.GetLogger()

	llm := NewLLMClient(cfg)
	if llm.IsConfigured() {
		log.Info().Str("model", llm.Model()).Msg("LLM client initialized")
	} else {
		log.Warn().Msg("LLM not configured - analysis will degrade to templates")
	}

	a := &Analyzer{llm: llm}

	if len(docs) == 0 {
		log.Warn().Msg("No knowledge documents - retrieval disabled")
		return a
	}

	index, err := newKnowledgeIndex(context.Background(), llm, docs)
	if err != nil {
		log.Warn().Err(err).Msg("Knowledge index unavailable - retrieval disabled")
		return a
	}

	a.index = index
	log.Info().Int("documents", index.Size()).Msg("Knowledge base indexed")
	return a
}

// KnowledgeSize returns the number of indexed playbook documents.
func (a *Analyzer) KnowledgeSize() int {
	return a.index.Size()
}

// Analyze produces an opportunity brief for one account. It never returns
// an error; degenerate input yields a well-formed brief built on defaults.
func (a *Analyzer) Analyze(ctx context.Context, acct store.Account) Brief {
	log := logger.GetLogger()
	log.Info().Str("company", acct.CompanyName).Msg("Analyzing account")

	contextText := buildContext(acct)
	strategy, degradedReason := a.salesStrategy(ctx, contextText, acct.Industry)

	brief := Brief{
		AccountID:          acct.AccountID,
		CompanyName:        acct.CompanyName,
		AnalysisTimestamp:  time.Now().UTC(),
		IntentScore:        acct.IntentScore,
		OpportunityBrief:   formatBrief(acct, strategy),
		RecommendedActions: recommendedActions(),
		UrgencyLevel:       CalculateUrgency(acct.IntentSignals),
		SalesStrategy:      strategy,
	}

	if degradedReason != "" {
		brief.Degraded = true
		brief.DegradedReason = degradedReason
		log.Warn().Str("company", acct.CompanyName).Str("reason", degradedReason).Msg("Analysis degraded to fallback strategy")
	} else {
		log.Info().Str("company", acct.CompanyName).Str("strategy", strategy.Type).Msg("Analysis completed")
	}

	return brief
}

// salesStrategy queries the knowledge base for strategy recommendations.
// On any failure it returns the fallback strategy plus the reason.
func (a *Analyzer) salesStrategy(ctx context.Context, contextText, industry string) (Strategy, string) {
	if a.index == nil || a.index.Size() == 0 {
		return fallbackStrategy(industry), "knowledge index unavailable"
	}

	query := strategyQuery(contextText)

	excerpts, err := a.index.Query(ctx, query, retrievalTopK)
	if err != nil {
		return fallbackStrategy(industry), fmt.Sprintf("retrieval failed: %v", err)
	}

	recommendations, err := a.generateRecommendations(ctx, query, excerpts)
	if err != nil {
		return fallbackStrategy(industry), fmt.Sprintf("generation failed: %v", err)
	}

	return Strategy{
		Type:            DetermineStrategyType(industry, contextText),
		Recommendations: recommendations,
		Confidence:      0.85,
	}, ""
}

// generateRecommendations asks the LLM to narrate a strategy from the
// retrieved playbook excerpts.
func (a *Analyzer) generateRecommendations(ctx context.Context, query string, excerpts []string) (string, error) {
	if !a.llm.IsConfigured() {
		return "", fmt.Errorf("LLM not configured")
	}

	prompt := fmt.Sprintf("%s\n\nRelevant playbook material:\n\n%s", query, strings.Join(excerpts, "\n\n---\n\n"))
	return a.llm.Generate(ctx, prompt)
}

// strategyQuery is the retrieval/generation prompt built from the profile.
func strategyQuery(contextText string) string {
	return fmt.Sprintf(`Based on this customer profile:
%s

What sales strategy should we use? Include:
1. Best playbook to follow
2. Key value propositions to emphasize
3. Recommended next steps
4. Potential objections to prepare for`, contextText)
}

// fallbackStrategy is the deterministic strategy used whenever retrieval or
// generation is unavailable.
func fallbackStrategy(industry string) Strategy {
	if industry == "" {
		industry = "Unknown"
	}
	return Strategy{
		Type:            StrategyGeneralEnterprise,
		Recommendations: fmt.Sprintf("Follow standard enterprise approach for %s industry", industry),
		Confidence:      0.5,
	}
}
