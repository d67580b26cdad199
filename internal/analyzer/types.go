// Package analyzer turns account records into opportunity briefs using a
// retrieval-augmented knowledge base, degrading to deterministic templates
// whenever retrieval or generation is unavailable.
package analyzer

import "time"

// Strategy types classified from industry and context keywords.
const (
	StrategyEnterpriseSecurity    = "enterprise_security"
	StrategySaaSGrowth            = "saas_growth"
	StrategyDigitalTransformation = "enterprise_digital_transformation"
	StrategyGeneralEnterprise     = "general_enterprise"
)

// Urgency labels derived from intent signals.
const (
	UrgencyUrgent = "URGENT (contact within 24 hours)"
	UrgencyHigh   = "HIGH (contact within 48 hours)"
	UrgencyMedium = "MEDIUM (contact within 1 week)"
	UrgencyLow    = "LOW"
)

// Strategy is the classified sales approach for an account.
type Strategy struct {
	Type            string  `json:"strategy_type"`
	Recommendations string  `json:"recommendations"`
	Confidence      float64 `json:"confidence"`
}

// Brief is the structured result of analyzing one account. It is created
// fresh per analysis call and handed straight to the notifier; it is never
// persisted.
type Brief struct {
	AccountID          string    `json:"account_id"`
	CompanyName        string    `json:"company_name"`
	AnalysisTimestamp  time.Time `json:"analysis_timestamp"`
	IntentScore        int       `json:"intent_score"`
	OpportunityBrief   string    `json:"opportunity_brief"`
	RecommendedActions []string  `json:"recommended_actions"`
	UrgencyLevel       string    `json:"urgency_level"`
	SalesStrategy      Strategy  `json:"sales_strategy"`

	// Degraded is set when any internal failure forced a fallback result.
	// Analysis never fails outright; this makes the downgrade observable.
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}
