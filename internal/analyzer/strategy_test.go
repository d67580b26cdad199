package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/hunter/internal/store"
)

func TestDetermineStrategyType(t *testing.T) {
	tests := []struct {
		name     string
		industry string
		context  string
		want     string
	}{
		{"financial industry", "Financial Services", "", StrategyEnterpriseSecurity},
		{"security in context", "Retail", "needs security review", StrategyEnterpriseSecurity},
		{"saas industry", "SaaS", "", StrategySaaSGrowth},
		{"startup in context", "Retail", "fast-moving startup", StrategySaaSGrowth},
		{"manufacturing industry", "Manufacturing", "", StrategyDigitalTransformation},
		{"enterprise in context", "Retail", "large enterprise deployment", StrategyDigitalTransformation},
		{"no match", "Retail", "nothing special", StrategyGeneralEnterprise},
		{"empty input", "", "", StrategyGeneralEnterprise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineStrategyType(tt.industry, tt.context))
		})
	}
}

func TestDetermineStrategyType_FirstMatchWins(t *testing.T) {
	// Financial Services would also match "startup" and "enterprise" text,
	// but the security branch is checked first.
	got := DetermineStrategyType("Financial Services", "enterprise startup security")
	assert.Equal(t, StrategyEnterpriseSecurity, got)

	// SaaS beats the enterprise branch when both keywords appear.
	got = DetermineStrategyType("SaaS", "enterprise deployment")
	assert.Equal(t, StrategySaaSGrowth, got)
}

func TestCalculateUrgency(t *testing.T) {
	pricing := store.IntentSignal{Type: "pricing_page_view"}
	demo := store.IntentSignal{Type: "demo_request"}
	other := store.IntentSignal{Type: "whitepaper_download"}

	tests := []struct {
		name    string
		signals []store.IntentSignal
		want    string
	}{
		{"no signals", nil, UrgencyLow},
		{"one pricing view", []store.IntentSignal{pricing}, UrgencyHigh},
		{"two pricing views", []store.IntentSignal{pricing, pricing}, UrgencyUrgent},
		{"one demo request", []store.IntentSignal{demo}, UrgencyUrgent},
		{"demo plus pricing", []store.IntentSignal{demo, pricing}, UrgencyUrgent},
		{"unrelated signals only", []store.IntentSignal{other, other}, UrgencyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateUrgency(tt.signals))
			// Pure function: repeated calls agree.
			assert.Equal(t, tt.want, CalculateUrgency(tt.signals))
		})
	}
}

func TestIntentLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "VERY HIGH"},
		{90, "VERY HIGH"},
		{85, "HIGH"},
		{75, "MEDIUM-HIGH"},
		{65, "MEDIUM"},
		{59, "LOW"},
		{0, "LOW"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IntentLabel(tt.score), "score %d", tt.score)
	}
}

func TestPrimaryFocus(t *testing.T) {
	assert.Equal(t, "Compliance & Security Operations", PrimaryFocus(StrategyEnterpriseSecurity))
	assert.Equal(t, "Scaling & Engineering Efficiency", PrimaryFocus(StrategySaaSGrowth))
	assert.Equal(t, "Digital Transformation & ROI", PrimaryFocus(StrategyDigitalTransformation))
	assert.Equal(t, "Operational Excellence", PrimaryFocus(StrategyGeneralEnterprise))
	assert.Equal(t, "Custom Enterprise Solution", PrimaryFocus("something_else"))
}

func TestNextActions_StrategySpecificAddition(t *testing.T) {
	assert.Len(t, nextActions(StrategyGeneralEnterprise), 3)
	assert.Len(t, nextActions(StrategyEnterpriseSecurity), 4)
	assert.Contains(t, nextActions(StrategySaaSGrowth)[3], "14-day free trial")
	assert.Contains(t, nextActions(StrategyDigitalTransformation)[3], "executive briefing")
}

func TestBuildContext(t *testing.T) {
	acct := store.Account{
		CompanyName:   "TechFlow",
		Industry:      "SaaS",
		EmployeeCount: 250,
		Revenue:       "$50M",
		IntentScore:   92,
		IntentSignals: []store.IntentSignal{
			{Type: "demo_request", UserTitle: "VP Engineering"},
			{Type: "pricing_page_view"},
		},
	}

	ctx := buildContext(acct)

	assert.Contains(t, ctx, "Company: TechFlow")
	assert.Contains(t, ctx, "Industry: SaaS")
	assert.Contains(t, ctx, "Intent Score: 92/100")
	assert.Contains(t, ctx, "Demo Request by VP Engineering")
	assert.Contains(t, ctx, "Pricing Page View by Unknown Role")
}

func TestSummarizeSignals(t *testing.T) {
	assert.Equal(t, "No recent activity", summarizeSignals(nil))

	signals := []store.IntentSignal{
		{Type: "pricing_page_view"},
		{Type: "demo_request"},
		{Type: "pricing_page_view"},
	}
	assert.Equal(t, "2x Pricing Page View, Demo Request", summarizeSignals(signals))
}
