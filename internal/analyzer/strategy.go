package analyzer

import (
	"fmt"
	"strings"

	"github.com/ternarybob/hunter/internal/store"
)

// DetermineStrategyType classifies the sales strategy from industry and
// context text. Branches are mutually exclusive and checked in order;
// first match wins, which is the tie-break policy.
func DetermineStrategyType(industry, context string) string {
	industryLower := strings.ToLower(industry)
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(industryLower, "financial") || strings.Contains(contextLower, "security"):
		return StrategyEnterpriseSecurity
	case strings.Contains(industryLower, "saas") || strings.Contains(contextLower, "startup"):
		return StrategySaaSGrowth
	case strings.Contains(contextLower, "enterprise") || strings.Contains(industryLower, "manufacturing"):
		return StrategyDigitalTransformation
	default:
		return StrategyGeneralEnterprise
	}
}

// CalculateUrgency derives the urgency label from the signal-type list.
// Pure function: same signals always yield the same label.
func CalculateUrgency(signals []store.IntentSignal) string {
	if len(signals) == 0 {
		return UrgencyLow
	}

	pricing := 0
	demos := 0
	for _, s := range signals {
		if strings.Contains(s.Type, "pricing") {
			pricing++
		}
		if strings.Contains(s.Type, "demo") {
			demos++
		}
	}

	switch {
	case demos > 0 || pricing >= 2:
		return UrgencyUrgent
	case pricing == 1:
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// IntentLabel maps an intent score to its display band.
func IntentLabel(score int) string {
	switch {
	case score >= 90:
		return "VERY HIGH"
	case score >= 80:
		return "HIGH"
	case score >= 70:
		return "MEDIUM-HIGH"
	case score >= 60:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// PrimaryFocus maps a strategy type to its messaging focus area.
func PrimaryFocus(strategyType string) string {
	switch strategyType {
	case StrategyEnterpriseSecurity:
		return "Compliance & Security Operations"
	case StrategySaaSGrowth:
		return "Scaling & Engineering Efficiency"
	case StrategyDigitalTransformation:
		return "Digital Transformation & ROI"
	case StrategyGeneralEnterprise:
		return "Operational Excellence"
	default:
		return "Custom Enterprise Solution"
	}
}

// nextActions returns the numbered action list for the brief: three fixed
// actions plus one strategy-specific addition when the type is known.
func nextActions(strategyType string) []string {
	actions := []string{
		"1. Schedule discovery call within 24 hours",
		"2. Send relevant case study and ROI calculator",
		"3. Prepare industry-specific demo scenario",
	}

	switch strategyType {
	case StrategyEnterpriseSecurity:
		actions = append(actions, "4. Include compliance gap assessment offer")
	case StrategySaaSGrowth:
		actions = append(actions, "4. Offer 14-day free trial setup")
	case StrategyDigitalTransformation:
		actions = append(actions, "4. Schedule executive briefing session")
	}

	return actions
}

// recommendedActions is the structured action list carried on the brief.
func recommendedActions() []string {
	return []string{
		"Schedule discovery call",
		"Send relevant case studies",
		"Prepare demo environment",
		"Connect with industry references",
		"Develop custom ROI projection",
	}
}

// buildContext renders the account profile as text for retrieval queries.
func buildContext(acct store.Account) string {
	parts := []string{
		fmt.Sprintf("Company: %s", acct.CompanyName),
		fmt.Sprintf("Industry: %s", acct.Industry),
		fmt.Sprintf("Employee Count: %d", acct.EmployeeCount),
		fmt.Sprintf("Revenue: %s", acct.Revenue),
		fmt.Sprintf("Intent Score: %d/100", acct.IntentScore),
	}

	if len(acct.IntentSignals) > 0 {
		parts = append(parts, "", "Recent Activities:")
		for _, signal := range acct.IntentSignals {
			title := signal.UserTitle
			if title == "" {
				title = "Unknown Role"
			}
			parts = append(parts, fmt.Sprintf("- %s by %s", titleCase(signal.Type), title))
		}
	}

	return strings.Join(parts, "\n")
}

// summarizeSignals folds the signal list into a compact display string,
// e.g. "2x Pricing Page View, Demo Request".
func summarizeSignals(signals []store.IntentSignal) string {
	if len(signals) == 0 {
		return "No recent activity"
	}

	counts := make(map[string]int)
	var order []string // first-seen order
	for _, s := range signals {
		name := titleCase(s.Type)
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	var parts []string
	for _, name := range order {
		if counts[name] > 1 {
			parts = append(parts, fmt.Sprintf("%dx %s", counts[name], name))
		} else {
			parts = append(parts, name)
		}
	}

	return strings.Join(parts, ", ")
}

// titleCase turns "pricing_page_view" into "Pricing Page View".
func titleCase(s string) string {
	if s == "" {
		return "Unknown"
	}
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
