package analyzer

import (
	"fmt"
	"strings"

	"github.com/ternarybob/hunter/internal/store"
)

// formatBrief renders the human-readable opportunity brief.
func formatBrief(acct store.Account, strategy Strategy) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "OPPORTUNITY BRIEF: %s\n\n", acct.CompanyName)

	fmt.Fprintf(&sb, "Intent Analysis\n")
	fmt.Fprintf(&sb, "- Intent Score: %d/100 (%s)\n", acct.IntentScore, IntentLabel(acct.IntentScore))
	fmt.Fprintf(&sb, "- Key Signals: %s\n\n", summarizeSignals(acct.IntentSignals))

	fmt.Fprintf(&sb, "Company Profile\n")
	fmt.Fprintf(&sb, "- Industry: %s\n", acct.Industry)
	fmt.Fprintf(&sb, "- Size: %d employees\n", acct.EmployeeCount)
	fmt.Fprintf(&sb, "- Revenue: %s\n\n", acct.Revenue)

	fmt.Fprintf(&sb, "Recommended Approach\n")
	fmt.Fprintf(&sb, "- Strategy Type: %s\n", titleCase(strategy.Type))
	fmt.Fprintf(&sb, "- Primary Focus: %s\n\n", PrimaryFocus(strategy.Type))

	fmt.Fprintf(&sb, "Next Actions\n")
	for _, action := range nextActions(strategy.Type) {
		fmt.Fprintf(&sb, "%s\n", action)
	}

	fmt.Fprintf(&sb, "\nUrgency Level: %s\n", CalculateUrgency(acct.IntentSignals))

	return sb.String()
}
