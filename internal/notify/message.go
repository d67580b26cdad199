package notify

import (
	"fmt"

	"github.com/ternarybob/hunter/internal/analyzer"
)

// Message is a channel payload: plain text plus structured blocks.
type Message struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Block is one element of the structured payload (Slack block layout).
type Block struct {
	Type     string    `json:"type"`
	Text     *Text     `json:"text,omitempty"`
	Fields   []Text    `json:"fields,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// Text is a typed text fragment inside a block.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Element is an interactive element, currently always a button.
type Element struct {
	Type  string `json:"type"`
	Text  *Text  `json:"text,omitempty"`
	Style string `json:"style,omitempty"`
	URL   string `json:"url,omitempty"`
}

// buildMessage formats an opportunity brief as a channel message: header,
// brief body, two-field summary, and fixed action buttons.
func buildMessage(channel string, brief analyzer.Brief) Message {
	blocks := []Block{
		{
			Type: "header",
			Text: &Text{Type: "plain_text", Text: fmt.Sprintf("New High-Intent Opportunity: %s", brief.CompanyName)},
		},
		{
			Type: "section",
			Text: &Text{Type: "mrkdwn", Text: brief.OpportunityBrief},
		},
		{
			Type: "section",
			Fields: []Text{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Intent Score:*\n%d/100", brief.IntentScore)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Urgency:*\n%s", brief.UrgencyLevel)},
			},
		},
		{
			Type: "actions",
			Elements: []Element{
				{Type: "button", Text: &Text{Type: "plain_text", Text: "Schedule Call"}, Style: "primary", URL: "https://calendly.com/sales-team"},
				{Type: "button", Text: &Text{Type: "plain_text", Text: "View Full Analysis"}, URL: "https://crm.company.com/analysis"},
				{Type: "button", Text: &Text{Type: "plain_text", Text: "Send Follow-up"}},
			},
		},
	}

	return Message{
		Channel: channel,
		Text:    fmt.Sprintf("New opportunity: %s (Intent: %d/100)", brief.CompanyName, brief.IntentScore),
		Blocks:  blocks,
	}
}

// buildTestMessage formats a health-probe message.
func buildTestMessage(channel, text string) Message {
	return Message{
		Channel: channel,
		Text:    fmt.Sprintf("Test message from GTM agent: %s", text),
		Blocks: []Block{
			{
				Type: "section",
				Text: &Text{Type: "mrkdwn", Text: fmt.Sprintf("*Test Message:* %s\n\nChannel integration is working.", text)},
			},
		},
	}
}
