// Package notify formats opportunity briefs as channel messages and
// delivers them through a tool-execution service, or a local simulation
// when unconfigured.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/hunter/internal/analyzer"
	"github.com/ternarybob/hunter/internal/config"
	"github.com/ternarybob/hunter/internal/logger"
)

// ErrDeliveryFailed tags notification failures surfaced to the pipeline.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Outcome reports one delivery attempt. Failures are carried in the value,
// never raised: the pipeline's retry policy is the recovery mechanism.
type Outcome struct {
	Success     bool   `json:"success"`
	CompanyName string `json:"company_name"`
	Channel     string `json:"channel"`
	MessageID   string `json:"message_id,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Notifier posts opportunity briefs to a chat channel.
type Notifier struct {
	sender  Sender
	channel string
}

// New creates a Notifier. The delivery variant is chosen once here: a real
// tool-execution sender when credentials and a tool id are configured,
// otherwise the local simulation.
func New(cfg config.NotifyConfig) *Notifier {
	log := logger.GetLogger()

	var sender Sender
	if cfg.APIKey != "" && cfg.ToolID != "" {
		sender = newToolSender(cfg.BaseURL, cfg.APIKey, cfg.ToolID, time.Duration(cfg.TimeoutSeconds)*time.Second)
		log.Info().Str("tool_id", cfg.ToolID).Msg("Tool-execution sender initialized")
	} else {
		sender = &simSender{}
		log.Warn().Msg("Tool execution not configured - using simulated delivery")
	}

	return &Notifier{sender: sender, channel: cfg.Channel}
}

// NewWithSender creates a Notifier with an explicit sender. Used by tests.
func NewWithSender(sender Sender, channel string) *Notifier {
	return &Notifier{sender: sender, channel: channel}
}

// SenderName returns the active delivery variant.
func (n *Notifier) SenderName() string {
	return n.sender.Name()
}

// Notify formats and delivers an opportunity brief. A delivery failure is
// returned as a failed Outcome with the error string populated.
func (n *Notifier) Notify(ctx context.Context, brief analyzer.Brief) Outcome {
	log := logger.GetLogger()
	log.Info().Str("company", brief.CompanyName).Str("channel", n.channel).Msg("Posting opportunity brief")

	msg := buildMessage(n.channel, brief)

	result, err := n.sender.Post(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("company", brief.CompanyName).Msg("Delivery failed")
		return Outcome{
			Success:     false,
			CompanyName: brief.CompanyName,
			Channel:     n.channel,
			Error:       err.Error(),
		}
	}

	log.Info().Str("company", brief.CompanyName).Str("message_id", result.MessageID).Msg("Opportunity brief posted")
	return Outcome{
		Success:     true,
		CompanyName: brief.CompanyName,
		Channel:     n.channel,
		MessageID:   result.MessageID,
		Timestamp:   result.Timestamp,
	}
}

// SendTest delivers a health-probe message.
func (n *Notifier) SendTest(ctx context.Context, text string) Outcome {
	msg := buildTestMessage(n.channel, text)

	result, err := n.sender.Post(ctx, msg)
	if err != nil {
		return Outcome{Success: false, Channel: n.channel, Error: err.Error()}
	}

	return Outcome{
		Success:   true,
		Channel:   n.channel,
		MessageID: result.MessageID,
		Timestamp: result.Timestamp,
	}
}
