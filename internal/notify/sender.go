package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/hunter/internal/logger"
)

// simulatedMessageID is reported by the local no-op sender.
const simulatedMessageID = "sim_message_id_123"

// PostResult is what a sender reports for a delivered message.
type PostResult struct {
	MessageID string
	Timestamp string
}

// Sender delivers a channel message. Two variants exist: a real
// tool-execution client and a local log-only simulation, selected once at
// construction from configuration.
type Sender interface {
	Post(ctx context.Context, msg Message) (PostResult, error)
	Name() string
}

// toolSender delivers messages through a tool-execution service.
type toolSender struct {
	baseURL string
	apiKey  string
	toolID  string
	client  *http.Client
}

func newToolSender(baseURL, apiKey, toolID string, timeout time.Duration) *toolSender {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &toolSender{
		baseURL: baseURL,
		apiKey:  apiKey,
		toolID:  toolID,
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *toolSender) Name() string { return "tool-execution" }

// executeRequest is the tool-execution service call body.
type executeRequest struct {
	ToolID string        `json:"tool_id"`
	Inputs executeInputs `json:"inputs"`
}

type executeInputs struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
	Blocks  string `json:"blocks,omitempty"`
}

// executeResponse is the tool-execution service reply.
type executeResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
}

func (t *toolSender) Post(ctx context.Context, msg Message) (PostResult, error) {
	blocks, err := json.Marshal(msg.Blocks)
	if err != nil {
		return PostResult{}, fmt.Errorf("marshal blocks: %w", err)
	}

	reqBody := executeRequest{
		ToolID: t.toolID,
		Inputs: executeInputs{
			Channel: msg.Channel,
			Text:    msg.Text,
			Blocks:  string(blocks),
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return PostResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := t.baseURL + "/v1/tools/execute"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return PostResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return PostResult{}, fmt.Errorf("execute tool: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PostResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return PostResult{}, fmt.Errorf("tool execution error %d: %s", resp.StatusCode, string(body))
	}

	var execResp executeResponse
	if err := json.Unmarshal(body, &execResp); err != nil {
		return PostResult{}, fmt.Errorf("unmarshal response: %w", err)
	}

	return PostResult{MessageID: execResp.ID, Timestamp: execResp.Timestamp}, nil
}

// simSender logs the message locally and always reports success. Used when
// no tool-execution credentials are configured.
type simSender struct{}

func (s *simSender) Name() string { return "simulation" }

func (s *simSender) Post(_ context.Context, msg Message) (PostResult, error) {
	log := logger.GetLogger()
	log.Info().Str("channel", msg.Channel).Msg("=== SIMULATED CHANNEL POST ===")
	log.Info().Msg(msg.Text)
	for _, block := range msg.Blocks {
		if block.Type == "section" && block.Text != nil {
			log.Info().Msg(block.Text.Text)
		}
	}
	log.Info().Msg("=== END SIMULATED CHANNEL POST ===")

	return PostResult{
		MessageID: simulatedMessageID,
		Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
	}, nil
}
