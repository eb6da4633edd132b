package orchestrator

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/resolution-service/internal/llm"
)

// IntentKind classifies what the user's latest message asks for.
type IntentKind string

const (
	IntentContinue     IntentKind = "continue_troubleshooting"
	IntentCloseTicket  IntentKind = "close_ticket"
	IntentHumanHandoff IntentKind = "handoff_to_human_agent"
)

// Intent is the ephemeral classifier output, consumed by the safety gate
// and then discarded.
type Intent struct {
	Kind IntentKind
	// HandoffConfirmed distinguishes a first handoff request (needs a
	// confirmation turn) from an explicit confirmation.
	HandoffConfirmed bool
}

// ContinueIntent is the fail-safe outcome. Broken or ambiguous model output
// must never close a ticket or transfer it, so every failure path lands here.
func ContinueIntent() Intent {
	return Intent{Kind: IntentContinue}
}

// closeKeywords is the textual-evidence half of the close AND-gate: the
// model's close verdict counts only when the raw message also contains one
// of these substrings.
var closeKeywords = []string{
	"close",
	"shut",
	"end ticket",
	"end the ticket",
	"mark as resolved",
	"mark it resolved",
}

// ContainsCloseKeyword reports whether the raw user message carries literal
// close wording.
func ContainsCloseKeyword(message string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range closeKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// IntentDetector classifies the user's latest message into exactly one of
// three intents via a forced tool call.
type IntentDetector struct {
	client llm.Client
	logger *zap.Logger
}

// NewIntentDetector constructs the detector.
func NewIntentDetector(client llm.Client, logger *zap.Logger) *IntentDetector {
	return &IntentDetector{client: client, logger: logger}
}

const intentSystemPrompt = `You read an IT support conversation and the user's latest message, then call exactly one tool:
- continue_troubleshooting: the user reports results, asks questions, or anything ambiguous.
- close_ticket: the user explicitly asks to close, end, or mark the ticket resolved.
- handoff_to_human_agent: the user asks for a human agent. Set confirmed=true only when a previous agent message already asked them to confirm the handoff and this message is that confirmation.
When in doubt, call continue_troubleshooting.`

func intentTools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        string(IntentContinue),
			Description: "Keep troubleshooting with the current agent.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        string(IntentCloseTicket),
			Description: "The user explicitly asked to close the ticket.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        string(IntentHumanHandoff),
			Description: "The user wants a human agent.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"confirmed": map[string]any{
						"type":        "boolean",
						"description": "true only when this message confirms a handoff the agent already asked about",
					},
				},
			},
		},
	}
}

// Detect classifies the latest user message. The AND-gate applies on top of
// the model verdict: a close intent without literal close wording in the raw
// message is downgraded to continue. Every failure mode (transport error,
// timeout, no tool call, unknown tool, bad arguments) also degrades to
// continue, never to a state-mutating intent.
func (d *IntentDetector) Detect(ctx context.Context, history string, userMessage string) Intent {
	resp, err := d.client.Complete(ctx, llm.Request{
		System: intentSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Conversation so far:\n" + history + "\n\nLatest user message:\n" + userMessage},
		},
		Temperature: 0,
		Tools:       intentTools(),
		ForceTool:   true,
	})
	if err != nil {
		d.warn("intent call failed", err)
		return ContinueIntent()
	}
	if len(resp.ToolCalls) != 1 {
		d.warnCount("intent tool call count unexpected", len(resp.ToolCalls))
		return ContinueIntent()
	}

	call := resp.ToolCalls[0]
	switch IntentKind(call.Name) {
	case IntentContinue:
		return ContinueIntent()
	case IntentCloseTicket:
		if !ContainsCloseKeyword(userMessage) {
			return ContinueIntent()
		}
		return Intent{Kind: IntentCloseTicket}
	case IntentHumanHandoff:
		var args struct {
			Confirmed bool `json:"confirmed"`
		}
		if len(call.Arguments) > 0 {
			if err := json.Unmarshal(call.Arguments, &args); err != nil {
				d.warn("handoff arguments unparseable", err)
				return ContinueIntent()
			}
		}
		return Intent{Kind: IntentHumanHandoff, HandoffConfirmed: args.Confirmed}
	default:
		d.warnCount("unknown intent tool", 1)
		return ContinueIntent()
	}
}

func (d *IntentDetector) warn(msg string, err error) {
	if d.logger != nil {
		d.logger.Warn(msg, zap.Error(err))
	}
}

func (d *IntentDetector) warnCount(msg string, n int) {
	if d.logger != nil {
		d.logger.Warn(msg, zap.Int("count", n))
	}
}
