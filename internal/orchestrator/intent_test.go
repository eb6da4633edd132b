package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/resolution-service/internal/llm"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name          string
		resp          *llm.Response
		err           error
		userMessage   string
		wantKind      IntentKind
		wantConfirmed bool
	}{
		{
			name:        "continue verdict",
			resp:        toolResponse(string(IntentContinue), `{}`),
			userMessage: "the restart did not help",
			wantKind:    IntentContinue,
		},
		{
			name:        "close verdict with keyword",
			resp:        toolResponse(string(IntentCloseTicket), `{}`),
			userMessage: "works now, please close the ticket",
			wantKind:    IntentCloseTicket,
		},
		{
			name:        "close verdict without keyword downgraded",
			resp:        toolResponse(string(IntentCloseTicket), `{}`),
			userMessage: "thanks, everything works",
			wantKind:    IntentContinue,
		},
		{
			name:          "handoff confirmed",
			resp:          toolResponse(string(IntentHumanHandoff), `{"confirmed":true}`),
			userMessage:   "yes, a human please",
			wantKind:      IntentHumanHandoff,
			wantConfirmed: true,
		},
		{
			name:        "handoff first request",
			resp:        toolResponse(string(IntentHumanHandoff), `{"confirmed":false}`),
			userMessage: "can I talk to a person",
			wantKind:    IntentHumanHandoff,
		},
		{
			name:        "handoff arguments unparseable",
			resp:        toolResponse(string(IntentHumanHandoff), `{"confirmed":`),
			userMessage: "human please",
			wantKind:    IntentContinue,
		},
		{
			name:        "transport error",
			err:         errors.New("connection reset"),
			userMessage: "close the ticket",
			wantKind:    IntentContinue,
		},
		{
			name:        "no tool call",
			resp:        textResponse("I think we should continue"),
			userMessage: "close it",
			wantKind:    IntentContinue,
		},
		{
			name: "multiple tool calls",
			resp: &llm.Response{ToolCalls: []llm.ToolCall{
				{Name: string(IntentCloseTicket)},
				{Name: string(IntentContinue)},
			}},
			userMessage: "close it",
			wantKind:    IntentContinue,
		},
		{
			name:        "unknown tool name",
			resp:        toolResponse("reopen_ticket", `{}`),
			userMessage: "close it",
			wantKind:    IntentContinue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewIntentDetector(&stubClient{resp: tt.resp, err: tt.err}, nil)
			intent := detector.Detect(context.Background(), "Agent: hello", tt.userMessage)
			if intent.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", intent.Kind, tt.wantKind)
			}
			if intent.HandoffConfirmed != tt.wantConfirmed {
				t.Errorf("confirmed = %v, want %v", intent.HandoffConfirmed, tt.wantConfirmed)
			}
		})
	}
}

func TestDetectForcesToolChoice(t *testing.T) {
	var captured llm.Request
	client := &stubClient{fn: func(req llm.Request) (*llm.Response, error) {
		captured = req
		return toolResponse(string(IntentContinue), `{}`), nil
	}}

	NewIntentDetector(client, nil).Detect(context.Background(), "", "hello")

	if !captured.ForceTool {
		t.Error("intent detection must force a tool call")
	}
	if len(captured.Tools) != 3 {
		t.Errorf("tool count = %d, want 3", len(captured.Tools))
	}
}

func TestContainsCloseKeyword(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"please close the ticket", true},
		{"you can shut it", true},
		{"mark as resolved", true},
		{"end the ticket now", true},
		{"everything works, thanks", false},
		{"can you enclose a screenshot", true}, // substring match is deliberate
	}
	for _, tt := range tests {
		if got := ContainsCloseKeyword(tt.message); got != tt.want {
			t.Errorf("ContainsCloseKeyword(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
