package orchestrator

import (
	"testing"

	"github.com/spec-kit/resolution-service/internal/domain"
)

func agentMsg(body string) domain.Message {
	id := "agent-1"
	return domain.Message{SenderType: domain.SenderTypeAgent, AgentID: &id, Body: body}
}

func contactMsg(body string) domain.Message {
	id := "contact-1"
	return domain.Message{SenderType: domain.SenderTypeContact, ContactID: &id, Body: body}
}

func TestAskedToClose(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"confirmation question", "Glad it works! Would you like me to close this ticket?", true},
		{"alternate phrasing", "Shall I close it?", true},
		{"mark resolved phrasing", "Should I mark this ticket as resolved?", true},
		{"mentions closing without question", "I will close this ticket tomorrow.", false},
		{"question without close phrase", "Did the restart help?", false},
		{"unrelated", "Please try step two.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AskedToClose(tt.body); got != tt.want {
				t.Errorf("AskedToClose(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"yes please", true},
		{"Yeah, that fixed it", true},
		{"ok", true},
		{"go ahead", true},
		{"sounds good to me", true},
		{"no, it still fails", false},
		{"not yet", false},
		{"what does that mean", false},
		// "yes" must be a whole word, not a substring.
		{"the eyes test failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := IsAffirmative(tt.message); got != tt.want {
				t.Errorf("IsAffirmative(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestApproveClose(t *testing.T) {
	asked := []domain.Message{
		contactMsg("it works now"),
		agentMsg("Glad to hear it. Would you like me to close this ticket?"),
	}
	notAsked := []domain.Message{
		contactMsg("it works now"),
		agentMsg("Great. Anything else I can help with?"),
	}

	tests := []struct {
		name        string
		history     []domain.Message
		userMessage string
		want        bool
	}{
		{"asked and affirmed", asked, "yes, go ahead", true},
		{"asked and close wording", asked, "please close it", true},
		{"asked but declined", asked, "no, one more thing", false},
		{"not asked, affirmative anyway", notAsked, "yes", false},
		{"not asked, close wording anyway", notAsked, "close the ticket", false},
		{"empty history", nil, "yes", false},
		{"asked but last agent message is older", append(asked, agentMsg("One more idea: check the tray.")), "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApproveClose(tt.history, tt.userMessage); got != tt.want {
				t.Errorf("ApproveClose = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApproveHandoff(t *testing.T) {
	if ApproveHandoff(Intent{Kind: IntentHumanHandoff, HandoffConfirmed: true}) != true {
		t.Error("confirmed handoff should be approved")
	}
	if ApproveHandoff(Intent{Kind: IntentHumanHandoff}) {
		t.Error("unconfirmed handoff must wait for confirmation")
	}
	if ApproveHandoff(Intent{Kind: IntentContinue, HandoffConfirmed: true}) {
		t.Error("non-handoff intent must never approve a handoff")
	}
}
