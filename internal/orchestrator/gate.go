package orchestrator

import (
	"regexp"
	"strings"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// The safety gate re-derives textual evidence from conversation history
// before any model-suggested transition mutates durable state. Model output
// alone is never trusted for an irreversible action; escalation is the one
// asymmetric exception because a human reviews it next.

// Clarifying questions emitted when a candidate transition is downgraded.
const (
	CloseConfirmationQuestion   = "Would you like me to close this ticket?"
	HandoffConfirmationQuestion = "Just to confirm: would you like me to transfer you to a human technician?"
	QueuedForHumanNotice        = "All of our technicians are currently busy. I've flagged your ticket and a technician will be assigned as soon as one becomes available."
)

var closeQuestionPhrases = []string{
	"close this ticket",
	"close the ticket",
	"close your ticket",
	"close it",
	"mark this ticket as resolved",
	"mark the ticket as resolved",
}

// AskedToClose reports whether an agent message body asked the user a
// close-confirmation question.
func AskedToClose(body string) bool {
	lowered := strings.ToLower(body)
	if !strings.Contains(lowered, "?") {
		return false
	}
	for _, phrase := range closeQuestionPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

var affirmativeWordRe = regexp.MustCompile(`\b(yes|yeah|yep|sure|ok|okay|fine|correct|affirmative)\b`)

var affirmativePhrases = []string{
	"go ahead",
	"please do",
	"sounds good",
	"that works",
}

// IsAffirmative reports whether a user message affirms a pending question.
func IsAffirmative(message string) bool {
	lowered := strings.ToLower(message)
	if affirmativeWordRe.MatchString(lowered) {
		return true
	}
	for _, phrase := range affirmativePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// ApproveClose decides whether a close candidate (from the intent detector
// or a close marker) may be applied: the immediately preceding agent message
// must have asked a close-confirmation question AND the current user message
// must affirm, with an affirmative token or explicit close wording. Anything
// less downgrades to asking again.
func ApproveClose(history []domain.Message, userMessage string) bool {
	last := LastAgentMessage(history)
	if last == nil || !AskedToClose(last.Body) {
		return false
	}
	return IsAffirmative(userMessage) || ContainsCloseKeyword(userMessage)
}

// ApproveHandoff decides whether a human-handoff candidate proceeds now.
// Only an explicitly confirmed intent passes; a first request gets exactly
// one confirmation question and the transition waits for the next turn.
func ApproveHandoff(intent Intent) bool {
	return intent.Kind == IntentHumanHandoff && intent.HandoffConfirmed
}
