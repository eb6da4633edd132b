package domain

import "time"

// MessageSenderType indicates who authored a message. A message has exactly
// one sender: an agent (human or bot) or the requester contact, never both.
type MessageSenderType string

const (
	SenderTypeAgent   MessageSenderType = "AGENT"
	SenderTypeContact MessageSenderType = "CONTACT"
)

// Message is an append-only entry in a ticket's conversation thread,
// strictly ordered by CreatedAt. Messages are never edited or deleted;
// they are the source of truth the safety gate re-reads before approving
// state-mutating transitions.
type Message struct {
	ID         string
	TicketID   string
	SenderType MessageSenderType
	AgentID    *string
	ContactID  *string
	Body       string
	CreatedAt  time.Time
}

// FromAgent reports whether the message was written by an agent.
func (m Message) FromAgent() bool {
	return m.SenderType == SenderTypeAgent
}
