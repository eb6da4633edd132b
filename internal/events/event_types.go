package events

import (
	"time"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketAssigned  EventType = "ticket_assigned"
	EventTicketHandedOff EventType = "ticket_handed_off"
	EventTicketEscalated EventType = "ticket_escalated"
	EventTicketClosed    EventType = "ticket_closed"
	EventMessageAdded    EventType = "message_added"
)

// Actor encapsulates who caused an event.
type Actor struct {
	Type      domain.MessageSenderType `json:"type"`
	AgentID   *string                  `json:"agent_id,omitempty"`
	ContactID *string                  `json:"contact_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AgentID   string           `json:"agent_id"`
	AgentType domain.AgentType `json:"agent_type"`
	Category  *domain.Category `json:"category,omitempty"`
}

// TicketHandedOffPayload payload.
type TicketHandedOffPayload struct {
	FromAgentID string           `json:"from_agent_id"`
	ToAgentID   string           `json:"to_agent_id"`
	ToCategory  *domain.Category `json:"to_category,omitempty"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	AssignedAgentID *string `json:"assigned_agent_id,omitempty"`
	Queued          bool    `json:"queued"`
	Reason          string  `json:"reason,omitempty"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	ClosedByAgentID string `json:"closed_by_agent_id"`
}

// MessageAddedPayload payload.
type MessageAddedPayload struct {
	MessageID   string                   `json:"message_id"`
	SenderType  domain.MessageSenderType `json:"sender_type"`
	BodyPreview string                   `json:"body_preview"`
}
