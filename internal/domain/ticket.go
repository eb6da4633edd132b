package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen             TicketStatus = "OPEN"
	TicketStatusInProgress       TicketStatus = "IN_PROGRESS"
	TicketStatusAwaitingCustomer TicketStatus = "AWAITING_CUSTOMER"
	TicketStatusEscalated        TicketStatus = "ESCALATED"
	TicketStatusResolved         TicketStatus = "RESOLVED"
	TicketStatusClosed           TicketStatus = "CLOSED"
)

// IsTerminal reports whether a ticket in this status accepts no further turns.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is the aggregate for support requests. ClosedAt is set if and only
// if the status is terminal; the resolution service owns that invariant.
type Ticket struct {
	ID                 string
	ExternalKey        string
	OrganizationID     string
	ContactID          string
	DeviceID           *string
	LocationID         *string
	Subject            string
	Description        string
	Status             TicketStatus
	Priority           TicketPriority
	RequiresHumanAgent bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ClosedAt           *time.Time
}
