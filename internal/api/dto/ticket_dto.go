package dto

import (
	"time"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ContactID   string  `json:"contactId"`
	DeviceID    *string `json:"deviceId"`
	LocationID  *string `json:"locationId"`
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
}

// TicketResponse describes a ticket.
type TicketResponse struct {
	ID                 string                `json:"id"`
	ExternalKey        string                `json:"externalKey"`
	OrganizationID     string                `json:"organizationId"`
	ContactID          string                `json:"contactId"`
	DeviceID           *string               `json:"deviceId,omitempty"`
	LocationID         *string               `json:"locationId,omitempty"`
	Subject            string                `json:"subject"`
	Description        string                `json:"description"`
	Status             domain.TicketStatus   `json:"status"`
	Priority           domain.TicketPriority `json:"priority"`
	RequiresHumanAgent bool                  `json:"requiresHumanAgent"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	ClosedAt           *time.Time            `json:"closedAt,omitempty"`
}

// MessageResponse describes one thread entry.
type MessageResponse struct {
	ID         string                   `json:"id"`
	SenderType domain.MessageSenderType `json:"senderType"`
	AgentID    *string                  `json:"agentId,omitempty"`
	ContactID  *string                  `json:"contactId,omitempty"`
	Body       string                   `json:"body"`
	CreatedAt  time.Time                `json:"createdAt"`
}

// TicketDetailResponse is a ticket with its conversation thread.
type TicketDetailResponse struct {
	Ticket   TicketResponse    `json:"ticket"`
	Messages []MessageResponse `json:"messages"`
}

// FromTicket maps a domain ticket onto the response shape.
func FromTicket(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                 t.ID,
		ExternalKey:        t.ExternalKey,
		OrganizationID:     t.OrganizationID,
		ContactID:          t.ContactID,
		DeviceID:           t.DeviceID,
		LocationID:         t.LocationID,
		Subject:            t.Subject,
		Description:        t.Description,
		Status:             t.Status,
		Priority:           t.Priority,
		RequiresHumanAgent: t.RequiresHumanAgent,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		ClosedAt:           t.ClosedAt,
	}
}

// FromMessages maps domain messages onto the response shape.
func FromMessages(msgs []domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		result = append(result, MessageResponse{
			ID:         m.ID,
			SenderType: m.SenderType,
			AgentID:    m.AgentID,
			ContactID:  m.ContactID,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
	}
	return result
}
