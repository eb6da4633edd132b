package dto

import "github.com/spec-kit/resolution-service/internal/domain"

// ResolveRequest is the single-endpoint action payload.
type ResolveRequest struct {
	Action      string `json:"action"`
	TicketID    string `json:"ticketId"`
	UserMessage string `json:"userMessage"`
}

// AssignResponse reports the outcome of assigning a ticket.
type AssignResponse struct {
	TicketID        string           `json:"ticketId"`
	Category        *domain.Category `json:"category,omitempty"`
	AgentID         string           `json:"agentId,omitempty"`
	AgentName       string           `json:"agentName,omitempty"`
	HumanAssigned   bool             `json:"humanAssigned"`
	Queued          bool             `json:"queued"`
	InitialResponse string           `json:"initialResponse"`
}

// RespondResponse reports the outcome of one conversation turn.
type RespondResponse struct {
	TicketID  string           `json:"ticketId"`
	Action    string           `json:"action"`
	Response  string           `json:"response"`
	AgentID   string           `json:"agentId,omitempty"`
	AgentName string           `json:"agentName,omitempty"`
	NewAgent  string           `json:"newAgent,omitempty"`
	Category  *domain.Category `json:"category,omitempty"`
}

// BotDetails describes the persona holding a ticket.
type BotDetails struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category *domain.Category `json:"category,omitempty"`
}

// ProbeResponse answers GET /resolve.
type ProbeResponse struct {
	TicketID   string      `json:"ticketId"`
	HasAIBot   bool        `json:"hasAiBot"`
	BotDetails *BotDetails `json:"botDetails,omitempty"`
}
