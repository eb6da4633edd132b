package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resolution-service/internal/api/dto"
	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/observability"
	"github.com/spec-kit/resolution-service/internal/service"
	apperrors "github.com/spec-kit/resolution-service/pkg/util"
)

// ResolveHandler exposes the conversational resolution endpoint.
type ResolveHandler struct {
	resolution *service.ResolutionService
	metrics    *observability.Metrics
}

// NewResolveHandler constructs handler.
func NewResolveHandler(resolution *service.ResolutionService, metrics *observability.Metrics) *ResolveHandler {
	return &ResolveHandler{resolution: resolution, metrics: metrics}
}

// Resolve handles POST /resolve, dispatching on the action field.
func (h *ResolveHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticketId required", nil)
	}

	switch req.Action {
	case "assign":
		return h.assign(c, req.TicketID)
	case "respond":
		return h.respond(c, req.TicketID, req.UserMessage)
	case "escalate":
		return h.escalate(c, req.TicketID)
	default:
		return apperrors.NewValidationError("action must be assign, respond or escalate", map[string]any{"action": req.Action})
	}
}

// Assign handles POST /resolve/assign.
func (h *ResolveHandler) Assign(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticketId required", nil)
	}
	return h.assign(c, req.TicketID)
}

// Respond handles POST /resolve/respond.
func (h *ResolveHandler) Respond(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticketId required", nil)
	}
	return h.respond(c, req.TicketID, req.UserMessage)
}

// Escalate handles POST /resolve/escalate.
func (h *ResolveHandler) Escalate(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticketId required", nil)
	}
	return h.escalate(c, req.TicketID)
}

// Probe handles GET /resolve?ticketId=N.
func (h *ResolveHandler) Probe(c *fiber.Ctx) error {
	ticketID := c.Query("ticketId")
	if ticketID == "" {
		return apperrors.NewValidationError("ticketId query parameter required", nil)
	}

	probe, err := h.resolution.Probe(c.UserContext(), ticketID)
	if err != nil {
		return err
	}

	resp := dto.ProbeResponse{TicketID: probe.TicketID, HasAIBot: probe.HasAIBot}
	if probe.HasAIBot {
		resp.BotDetails = &dto.BotDetails{
			ID:       probe.BotID,
			Name:     probe.BotName,
			Category: probe.BotCategory,
		}
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *ResolveHandler) assign(c *fiber.Ctx, ticketID string) error {
	result, err := h.resolution.Assign(c.UserContext(), ticketID)
	if err != nil {
		return err
	}

	h.metrics.RecordTurn("assign")
	resp := dto.AssignResponse{
		TicketID:        ticketID,
		AgentID:         result.AgentID,
		AgentName:       result.AgentName,
		HumanAssigned:   result.HumanAssigned,
		Queued:          result.Queued,
		InitialResponse: result.InitialResponse,
	}
	if result.Category != "" {
		resp.Category = categoryPtr(result.Category)
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *ResolveHandler) respond(c *fiber.Ctx, ticketID, userMessage string) error {
	outcome, err := h.resolution.Respond(c.UserContext(), ticketID, userMessage)
	if err != nil {
		return err
	}

	h.metrics.RecordTurn(string(outcome.Action))
	resp := dto.RespondResponse{
		TicketID:  ticketID,
		Action:    string(outcome.Action),
		Response:  outcome.Response,
		AgentID:   outcome.AgentID,
		AgentName: outcome.AgentName,
		NewAgent:  outcome.NewAgent,
	}
	if outcome.Category != "" {
		resp.Category = categoryPtr(outcome.Category)
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *ResolveHandler) escalate(c *fiber.Ctx, ticketID string) error {
	if err := h.resolution.Escalate(c.UserContext(), ticketID); err != nil {
		return err
	}
	h.metrics.RecordTurn("escalate")
	return c.JSON(fiber.Map{"data": fiber.Map{
		"ticketId": ticketID,
		"action":   "escalated",
	}})
}

func categoryPtr(category domain.Category) *domain.Category {
	return &category
}
