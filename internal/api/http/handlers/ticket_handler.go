package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resolution-service/internal/api/dto"
	"github.com/spec-kit/resolution-service/internal/service"
	apperrors "github.com/spec-kit/resolution-service/pkg/util"
)

// TicketHandler exposes ticket intake and reads.
type TicketHandler struct {
	tickets *service.TicketService
}

// NewTicketHandler constructs handler.
func NewTicketHandler(tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Create handles POST /tickets.
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.Create(c.UserContext(), service.CreateTicketInput{
		ContactID:   req.ContactID,
		DeviceID:    req.DeviceID,
		LocationID:  req.LocationID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Get handles GET /tickets/:id.
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	ticket, msgs, err := h.tickets.Get(c.UserContext(), ticketID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.TicketDetailResponse{
		Ticket:   dto.FromTicket(ticket),
		Messages: dto.FromMessages(msgs),
	}})
}
