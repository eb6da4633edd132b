package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/repository"
	apperrors "github.com/spec-kit/resolution-service/pkg/util"
)

// TicketService handles ticket intake and reads. Lifecycle transitions after
// intake belong to the ResolutionService.
type TicketService struct {
	tickets   repository.TicketRepository
	messages  repository.MessageRepository
	directory repository.DirectoryRepository
}

// TicketDependencies encapsulates repo requirements for ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	MessageRepo   repository.MessageRepository
	DirectoryRepo repository.DirectoryRepository
}

// NewTicketService builds the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:   deps.TicketRepo,
		messages:  deps.MessageRepo,
		directory: deps.DirectoryRepo,
	}
}

// CreateTicketInput is the intake payload.
type CreateTicketInput struct {
	ContactID   string
	DeviceID    *string
	LocationID  *string
	Subject     string
	Description string
}

// Create validates the requester and opens a new ticket.
func (s *TicketService) Create(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, apperrors.NewValidationError("subject required", nil)
	}
	if strings.TrimSpace(input.ContactID) == "" {
		return nil, apperrors.NewValidationError("contactId required", nil)
	}

	contact, err := s.directory.GetContact(ctx, input.ContactID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contact", map[string]any{"contact_id": input.ContactID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.LocationID != nil {
		if _, err := s.directory.GetLocation(ctx, *input.LocationID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("location", map[string]any{"location_id": *input.LocationID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	ticket := &domain.Ticket{
		ExternalKey:    uuid.NewString(),
		OrganizationID: contact.OrganizationID,
		ContactID:      contact.ID,
		DeviceID:       input.DeviceID,
		LocationID:     input.LocationID,
		Subject:        strings.TrimSpace(input.Subject),
		Description:    strings.TrimSpace(input.Description),
		Status:         domain.TicketStatusOpen,
		Priority:       domain.TicketPriorityMedium,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// Get returns a ticket with its conversation thread.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, []domain.Message, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	msgs, err := s.messages.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, msgs, nil
}
