package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/repository"
)

// ContextBuilder assembles a bounded plain-text grounding block about the
// requester for the model: organization, account manager, registered
// devices and recent ticket history. Lookups that fail or come back empty
// simply omit their lines; grounding must never fail a turn and never
// calls the model itself.
type ContextBuilder struct {
	directory  repository.DirectoryRepository
	tickets    repository.TicketRepository
	maxTickets int
	logger     *zap.Logger
}

// NewContextBuilder constructs the builder.
func NewContextBuilder(directory repository.DirectoryRepository, tickets repository.TicketRepository, maxTickets int, logger *zap.Logger) *ContextBuilder {
	if maxTickets <= 0 {
		maxTickets = 5
	}
	return &ContextBuilder{directory: directory, tickets: tickets, maxTickets: maxTickets, logger: logger}
}

// Build returns the grounding block for a ticket.
func (b *ContextBuilder) Build(ctx context.Context, ticket *domain.Ticket) string {
	var sb strings.Builder
	sb.WriteString("Customer context:\n")

	if org, err := b.directory.GetOrganization(ctx, ticket.OrganizationID); err == nil {
		fmt.Fprintf(&sb, "Organization: %s\n", org.Name)
		if org.AccountManager != nil && *org.AccountManager != "" {
			fmt.Fprintf(&sb, "Account manager: %s\n", *org.AccountManager)
		}
	} else {
		b.debug("organization lookup failed", ticket.ID, err)
	}

	if contact, err := b.directory.GetContact(ctx, ticket.ContactID); err == nil {
		fmt.Fprintf(&sb, "Requester: %s (%s)\n", contact.Name, contact.Email)
	} else {
		b.debug("contact lookup failed", ticket.ID, err)
	}

	if ticket.LocationID != nil {
		if location, err := b.directory.GetLocation(ctx, *ticket.LocationID); err == nil {
			fmt.Fprintf(&sb, "Location: %s\n", location.Name)
		} else {
			b.debug("location lookup failed", ticket.ID, err)
		}
	}

	if devices, err := b.directory.ListDevicesByContact(ctx, ticket.ContactID); err == nil && len(devices) > 0 {
		sb.WriteString("Registered devices:\n")
		for _, device := range devices {
			fmt.Fprintf(&sb, "- %s (%s)\n", device.Name, device.Status)
		}
	} else if err != nil {
		b.debug("device lookup failed", ticket.ID, err)
	}

	if prior, err := b.tickets.ListByContact(ctx, ticket.ContactID, b.maxTickets+1); err == nil {
		var lines []string
		for _, p := range prior {
			if p.ID == ticket.ID {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %q (%s)", p.Subject, p.Status))
			if len(lines) == b.maxTickets {
				break
			}
		}
		if len(lines) > 0 {
			sb.WriteString("Recent tickets:\n")
			sb.WriteString(strings.Join(lines, "\n"))
			sb.WriteString("\n")
		}
	} else {
		b.debug("prior ticket lookup failed", ticket.ID, err)
	}

	return sb.String()
}

func (b *ContextBuilder) debug(msg, ticketID string, err error) {
	if b.logger == nil {
		return
	}
	b.logger.Debug(msg, zap.String("ticket_id", ticketID), zap.Error(err))
}
