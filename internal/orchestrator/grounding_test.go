package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/resolution-service/internal/domain"
)

type stubDirectory struct {
	org      *domain.Organization
	contact  *domain.Contact
	location *domain.Location
	devices  []domain.Device
	err      error
}

func (s *stubDirectory) GetOrganization(context.Context, string) (*domain.Organization, error) {
	if s.org == nil {
		return nil, s.failure()
	}
	return s.org, nil
}

func (s *stubDirectory) GetContact(context.Context, string) (*domain.Contact, error) {
	if s.contact == nil {
		return nil, s.failure()
	}
	return s.contact, nil
}

func (s *stubDirectory) GetLocation(context.Context, string) (*domain.Location, error) {
	if s.location == nil {
		return nil, s.failure()
	}
	return s.location, nil
}

func (s *stubDirectory) ListDevicesByContact(context.Context, string) ([]domain.Device, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.devices, nil
}

func (s *stubDirectory) failure() error {
	if s.err != nil {
		return s.err
	}
	return errors.New("not found")
}

type stubTickets struct {
	prior []domain.Ticket
	err   error
}

func (s *stubTickets) Create(context.Context, *domain.Ticket) error { return nil }
func (s *stubTickets) Update(context.Context, *domain.Ticket) error { return nil }
func (s *stubTickets) GetByID(context.Context, string) (*domain.Ticket, error) {
	return nil, errors.New("unused")
}
func (s *stubTickets) ListByContact(context.Context, string, int) ([]domain.Ticket, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prior, nil
}

func TestContextBuilderFullBlock(t *testing.T) {
	manager := "Jordan Reyes"
	directory := &stubDirectory{
		org:     &domain.Organization{ID: "org-1", Name: "Acme", AccountManager: &manager},
		contact: &domain.Contact{ID: "contact-1", Name: "Dana", Email: "dana@acme.test"},
		devices: []domain.Device{{Name: "LaserJet 4100", Status: "active"}},
	}
	tickets := &stubTickets{prior: []domain.Ticket{
		{ID: "other", Subject: "VPN drops", Status: domain.TicketStatusClosed},
	}}

	builder := NewContextBuilder(directory, tickets, 5, nil)
	block := builder.Build(context.Background(), &domain.Ticket{ID: "current", ContactID: "contact-1", OrganizationID: "org-1"})

	for _, want := range []string{"Acme", "Jordan Reyes", "Dana", "LaserJet 4100", "VPN drops"} {
		if !strings.Contains(block, want) {
			t.Errorf("grounding block missing %q:\n%s", want, block)
		}
	}
}

func TestContextBuilderOmitsFailedLookups(t *testing.T) {
	directory := &stubDirectory{err: errors.New("db down")}
	tickets := &stubTickets{err: errors.New("db down")}

	builder := NewContextBuilder(directory, tickets, 5, nil)
	block := builder.Build(context.Background(), &domain.Ticket{ID: "current", ContactID: "contact-1", OrganizationID: "org-1"})

	if !strings.HasPrefix(block, "Customer context:") {
		t.Errorf("block must still render its header, got %q", block)
	}
	if strings.Contains(block, "db down") {
		t.Error("lookup errors must never leak into the grounding text")
	}
}

func TestContextBuilderExcludesCurrentTicket(t *testing.T) {
	directory := &stubDirectory{err: errors.New("skip")}
	tickets := &stubTickets{prior: []domain.Ticket{
		{ID: "current", Subject: "Current issue", Status: domain.TicketStatusInProgress},
		{ID: "old", Subject: "Old issue", Status: domain.TicketStatusClosed},
	}}

	builder := NewContextBuilder(directory, tickets, 5, nil)
	block := builder.Build(context.Background(), &domain.Ticket{ID: "current", ContactID: "contact-1"})

	if strings.Contains(block, "Current issue") {
		t.Error("the ticket being resolved must not appear in its own history")
	}
	if !strings.Contains(block, "Old issue") {
		t.Error("prior tickets should appear")
	}
}

func TestContextBuilderCapsPriorTickets(t *testing.T) {
	var prior []domain.Ticket
	for i := 0; i < 10; i++ {
		prior = append(prior, domain.Ticket{ID: string(rune('a' + i)), Subject: "old", Status: domain.TicketStatusClosed})
	}
	directory := &stubDirectory{err: errors.New("skip")}
	builder := NewContextBuilder(directory, &stubTickets{prior: prior}, 3, nil)

	block := builder.Build(context.Background(), &domain.Ticket{ID: "current", ContactID: "contact-1"})
	if got := strings.Count(block, `"old"`); got != 3 {
		t.Errorf("prior ticket lines = %d, want 3", got)
	}
}
