package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/events"
	"github.com/spec-kit/resolution-service/internal/orchestrator"
	"github.com/spec-kit/resolution-service/internal/repository"
	apperrors "github.com/spec-kit/resolution-service/pkg/util"
)

// OutcomeAction tags what a conversation turn resulted in.
type OutcomeAction string

const (
	OutcomeResponse         OutcomeAction = "response"
	OutcomeAwaitingHuman    OutcomeAction = "awaiting_human_confirmation"
	OutcomeTransferredHuman OutcomeAction = "transferred_to_human"
	OutcomeHandoff          OutcomeAction = "handoff"
	OutcomeEscalated        OutcomeAction = "escalated"
	OutcomeQueuedForHuman   OutcomeAction = "queued_for_human"
	OutcomeClosed           OutcomeAction = "closed"
)

// TurnOutcome is the result of one respond call.
type TurnOutcome struct {
	Action    OutcomeAction
	Response  string
	AgentID   string
	AgentName string
	NewAgent  string
	Category  domain.Category
}

// AssignResult is the result of an assign call.
type AssignResult struct {
	Category        domain.Category
	BotID           string
	AgentID         string
	AgentName       string
	HumanAssigned   bool
	Queued          bool
	InitialResponse string
}

// TicketProbe is the read-only status of a ticket's current assignment.
type TicketProbe struct {
	TicketID    string
	HasAIBot    bool
	BotID       string
	BotName     string
	BotCategory *domain.Category
}

// TurnLocker serializes turns per ticket.
type TurnLocker interface {
	Acquire(ctx context.Context, ticketID string) (bool, error)
	Release(ctx context.Context, ticketID string)
}

// ResolutionService owns the ticket and assignment lifecycle. Every
// transition suggested by model output passes the safety gate first; the
// service then applies it and records the explanatory messages.
type ResolutionService struct {
	tickets     repository.TicketRepository
	messages    repository.MessageRepository
	agents      repository.AgentRepository
	assignments repository.AssignmentRepository
	directory   repository.DirectoryRepository

	triage    *orchestrator.TriageClassifier
	intents   *orchestrator.IntentDetector
	solutions *orchestrator.SolutionGenerator
	collab    *orchestrator.Collaborator
	grounding *orchestrator.ContextBuilder

	style         orchestrator.ResponseStyle
	historyWindow int
	lock          TurnLocker
	dispatcher    events.Dispatcher
	logger        *zap.Logger

	// randIndex implements the uniform-random-among-available selection
	// policy for human agents; replaceable so routing can become
	// load-aware later without touching the state machine.
	randIndex func(n int) int
}

// ResolutionDependencies bundles collaborators for the service.
type ResolutionDependencies struct {
	TicketRepo     repository.TicketRepository
	MessageRepo    repository.MessageRepository
	AgentRepo      repository.AgentRepository
	AssignmentRepo repository.AssignmentRepository
	DirectoryRepo  repository.DirectoryRepository

	Triage    *orchestrator.TriageClassifier
	Intents   *orchestrator.IntentDetector
	Solutions *orchestrator.SolutionGenerator
	Collab    *orchestrator.Collaborator
	Grounding *orchestrator.ContextBuilder

	Style         orchestrator.ResponseStyle
	HistoryWindow int
	TurnLock      TurnLocker
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewResolutionService constructs the service.
func NewResolutionService(deps ResolutionDependencies) *ResolutionService {
	window := deps.HistoryWindow
	if window <= 0 {
		window = 12
	}
	return &ResolutionService{
		tickets:       deps.TicketRepo,
		messages:      deps.MessageRepo,
		agents:        deps.AgentRepo,
		assignments:   deps.AssignmentRepo,
		directory:     deps.DirectoryRepo,
		triage:        deps.Triage,
		intents:       deps.Intents,
		solutions:     deps.Solutions,
		collab:        deps.Collab,
		grounding:     deps.Grounding,
		style:         deps.Style,
		historyWindow: window,
		lock:          deps.TurnLock,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		randIndex:     rand.Intn,
	}
}

// Assign triages an open ticket and creates its first primary assignment.
// Tickets at a location flagged force-human route straight to a technician,
// bypassing triage and bot creation entirely.
func (s *ResolutionService) Assign(ctx context.Context, ticketID string) (*AssignResult, error) {
	release, err := s.acquireTurn(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	defer release()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusOpen {
		return nil, apperrors.NewConflict("ticket already assigned", map[string]any{"status": ticket.Status})
	}

	if ticket.LocationID != nil {
		location, err := s.directory.GetLocation(ctx, *ticket.LocationID)
		if err == nil && location.ForceHumanAgent {
			return s.assignHuman(ctx, ticket)
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	triage := s.triage.Classify(ctx, ticket.Subject, ticket.Description)
	persona := orchestrator.PersonaFor(triage.Category)

	bot, err := s.agents.EnsureBot(ctx, triage.Category, persona.DisplayName, persona.BotEmail)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.startPrimaryAssignment(ctx, ticket.ID, bot.ID); err != nil {
		return nil, err
	}

	ticket.Priority = triage.Urgency
	if err := s.setStatus(ctx, ticket, domain.TicketStatusInProgress); err != nil {
		return nil, err
	}

	greeting := orchestrator.GreetingFor(persona, ticket.Subject, triage.InitialSteps, s.style)
	if err := s.appendAgentMessage(ctx, ticket.ID, bot.ID, greeting); err != nil {
		return nil, err
	}

	s.publishAssigned(ctx, ticket.ID, bot, &triage.Category)
	return &AssignResult{
		Category:        triage.Category,
		BotID:           bot.ID,
		AgentID:         bot.ID,
		AgentName:       bot.Name,
		InitialResponse: greeting,
	}, nil
}

func (s *ResolutionService) assignHuman(ctx context.Context, ticket *domain.Ticket) (*AssignResult, error) {
	ticket.RequiresHumanAgent = true

	human, err := s.pickAvailableHuman(ctx)
	if err != nil {
		return nil, err
	}
	if human == nil {
		if err := s.setStatus(ctx, ticket, domain.TicketStatusEscalated); err != nil {
			return nil, err
		}
		return &AssignResult{Queued: true, InitialResponse: orchestrator.QueuedForHumanNotice}, nil
	}

	if err := s.startPrimaryAssignment(ctx, ticket.ID, human.ID); err != nil {
		return nil, err
	}
	if err := s.setStatus(ctx, ticket, domain.TicketStatusInProgress); err != nil {
		return nil, err
	}

	greeting := fmt.Sprintf("Hi, this is %s. Your site requires on-site support, so I'll be handling this ticket personally. How can I help?", human.Name)
	if err := s.appendAgentMessage(ctx, ticket.ID, human.ID, greeting); err != nil {
		return nil, err
	}

	s.publishAssigned(ctx, ticket.ID, human, nil)
	return &AssignResult{
		AgentID:         human.ID,
		AgentName:       human.Name,
		HumanAssigned:   true,
		InitialResponse: greeting,
	}, nil
}

// Respond processes one user turn: intent detection, safety gating, persona
// response generation and any validated transition.
func (s *ResolutionService) Respond(ctx context.Context, ticketID, userMessage string) (*TurnOutcome, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, apperrors.NewValidationError("userMessage required", nil)
	}

	release, err := s.acquireTurn(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	defer release()

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is closed", map[string]any{"status": ticket.Status})
	}

	assignment, err := s.assignments.GetPrimary(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("ticket has no active assignment", nil)
		}
		return nil, apperrors.MapError(err)
	}
	agent, err := s.agents.GetByID(ctx, assignment.AgentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !agent.IsBot() {
		return nil, apperrors.NewConflict("ticket is with a human agent", map[string]any{"agent_id": agent.ID})
	}

	if err := s.appendContactMessage(ctx, ticket.ID, ticket.ContactID, userMessage); err != nil {
		return nil, err
	}

	history, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	names, err := s.agentNamesFor(ctx, history)
	if err != nil {
		return nil, err
	}
	rendered := orchestrator.RenderHistory(history, names, s.historyWindow)

	intent := s.intents.Detect(ctx, rendered, userMessage)

	switch intent.Kind {
	case orchestrator.IntentCloseTicket:
		if orchestrator.ApproveClose(history, userMessage) {
			return s.closeTicket(ctx, ticket, agent, "")
		}
		// Candidate downgraded: ask instead of acting.
		if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, orchestrator.CloseConfirmationQuestion); err != nil {
			return nil, err
		}
		return &TurnOutcome{Action: OutcomeResponse, Response: orchestrator.CloseConfirmationQuestion}, nil

	case orchestrator.IntentHumanHandoff:
		if !orchestrator.ApproveHandoff(intent) {
			if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, orchestrator.HandoffConfirmationQuestion); err != nil {
				return nil, err
			}
			return &TurnOutcome{Action: OutcomeAwaitingHuman, Response: orchestrator.HandoffConfirmationQuestion}, nil
		}
		return s.escalateToHuman(ctx, ticket, agent, "the user requested a human agent")
	}

	return s.continueTroubleshooting(ctx, ticket, agent, rendered, userMessage, history)
}

func (s *ResolutionService) continueTroubleshooting(ctx context.Context, ticket *domain.Ticket, agent *domain.Agent, rendered, userMessage string, history []domain.Message) (*TurnOutcome, error) {
	persona := orchestrator.PersonaFor(specializationOf(agent))
	issue := ticket.Subject + "\n" + ticket.Description

	var advisory string
	if orchestrator.IsCrossDomain(issue, persona.Category) {
		advisory = s.collab.Advise(ctx, persona.Category, issue)
	}

	raw, err := s.solutions.Generate(ctx, orchestrator.GenerateInput{
		Persona:   persona,
		Ticket:    ticket,
		Grounding: s.grounding.Build(ctx, ticket),
		Advisory:  advisory,
		History:   rendered,
		UserTurn:  userMessage,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	cleaned := orchestrator.Clean(raw)
	marker, ok := orchestrator.ParseMarker(raw)
	if !ok {
		if cleaned == "" {
			cleaned = "Could you tell me a bit more about what you're seeing?"
		}
		if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, cleaned); err != nil {
			return nil, err
		}
		if err := s.setStatus(ctx, ticket, domain.TicketStatusAwaitingCustomer); err != nil {
			return nil, err
		}
		return &TurnOutcome{Action: OutcomeResponse, Response: cleaned}, nil
	}

	switch marker.Kind {
	case orchestrator.MarkerKindEscalate:
		// Persona-judged severity; no extra confirmation required.
		if cleaned != "" {
			if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, cleaned); err != nil {
				return nil, err
			}
		}
		return s.escalateToHuman(ctx, ticket, agent, "the assisting persona judged the issue critical")

	case orchestrator.MarkerKindHandoff:
		return s.handoffToBot(ctx, ticket, agent, marker.Target, cleaned)

	case orchestrator.MarkerKindClose:
		if orchestrator.ApproveClose(history, userMessage) {
			return s.closeTicket(ctx, ticket, agent, cleaned)
		}
		// History does not back the close: strip the marker, ask instead.
		if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, orchestrator.CloseConfirmationQuestion); err != nil {
			return nil, err
		}
		return &TurnOutcome{Action: OutcomeResponse, Response: orchestrator.CloseConfirmationQuestion}, nil
	}

	// Unreachable marker kinds fall back to a plain reply.
	if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, cleaned); err != nil {
		return nil, err
	}
	return &TurnOutcome{Action: OutcomeResponse, Response: cleaned}, nil
}

func (s *ResolutionService) handoffToBot(ctx context.Context, ticket *domain.Ticket, from *domain.Agent, target domain.Category, farewell string) (*TurnOutcome, error) {
	persona := orchestrator.PersonaFor(target)
	bot, err := s.agents.EnsureBot(ctx, target, persona.DisplayName, persona.BotEmail)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if bot.ID == from.ID {
		// Model asked to hand off to the persona already assigned.
		if farewell == "" {
			farewell = "Let's keep going."
		}
		if err := s.appendAgentMessage(ctx, ticket.ID, from.ID, farewell); err != nil {
			return nil, err
		}
		return &TurnOutcome{Action: OutcomeResponse, Response: farewell}, nil
	}

	if farewell == "" {
		farewell = fmt.Sprintf("This looks like a %s issue, so I'm handing you over to a colleague who specializes in it.", target)
	}
	if err := s.appendAgentMessage(ctx, ticket.ID, from.ID, farewell); err != nil {
		return nil, err
	}

	if err := s.switchPrimaryAssignment(ctx, ticket.ID, bot.ID); err != nil {
		return nil, err
	}

	greeting := fmt.Sprintf("Hi, I'm %s. I've read through the conversation so far and I'll take it from here.", persona.DisplayName)
	if err := s.appendAgentMessage(ctx, ticket.ID, bot.ID, greeting); err != nil {
		return nil, err
	}
	if err := s.setStatus(ctx, ticket, domain.TicketStatusInProgress); err != nil {
		return nil, err
	}

	s.publishHandedOff(ctx, ticket.ID, from.ID, bot.ID, &target)
	return &TurnOutcome{
		Action:    OutcomeHandoff,
		Response:  greeting,
		AgentID:   bot.ID,
		AgentName: bot.Name,
		NewAgent:  bot.Name,
		Category:  target,
	}, nil
}

func (s *ResolutionService) escalateToHuman(ctx context.Context, ticket *domain.Ticket, from *domain.Agent, reason string) (*TurnOutcome, error) {
	ticket.RequiresHumanAgent = true

	human, err := s.pickAvailableHuman(ctx)
	if err != nil {
		return nil, err
	}
	if human == nil {
		// No technician free: queue rather than fail the turn.
		if err := s.appendAgentMessage(ctx, ticket.ID, from.ID, orchestrator.QueuedForHumanNotice); err != nil {
			return nil, err
		}
		if err := s.setStatus(ctx, ticket, domain.TicketStatusEscalated); err != nil {
			return nil, err
		}
		s.publishEscalated(ctx, ticket.ID, nil, true, reason)
		return &TurnOutcome{Action: OutcomeQueuedForHuman, Response: orchestrator.QueuedForHumanNotice}, nil
	}

	farewell := fmt.Sprintf("I'm transferring you to %s, one of our technicians, who will take over from here.", human.Name)
	if err := s.appendAgentMessage(ctx, ticket.ID, from.ID, farewell); err != nil {
		return nil, err
	}

	if err := s.switchPrimaryAssignment(ctx, ticket.ID, human.ID); err != nil {
		return nil, err
	}

	greeting := fmt.Sprintf("Hi, this is %s. I've read through the conversation and I'll take it from here.", human.Name)
	if err := s.appendAgentMessage(ctx, ticket.ID, human.ID, greeting); err != nil {
		return nil, err
	}
	if err := s.setStatus(ctx, ticket, domain.TicketStatusEscalated); err != nil {
		return nil, err
	}

	s.publishEscalated(ctx, ticket.ID, &human.ID, false, reason)
	return &TurnOutcome{
		Action:    OutcomeTransferredHuman,
		Response:  greeting,
		AgentID:   human.ID,
		AgentName: human.Name,
	}, nil
}

func (s *ResolutionService) closeTicket(ctx context.Context, ticket *domain.Ticket, agent *domain.Agent, body string) (*TurnOutcome, error) {
	if body == "" {
		body = "Glad we could get this sorted out. I'm closing the ticket now; feel free to open a new one if anything else comes up."
	}
	if err := s.appendAgentMessage(ctx, ticket.ID, agent.ID, body); err != nil {
		return nil, err
	}
	if err := s.setStatus(ctx, ticket, domain.TicketStatusClosed); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketClosed,
		TicketID: ticket.ID,
		Actor:    agentActor(agent.ID),
		Payload:  events.TicketClosedPayload{ClosedByAgentID: agent.ID},
	})
	return &TurnOutcome{Action: OutcomeClosed, Response: body}, nil
}

// Escalate forces a ticket into the escalated state regardless of who holds
// the primary assignment.
func (s *ResolutionService) Escalate(ctx context.Context, ticketID string) error {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status.IsTerminal() {
		return apperrors.NewConflict("ticket is closed", map[string]any{"status": ticket.Status})
	}

	ticket.RequiresHumanAgent = true
	if err := s.setStatus(ctx, ticket, domain.TicketStatusEscalated); err != nil {
		return err
	}

	notice := "This ticket has been escalated. A human technician will review it shortly."
	if assignment, err := s.assignments.GetPrimary(ctx, ticketID); err == nil {
		if err := s.appendAgentMessage(ctx, ticket.ID, assignment.AgentID, notice); err != nil {
			return err
		}
	}

	s.publishEscalated(ctx, ticket.ID, nil, false, "explicit escalate action")
	return nil
}

// Probe reports whether the ticket is currently held by an AI persona.
func (s *ResolutionService) Probe(ctx context.Context, ticketID string) (*TicketProbe, error) {
	if _, err := s.getTicket(ctx, ticketID); err != nil {
		return nil, err
	}

	probe := &TicketProbe{TicketID: ticketID}
	assignment, err := s.assignments.GetPrimary(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return probe, nil
		}
		return nil, apperrors.MapError(err)
	}
	agent, err := s.agents.GetByID(ctx, assignment.AgentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if agent.IsBot() {
		probe.HasAIBot = true
		probe.BotID = agent.ID
		probe.BotName = agent.Name
		probe.BotCategory = agent.Specialization
	}
	return probe, nil
}

// pickAvailableHuman implements the uniform-random-among-available policy.
// A nil result with nil error means nobody is free.
func (s *ResolutionService) pickAvailableHuman(ctx context.Context) (*domain.Agent, error) {
	humans, err := s.agents.ListAvailableHumans(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(humans) == 0 {
		return nil, nil
	}
	return &humans[s.randIndex(len(humans))], nil
}

func (s *ResolutionService) startPrimaryAssignment(ctx context.Context, ticketID, agentID string) error {
	// Conditional end-then-insert keeps the single-primary invariant even
	// if a stale primary row exists.
	if _, err := s.assignments.EndPrimary(ctx, ticketID); err != nil {
		return apperrors.MapError(err)
	}
	assignment := &domain.Assignment{TicketID: ticketID, AgentID: agentID, IsPrimary: true}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ResolutionService) switchPrimaryAssignment(ctx context.Context, ticketID, agentID string) error {
	ended, err := s.assignments.EndPrimary(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if ended == 0 {
		return apperrors.NewConflict("no active assignment to hand off", nil)
	}
	assignment := &domain.Assignment{TicketID: ticketID, AgentID: agentID, IsPrimary: true}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// setStatus applies a status change and keeps the closed_at invariant:
// set if and only if the new status is terminal.
func (s *ResolutionService) setStatus(ctx context.Context, ticket *domain.Ticket, status domain.TicketStatus) error {
	ticket.Status = status
	if status.IsTerminal() {
		now := time.Now()
		ticket.ClosedAt = &now
	} else {
		ticket.ClosedAt = nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ResolutionService) appendAgentMessage(ctx context.Context, ticketID, agentID, body string) error {
	msg := &domain.Message{
		TicketID:   ticketID,
		SenderType: domain.SenderTypeAgent,
		AgentID:    &agentID,
		Body:       strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return apperrors.MapError(err)
	}
	s.publishMessage(ctx, msg)
	return nil
}

func (s *ResolutionService) appendContactMessage(ctx context.Context, ticketID, contactID, body string) error {
	msg := &domain.Message{
		TicketID:   ticketID,
		SenderType: domain.SenderTypeContact,
		ContactID:  &contactID,
		Body:       strings.TrimSpace(body),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return apperrors.MapError(err)
	}
	s.publishMessage(ctx, msg)
	return nil
}

func (s *ResolutionService) agentNamesFor(ctx context.Context, msgs []domain.Message) (map[string]string, error) {
	names := map[string]string{}
	for _, msg := range msgs {
		if msg.AgentID == nil {
			continue
		}
		if _, ok := names[*msg.AgentID]; ok {
			continue
		}
		agent, err := s.agents.GetByID(ctx, *msg.AgentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, apperrors.MapError(err)
		}
		names[agent.ID] = agent.Name
	}
	return names, nil
}

func (s *ResolutionService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *ResolutionService) acquireTurn(ctx context.Context, ticketID string) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}
	ok, err := s.lock.Acquire(ctx, ticketID)
	if err != nil {
		// Lock backend trouble must not take the service down; fall
		// through and rely on the database constraints.
		if s.logger != nil {
			s.logger.Warn("turn lock unavailable", zap.String("ticket_id", ticketID), zap.Error(err))
		}
		return func() {}, nil
	}
	if !ok {
		return nil, apperrors.NewConflict("another turn is already in progress for this ticket", nil)
	}
	return func() { s.lock.Release(ctx, ticketID) }, nil
}

func specializationOf(agent *domain.Agent) domain.Category {
	if agent.Specialization != nil {
		return *agent.Specialization
	}
	return domain.CategoryGeneral
}

func agentActor(agentID string) events.Actor {
	return events.Actor{Type: domain.SenderTypeAgent, AgentID: &agentID}
}

func (s *ResolutionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *ResolutionService) publishAssigned(ctx context.Context, ticketID string, agent *domain.Agent, category *domain.Category) {
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticketID,
		Actor:    agentActor(agent.ID),
		Payload: events.TicketAssignedPayload{
			AgentID:   agent.ID,
			AgentType: agent.Type,
			Category:  category,
		},
	})
}

func (s *ResolutionService) publishHandedOff(ctx context.Context, ticketID, fromID, toID string, category *domain.Category) {
	s.publish(ctx, events.Event{
		Type:     events.EventTicketHandedOff,
		TicketID: ticketID,
		Actor:    agentActor(fromID),
		Payload: events.TicketHandedOffPayload{
			FromAgentID: fromID,
			ToAgentID:   toID,
			ToCategory:  category,
		},
	})
}

func (s *ResolutionService) publishEscalated(ctx context.Context, ticketID string, agentID *string, queued bool, reason string) {
	actor := events.Actor{Type: domain.SenderTypeAgent}
	if agentID != nil {
		actor.AgentID = agentID
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketEscalated,
		TicketID: ticketID,
		Actor:    actor,
		Payload: events.TicketEscalatedPayload{
			AssignedAgentID: agentID,
			Queued:          queued,
			Reason:          reason,
		},
	})
}

func (s *ResolutionService) publishMessage(ctx context.Context, msg *domain.Message) {
	actor := events.Actor{Type: msg.SenderType, AgentID: msg.AgentID, ContactID: msg.ContactID}
	s.publish(ctx, events.Event{
		Type:     events.EventMessageAdded,
		TicketID: msg.TicketID,
		Actor:    actor,
		Payload: events.MessageAddedPayload{
			MessageID:   msg.ID,
			SenderType:  msg.SenderType,
			BodyPreview: preview(msg.Body, 120),
		},
	})
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
