package orchestrator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/llm"
)

// SolutionGenerator produces the next conversational turn for a persona.
// Its raw output may end with a control marker; callers run the marker
// through the safety gate and strip it before persisting anything.
type SolutionGenerator struct {
	client llm.Client
	style  ResponseStyle
	logger *zap.Logger
}

// NewSolutionGenerator constructs the generator.
func NewSolutionGenerator(client llm.Client, style ResponseStyle, logger *zap.Logger) *SolutionGenerator {
	return &SolutionGenerator{client: client, style: style, logger: logger}
}

// GenerateInput bundles everything a persona turn is grounded on.
type GenerateInput struct {
	Persona   Persona
	Ticket    *domain.Ticket
	Grounding string
	Advisory  string
	History   string
	UserTurn  string
}

// Generate calls the model once and returns its raw text, markers included.
func (g *SolutionGenerator) Generate(ctx context.Context, input GenerateInput) (string, error) {
	system := input.Persona.SystemPrompt(g.style)
	if input.Grounding != "" {
		system += "\n" + input.Grounding
	}
	if input.Advisory != "" {
		system += "\nAdvisory notes from other specialists:\n" + input.Advisory
	}

	var user strings.Builder
	user.WriteString("Ticket: " + input.Ticket.Subject + "\n")
	user.WriteString(input.Ticket.Description + "\n\n")
	if input.History != "" {
		user.WriteString("Conversation so far:\n" + input.History + "\n\n")
	}
	user.WriteString("Latest user message:\n" + input.UserTurn + "\n\nReply to the user.")

	resp, err := g.client.Complete(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user.String()}},
		Temperature: 0.4,
	})
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("solution generation failed", zap.String("ticket_id", input.Ticket.ID), zap.Error(err))
		}
		return "", err
	}
	return resp.Text, nil
}
