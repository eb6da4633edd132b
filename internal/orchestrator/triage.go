package orchestrator

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/llm"
)

// TriageResult is the ephemeral outcome of classifying a new ticket. It is
// produced once at first assignment and never persisted.
type TriageResult struct {
	Category     domain.Category
	Urgency      domain.TicketPriority
	InitialSteps []string
}

// DefaultTriageResult is the safe fallback when the model output cannot be
// parsed: the general persona, medium urgency, no canned steps.
func DefaultTriageResult() TriageResult {
	return TriageResult{
		Category:     domain.CategoryGeneral,
		Urgency:      domain.TicketPriorityMedium,
		InitialSteps: []string{},
	}
}

// TriageClassifier maps a new ticket's subject and description onto a
// persona category and urgency with one model call.
type TriageClassifier struct {
	client llm.Client
	logger *zap.Logger
}

// NewTriageClassifier constructs the classifier.
func NewTriageClassifier(client llm.Client, logger *zap.Logger) *TriageClassifier {
	return &TriageClassifier{client: client, logger: logger}
}

const triageSystemPrompt = `You classify IT support tickets. Respond with a single JSON object and nothing else:
{"category": "...", "urgency": "...", "initialSteps": ["...", "..."]}
category must be one of: email, network, computer, printer, phone, security, general.
urgency must be one of: low, medium, high, urgent.
initialSteps is up to three short first troubleshooting actions.`

// Classify never returns an error: any malformed model output, transport
// failure or timeout degrades to the safe default.
func (t *TriageClassifier) Classify(ctx context.Context, subject, description string) TriageResult {
	resp, err := t.client.Complete(ctx, llm.Request{
		System: triageSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Subject: " + subject + "\n\n" + description},
		},
		Temperature: 0,
	})
	if err != nil {
		t.warn("triage call failed", err)
		return DefaultTriageResult()
	}
	return parseTriage(resp.Text, t.logger)
}

type triagePayload struct {
	Category     string   `json:"category"`
	Urgency      string   `json:"urgency"`
	InitialSteps []string `json:"initialSteps"`
}

func parseTriage(raw string, logger *zap.Logger) TriageResult {
	var payload triagePayload
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &payload); err != nil {
		if logger != nil {
			logger.Warn("triage output unparseable", zap.String("raw", raw), zap.Error(err))
		}
		return DefaultTriageResult()
	}

	result := DefaultTriageResult()
	category := strings.ToLower(strings.TrimSpace(payload.Category))
	if domain.ValidCategory(category) {
		result.Category = domain.Category(category)
	}
	switch strings.ToLower(strings.TrimSpace(payload.Urgency)) {
	case "low":
		result.Urgency = domain.TicketPriorityLow
	case "medium":
		result.Urgency = domain.TicketPriorityMedium
	case "high":
		result.Urgency = domain.TicketPriorityHigh
	case "urgent":
		result.Urgency = domain.TicketPriorityUrgent
	}
	for _, step := range payload.InitialSteps {
		if step = strings.TrimSpace(step); step != "" {
			result.InitialSteps = append(result.InitialSteps, step)
		}
	}
	return result
}

// extractJSONObject tolerates models that wrap JSON in prose or fences.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return raw
	}
	return raw[start : end+1]
}

func (t *TriageClassifier) warn(msg string, err error) {
	if t.logger != nil {
		t.logger.Warn(msg, zap.Error(err))
	}
}
