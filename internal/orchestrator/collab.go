package orchestrator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/resolution-service/internal/domain"
	"github.com/spec-kit/resolution-service/internal/llm"
)

// Collaborator solicits short advisory opinions from other personas when an
// issue plausibly spans more than one specialist domain. Advisory text is
// grounding only: it never triggers a transition by itself.
type Collaborator struct {
	client      llm.Client
	maxAdvisors int
	logger      *zap.Logger
}

// NewCollaborator constructs the helper.
func NewCollaborator(client llm.Client, logger *zap.Logger) *Collaborator {
	return &Collaborator{client: client, maxAdvisors: 2, logger: logger}
}

// categoryKeywords is the cheap cross-domain heuristic: keyword overlap per
// specialist domain.
var categoryKeywords = map[domain.Category][]string{
	domain.CategoryEmail:    {"email", "mail", "outlook", "mailbox", "smtp", "imap", "calendar"},
	domain.CategoryNetwork:  {"network", "wifi", "wi-fi", "vpn", "internet", "dns", "ethernet", "router"},
	domain.CategoryComputer: {"computer", "laptop", "desktop", "pc", "windows", "macos", "boot", "blue screen"},
	domain.CategoryPrinter:  {"printer", "print", "scan", "scanner", "toner", "paper jam"},
	domain.CategoryPhone:    {"phone", "voicemail", "softphone", "headset", "dial", "call"},
	domain.CategorySecurity: {"password", "locked out", "lockout", "phishing", "virus", "malware", "mfa", "2fa"},
}

// MatchedDomains returns the specialist domains whose keywords appear in
// the issue text, in a stable order.
func MatchedDomains(text string) []domain.Category {
	lowered := strings.ToLower(text)
	var matched []domain.Category
	for _, category := range domain.AllCategories {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(lowered, kw) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}

// IsCrossDomain reports whether the issue touches a domain beyond the
// primary persona's.
func IsCrossDomain(text string, primary domain.Category) bool {
	for _, category := range MatchedDomains(text) {
		if category != primary {
			return true
		}
	}
	return false
}

// Advise collects one short opinion per secondary domain, capped. Failures
// degrade to an empty advisory: collaboration is optional grounding, not a
// reason to fail a turn.
func (c *Collaborator) Advise(ctx context.Context, primary domain.Category, issue string) string {
	var notes []string
	for _, category := range MatchedDomains(issue) {
		if category == primary {
			continue
		}
		if len(notes) >= c.maxAdvisors {
			break
		}
		persona := PersonaFor(category)
		resp, err := c.client.Complete(ctx, llm.Request{
			System: "You are " + persona.DisplayName + ", consulted by a colleague. " +
				"In one or two sentences, give your take on the aspects of this issue that touch your domain (" + persona.Focus + "). " +
				"Plain text only, no markers.",
			Messages:    []llm.Message{{Role: llm.RoleUser, Content: issue}},
			Temperature: 0.2,
			MaxTokens:   200,
		})
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("advisory opinion failed", zap.String("category", string(category)), zap.Error(err))
			}
			continue
		}
		opinion := strings.TrimSpace(Clean(resp.Text))
		if opinion != "" {
			notes = append(notes, "- "+persona.DisplayName+": "+opinion)
		}
	}
	return strings.Join(notes, "\n")
}
