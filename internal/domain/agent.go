package domain

import "time"

// AgentType distinguishes human technicians from AI personas.
type AgentType string

const (
	AgentTypeHuman AgentType = "HUMAN"
	AgentTypeBot   AgentType = "BOT"
)

// Category is the closed set of specialist persona domains. Triage maps
// every ticket into exactly one of these.
type Category string

const (
	CategoryEmail    Category = "email"
	CategoryNetwork  Category = "network"
	CategoryComputer Category = "computer"
	CategoryPrinter  Category = "printer"
	CategoryPhone    Category = "phone"
	CategorySecurity Category = "security"
	CategoryGeneral  Category = "general"
)

// AllCategories lists every valid persona category.
var AllCategories = []Category{
	CategoryEmail,
	CategoryNetwork,
	CategoryComputer,
	CategoryPrinter,
	CategoryPhone,
	CategorySecurity,
	CategoryGeneral,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Agent is a conversation participant identity. Bot agents carry a
// specialization category; at most one bot identity exists per category.
// Availability only matters for human assignment selection.
type Agent struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Type           AgentType
	Specialization *Category
	Available      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsBot reports whether the agent is an AI persona.
func (a Agent) IsBot() bool {
	return a.Type == AgentTypeBot
}
