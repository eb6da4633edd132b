package domain

import "time"

// Assignment links a ticket to an agent. Ending an assignment sets EndedAt
// instead of deleting the row so handoff history is preserved. At any
// instant a ticket has at most one assignment with IsPrimary true.
type Assignment struct {
	ID        string
	TicketID  string
	AgentID   string
	IsPrimary bool
	CreatedAt time.Time
	EndedAt   *time.Time
}

// Active reports whether the assignment is still in effect.
func (a Assignment) Active() bool {
	return a.EndedAt == nil
}
