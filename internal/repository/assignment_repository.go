package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// AssignmentRepository manages the ticket-to-agent links. Rows are never
// deleted; ending an assignment stamps ended_at so handoff history survives.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetPrimary(ctx context.Context, ticketID string) (*domain.Assignment, error)
	// EndPrimary is a conditional update keyed on the live primary row,
	// keeping the single-primary invariant under concurrent submission.
	// It returns the number of rows ended (0 when there was none).
	EndPrimary(ctx context.Context, ticketID string) (int64, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Assignment, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (ticket_id, agent_id, is_primary)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		assignment.TicketID,
		assignment.AgentID,
		assignment.IsPrimary,
	).Scan(&assignment.ID, &assignment.CreatedAt)
}

func (r *assignmentRepository) GetPrimary(ctx context.Context, ticketID string) (*domain.Assignment, error) {
	const query = `
        SELECT id, ticket_id, agent_id, is_primary, created_at, ended_at
        FROM assignments WHERE ticket_id=$1 AND is_primary AND ended_at IS NULL`
	var assignment domain.Assignment
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&assignment.ID,
		&assignment.TicketID,
		&assignment.AgentID,
		&assignment.IsPrimary,
		&assignment.CreatedAt,
		&assignment.EndedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) EndPrimary(ctx context.Context, ticketID string) (int64, error) {
	const query = `
        UPDATE assignments SET ended_at=NOW()
        WHERE ticket_id=$1 AND is_primary AND ended_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, ticketID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *assignmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Assignment, error) {
	const query = `
        SELECT id, ticket_id, agent_id, is_primary, created_at, ended_at
        FROM assignments WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.TicketID,
			&assignment.AgentID,
			&assignment.IsPrimary,
			&assignment.CreatedAt,
			&assignment.EndedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}
