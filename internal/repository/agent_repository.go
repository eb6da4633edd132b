package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// AgentRepository manages agent identities, both human technicians and the
// singleton bot persona per category.
type AgentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	GetBotByCategory(ctx context.Context, category domain.Category) (*domain.Agent, error)
	// EnsureBot returns the bot identity for a category, creating it on
	// first use. Safe under concurrent first contact: the insert is
	// ON CONFLICT DO NOTHING and the partial unique index on
	// (specialization) WHERE agent_type='BOT' backstops the race.
	EnsureBot(ctx context.Context, category domain.Category, name, email string) (*domain.Agent, error)
	ListAvailableHumans(ctx context.Context) ([]domain.Agent, error)
	SetAvailability(ctx context.Context, agentID string, available bool) error
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

const agentColumns = `id, name, email, password_hash, agent_type, specialization, available, created_at, updated_at`

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *agentRepository) GetBotByCategory(ctx context.Context, category domain.Category) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE agent_type='BOT' AND specialization=$1`
	return r.fetchSingle(ctx, query, string(category))
}

func (r *agentRepository) EnsureBot(ctx context.Context, category domain.Category, name, email string) (*domain.Agent, error) {
	agent, err := r.GetBotByCategory(ctx, category)
	if err == nil {
		return agent, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	const insert = `
        INSERT INTO agents (name, email, agent_type, specialization, available)
        VALUES ($1,$2,'BOT',$3,TRUE)
        ON CONFLICT DO NOTHING`
	if _, err := r.pool.Exec(ctx, insert, name, email, string(category)); err != nil {
		return nil, err
	}
	return r.GetBotByCategory(ctx, category)
}

func (r *agentRepository) ListAvailableHumans(ctx context.Context) ([]domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE agent_type='HUMAN' AND available ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *agent)
	}
	return result, rows.Err()
}

func (r *agentRepository) SetAvailability(ctx context.Context, agentID string, available bool) error {
	const query = `UPDATE agents SET available=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, available, agentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Agent, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanAgent(row)
}

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var agent domain.Agent
	var specialization *string
	if err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.PasswordHash,
		&agent.Type,
		&specialization,
		&agent.Available,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if specialization != nil {
		cat := domain.Category(*specialization)
		agent.Specialization = &cat
	}
	return &agent, nil
}
