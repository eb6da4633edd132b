package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/resolution-service/internal/domain"
)

// DirectoryRepository exposes read-only lookups over the customer directory
// (organizations, contacts, devices, locations) used for grounding context.
type DirectoryRepository interface {
	GetOrganization(ctx context.Context, id string) (*domain.Organization, error)
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	GetLocation(ctx context.Context, id string) (*domain.Location, error)
	ListDevicesByContact(ctx context.Context, contactID string) ([]domain.Device, error)
}

type directoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository instantiates repository.
func NewDirectoryRepository(pool *pgxpool.Pool) DirectoryRepository {
	return &directoryRepository{pool: pool}
}

func (r *directoryRepository) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	const query = `SELECT id, name, account_manager, created_at FROM organizations WHERE id=$1`
	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.AccountManager,
		&org.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *directoryRepository) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	const query = `SELECT id, organization_id, name, email, created_at FROM contacts WHERE id=$1`
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.OrganizationID,
		&contact.Name,
		&contact.Email,
		&contact.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *directoryRepository) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	const query = `SELECT id, organization_id, name, force_human_agent, created_at FROM locations WHERE id=$1`
	var location domain.Location
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&location.ID,
		&location.OrganizationID,
		&location.Name,
		&location.ForceHumanAgent,
		&location.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *directoryRepository) ListDevicesByContact(ctx context.Context, contactID string) ([]domain.Device, error) {
	const query = `SELECT id, contact_id, name, status, created_at FROM devices WHERE contact_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Device
	for rows.Next() {
		var device domain.Device
		if err := rows.Scan(
			&device.ID,
			&device.ContactID,
			&device.Name,
			&device.Status,
			&device.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, device)
	}
	return result, rows.Err()
}
