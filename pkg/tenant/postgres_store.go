package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/pg"
)

// PostgresStore persists tenant records in the tenants table, with the
// enforcement metadata held in a single JSONB column. Update writes the
// whole record in one statement, so concurrent administrative actions
// never observe a half-applied mutation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a tenant store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const tenantColumns = "id, name, subdomain, status, tier, trial_ends_at, metadata, created_at, updated_at"

// Get returns the record for the given tenant ID.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+tenantColumns+" FROM tenants WHERE id = $1", id)
	return scanRecord(row)
}

// GetByIdentifier looks a tenant up by ID string or subdomain.
func (s *PostgresStore) GetByIdentifier(ctx context.Context, identifier string) (*Record, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	if id, err := uuid.Parse(identifier); err == nil {
		return s.Get(ctx, id)
	}

	row := s.pool.QueryRow(ctx,
		"SELECT "+tenantColumns+" FROM tenants WHERE subdomain = $1", identifier)
	return scanRecord(row)
}

// Update writes the record back in a single statement.
func (s *PostgresStore) Update(ctx context.Context, record *Record) error {
	if record == nil {
		return ErrTenantNotFound
	}
	if err := record.Validate(); err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return errors.Join(ErrFailedToUpdateTenant, err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE tenants
		SET name = $2, subdomain = $3, status = $4, tier = $5,
		    trial_ends_at = $6, metadata = $7, updated_at = now()
		WHERE id = $1`,
		record.ID, record.Name, record.Subdomain, string(record.Status),
		string(record.Tier), record.TrialEndsAt, metadata)
	if err != nil {
		return errors.Join(ErrFailedToUpdateTenant, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record   Record
		status   string
		tier     string
		metadata []byte
	)

	err := row.Scan(&record.ID, &record.Name, &record.Subdomain, &status, &tier,
		&record.TrialEndsAt, &metadata, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("scan tenant: %w", err)
	}

	record.Status = Status(status)
	record.Tier = catalog.Tier(tier)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
			return nil, fmt.Errorf("decode tenant metadata: %w", err)
		}
	}
	return &record, nil
}
