package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage persists audit events in the audit_log table. Events
// are append-only; there is no update or delete path.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates an audit storage backed by the given
// connection pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const auditColumns = "id, action, entity_type, entity_id, actor_id, description, metadata, created_at"

// Store appends the event to the audit_log table.
func (s *PostgresStorage) Store(ctx context.Context, event Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("encode audit metadata: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO audit_log (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.Action, event.EntityType, event.EntityID,
		event.ActorID, event.Description, metadata, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("store audit event: %w", err)
	}
	return nil
}

// Query returns matching events newest-first.
func (s *PostgresStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	query, args := buildAuditQuery(criteria)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event    Event
			metadata []byte
		)
		err := rows.Scan(&event.ID, &event.Action, &event.EntityType, &event.EntityID,
			&event.ActorID, &event.Description, &metadata, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("decode audit metadata: %w", err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	return events, nil
}

// Count implements StorageCounter with a COUNT pushdown.
func (s *PostgresStorage) Count(ctx context.Context, criteria Criteria) (int64, error) {
	where, args := buildAuditWhere(criteria)

	var count int64
	err := s.pool.QueryRow(ctx, "SELECT count(*) FROM audit_log"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return count, nil
}

func buildAuditQuery(criteria Criteria) (string, []any) {
	where, args := buildAuditWhere(criteria)
	query := "SELECT " + auditColumns + " FROM audit_log" + where

	if criteria.Cursor != "" {
		args = append(args, criteria.Cursor)
		clause := fmt.Sprintf("(created_at, id) < (SELECT created_at, id FROM audit_log WHERE id = $%d)", len(args))
		if where == "" {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	query += " ORDER BY created_at DESC, id DESC"
	if criteria.Limit > 0 {
		args = append(args, criteria.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if criteria.Cursor == "" && criteria.Offset > 0 {
		args = append(args, criteria.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func buildAuditWhere(criteria Criteria) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if criteria.EntityID != "" {
		args = append(args, criteria.EntityID)
		conds = append(conds, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if criteria.Action != "" {
		args = append(args, criteria.Action)
		conds = append(conds, fmt.Sprintf("action = $%d", len(args)))
	}
	if criteria.ActorID != "" {
		args = append(args, criteria.ActorID)
		conds = append(conds, fmt.Sprintf("actor_id = $%d", len(args)))
	}
	if !criteria.Since.IsZero() {
		args = append(args, criteria.Since)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !criteria.Until.IsZero() {
		args = append(args, criteria.Until)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
