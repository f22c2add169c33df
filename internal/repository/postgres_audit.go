package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"redviva-data/internal/domain"
)

type PostgresAuditRepository struct {
	db *sql.DB
}

func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

var _ AuditRepository = (*PostgresAuditRepository)(nil)

func (r *PostgresAuditRepository) InsertEntry(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ActorID == "" || entry.Action == "" {
		return fmt.Errorf("actor_id and action are required")
	}

	entryID := entry.EntryID
	if entryID == "" {
		entryID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (entry_id, actor_id, actor_role, action, entity_type, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entryID,
		entry.ActorID,
		string(entry.ActorRole),
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *PostgresAuditRepository) ListEntries(ctx context.Context, filters AuditFilters, page, size int) ([]*domain.AuditEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}

	where := ""
	args := []any{}
	addCond := func(cond string, val any) {
		args = append(args, val)
		if where == "" {
			where = fmt.Sprintf(" WHERE %s $%d", cond, len(args))
		} else {
			where += fmt.Sprintf(" AND %s $%d", cond, len(args))
		}
	}
	if filters.ActorID != "" {
		addCond("actor_id =", filters.ActorID)
	}
	if filters.EntityType != "" {
		addCond("entity_type =", filters.EntityType)
	}
	if filters.EntityID != "" {
		addCond("entity_id =", filters.EntityID)
	}
	if filters.Action != "" {
		addCond("action =", filters.Action)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := fmt.Sprintf(
		`SELECT
			entry_id::text, actor_id::text, actor_role, action,
			entity_type, entity_id::text, COALESCE(detail, '') as detail, created_at
		 FROM audit_log%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var roleRaw string
		if err := rows.Scan(
			&e.EntryID, &e.ActorID, &roleRaw, &e.Action,
			&e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.ActorRole = domain.Role(roleRaw)
		entries = append(entries, &e)
	}
	return entries, total, rows.Err()
}
