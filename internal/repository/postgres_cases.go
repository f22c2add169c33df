package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"redviva-data/internal/domain"
)

type PostgresCasesRepository struct {
	db *sql.DB
}

func NewPostgresCasesRepository(db *sql.DB) *PostgresCasesRepository {
	return &PostgresCasesRepository{db: db}
}

var _ CasesRepository = (*PostgresCasesRepository)(nil)

func (r *PostgresCasesRepository) CreateCase(ctx context.Context, c *domain.Case) (string, error) {
	if c.RecipientID == "" {
		return "", fmt.Errorf("recipient_id is required")
	}
	if c.Summary == "" {
		return "", fmt.Errorf("summary is required")
	}

	caseID := c.CaseID
	if caseID == "" {
		caseID = uuid.NewString()
	}
	status := c.Status
	if status == "" {
		status = domain.CaseOpen
	}
	priority := c.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	query := `
		INSERT INTO cases (case_id, recipient_id, assignee_id, status, priority, summary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING case_id::text
	`
	var inserted string
	err := r.db.QueryRowContext(ctx, query,
		caseID, c.RecipientID, c.AssigneeID, string(status), string(priority), c.Summary,
	).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("failed to create case: %w", err)
	}
	return inserted, nil
}

const caseColumns = `
	case_id::text,
	recipient_id::text,
	assignee_id::text,
	status,
	priority,
	summary,
	created_at,
	updated_at
`

func scanCase(row interface{ Scan(...any) error }) (*domain.Case, error) {
	var c domain.Case
	var statusRaw, priorityRaw string
	var assigneeID sql.NullString
	err := row.Scan(
		&c.CaseID,
		&c.RecipientID,
		&assigneeID,
		&statusRaw,
		&priorityRaw,
		&c.Summary,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseCaseStatus(statusRaw)
	if err != nil {
		return nil, err
	}
	c.Status = status

	priority, err := domain.ParseCasePriority(priorityRaw)
	if err != nil {
		return nil, err
	}
	c.Priority = priority

	if assigneeID.Valid {
		c.AssigneeID = &assigneeID.String
	}
	return &c, nil
}

func (r *PostgresCasesRepository) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	if caseID == "" {
		return nil, fmt.Errorf("case_id is required")
	}

	query := `SELECT ` + caseColumns + ` FROM cases WHERE case_id = $1`
	c, err := scanCase(r.db.QueryRowContext(ctx, query, caseID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("case %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return c, nil
}

func (r *PostgresCasesRepository) ListCases(ctx context.Context, filters CaseFilters, page, size int) ([]*domain.Case, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
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
	if filters.RecipientID != "" {
		addCond("recipient_id =", filters.RecipientID)
	}
	if filters.AssigneeID != "" {
		addCond("assignee_id =", filters.AssigneeID)
	}
	if filters.Status != "" {
		addCond("status =", filters.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cases: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := fmt.Sprintf(
		`SELECT %s FROM cases%s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		caseColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []*domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, total, rows.Err()
}

func (r *PostgresCasesRepository) UpdateCase(ctx context.Context, caseID string, upd CaseUpdate) error {
	sets := []string{}
	args := []any{caseID}
	add := func(column string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.Priority != nil {
		add("priority", string(*upd.Priority))
	}
	if upd.AssigneeID != nil {
		add("assignee_id", *upd.AssigneeID)
	}
	if upd.Summary != nil {
		add("summary", *upd.Summary)
	}
	if len(sets) == 0 {
		return fmt.Errorf("nothing to update")
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE cases SET %s WHERE case_id = $1`, strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update case: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("case %w", ErrNotFound)
	}
	return nil
}
