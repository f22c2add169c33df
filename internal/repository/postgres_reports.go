package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"redviva-data/internal/domain"
)

type PostgresReportsRepository struct {
	db *sql.DB
}

func NewPostgresReportsRepository(db *sql.DB) *PostgresReportsRepository {
	return &PostgresReportsRepository{db: db}
}

var _ ReportsRepository = (*PostgresReportsRepository)(nil)

// InsertReport single atomic insert of a finalized report.
func (r *PostgresReportsRepository) InsertReport(ctx context.Context, report *domain.Report) (string, error) {
	if report.RecipientID == "" {
		return "", fmt.Errorf("recipient_id is required")
	}
	if report.SubmitterID == "" {
		return "", fmt.Errorf("submitter_id is required")
	}

	reportID := report.ReportID
	if reportID == "" {
		reportID = uuid.NewString()
	}

	query := `
		INSERT INTO reports (
			report_id, recipient_id, submitter_id, kind,
			report_date, shift, report_time, answers, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)
		RETURNING report_id::text
	`
	var inserted string
	err := r.db.QueryRowContext(ctx, query,
		reportID,
		report.RecipientID,
		report.SubmitterID,
		string(report.Kind),
		report.ReportDate,
		report.Shift,
		report.ReportTime,
		string(report.Answers),
		report.Notes,
	).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}
	return inserted, nil
}

const reportColumns = `
	report_id::text,
	recipient_id::text,
	submitter_id::text,
	kind,
	to_char(report_date, 'YYYY-MM-DD') as report_date,
	shift,
	report_time,
	answers::text,
	COALESCE(notes, '') as notes,
	created_at
`

func scanReport(row interface{ Scan(...any) error }) (*domain.Report, error) {
	var rep domain.Report
	var kindRaw, answersRaw string
	err := row.Scan(
		&rep.ReportID,
		&rep.RecipientID,
		&rep.SubmitterID,
		&kindRaw,
		&rep.ReportDate,
		&rep.Shift,
		&rep.ReportTime,
		&answersRaw,
		&rep.Notes,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParseReportKind(kindRaw)
	if err != nil {
		return nil, err
	}
	rep.Kind = kind
	rep.Answers = []byte(answersRaw)
	return &rep, nil
}

func (r *PostgresReportsRepository) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report_id is required")
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE report_id = $1`
	rep, err := scanReport(r.db.QueryRowContext(ctx, query, reportID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("report %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return rep, nil
}

func (r *PostgresReportsRepository) ListReports(ctx context.Context, filters ReportFilters, page, size int) ([]*domain.Report, int, error) {
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
	if filters.SubmitterID != "" {
		addCond("submitter_id =", filters.SubmitterID)
	}
	if filters.Kind != "" {
		addCond("kind =", filters.Kind)
	}
	if filters.DateFrom != "" {
		addCond("report_date >=", filters.DateFrom)
	}
	if filters.DateTo != "" {
		addCond("report_date <=", filters.DateTo)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := fmt.Sprintf(
		`SELECT %s FROM reports%s ORDER BY report_date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		reportColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, total, rows.Err()
}
