package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"redviva-data/internal/domain"
)

type PostgresAlertsRepository struct {
	db *sql.DB
}

func NewPostgresAlertsRepository(db *sql.DB) *PostgresAlertsRepository {
	return &PostgresAlertsRepository{db: db}
}

var _ AlertsRepository = (*PostgresAlertsRepository)(nil)

func (r *PostgresAlertsRepository) InsertAlert(ctx context.Context, alert *domain.Alert) (string, error) {
	if alert.ReporterID == "" {
		return "", fmt.Errorf("reporter_id is required")
	}
	if alert.Description == "" {
		return "", fmt.Errorf("description is required")
	}

	alertID := alert.AlertID
	if alertID == "" {
		alertID = uuid.NewString()
	}

	query := `
		INSERT INTO alerts (alert_id, recipient_id, reporter_id, alert_type, description, status)
		VALUES ($1, $2, $3, $4, $5, 'open')
		RETURNING alert_id::text
	`
	var inserted string
	err := r.db.QueryRowContext(ctx, query,
		alertID,
		alert.RecipientID,
		alert.ReporterID,
		string(alert.Type),
		alert.Description,
	).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("failed to insert alert: %w", err)
	}
	return inserted, nil
}

const alertColumns = `
	alert_id::text,
	recipient_id::text,
	reporter_id::text,
	alert_type,
	description,
	status,
	handled_by::text,
	handled_at,
	COALESCE(handler_notes, '') as handler_notes,
	created_at
`

func scanAlert(row interface{ Scan(...any) error }) (*domain.Alert, error) {
	var a domain.Alert
	var typeRaw, statusRaw string
	var recipientID, handledBy sql.NullString
	var handledAt sql.NullTime
	err := row.Scan(
		&a.AlertID,
		&recipientID,
		&a.ReporterID,
		&typeRaw,
		&a.Description,
		&statusRaw,
		&handledBy,
		&handledAt,
		&a.HandlerNotes,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	alertType, err := domain.ParseAlertType(typeRaw)
	if err != nil {
		return nil, err
	}
	a.Type = alertType
	a.Status = domain.AlertStatus(statusRaw)

	if recipientID.Valid {
		a.RecipientID = &recipientID.String
	}
	if handledBy.Valid {
		a.HandledBy = &handledBy.String
	}
	if handledAt.Valid {
		a.HandledAt = &handledAt.Time
	}
	return &a, nil
}

func (r *PostgresAlertsRepository) GetAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	if alertID == "" {
		return nil, fmt.Errorf("alert_id is required")
	}

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE alert_id = $1`
	a, err := scanAlert(r.db.QueryRowContext(ctx, query, alertID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("alert %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return a, nil
}

func (r *PostgresAlertsRepository) ListAlerts(ctx context.Context, status domain.AlertStatus, page, size int) ([]*domain.Alert, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	where := ""
	args := []any{}
	if status != "" {
		args = append(args, string(status))
		where = ` WHERE status = $1`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := fmt.Sprintf(
		`SELECT %s FROM alerts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		alertColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, total, rows.Err()
}

func (r *PostgresAlertsRepository) UpdateAlertStatus(ctx context.Context, alertID string, status domain.AlertStatus, handlerID, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts
		 SET status = $2, handled_by = $3, handled_at = NOW(), handler_notes = $4
		 WHERE alert_id = $1`,
		alertID, string(status), handlerID, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update alert status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alert %w", ErrNotFound)
	}
	return nil
}
