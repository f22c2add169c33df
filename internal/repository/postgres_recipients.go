package repository

import (
	"context"
	"database/sql"
	"fmt"

	"redviva-data/internal/domain"
)

type PostgresRecipientsRepository struct {
	db *sql.DB
}

func NewPostgresRecipientsRepository(db *sql.DB) *PostgresRecipientsRepository {
	return &PostgresRecipientsRepository{db: db}
}

var _ RecipientsRepository = (*PostgresRecipientsRepository)(nil)

const recipientColumns = `
	recipient_id::text,
	full_name,
	birth_date,
	COALESCE(address, '') as address,
	COALESCE(notes, '') as notes,
	status,
	created_at
`

func scanRecipient(row interface{ Scan(...any) error }) (*domain.Recipient, error) {
	var rec domain.Recipient
	var birthDate sql.NullTime
	err := row.Scan(
		&rec.RecipientID,
		&rec.FullName,
		&birthDate,
		&rec.Address,
		&rec.Notes,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		rec.BirthDate = &birthDate.Time
	}
	return &rec, nil
}

func (r *PostgresRecipientsRepository) GetRecipient(ctx context.Context, recipientID string) (*domain.Recipient, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("recipient_id is required")
	}

	query := `SELECT ` + recipientColumns + ` FROM recipients WHERE recipient_id = $1`
	rec, err := scanRecipient(r.db.QueryRowContext(ctx, query, recipientID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("recipient %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}
	return rec, nil
}

func (r *PostgresRecipientsRepository) ListAssignedRecipients(ctx context.Context, caregiverID string) ([]*domain.Recipient, error) {
	if caregiverID == "" {
		return nil, fmt.Errorf("caregiver_id is required")
	}

	query := `
		SELECT ` + recipientColumns + `
		FROM recipients
		WHERE status = 'active'
		  AND recipient_id IN (
			SELECT recipient_id FROM assignments WHERE caregiver_id = $1
		  )
		ORDER BY full_name
	`
	rows, err := r.db.QueryContext(ctx, query, caregiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned recipients: %w", err)
	}
	defer rows.Close()

	var recipients []*domain.Recipient
	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

func (r *PostgresRecipientsRepository) IsAssigned(ctx context.Context, caregiverID, recipientID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE caregiver_id = $1 AND recipient_id = $2)`,
		caregiverID, recipientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

func (r *PostgresRecipientsRepository) ListRecipients(ctx context.Context, page, size int) ([]*domain.Recipient, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipients WHERE status = 'active'`,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipients: %w", err)
	}

	query := `
		SELECT ` + recipientColumns + `
		FROM recipients
		WHERE status = 'active'
		ORDER BY full_name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipients: %w", err)
	}
	defer rows.Close()

	var recipients []*domain.Recipient
	for rows.Next() {
		rec, err := scanRecipient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipient: %w", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Nested relation: assigned caregivers per recipient
	for _, rec := range recipients {
		caregivers, err := r.listCaregiversFor(ctx, rec.RecipientID)
		if err != nil {
			return nil, 0, err
		}
		rec.Caregivers = caregivers
	}

	return recipients, total, nil
}

func (r *PostgresRecipientsRepository) listCaregiversFor(ctx context.Context, recipientID string) ([]domain.AssignedCaregiver, error) {
	query := `
		SELECT cp.profile_id::text, cp.display_name
		FROM assignments a
		JOIN caregiver_profiles cp ON cp.profile_id = a.caregiver_id
		WHERE a.recipient_id = $1
		ORDER BY cp.display_name
	`
	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list caregivers for recipient: %w", err)
	}
	defer rows.Close()

	caregivers := []domain.AssignedCaregiver{}
	for rows.Next() {
		var c domain.AssignedCaregiver
		if err := rows.Scan(&c.ProfileID, &c.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan caregiver: %w", err)
		}
		caregivers = append(caregivers, c)
	}
	return caregivers, rows.Err()
}
