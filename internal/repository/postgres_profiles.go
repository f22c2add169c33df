package repository

import (
	"context"
	"database/sql"
	"fmt"

	"redviva-data/internal/domain"
)

// PostgresProfilesRepository role-record repository over caregiver_profiles
// and professional_profiles (the two RoleRecord variants).
type PostgresProfilesRepository struct {
	db *sql.DB
}

func NewPostgresProfilesRepository(db *sql.DB) *PostgresProfilesRepository {
	return &PostgresProfilesRepository{db: db}
}

var _ ProfilesRepository = (*PostgresProfilesRepository)(nil)

// GetCaregiverByAuthUserID looks up the caregiver role record for a session identity.
func (r *PostgresProfilesRepository) GetCaregiverByAuthUserID(ctx context.Context, authUserID string) (*domain.CaregiverProfile, error) {
	if authUserID == "" {
		return nil, fmt.Errorf("auth_user_id is required")
	}

	query := `
		SELECT
			profile_id::text,
			auth_user_id::text,
			email,
			role,
			display_name,
			COALESCE(phone, '') as phone,
			status,
			created_at
		FROM caregiver_profiles
		WHERE auth_user_id = $1
	`

	var p domain.CaregiverProfile
	var roleRaw string
	err := r.db.QueryRowContext(ctx, query, authUserID).Scan(
		&p.ProfileID,
		&p.AuthUserID,
		&p.Email,
		&roleRaw,
		&p.DisplayName,
		&p.Phone,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("caregiver profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get caregiver profile: %w", err)
	}

	role, err := domain.ParseRole(roleRaw)
	if err != nil {
		return nil, fmt.Errorf("caregiver profile %s: %w", p.ProfileID, err)
	}
	p.Role = role

	return &p, nil
}

// GetProfessionalByAuthUserID looks up the professional role record for a session identity.
func (r *PostgresProfilesRepository) GetProfessionalByAuthUserID(ctx context.Context, authUserID string) (*domain.ProfessionalProfile, error) {
	if authUserID == "" {
		return nil, fmt.Errorf("auth_user_id is required")
	}

	query := `
		SELECT
			profile_id::text,
			auth_user_id::text,
			email,
			role,
			display_name,
			COALESCE(license_no, '') as license_no,
			status,
			created_at
		FROM professional_profiles
		WHERE auth_user_id = $1
	`

	var p domain.ProfessionalProfile
	var roleRaw string
	err := r.db.QueryRowContext(ctx, query, authUserID).Scan(
		&p.ProfileID,
		&p.AuthUserID,
		&p.Email,
		&roleRaw,
		&p.DisplayName,
		&p.LicenseNo,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("professional profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get professional profile: %w", err)
	}

	role, err := domain.ParseRole(roleRaw)
	if err != nil {
		return nil, fmt.Errorf("professional profile %s: %w", p.ProfileID, err)
	}
	p.Role = role

	return &p, nil
}
