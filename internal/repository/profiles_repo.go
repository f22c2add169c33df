package repository

import (
	"context"

	"redviva-data/internal/domain"
)

// ProfilesRepository role-record access for the session gate.
// Records are provisioned externally; this service never writes them.
type ProfilesRepository interface {
	GetCaregiverByAuthUserID(ctx context.Context, authUserID string) (*domain.CaregiverProfile, error)
	GetProfessionalByAuthUserID(ctx context.Context, authUserID string) (*domain.ProfessionalProfile, error)
}
