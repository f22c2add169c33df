package repository

import (
	"context"

	"redviva-data/internal/domain"
)

// CasesRepository professional case files.
type CasesRepository interface {
	CreateCase(ctx context.Context, c *domain.Case) (string, error)
	GetCase(ctx context.Context, caseID string) (*domain.Case, error)
	ListCases(ctx context.Context, filters CaseFilters, page, size int) ([]*domain.Case, int, error)
	UpdateCase(ctx context.Context, caseID string, upd CaseUpdate) error
}

// CaseFilters listing filters for the review queue
type CaseFilters struct {
	RecipientID string
	AssigneeID  string
	Status      string
}

// CaseUpdate nil fields are left unchanged
type CaseUpdate struct {
	Status     *domain.CaseStatus
	Priority   *domain.CasePriority
	AssigneeID *string
	Summary    *string
}
