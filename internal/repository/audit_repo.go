package repository

import (
	"context"

	"redviva-data/internal/domain"
)

// AuditRepository append-only audit trail.
type AuditRepository interface {
	InsertEntry(ctx context.Context, entry *domain.AuditEntry) error
	ListEntries(ctx context.Context, filters AuditFilters, page, size int) ([]*domain.AuditEntry, int, error)
}

// AuditFilters trail listing filters
type AuditFilters struct {
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
}
