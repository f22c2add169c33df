package repository

import (
	"context"

	"redviva-data/internal/domain"
)

// ReportsRepository submitted-report access.
// Reports are immutable: insert and read only, no update or delete.
type ReportsRepository interface {
	InsertReport(ctx context.Context, report *domain.Report) (string, error)
	GetReport(ctx context.Context, reportID string) (*domain.Report, error)
	ListReports(ctx context.Context, filters ReportFilters, page, size int) ([]*domain.Report, int, error)
}

// ReportFilters professional-portal listing filters
type ReportFilters struct {
	RecipientID string // by recipient
	SubmitterID string // by caregiver
	Kind        string // 'routine' | 'critical_event'
	DateFrom    string // inclusive, "2006-01-02"
	DateTo      string // inclusive
}
