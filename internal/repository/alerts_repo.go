package repository

import (
	"context"

	"redviva-data/internal/domain"
)

// AlertsRepository urgent-event records.
type AlertsRepository interface {
	InsertAlert(ctx context.Context, alert *domain.Alert) (string, error)
	GetAlert(ctx context.Context, alertID string) (*domain.Alert, error)
	// ListAlerts newest first, optionally filtered by status
	ListAlerts(ctx context.Context, status domain.AlertStatus, page, size int) ([]*domain.Alert, int, error)
	// UpdateAlertStatus records the review transition and who made it.
	UpdateAlertStatus(ctx context.Context, alertID string, status domain.AlertStatus, handlerID, notes string) error
}
