package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
	"redviva-data/internal/store"
)

// AlertChannel Redis channel professional dashboards subscribe to.
const AlertChannel = "redviva:alerts"

// ErrBadTransition the requested alert status change is not allowed
// from the alert's current status.
var ErrBadTransition = errors.New("invalid alert status transition")

// AlertService the urgent-event path: immediate single-step submission,
// no draft persistence, plus the professional review transitions.
type AlertService struct {
	alerts repository.AlertsRepository
	audit  repository.AuditRepository
	kv     store.KV
	logger *zap.Logger
}

func NewAlertService(alerts repository.AlertsRepository, audit repository.AuditRepository, kv store.KV, logger *zap.Logger) *AlertService {
	return &AlertService{alerts: alerts, audit: audit, kv: kv, logger: logger}
}

// Raise validates and records an urgent event. Both the event type and
// the description must be non-empty.
func (s *AlertService) Raise(ctx context.Context, actor domain.Profile, typeToken, description string, recipientID string) (string, error) {
	alertType, err := domain.ParseAlertType(typeToken)
	if err != nil {
		return "", err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("description is required")
	}

	alert := &domain.Alert{
		ReporterID:  actor.ProfileID,
		Type:        alertType,
		Description: description,
	}
	if recipientID != "" {
		alert.RecipientID = &recipientID
	}

	alertID, err := s.alerts.InsertAlert(ctx, alert)
	if err != nil {
		s.logger.Warn("Failed to raise alert",
			zap.String("reporter_id", actor.ProfileID),
			zap.String("alert_type", typeToken),
			zap.Error(err),
		)
		return "", err
	}

	if err := s.audit.InsertEntry(ctx, &domain.AuditEntry{
		ActorID:    actor.ProfileID,
		ActorRole:  actor.Role,
		Action:     domain.AuditAlertRaised,
		EntityType: "alert",
		EntityID:   alertID,
		Detail:     string(alertType),
	}); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.Error(err))
	}

	// Best-effort notification for professional dashboards.
	payload, _ := json.Marshal(map[string]string{
		"alert_id":   alertID,
		"alert_type": string(alertType),
		"reporter":   actor.DisplayName,
	})
	if err := s.kv.Publish(ctx, AlertChannel, string(payload)); err != nil {
		s.logger.Warn("Failed to publish alert notification", zap.Error(err))
	}

	s.logger.Info("Alert raised",
		zap.String("alert_id", alertID),
		zap.String("alert_type", string(alertType)),
		zap.String("reporter_id", actor.ProfileID),
	)

	return alertID, nil
}

// List returns the review queue, newest first.
func (s *AlertService) List(ctx context.Context, status domain.AlertStatus, page, size int) ([]*domain.Alert, int, error) {
	return s.alerts.ListAlerts(ctx, status, page, size)
}

// Acknowledge moves an open alert to acknowledged.
func (s *AlertService) Acknowledge(ctx context.Context, actor domain.Profile, alertID, notes string) error {
	return s.transition(ctx, actor, alertID, domain.AlertAcknowledged, domain.AuditAlertAcked, notes,
		domain.AlertOpen)
}

// Close closes an open or acknowledged alert.
func (s *AlertService) Close(ctx context.Context, actor domain.Profile, alertID, notes string) error {
	return s.transition(ctx, actor, alertID, domain.AlertClosed, domain.AuditAlertClosed, notes,
		domain.AlertOpen, domain.AlertAcknowledged)
}

func (s *AlertService) transition(ctx context.Context, actor domain.Profile, alertID string, to domain.AlertStatus, auditAction, notes string, from ...domain.AlertStatus) error {
	alert, err := s.alerts.GetAlert(ctx, alertID)
	if err != nil {
		return err
	}

	allowed := false
	for _, f := range from {
		if alert.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, alert.Status, to)
	}

	if err := s.alerts.UpdateAlertStatus(ctx, alertID, to, actor.ProfileID, notes); err != nil {
		return err
	}

	if err := s.audit.InsertEntry(ctx, &domain.AuditEntry{
		ActorID:    actor.ProfileID,
		ActorRole:  actor.Role,
		Action:     auditAction,
		EntityType: "alert",
		EntityID:   alertID,
		Detail:     notes,
	}); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.Error(err))
	}

	return nil
}
