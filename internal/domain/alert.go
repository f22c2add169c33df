package domain

import (
	"fmt"
	"time"
)

// AlertType urgent-event type (closed set)
type AlertType string

const (
	AlertFall       AlertType = "fall"
	AlertConfusion  AlertType = "confusion"
	AlertInjury     AlertType = "injury"
	AlertMedication AlertType = "medication"
	AlertOther      AlertType = "other"
)

// ParseAlertType validates an event-type token from a request.
func ParseAlertType(s string) (AlertType, error) {
	switch AlertType(s) {
	case AlertFall, AlertConfusion, AlertInjury, AlertMedication, AlertOther:
		return AlertType(s), nil
	}
	return "", fmt.Errorf("unknown alert type: %q", s)
}

// AlertStatus review lifecycle
type AlertStatus string

const (
	AlertOpen         AlertStatus = "open"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertClosed       AlertStatus = "closed"
)

// Alert urgent-event record (alerts table)
type Alert struct {
	AlertID     string    `db:"alert_id"` // UUID, PRIMARY KEY
	RecipientID *string   `db:"recipient_id"` // nullable: reporter may not know which recipient
	ReporterID  string    `db:"reporter_id"`  // caregiver profile id
	Type        AlertType `db:"alert_type"`
	Description string    `db:"description"` // NOT NULL, non-empty

	Status       AlertStatus `db:"status"` // DEFAULT 'open'
	HandledBy    *string     `db:"handled_by"` // professional profile id, nullable
	HandledAt    *time.Time  `db:"handled_at"`
	HandlerNotes string      `db:"handler_notes"` // COALESCEd to ''

	CreatedAt time.Time `db:"created_at"`
}
