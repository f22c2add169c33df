package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReportKind routine daily checklist vs critical-event record
type ReportKind string

const (
	ReportRoutine       ReportKind = "routine"
	ReportCriticalEvent ReportKind = "critical_event"
)

// ParseReportKind validates a kind value at the boundary.
func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case ReportRoutine, ReportCriticalEvent:
		return ReportKind(s), nil
	}
	return "", fmt.Errorf("unknown report kind: %q", s)
}

// Report finalized submission record (reports table)
// Immutable once inserted: the repository exposes no update or delete.
type Report struct {
	ReportID    string `db:"report_id"` // UUID, PRIMARY KEY
	RecipientID string `db:"recipient_id"` // NOT NULL
	SubmitterID string `db:"submitter_id"` // caregiver profile id, NOT NULL

	Kind       ReportKind `db:"kind"`
	ReportDate string     `db:"report_date"` // DATE, "2006-01-02"
	Shift      string     `db:"shift"`       // 'morning' | 'afternoon' | 'night'
	ReportTime string     `db:"report_time"` // "15:04", as entered

	// Step answers nested under their step keys
	Answers json.RawMessage `db:"answers"` // JSONB, NOT NULL
	Notes   string          `db:"notes"`   // free text, COALESCEd to ''

	CreatedAt time.Time `db:"created_at"`
}
