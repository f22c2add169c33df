package domain

import (
	"fmt"
	"time"
)

// CaseStatus case-file lifecycle
type CaseStatus string

const (
	CaseOpen       CaseStatus = "open"
	CaseInProgress CaseStatus = "in_progress"
	CaseClosed     CaseStatus = "closed"
)

// ParseCaseStatus validates a status value from a request.
func ParseCaseStatus(s string) (CaseStatus, error) {
	switch CaseStatus(s) {
	case CaseOpen, CaseInProgress, CaseClosed:
		return CaseStatus(s), nil
	}
	return "", fmt.Errorf("unknown case status: %q", s)
}

// CasePriority closed set, defaults to 'normal'
type CasePriority string

const (
	PriorityLow    CasePriority = "low"
	PriorityNormal CasePriority = "normal"
	PriorityHigh   CasePriority = "high"
)

// ParseCasePriority validates a priority value from a request.
func ParseCasePriority(s string) (CasePriority, error) {
	switch CasePriority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return CasePriority(s), nil
	}
	return "", fmt.Errorf("unknown case priority: %q", s)
}

// Case professional case file (cases table)
type Case struct {
	CaseID      string  `db:"case_id"` // UUID, PRIMARY KEY
	RecipientID string  `db:"recipient_id"` // NOT NULL
	AssigneeID  *string `db:"assignee_id"`  // professional profile id, nullable

	Status   CaseStatus   `db:"status"`   // DEFAULT 'open'
	Priority CasePriority `db:"priority"` // DEFAULT 'normal'
	Summary  string       `db:"summary"`  // NOT NULL

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
