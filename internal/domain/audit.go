package domain

import "time"

// Audit actions recorded by the services. Append-only.
const (
	AuditReportSubmitted = "report.submitted"
	AuditAlertRaised     = "alert.raised"
	AuditAlertAcked      = "alert.acknowledged"
	AuditAlertClosed     = "alert.closed"
	AuditCaseCreated     = "case.created"
	AuditCaseUpdated     = "case.updated"
)

// AuditEntry audit-log record (audit_log table)
type AuditEntry struct {
	EntryID    string    `db:"entry_id"` // UUID, PRIMARY KEY
	ActorID    string    `db:"actor_id"` // profile id of the acting user
	ActorRole  Role      `db:"actor_role"`
	Action     string    `db:"action"`      // one of the Audit* constants
	EntityType string    `db:"entity_type"` // 'report' | 'alert' | 'case'
	EntityID   string    `db:"entity_id"`
	Detail     string    `db:"detail"` // short human-readable context, COALESCEd to ''
	CreatedAt  time.Time `db:"created_at"`
}
