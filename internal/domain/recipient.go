package domain

import "time"

// Recipient care-recipient record (recipients table)
type Recipient struct {
	RecipientID string     `db:"recipient_id"` // UUID, PRIMARY KEY
	FullName    string     `db:"full_name"`    // NOT NULL
	BirthDate   *time.Time `db:"birth_date"`   // nullable
	Address     string     `db:"address"`      // nullable, COALESCEd to ''
	Notes       string     `db:"notes"`        // nullable, COALESCEd to ''
	Status      string     `db:"status"`       // 'active' | 'inactive'
	CreatedAt   time.Time  `db:"created_at"`

	// Caregivers assigned to this recipient (joined from assignments, read paths only)
	Caregivers []AssignedCaregiver `db:"-"`
}

// AssignedCaregiver nested relation returned on professional listings
type AssignedCaregiver struct {
	ProfileID   string `json:"profile_id"`
	DisplayName string `json:"display_name"`
}

// Assignment caregiver-to-recipient link (assignments table, read-only here)
type Assignment struct {
	CaregiverID string    `db:"caregiver_id"` // REFERENCES caregiver_profiles
	RecipientID string    `db:"recipient_id"` // REFERENCES recipients
	CreatedAt   time.Time `db:"created_at"`
}
