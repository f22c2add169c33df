package domain

import "time"

// CaregiverProfile role record for the caregiver portal (caregiver_profiles table)
// Provisioned by an administrator; this service only reads it.
type CaregiverProfile struct {
	// primary key
	ProfileID string `db:"profile_id"` // UUID, PRIMARY KEY

	// identity binding
	AuthUserID string `db:"auth_user_id"` // UUID issued by the auth service, UNIQUE
	Email      string `db:"email"`

	// role info
	Role        Role   `db:"role"`         // always 'caregiver'
	DisplayName string `db:"display_name"` // NOT NULL
	Phone       string `db:"phone"`        // nullable, COALESCEd to ''

	// status
	Status string `db:"status"` // 'active' | 'suspended'

	CreatedAt time.Time `db:"created_at"`
}

// ProfessionalProfile role record for the professional portal (professional_profiles table)
type ProfessionalProfile struct {
	ProfileID  string `db:"profile_id"`
	AuthUserID string `db:"auth_user_id"`
	Email      string `db:"email"`

	Role        Role   `db:"role"` // 'social_worker' | 'nurse' | 'coordinator'
	DisplayName string `db:"display_name"`
	LicenseNo   string `db:"license_no"` // nullable, COALESCEd to ''

	Status string `db:"status"`

	CreatedAt time.Time `db:"created_at"`
}

// Profile is the portal-independent view the session gate hands to handlers.
type Profile struct {
	ProfileID   string
	AuthUserID  string
	Email       string
	Role        Role
	DisplayName string
}
