package domain

import "fmt"

// Role portal role (closed set, validated where external data enters)
type Role string

const (
	RoleCaregiver    Role = "caregiver"
	RoleSocialWorker Role = "social_worker"
	RoleNurse        Role = "nurse"
	RoleCoordinator  Role = "coordinator"
)

// ParseRole validates a role value read from the database or a request.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCaregiver, RoleSocialWorker, RoleNurse, RoleCoordinator:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// IsProfessional reports whether the role belongs to the professional portal.
func (r Role) IsProfessional() bool {
	switch r {
	case RoleSocialWorker, RoleNurse, RoleCoordinator:
		return true
	}
	return false
}

// CaregiverRoles accepted set for the caregiver portal
var CaregiverRoles = []Role{RoleCaregiver}

// ProfessionalRoles accepted set for the professional portal
var ProfessionalRoles = []Role{RoleSocialWorker, RoleNurse, RoleCoordinator}
