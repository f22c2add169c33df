package domain

import "time"

// Session identity decoded from the auth service's access token.
// Read-only: created on login, gone on logout or expiry.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}
