package domain

import "time"

// User represents a registered account. PasswordHash is never serialized
// outward; responses are built from sanitized copies.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
