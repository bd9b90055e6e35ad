package domain

import "time"

// User represents a registered account. PasswordHash stays inside the service
// layer; anything returned to callers is a sanitized copy.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
