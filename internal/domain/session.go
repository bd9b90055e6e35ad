package domain

import "time"

// Session binds an opaque token to a user for the lifetime of a browser
// session. The token is the only thing the client ever sees.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}
