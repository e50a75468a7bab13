package models

import "time"

// Session is the server-side state behind the opaque cookie identifier.
type Session struct {
	ID            string
	Email         string
	Authenticated bool
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Valid reports whether the session authenticates requests at the given
// instant. Expiry is checked here, lazily, at each access; nothing sweeps
// sessions in the request path.
func (s Session) Valid(now time.Time) bool {
	return s.Authenticated && now.Before(s.ExpiresAt)
}
