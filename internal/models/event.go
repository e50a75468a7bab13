package models

import "time"

// AuthEvent is a row in the authentication audit log.
type AuthEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "login.success", "login.ambiguous"
	Level     string    `json:"level"` // "info", "warn", "error"
	Message   string    `json:"message"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
