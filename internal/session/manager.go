// Package session owns the server-side session store. Sessions are keyed
// by an opaque UUID carried in a cookie; validity is checked lazily at
// each access rather than by sweeping in the request path.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rmontes/webauth/internal/models"
)

// ErrNotFound is returned when no session exists for an identifier.
var ErrNotFound = errors.New("session not found")

// Manager creates, reads, and destroys sessions with a fixed TTL.
type Manager struct {
	db  *sql.DB
	ttl time.Duration
}

// NewManager creates a new session Manager.
func NewManager(db *sql.DB, ttl time.Duration) *Manager {
	return &Manager{db: db, ttl: ttl}
}

// Create issues a new authenticated session for the given email with
// expiry fixed at now + TTL. The expiry is absolute; it is never extended
// by activity.
func (m *Manager) Create(email string) (models.Session, error) {
	now := time.Now()
	sess := models.Session{
		ID:            uuid.New().String(),
		Email:         email,
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}

	stmt, err := m.db.Prepare("INSERT INTO sessions(id, email, authenticated, created_at, expires_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Session{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(sess.ID, sess.Email, 1, sess.CreatedAt.Unix(), sess.ExpiresAt.Unix())
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

// Get retrieves stored session state by identifier. Expired sessions are
// still returned; callers decide validity via models.Session.Valid.
func (m *Manager) Get(id string) (models.Session, error) {
	row := m.db.QueryRow("SELECT id, email, authenticated, created_at, expires_at FROM sessions WHERE id = ?", id)

	var sess models.Session
	var authenticated int
	var createdAt, expiresAt int64
	err := row.Scan(&sess.ID, &sess.Email, &authenticated, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, err
	}

	sess.Authenticated = authenticated == 1
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.ExpiresAt = time.Unix(expiresAt, 0)
	return sess, nil
}

// IsAuthenticated reports whether a session exists, is marked
// authenticated, and has not expired.
func (m *Manager) IsAuthenticated(id string) bool {
	sess, err := m.Get(id)
	if err != nil {
		return false
	}
	return sess.Valid(time.Now())
}

// Destroy removes all state for the given session identifier. Destroying
// an unknown identifier is not an error.
func (m *Manager) Destroy(id string) error {
	_, err := m.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

// PurgeExpired deletes every session whose expiry is at or before the
// given instant and returns the number of rows removed.
func (m *Manager) PurgeExpired(now time.Time) (int64, error) {
	res, err := m.db.Exec("DELETE FROM sessions WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
