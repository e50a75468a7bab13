package services

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rmontes/webauth/internal/database"
	"github.com/rmontes/webauth/internal/models"
	"github.com/rmontes/webauth/internal/password"
	"github.com/rmontes/webauth/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db       *sql.DB
	auth     *AuthService
	users    *UserDirectory
	events   *EventService
	sessions *session.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	users := NewUserDirectory(db)
	events := NewEventService(db)
	sessions := session.NewManager(db, time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	return &testEnv{
		db:       db,
		auth:     NewAuthService(users, sessions, hasher, events),
		users:    users,
		events:   events,
		sessions: sessions,
	}
}

func (e *testEnv) userCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n))
	return n
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register("alice", "a@example.com", "pw12345")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "pw12345", user.PasswordHash, "plaintext must never be stored")

	sess, err := env.auth.Login("a@example.com", "pw12345")
	require.NoError(t, err)
	assert.True(t, sess.Valid(time.Now()))
	assert.Equal(t, "a@example.com", sess.Email)
	assert.True(t, env.sessions.IsAuthenticated(sess.ID))
}

func TestRegisterMissingFieldsWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("", "a@example.com", "")
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Message, "Please enter your Name.")
	assert.Contains(t, missing.Message, "Please enter your Password.")
	assert.NotContains(t, missing.Message, "Email")
	assert.Equal(t, 0, env.userCount(t))
}

func TestRegisterInvalidUsernameWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("bad name!", "a@example.com", "pw12345")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, env.userCount(t))
}

func TestLoginMalformedEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login("not-an-email", "pw12345")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login("nobody@example.com", "pw12345")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("alice", "a@example.com", "pw12345")
	require.NoError(t, err)

	_, err = env.auth.Login("a@example.com", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginPasswordIsNotStructurallyValidated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("alice", "a@example.com", "pw12345")
	require.NoError(t, err)

	// A 30-character password would fail registration, but at login it
	// goes straight to hash comparison.
	_, err = env.auth.Login("a@example.com", strings.Repeat("x", 30))
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginAmbiguousEmailFoldsIntoNotFound(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		_, err := env.auth.Register("alice", "dup@example.com", "pw12345")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, env.userCount(t), "the directory does not enforce email uniqueness")

	_, err := env.auth.Login("dup@example.com", "pw12345")
	require.ErrorIs(t, err, ErrUserNotFound)

	// Externally folded, but the audit trail tells the cases apart.
	events, err := env.events.GetRecentEvents(10)
	require.NoError(t, err)
	var sawAmbiguous bool
	for _, ev := range events {
		if ev.Type == "login.ambiguous" {
			sawAmbiguous = true
		}
	}
	assert.True(t, sawAmbiguous, "expected a login.ambiguous audit event")
}

func TestLogoutDestroysSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("alice", "a@example.com", "pw12345")
	require.NoError(t, err)
	sess, err := env.auth.Login("a@example.com", "pw12345")
	require.NoError(t, err)

	env.auth.Logout(sess.ID)
	assert.False(t, env.sessions.IsAuthenticated(sess.ID))

	// Logging out twice, or with an unknown id, is harmless.
	env.auth.Logout(sess.ID)
	env.auth.Logout("no-such-session")
}

func TestAuditTrailRecordsFlows(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register("alice", "a@example.com", "pw12345")
	require.NoError(t, err)
	_, err = env.auth.Login("a@example.com", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)
	sess, err := env.auth.Login("a@example.com", "pw12345")
	require.NoError(t, err)
	env.auth.Logout(sess.ID)

	events, err := env.events.GetRecentEvents(10)
	require.NoError(t, err)

	types := make(map[string]int)
	for _, ev := range events {
		types[ev.Type]++
		assert.NotEmpty(t, ev.ID)
		assert.NotEmpty(t, ev.Level)
		assert.False(t, ev.CreatedAt.IsZero())
		if ev.Type != "logout" {
			require.NotNil(t, ev.Email)
			assert.Equal(t, "a@example.com", *ev.Email)
		}
	}
	assert.Equal(t, 1, types["user.register"])
	assert.Equal(t, 1, types["login.fail"])
	assert.Equal(t, 1, types["login.success"])
	assert.Equal(t, 1, types["logout"])
}

// failingEventService simulates an unavailable audit log.
type failingEventService struct{}

func (failingEventService) CreateEvent(eventType, level, message string, email *string) error {
	return errors.New("audit log unavailable")
}

func (failingEventService) GetRecentEvents(limit int) ([]models.AuthEvent, error) {
	return nil, errors.New("audit log unavailable")
}

func TestAuditFailuresDoNotBlockFlows(t *testing.T) {
	env := newTestEnv(t)
	authSvc := NewAuthService(env.users, env.sessions, password.NewHasher(bcrypt.MinCost), failingEventService{})

	_, err := authSvc.Register("alice", "a@example.com", "pw12345")
	require.NoError(t, err)

	sess, err := authSvc.Login("a@example.com", "pw12345")
	require.NoError(t, err)
	assert.True(t, sess.Valid(time.Now()))

	authSvc.Logout(sess.ID)
	assert.False(t, env.sessions.IsAuthenticated(sess.ID))
}
