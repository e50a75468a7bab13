package services

import (
	"errors"
	"fmt"

	"github.com/rmontes/webauth/internal/models"
	"github.com/rmontes/webauth/internal/password"
	"github.com/rmontes/webauth/internal/validation"
	"github.com/rs/zerolog/log"
)

// Sentinel errors that callers dispatch on. Anything else coming out of
// the auth flows is a storage fault and should be treated as fatal to the
// request.
var (
	// ErrInvalidInput means a field failed structural validation.
	ErrInvalidInput = errors.New("input failed validation")
	// ErrUserNotFound covers both zero and multiple directory matches;
	// the ambiguous case is never distinguished for the caller.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword means the password did not match the stored hash.
	ErrWrongPassword = errors.New("incorrect password")
)

// MissingInputError carries the combined human-readable message produced
// when required registration fields are absent.
type MissingInputError struct {
	Message string
}

func (e *MissingInputError) Error() string {
	return e.Message
}

// SessionStore is the slice of the session manager the auth service needs.
type SessionStore interface {
	Create(email string) (models.Session, error)
	Destroy(id string) error
}

// AuthServiceProvider defines the interface for the auth service.
type AuthServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Login(email, password string) (models.Session, error)
	Logout(sessionID string)
}

// AuthService orchestrates registration, login, and logout.
type AuthService struct {
	users    UserDirectoryProvider
	sessions SessionStore
	hasher   *password.Hasher
	events   EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserDirectoryProvider, sessions SessionStore, hasher *password.Hasher, events EventServiceProvider) *AuthService {
	return &AuthService{users: users, sessions: sessions, hasher: hasher, events: events}
}

// recordEvent writes to the audit log. Audit failures never affect the
// flow that triggered them; they are logged and dropped.
func (s *AuthService) recordEvent(eventType, level, message string, email *string) {
	if err := s.events.CreateEvent(eventType, level, message, email); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to record auth event")
	}
}

// Register creates a new account. Required fields are checked for
// presence first; only when all are present does structural validation
// run. Nothing is written to storage on either failure.
func (s *AuthService) Register(username, email, plaintext string) (models.User, error) {
	if msg := validation.MissingFields(username, email, plaintext); msg != "" {
		return models.User{}, &MissingInputError{Message: msg}
	}

	if err := validation.ValidateRegistration(username, email, plaintext); err != nil {
		log.Debug().Err(err).Msg("Registration input failed validation")
		return models.User{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.Insert(username, email, hash)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("Inserted user")
	s.recordEvent("user.register", "info", "account created", &user.Email)
	return user, nil
}

// Login verifies credentials and, on success, creates an authenticated
// session tied to the email. Only the email is structurally validated;
// the password goes straight to hash comparison.
func (s *AuthService) Login(email, plaintext string) (models.Session, error) {
	if err := validation.ValidateLoginEmail(email); err != nil {
		log.Debug().Err(err).Msg("Login email failed validation")
		return models.Session{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	matches, err := s.users.FindByEmail(email)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to look up user: %w", err)
	}

	// Zero and multiple matches both surface as not-found; only the
	// audit trail tells them apart.
	switch {
	case len(matches) == 0:
		log.Info().Msg("Login attempt for unknown user")
		s.recordEvent("login.fail", "warn", "unknown user", &email)
		return models.Session{}, ErrUserNotFound
	case len(matches) > 1:
		log.Warn().Int("matches", len(matches)).Msg("Ambiguous login: email resolves to multiple accounts")
		s.recordEvent("login.ambiguous", "warn", "email resolves to multiple accounts", &email)
		return models.Session{}, ErrUserNotFound
	}

	user := matches[0]
	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		log.Info().Str("user_id", user.ID).Msg("Incorrect password")
		s.recordEvent("login.fail", "warn", "incorrect password", &email)
		return models.Session{}, ErrWrongPassword
	}

	sess, err := s.sessions.Create(email)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("Correct password, session created")
	s.recordEvent("login.success", "info", "authenticated session created", &email)
	return sess, nil
}

// Logout destroys the session. Store failures are logged, never
// surfaced; logout always succeeds from the user's perspective.
func (s *AuthService) Logout(sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sessions.Destroy(sessionID); err != nil {
		log.Error().Err(err).Msg("Failed to destroy session")
		return
	}
	s.recordEvent("logout", "info", "session destroyed", nil)
}
