// Package validation enforces syntactic well-formedness of user-supplied
// identity fields before they reach storage or comparison logic.
//
// Registration input is checked in two phases: a presence phase that
// produces a combined human-readable message naming every absent field,
// and a structural phase run only once all fields are present. Callers
// surface the two phases differently (message vs. redirect), so they must
// run MissingFields before ValidateRegistration.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Field length cap shared by username and password.
const maxFieldLen = 20

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ErrInvalid is wrapped by every structural validation failure.
var ErrInvalid = errors.New("invalid input")

// MissingFields returns a combined message naming every absent
// registration field, or the empty string when all are present.
func MissingFields(username, email, password string) string {
	var b strings.Builder
	if username == "" {
		b.WriteString("Please enter your Name.")
	}
	if email == "" {
		b.WriteString("Please enter your Email.")
	}
	if password == "" {
		b.WriteString("Please enter your Password.")
	}
	return b.String()
}

// ValidateRegistration runs the structural phase over all three
// registration fields. It assumes presence has already been checked.
func ValidateRegistration(username, email, password string) error {
	if len(username) > maxFieldLen || !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username must be alphanumeric and at most %d characters", ErrInvalid, maxFieldLen)
	}
	if err := ValidateLoginEmail(email); err != nil {
		return err
	}
	if password == "" || len(password) > maxFieldLen {
		return fmt.Errorf("%w: password must be between 1 and %d characters", ErrInvalid, maxFieldLen)
	}
	return nil
}

// ValidateLoginEmail checks email syntax. It is the only structural check
// applied at login; the login password is deliberately not validated.
func ValidateLoginEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: malformed email address", ErrInvalid)
	}
	return nil
}
