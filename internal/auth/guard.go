package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/rmontes/webauth/internal/models"
)

// SessionCookie is the name of the cookie carrying the opaque session ID.
const SessionCookie = "session_token"

// SessionKey is the context key for the request's session.
type contextKey string

const SessionKey = contextKey("authSession")

// SessionReader resolves opaque identifiers to stored sessions.
type SessionReader interface {
	Get(id string) (models.Session, error)
}

// Middleware creates a middleware for protecting routes. Requests
// without a valid, unexpired authenticated session are redirected to the
// landing page.
func Middleware(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			sess, err := sessions.Get(cookie.Value)
			if err != nil || !sess.Valid(time.Now()) {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			// Pass the session down via context
			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the session stored by Middleware, if any.
func FromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(models.Session)
	return sess, ok
}
