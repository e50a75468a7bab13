package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rmontes/webauth/internal/auth"
	"github.com/rmontes/webauth/internal/services"
	"github.com/rs/zerolog/log"
)

const signupFormHTML = `Sign Up
<form action='/submitUser' method='post'>
<div><input name='username' type='text' placeholder='name'></div>
<div><input name='email' type='email' placeholder='email'></div>
<div><input name='password' type='password' placeholder='password'></div>
<button>Submit</button>
</form>
`

const loginFormHTML = `Log In
<form action='/loggingin' method='post'>
<div><input name='email' type='email' placeholder='email'></div>
<div><input name='password' type='password' placeholder='password'></div>
<button>Submit</button>
</form>
`

const signupSuccessHTML = `Successfully created user
<div><a href="/login">Log In</a></div>
`

const logoutHTML = `<p>You are logged out!</p>
<div><a href="/">Home</a></div>
`

// AuthHandler handles the registration, login, and logout flows.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupForm renders the registration form.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, signupFormHTML)
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, loginFormHTML)
}

// SubmitUser handles registration form posts. Missing fields get an
// inline combined message; structurally invalid input redirects back to
// the signup form with no detail exposed.
func (h *AuthHandler) SubmitUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err := h.service.Register(
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)

	var missing *services.MissingInputError
	switch {
	case errors.As(err, &missing):
		fmt.Fprintf(w, "%s<a href='/signup'>Try again</a>", missing.Message)
	case errors.Is(err, services.ErrInvalidInput):
		http.Redirect(w, r, "/signup", http.StatusFound)
	case err != nil:
		log.Error().Err(err).Msg("Failed to register user")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	default:
		fmt.Fprint(w, signupSuccessHTML)
	}
}

// LoggingIn handles login form posts. A malformed email redirects to the
// login form, an unknown user redirects with an error indicator, and a
// wrong password gets an inline retry message that does not reveal
// whether the email exists.
func (h *AuthHandler) LoggingIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	sess, err := h.service.Login(r.PostFormValue("email"), r.PostFormValue("password"))
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		http.Redirect(w, r, "/login", http.StatusFound)
	case errors.Is(err, services.ErrUserNotFound):
		http.Redirect(w, r, "/login?error-user-not-found", http.StatusFound)
	case errors.Is(err, services.ErrWrongPassword):
		fmt.Fprint(w, "Incorrect password, <a href='/login'>Try again</a>")
	case err != nil:
		log.Error().Err(err).Msg("Login failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	default:
		// Set Secure flag based on environment.
		isProd := os.Getenv("APP_ENV") == "production"

		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    sess.ID,
			Expires:  sess.ExpiresAt,
			HttpOnly: true,
			Secure:   isProd,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
		})
		http.Redirect(w, r, "/members", http.StatusFound)
	}
}

// Logout destroys the session and clears the cookie. It always renders
// the confirmation page, whatever state the session was in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		h.service.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
	fmt.Fprint(w, logoutHTML)
}
