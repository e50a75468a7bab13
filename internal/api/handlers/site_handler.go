package handlers

import (
	"fmt"
	"html/template"
	"math/rand"
	"net/http"
	"time"

	"github.com/rmontes/webauth/internal/auth"
	"github.com/rmontes/webauth/internal/services"
	"github.com/rs/zerolog/log"
)

const homeAnonHTML = `Welcome
<div><a href="/signup">Sign Up</a></div>
<div><a href="/login">Log In</a></div>
`

var homeUserTmpl = template.Must(template.New("home").Parse(`Hello, {{.Username}}!
<div><a href="/members">Members Page</a></div>
`))

var membersTmpl = template.Must(template.New("members").Parse(`<h1>Hello {{.Username}}</h1>
<img src='{{.Image}}' alt='random image'>
<div><button><a href="/logout">Sign Out</a></button></div>
`))

var memberImages = []string{"1.png", "2.png", "3.png"}

// SiteHandler renders the landing and members pages.
type SiteHandler struct {
	users    services.UserDirectoryProvider
	sessions auth.SessionReader
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(users services.UserDirectoryProvider, sessions auth.SessionReader) *SiteHandler {
	return &SiteHandler{users: users, sessions: sessions}
}

// Home renders the public landing page, or a personalized greeting when
// the request carries a valid session. Unlike /members it never blocks.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil {
		fmt.Fprint(w, homeAnonHTML)
		return
	}

	sess, err := h.sessions.Get(cookie.Value)
	if err != nil || !sess.Valid(time.Now()) {
		fmt.Fprint(w, homeAnonHTML)
		return
	}

	matches, err := h.users.FindByEmail(sess.Email)
	if err != nil || len(matches) == 0 {
		log.Warn().Err(err).Msg("Session email did not resolve to an account")
		fmt.Fprint(w, homeAnonHTML)
		return
	}

	if err := homeUserTmpl.Execute(w, map[string]string{"Username": matches[0].Username}); err != nil {
		log.Error().Err(err).Msg("Failed to render landing page")
	}
}

// Members renders the protected members page. The access guard has
// already vetted the session; the user record is re-fetched by the
// session's email.
func (h *SiteHandler) Members(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	matches, err := h.users.FindByEmail(sess.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load user for members page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if len(matches) == 0 {
		// Session outlived the account it points at.
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	err = membersTmpl.Execute(w, map[string]string{
		"Username": matches[0].Username,
		"Image":    memberImages[rand.Intn(len(memberImages))],
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render members page")
	}
}

// NotFound is the plain-text fallback for unmatched routes.
func (h *SiteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, "Page not found - 404")
}
