package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rmontes/webauth/internal/api/handlers"
	"github.com/rmontes/webauth/internal/auth"
	"github.com/rmontes/webauth/internal/services"
	"github.com/rmontes/webauth/internal/session"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(authService services.AuthServiceProvider, users services.UserDirectoryProvider, sessions *session.Manager) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	siteHandler := handlers.NewSiteHandler(users, sessions)

	r.Get("/", siteHandler.Home)
	r.Get("/signup", authHandler.SignupForm)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/submitUser", authHandler.SubmitUser)
	r.Post("/loggingin", authHandler.LoggingIn)
	r.Get("/logout", authHandler.Logout)

	// Protected area
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(sessions))
		r.Get("/members", siteHandler.Members)
	})

	r.NotFound(siteHandler.NotFound)

	return r
}
