package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmontes/webauth/internal/api"
	"github.com/rmontes/webauth/internal/config"
	"github.com/rmontes/webauth/internal/database"
	"github.com/rmontes/webauth/internal/logger"
	"github.com/rmontes/webauth/internal/password"
	"github.com/rmontes/webauth/internal/services"
	"github.com/rmontes/webauth/internal/session"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	hasher := password.NewHasher(cfg.BcryptCost)
	sessionManager := session.NewManager(db, cfg.SessionTTL)
	userDirectory := services.NewUserDirectory(db)
	eventService := services.NewEventService(db)
	authService := services.NewAuthService(userDirectory, sessionManager, hasher, eventService)

	// Set up and run the background session sweeper
	sweeper, err := session.NewSweeper(sessionManager, cfg.SweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SweepSchedule).Msg("Invalid sweep schedule")
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(authService, userDirectory, sessionManager)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
