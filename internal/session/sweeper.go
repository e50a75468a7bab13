package session

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper reclaims storage held by expired sessions on a cron schedule.
// It exists purely for garbage collection; validity checks stay lazy and
// never depend on the sweep having run.
type Sweeper struct {
	sessions *Manager
	schedule cron.Schedule
	done     chan bool
}

// NewSweeper creates a sweeper from a standard cron expression
// (descriptors like "@every 15m" are accepted).
func NewSweeper(sessions *Manager, spec string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		sessions: sessions,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeping loop.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting session sweeper...")

	// Run once immediately on start
	s.sweep()

	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping session sweeper.")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

func (s *Sweeper) sweep() {
	purged, err := s.sessions.PurgeExpired(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to purge expired sessions")
		return
	}
	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("Sweeper: removed expired sessions")
	}
}
