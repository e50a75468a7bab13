package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rmontes/webauth/internal/models"
)

// EventServiceProvider defines the interface for the auth audit log.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, email *string) error
	GetRecentEvents(limit int) ([]models.AuthEvent, error)
}

// EventService records authentication events for auditing.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(eventType, level, message string, email *string) error {
	event := models.AuthEvent{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		Email:   email,
	}

	stmt, err := s.db.Prepare("INSERT INTO auth_events (id, type, level, message, email, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.Email, time.Now().Unix())
	return err
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.AuthEvent, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, email, created_at FROM auth_events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.AuthEvent
	for rows.Next() {
		var event models.AuthEvent
		var createdAt int64
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.Email, &createdAt); err != nil {
			return nil, err
		}
		event.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, event)
	}
	return events, rows.Err()
}
