package services

import (
	"database/sql"
	"time"

	"github.com/casavia/casavia-be/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventBroadcaster pushes recorded events to live listeners (the
// websocket hub). May be nil when no live feed is wired.
type EventBroadcaster interface {
	BroadcastEvent(event models.Event)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, entityID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
	PruneEventsBefore(cutoff time.Time) (int64, error)
}

// EventService provides business logic for event management.
type EventService struct {
	db          *sql.DB
	broadcaster EventBroadcaster
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, broadcaster EventBroadcaster) *EventService {
	return &EventService{db: db, broadcaster: broadcaster}
}

// CreateEvent logs a new event to the database and broadcasts it to any
// connected live-feed clients. Event recording is best-effort from the
// caller's perspective; workflows do not fail when it does.
func (s *EventService) CreateEvent(eventType, level, message string, entityID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, entity_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.EntityID, event.CreatedAt); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastEvent(event)
	}
	return nil
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, entity_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.EntityID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneEventsBefore deletes events recorded before the cutoff and returns
// how many were removed.
func (s *EventService) PruneEventsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Pruned old events")
	}
	return removed, nil
}
