package models

import "time"

// Event represents a loggable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "booking.created", "property.listed"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
