package session

import (
	"time"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(sess *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON structure for persisted sessions. The
// rover is stored as a state snapshot; the command table and sensors are
// rebuilt from the named mission config on load.
type PersistedSessionData struct {
	ID             string                  `json:"id"`
	ConfigName     string                  `json:"config_name"`
	CreatedAt      time.Time               `json:"created_at"`
	LastAccessedAt time.Time               `json:"last_accessed_at"`
	Rover          engine.Status           `json:"rover"`
	Log            []service.CommandRecord `json:"log,omitempty"`
}
