package service

import (
	"context"
	"time"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/mission"
)

// RoverService defines all rover-related operations
type RoverService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Rover Operations
	Land(ctx context.Context, sessionID string, x, y int, direction string) (*StatusReport, error)
	Execute(ctx context.Context, sessionID, commands string) (*ExecuteResult, error)

	// Telemetry
	Status(ctx context.Context, sessionID string) (*StatusReport, error)
	GetCommandLog(ctx context.Context, sessionID string, opts LogOptions) (*LogResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*mission.Mission, error)
	SaveConfig(ctx context.Context, configName string, m *mission.Mission) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, m *mission.Mission) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, m *mission.Mission) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles mission configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*mission.Mission, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *mission.Mission
	SaveConfig(name string, m *mission.Mission) error
}

// Session represents an active rover session
type Session struct {
	ID             string
	Rover          *engine.Rover
	Mission        *mission.Mission
	Log            []CommandRecord
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
