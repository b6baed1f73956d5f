package service

import (
	"time"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/mission"
)

// Halt reason codes reported when a command string stops early.
const (
	HaltUnknownCommand = "unknown_command"
	HaltDangerousField = "dangerous_field"
)

// MaxCommandsPerCall caps the length of a single command string to prevent
// abuse over the public transports.
const MaxCommandsPerCall = 500

// SessionInfo provides information about a rover session
type SessionInfo struct {
	ID             string           `json:"id"`
	ConfigName     string           `json:"config_name"`
	CreatedAt      time.Time        `json:"created_at"`
	LastAccessedAt time.Time        `json:"last_accessed_at"`
	Rover          engine.Status    `json:"rover"`
	Mission        *mission.Mission `json:"mission"`
}

// StatusReport is the rover snapshot returned by Land and Status, enriched
// with decision aids for remote operators.
type StatusReport struct {
	SessionID string        `json:"session_id"`
	Rover     engine.Status `json:"rover"`

	// LocalView is a 3x3 window of the terrain around the rover, rows north
	// to south, with the rover drawn as a heading arrow. Empty until landing.
	LocalView []string `json:"local_view,omitempty"`

	// Commands lists the bound single-character command names.
	Commands []string `json:"commands"`
}

// ExecuteResult contains the result of interpreting one command string
type ExecuteResult struct {
	SessionID string `json:"session_id"`
	Commands  string `json:"commands"`

	// Summary
	Requested int  `json:"requested"`
	Executed  int  `json:"executed"`
	Stopped   bool `json:"stopped"`

	// Halt diagnostics, set only when Stopped
	HaltReason  string `json:"halt_reason,omitempty"` // unknown_command|dangerous_field
	HaltCommand string `json:"halt_command,omitempty"`
	HaltIndex   int    `json:"halt_index,omitempty"` // 1-based index of the halting command
	Truncated   bool   `json:"truncated,omitempty"`
	Limit       int    `json:"limit,omitempty"`

	// Start/end snapshot
	Start engine.Status `json:"start"`
	Rover engine.Status `json:"rover"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`
}

// StepInfo is a compact record for each command interpreted in the call
type StepInfo struct {
	Idx     int    `json:"idx"`
	Command string `json:"command"`
	From    string `json:"from"`
	To      string `json:"to"`
	Stopped bool   `json:"stopped,omitempty"`
}

// CommandRecord is one executed command string in a session's log
type CommandRecord struct {
	Seq        int       `json:"seq"`
	Commands   string    `json:"commands"`
	Executed   int       `json:"executed"`
	Before     string    `json:"before"`
	After      string    `json:"after"`
	Stopped    bool      `json:"stopped"`
	HaltReason string    `json:"halt_reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// LogOptions configures command log retrieval
type LogOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// LogResponse contains a paginated command log
type LogResponse struct {
	Records     []CommandRecord `json:"records"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	HasNext     bool            `json:"has_next"`
	HasPrevious bool            `json:"has_previous"`
}

// ConfigInfo provides information about a mission configuration
type ConfigInfo struct {
	Filename    string   `json:"filename"`
	ConfigID    string   `json:"config_id"` // The identifier to use for session creation
	Name        string   `json:"name"`      // Display name
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Hazards     int      `json:"hazards"`
	Commands    []string `json:"commands"`
}
