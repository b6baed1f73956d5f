package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/sensors"
)

// roverServiceImpl implements the RoverService interface
type roverServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewRoverService creates a new rover service instance
func NewRoverService(sessions SessionManager, configs ConfigManager) RoverService {
	return &roverServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given mission name, used for consistent API responses
func (s *roverServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new rover session
func (s *roverServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var m *mission.Mission
	var err error
	if configName != "" {
		m, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		m = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", m)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(m.Name)
	}

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Rover:          sess.Rover.Status(),
		Mission:        sess.Mission,
	}, nil
}

// GetSession retrieves session information
func (s *roverServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Mission.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Rover:          sess.Rover.Status(),
		Mission:        sess.Mission,
	}, nil
}

// ListSessions returns all active sessions
func (s *roverServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Mission.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			Rover:          sess.Rover.Status(),
			Mission:        sess.Mission,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *roverServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Land places the session's rover at the given coordinates facing the given
// direction. Landing is unconditional: sensors gate moves, not landings, so
// relanding a stopped rover is the supported recovery path.
func (s *roverServiceImpl) Land(ctx context.Context, sessionID string, x, y int, direction string) (*StatusReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	heading, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, fmt.Errorf("land: %w", err)
	}
	sess.Rover.Land(engine.Coordinates{X: x, Y: y}, heading)

	// Auto-save session after landing
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after landing: %v\n", sessionID, err)
	}

	return buildStatusReport(sess), nil
}

// Execute interprets a command string character by character, recording a
// per-step trace. Interpretation halts on the first unbound command or
// sensor-rejected move; the halt is reported in the result, not as an error.
func (s *roverServiceImpl) Execute(ctx context.Context, sessionID, commands string) (*ExecuteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &ExecuteResult{
		SessionID: sess.ID,
		Commands:  commands,
		Requested: utf8.RuneCountInString(commands),
		Start:     sess.Rover.Status(),
	}

	// Limit command strings to prevent abuse
	runes := []rune(commands)
	if len(runes) > MaxCommandsPerCall {
		result.Truncated = true
		result.Limit = MaxCommandsPerCall
		runes = runes[:MaxCommandsPerCall]
	}

	if len(runes) == 0 {
		// An empty string is still an interpretation pass: it requires a
		// landed rover and clears the stopped flag.
		if err := sess.Rover.Execute(""); err != nil {
			return nil, fmt.Errorf("execute: %w", err)
		}
		result.Rover = sess.Rover.Status()
		appendRecord(sess, result)
		s.saveSession(sessionID, "execute")
		return result, nil
	}

	for i, cmd := range runes {
		before := sess.Rover.String()
		if err := sess.Rover.Execute(string(cmd)); err != nil {
			return nil, fmt.Errorf("execute: %w", err)
		}
		after := sess.Rover.String()
		stopped := sess.Rover.Stopped()

		result.Steps = append(result.Steps, StepInfo{
			Idx:     i + 1,
			Command: string(cmd),
			From:    before,
			To:      after,
			Stopped: stopped,
		})

		if stopped {
			result.Stopped = true
			result.HaltCommand = string(cmd)
			result.HaltIndex = i + 1
			if sess.Mission != nil && !sess.Mission.HasCommand(cmd) {
				result.HaltReason = HaltUnknownCommand
			} else {
				result.HaltReason = HaltDangerousField
			}
			break
		}
		result.Executed++
	}

	result.Rover = sess.Rover.Status()
	appendRecord(sess, result)
	s.saveSession(sessionID, "execute")

	return result, nil
}

// Status retrieves the current rover status
func (s *roverServiceImpl) Status(ctx context.Context, sessionID string) (*StatusReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return buildStatusReport(sess), nil
}

// GetCommandLog returns the paginated command log
func (s *roverServiceImpl) GetCommandLog(ctx context.Context, sessionID string, opts LogOptions) (*LogResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	log := sess.Log
	total := len(log)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var records []CommandRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			records = append(records, log[i])
		}
	} else {
		if start < total {
			records = log[start:end]
		}
	}

	if records == nil {
		records = []CommandRecord{}
	}

	return &LogResponse{
		Records:     records,
		Total:       total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available mission configurations
func (s *roverServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific mission configuration
func (s *roverServiceImpl) LoadConfig(ctx context.Context, configName string) (*mission.Mission, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a mission configuration to disk
func (s *roverServiceImpl) SaveConfig(ctx context.Context, configName string, m *mission.Mission) error {
	return s.configs.SaveConfig(configName, m)
}

func (s *roverServiceImpl) saveSession(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", sessionID, op, err)
	}
}

func appendRecord(sess *Session, result *ExecuteResult) {
	sess.Log = append(sess.Log, CommandRecord{
		Seq:        len(sess.Log) + 1,
		Commands:   result.Commands,
		Executed:   result.Executed,
		Before:     result.Start.Display,
		After:      result.Rover.Display,
		Stopped:    result.Stopped,
		HaltReason: result.HaltReason,
		Timestamp:  time.Now(),
	})
}

func buildStatusReport(sess *Session) *StatusReport {
	st := sess.Rover.Status()
	return &StatusReport{
		SessionID: sess.ID,
		Rover:     st,
		LocalView: buildLocalView(sess.Mission, st),
		Commands:  commandNames(sess.Mission),
	}
}

func commandNames(m *mission.Mission) []string {
	if m == nil {
		return []string{}
	}
	names := make([]string, 0, len(m.Commands))
	for name := range m.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var headingArrows = map[string]string{
	"NORTH": "^",
	"EAST":  ">",
	"SOUTH": "v",
	"WEST":  "<",
}

// buildLocalView renders a 3x3 terrain window around the rover, rows north to
// south, with the rover drawn as a heading arrow.
func buildLocalView(m *mission.Mission, st engine.Status) []string {
	if m == nil || !st.Landed {
		return nil
	}
	terrain, err := m.BuildTerrain()
	if err != nil {
		return nil
	}

	arrow, ok := headingArrows[st.Heading]
	if !ok {
		arrow = "R"
	}

	lines := make([]string, 0, 3)
	for dy := 1; dy >= -1; dy-- {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				row.WriteString(arrow)
				continue
			}
			x, y := st.X+dx, st.Y+dy
			safe := terrain.IsSafe(x, y)
			if safe && m.Bounds != nil {
				safe = m.Bounds.IsSafe(x, y)
			}
			if safe {
				row.WriteRune(sensors.SafeCell)
			} else {
				row.WriteRune(sensors.HazardCell)
			}
		}
		lines = append(lines, row.String())
	}
	return lines
}
