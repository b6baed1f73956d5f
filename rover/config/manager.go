package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/sensors"
	"github.com/roverops/mission-control/rover/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles mission configuration loading and caching
type Manager struct {
	configDir      string
	defaultMission *mission.Mission
	missions       map[string]*mission.Mission
	mu             sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		missions:  make(map[string]*mission.Mission),
	}
	m.loadDefaultMission()

	return m, nil
}

// LoadConfig loads a mission configuration by name
func (m *Manager) LoadConfig(name string) (*mission.Mission, error) {
	m.mu.RLock()
	if mis, exists := m.missions[name]; exists {
		m.mu.RUnlock()
		return mis, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if mis, exists := m.missions[name]; exists {
		return mis, nil
	}

	mis, err := m.readMissionFile(name)
	if err != nil {
		return nil, err
	}

	m.missions[name] = mis
	return mis, nil
}

// readMissionFile reads and validates a mission file without touching the
// cache; callers hold whatever locking they need.
func (m *Manager) readMissionFile(name string) (*mission.Mission, error) {
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var mis mission.Mission
	if err := json.Unmarshal(data, &mis); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := mission.Validate(&mis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &mis, nil
}

// ListConfigs returns information about all available mission configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		mis, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, describeMission(entry.Name(), name, mis))
	}

	return configs, nil
}

// GetDefault returns the default mission configuration
func (m *Manager) GetDefault() *mission.Mission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultMission
}

// SetDefault sets the default mission configuration by name
func (m *Manager) SetDefault(name string) error {
	mis, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMission = mis
	return nil
}

// RefreshCache drops all cached missions and re-resolves the default, so
// edited mission files take effect without a restart.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.missions = make(map[string]*mission.Mission)
	m.mu.Unlock()

	m.loadDefaultMission()
	return nil
}

// loadDefaultMission resolves the default mission: "training" when present,
// otherwise the first valid config file, otherwise a built-in minimal one.
func (m *Manager) loadDefaultMission() {
	mis, err := m.LoadConfig("training")
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr == nil && len(configs) > 0 {
			mis, err = m.LoadConfig(configs[0].ConfigID)
		}
		if mis == nil || err != nil {
			mis = createMinimalMission()
		}
	}

	m.mu.Lock()
	m.defaultMission = mis
	m.mu.Unlock()
}

// SaveConfig validates and saves a mission configuration to disk
func (m *Manager) SaveConfig(name string, mis *mission.Mission) error {
	if err := mission.Validate(mis); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(mis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.missions[name] = mis
	m.mu.Unlock()

	return nil
}

// describeMission builds the ConfigInfo summary for listings
func describeMission(filename, configID string, mis *mission.Mission) *service.ConfigInfo {
	info := &service.ConfigInfo{
		Filename:    filename,
		ConfigID:    configID, // The identifier to use for session creation
		Name:        mis.Name,
		Description: mis.Description,
	}

	if terrain, err := mis.BuildTerrain(); err == nil {
		info.Width, info.Height = terrain.Size()
		info.Hazards = terrain.HazardCount()
	}

	names := make([]string, 0, len(mis.Commands))
	for name := range mis.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	info.Commands = names

	return info
}

// createMinimalMission creates a minimal valid mission configuration
func createMinimalMission() *mission.Mission {
	return &mission.Mission{
		Name:        "default",
		Description: "Default minimal mission",
		Terrain: mission.TerrainSpec{
			Origin: engine.Coordinates{X: -2, Y: -2},
			Layout: []string{
				".....",
				".....",
				".....",
				".....",
				".....",
			},
		},
		Bounds: &sensors.Bounds{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2},
		Commands: map[string]mission.ActionSpec{
			"F": {Name: mission.ActionMoveForward},
			"B": {Name: mission.ActionMoveBackward},
			"L": {Name: mission.ActionRotateLeft},
			"R": {Name: mission.ActionRotateRight},
		},
		Landing: mission.LandingSpec{X: 0, Y: 0, Direction: "NORTH"},
	}
}
