package mission

import (
	"fmt"
	"unicode/utf8"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/sensors"
)

// Mission is a rover deployment configuration loaded from JSON.
type Mission struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Terrain     TerrainSpec           `json:"terrain"`
	Bounds      *sensors.Bounds       `json:"bounds,omitempty"`
	Commands    map[string]ActionSpec `json:"commands"`
	Landing     LandingSpec           `json:"landing"`
}

// TerrainSpec locates the hazard map on the grid. Layout rows run north to
// south and use '.' for safe cells and '#' for hazards.
type TerrainSpec struct {
	Origin engine.Coordinates `json:"origin"`
	Layout []string           `json:"layout"`
}

// LandingSpec is the default landing site offered to new sessions.
type LandingSpec struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// Validate checks the mission for correctness: required fields, a parseable
// terrain map, a non-empty command table of single-character names bound to
// known actions, a parseable landing heading, and a landing site that the
// configured sensors would accept.
func Validate(m *Mission) error {
	if m.Name == "" {
		return fmt.Errorf("mission validation: name is required")
	}
	if m.Description == "" {
		return fmt.Errorf("mission validation: description is required")
	}

	terrain, err := sensors.NewTerrain(m.Terrain.Origin, m.Terrain.Layout)
	if err != nil {
		return fmt.Errorf("mission validation: %w", err)
	}

	if len(m.Commands) == 0 {
		return fmt.Errorf("mission validation: command table is empty")
	}
	for name, spec := range m.Commands {
		if utf8.RuneCountInString(name) != 1 {
			return fmt.Errorf("mission validation: command name %q must be a single character", name)
		}
		if _, err := spec.build(); err != nil {
			return fmt.Errorf("mission validation: command %q: %w", name, err)
		}
	}

	if _, err := engine.ParseDirection(m.Landing.Direction); err != nil {
		return fmt.Errorf("mission validation: landing: %w", err)
	}

	if m.Bounds != nil {
		if _, err := sensors.NewBounds(m.Bounds.MinX, m.Bounds.MinY, m.Bounds.MaxX, m.Bounds.MaxY); err != nil {
			return fmt.Errorf("mission validation: %w", err)
		}
		if !m.Bounds.IsSafe(m.Landing.X, m.Landing.Y) {
			return fmt.Errorf("mission validation: landing site (%d, %d) is outside the operating bounds",
				m.Landing.X, m.Landing.Y)
		}
	}

	if !terrain.IsSafe(m.Landing.X, m.Landing.Y) {
		return fmt.Errorf("mission validation: landing site (%d, %d) is a mapped hazard",
			m.Landing.X, m.Landing.Y)
	}

	return nil
}

// Build compiles the mission into an unlanded rover: every command binding is
// programmed and the terrain sensor (plus bounds, when configured) is wired
// in. The mission should be validated first; Build re-checks only what it
// needs to construct.
func (m *Mission) Build() (*engine.Rover, error) {
	b := engine.NewBuilder()

	for name, spec := range m.Commands {
		r, _ := utf8.DecodeRuneInString(name)
		if r == utf8.RuneError {
			return nil, fmt.Errorf("build rover: invalid command name %q", name)
		}
		action, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("build rover: command %q: %w", name, err)
		}
		b.ProgramCommand(r, action)
	}

	terrain, err := m.BuildTerrain()
	if err != nil {
		return nil, fmt.Errorf("build rover: %w", err)
	}
	b.AddSensor(terrain)

	if m.Bounds != nil {
		bounds, err := sensors.NewBounds(m.Bounds.MinX, m.Bounds.MinY, m.Bounds.MaxX, m.Bounds.MaxY)
		if err != nil {
			return nil, fmt.Errorf("build rover: %w", err)
		}
		b.AddSensor(bounds)
	}

	return b.Build(), nil
}

// BuildTerrain parses the mission's terrain spec into a terrain sensor.
func (m *Mission) BuildTerrain() (*sensors.Terrain, error) {
	return sensors.NewTerrain(m.Terrain.Origin, m.Terrain.Layout)
}

// LandingSite returns the default landing coordinates and heading.
func (m *Mission) LandingSite() (engine.Coordinates, engine.Direction, error) {
	direction, err := engine.ParseDirection(m.Landing.Direction)
	if err != nil {
		return engine.Coordinates{}, engine.North, fmt.Errorf("landing site: %w", err)
	}
	return engine.Coordinates{X: m.Landing.X, Y: m.Landing.Y}, direction, nil
}

// HasCommand reports whether the single-character command name is bound.
func (m *Mission) HasCommand(name rune) bool {
	_, ok := m.Commands[string(name)]
	return ok
}
