package mission

import (
	"encoding/json"
	"testing"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/sensors"
)

func validMission() *Mission {
	return &Mission{
		Name:        "trial",
		Description: "small proving ground",
		Terrain: TerrainSpec{
			Origin: engine.Coordinates{X: -2, Y: -2},
			Layout: []string{
				".....",
				"..#..",
				".....",
				".....",
				".....",
			},
		},
		Bounds: &sensors.Bounds{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2},
		Commands: map[string]ActionSpec{
			"F": {Name: ActionMoveForward},
			"B": {Name: ActionMoveBackward},
			"L": {Name: ActionRotateLeft},
			"R": {Name: ActionRotateRight},
			"U": {Sequence: []ActionSpec{{Name: ActionRotateRight}, {Name: ActionRotateRight}}},
		},
		Landing: LandingSpec{X: 0, Y: 0, Direction: "EAST"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validMission()); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Mission)
	}{
		{"missing name", func(m *Mission) { m.Name = "" }},
		{"missing description", func(m *Mission) { m.Description = "" }},
		{"ragged terrain", func(m *Mission) { m.Terrain.Layout = []string{"..", "..."} }},
		{"empty commands", func(m *Mission) { m.Commands = nil }},
		{"multi-rune command", func(m *Mission) { m.Commands["FF"] = ActionSpec{Name: ActionMoveForward} }},
		{"unknown action", func(m *Mission) { m.Commands["X"] = ActionSpec{Name: "teleport"} }},
		{"bad landing direction", func(m *Mission) { m.Landing.Direction = "UP" }},
		{"inverted bounds", func(m *Mission) { m.Bounds = &sensors.Bounds{MinX: 3, MaxX: -3} }},
		{"landing outside bounds", func(m *Mission) { m.Landing.X = 99 }},
		{"landing on hazard", func(m *Mission) {
			m.Bounds = nil
			m.Landing.X = 0
			m.Landing.Y = 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMission()
			tt.mutate(m)
			if err := Validate(m); err == nil {
				t.Error("Validate succeeded, want error")
			}
		})
	}
}

func TestBuild_ProgramsCommandsAndSensors(t *testing.T) {
	rover, err := validMission().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rover.Land(engine.Coordinates{X: 0, Y: 0}, engine.East)
	if err := rover.Execute("FFU"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := rover.String(); got != "(2, 0) WEST" {
		t.Errorf("after FFU: %q, want %q", got, "(2, 0) WEST")
	}

	// One more step east would leave the bounds rectangle.
	if err := rover.Execute("B"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := rover.String(); got != "(2, 0) WEST stopped" {
		t.Errorf("after B at the fence: %q, want %q", got, "(2, 0) WEST stopped")
	}
}

func TestBuild_TerrainBlocksHazard(t *testing.T) {
	rover, err := validMission().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rover.Land(engine.Coordinates{X: 0, Y: 0}, engine.North)
	if err := rover.Execute("F"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := rover.String(); got != "(0, 0) NORTH stopped" {
		t.Errorf("move into hazard: %q, want %q", got, "(0, 0) NORTH stopped")
	}
}

func TestLandingSite(t *testing.T) {
	coords, direction, err := validMission().LandingSite()
	if err != nil {
		t.Fatalf("LandingSite failed: %v", err)
	}
	if coords != (engine.Coordinates{X: 0, Y: 0}) || direction != engine.East {
		t.Errorf("LandingSite = %v %v, want (0, 0) EAST", coords, direction)
	}
}

func TestActionSpec_JSONRoundTrip(t *testing.T) {
	raw := `{
		"F": "move_forward",
		"U": ["rotate_right", "rotate_right"],
		"Z": ["move_forward", ["rotate_left", "move_forward"]]
	}`

	var commands map[string]ActionSpec
	if err := json.Unmarshal([]byte(raw), &commands); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if commands["F"].Name != ActionMoveForward {
		t.Errorf("F = %+v, want bare move_forward", commands["F"])
	}
	if len(commands["U"].Sequence) != 2 {
		t.Errorf("U sequence length = %d, want 2", len(commands["U"].Sequence))
	}
	if len(commands["Z"].Sequence) != 2 || len(commands["Z"].Sequence[1].Sequence) != 2 {
		t.Errorf("Z did not preserve nesting: %+v", commands["Z"])
	}

	out, err := json.Marshal(commands["U"])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `["rotate_right","rotate_right"]` {
		t.Errorf("Marshal(U) = %s", out)
	}
}

func TestActionSpec_Invalid(t *testing.T) {
	var spec ActionSpec
	if err := json.Unmarshal([]byte(`42`), &spec); err == nil {
		t.Error("expected error for numeric action spec")
	}

	m := validMission()
	m.Commands["E"] = ActionSpec{}
	if err := Validate(m); err == nil {
		t.Error("expected error for empty action spec")
	}
}

func TestActionSpec_EmptySequenceIsNoOp(t *testing.T) {
	m := validMission()
	m.Commands["N"] = ActionSpec{Sequence: []ActionSpec{}}
	if err := Validate(m); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	rover, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rover.Land(engine.Coordinates{}, engine.South)
	if err := rover.Execute("N"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := rover.String(); got != "(0, 0) SOUTH" {
		t.Errorf("no-op command moved the rover: %q", got)
	}
}
