package sensors

import (
	"testing"

	"github.com/roverops/mission-control/rover/engine"
)

func TestNewTerrain_ParsesHazards(t *testing.T) {
	// Rows run north to south; the last row sits on the origin's Y.
	terrain, err := NewTerrain(engine.Coordinates{X: 0, Y: 0}, []string{
		"..#",
		"...",
		"#..",
	})
	if err != nil {
		t.Fatalf("NewTerrain failed: %v", err)
	}

	if terrain.HazardCount() != 2 {
		t.Errorf("HazardCount = %d, want 2", terrain.HazardCount())
	}
	if terrain.IsSafe(0, 0) {
		t.Error("expected hazard at (0, 0)")
	}
	if terrain.IsSafe(2, 2) {
		t.Error("expected hazard at (2, 2)")
	}
	if !terrain.IsSafe(1, 1) {
		t.Error("expected (1, 1) safe")
	}
}

func TestTerrain_OffsetOrigin(t *testing.T) {
	terrain, err := NewTerrain(engine.Coordinates{X: -2, Y: 5}, []string{
		"#.",
		"..",
	})
	if err != nil {
		t.Fatalf("NewTerrain failed: %v", err)
	}

	if terrain.IsSafe(-2, 6) {
		t.Error("expected hazard at (-2, 6)")
	}
	if !terrain.IsSafe(-2, 5) {
		t.Error("expected (-2, 5) safe")
	}
}

func TestTerrain_OutsideWindowIsSafe(t *testing.T) {
	terrain, err := NewTerrain(engine.Coordinates{}, []string{"#"})
	if err != nil {
		t.Fatalf("NewTerrain failed: %v", err)
	}

	if !terrain.IsSafe(100, -100) {
		t.Error("cells outside the mapped window must be safe")
	}
	if terrain.Contains(100, -100) {
		t.Error("Contains reported an outside cell")
	}
	if !terrain.Contains(0, 0) {
		t.Error("Contains missed the only mapped cell")
	}
}

func TestTerrain_CellAt(t *testing.T) {
	terrain, _ := NewTerrain(engine.Coordinates{}, []string{
		".#",
		"..",
	})

	if terrain.CellAt(1, 1) != HazardCell {
		t.Error("expected hazard char at (1, 1)")
	}
	if terrain.CellAt(0, 0) != SafeCell {
		t.Error("expected safe char at (0, 0)")
	}
}

func TestNewTerrain_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
	}{
		{"empty", nil},
		{"ragged", []string{"..", "..."}},
		{"bad char", []string{".X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTerrain(engine.Coordinates{}, tt.layout); err == nil {
				t.Errorf("NewTerrain(%v) succeeded, want error", tt.layout)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	bounds, err := NewBounds(-2, -2, 2, 2)
	if err != nil {
		t.Fatalf("NewBounds failed: %v", err)
	}

	tests := []struct {
		x, y int
		safe bool
	}{
		{0, 0, true},
		{-2, -2, true},
		{2, 2, true},
		{3, 0, false},
		{0, -3, false},
	}
	for _, tt := range tests {
		if got := bounds.IsSafe(tt.x, tt.y); got != tt.safe {
			t.Errorf("IsSafe(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.safe)
		}
	}
}

func TestNewBounds_Inverted(t *testing.T) {
	if _, err := NewBounds(1, 0, 0, 5); err == nil {
		t.Error("expected error for inverted rectangle")
	}
}

func TestAlways(t *testing.T) {
	if !Always(true).IsSafe(9, 9) {
		t.Error("Always(true) reported unsafe")
	}
	if Always(false).IsSafe(0, 0) {
		t.Error("Always(false) reported safe")
	}
}

func TestTerrain_GatesRoverMoves(t *testing.T) {
	terrain, err := NewTerrain(engine.Coordinates{X: 0, Y: 0}, []string{
		".#",
		"..",
	})
	if err != nil {
		t.Fatalf("NewTerrain failed: %v", err)
	}

	rover := engine.NewBuilder().
		ProgramCommand('F', engine.MoveForward()).
		ProgramCommand('R', engine.RotateRight()).
		AddSensor(terrain).
		Build()
	rover.Land(engine.Coordinates{X: 1, Y: 0}, engine.North)

	// (1, 1) is a hazard: the forward move must stop the rover in place.
	if err := rover.Execute("F"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := rover.String(); got != "(1, 0) NORTH stopped" {
		t.Errorf("String() = %q, want %q", got, "(1, 0) NORTH stopped")
	}
}
