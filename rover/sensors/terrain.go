package sensors

import (
	"fmt"

	"github.com/roverops/mission-control/rover/engine"
)

// Terrain layout characters.
const (
	SafeCell   = '.'
	HazardCell = '#'
)

// Terrain is a sensor backed by a rectangular hazard map. The map covers a
// window of the grid anchored at an origin; everything outside the window is
// considered safe (pair with Bounds to fence the rover in).
type Terrain struct {
	origin  engine.Coordinates // coordinate of the bottom-left mapped cell
	width   int
	height  int
	hazards map[engine.Coordinates]bool
}

// NewTerrain parses layout rows into a terrain sensor. Rows are listed north
// to south, so the last row sits at the origin's Y. Rows must be non-empty,
// rectangular, and contain only '.' and '#'.
func NewTerrain(origin engine.Coordinates, layout []string) (*Terrain, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("terrain: layout is empty")
	}

	width := len(layout[0])
	hazards := make(map[engine.Coordinates]bool)
	height := len(layout)

	for i, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("terrain: row %d has width %d, want %d", i+1, len(row), width)
		}
		for j, ch := range row {
			switch ch {
			case SafeCell:
			case HazardCell:
				// Row 0 is the northernmost row.
				cell := engine.Coordinates{
					X: origin.X + j,
					Y: origin.Y + (height - 1 - i),
				}
				hazards[cell] = true
			default:
				return nil, fmt.Errorf("terrain: invalid character %q at row %d, col %d", ch, i+1, j+1)
			}
		}
	}

	return &Terrain{
		origin:  origin,
		width:   width,
		height:  height,
		hazards: hazards,
	}, nil
}

// IsSafe reports false only for mapped hazard cells.
func (t *Terrain) IsSafe(x, y int) bool {
	return !t.hazards[engine.Coordinates{X: x, Y: y}]
}

// Contains reports whether (x, y) lies inside the mapped window.
func (t *Terrain) Contains(x, y int) bool {
	return x >= t.origin.X && x < t.origin.X+t.width &&
		y >= t.origin.Y && y < t.origin.Y+t.height
}

// CellAt returns the layout character for (x, y). Cells outside the mapped
// window report as safe.
func (t *Terrain) CellAt(x, y int) rune {
	if t.hazards[engine.Coordinates{X: x, Y: y}] {
		return HazardCell
	}
	return SafeCell
}

// Origin returns the coordinate of the bottom-left mapped cell.
func (t *Terrain) Origin() engine.Coordinates {
	return t.origin
}

// Size returns the mapped window's width and height.
func (t *Terrain) Size() (width, height int) {
	return t.width, t.height
}

// HazardCount returns the number of mapped hazard cells.
func (t *Terrain) HazardCount() int {
	return len(t.hazards)
}
