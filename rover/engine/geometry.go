package engine

import "fmt"

// Coordinates represents a cell on the planet grid. Values are unbounded
// signed integers; the grid has no intrinsic edges, sensors impose them.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the coordinates translated by the given delta.
func (c Coordinates) Add(delta Coordinates) Coordinates {
	return Coordinates{X: c.X + delta.X, Y: c.Y + delta.Y}
}

// String renders the coordinates as "(x, y)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is one of the four cardinal compass values. The zero value is
// North. No other direction values are representable through this package.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West

	directionCount = 4
)

// directionVectors maps each direction to its unit displacement.
var directionVectors = [directionCount]Coordinates{
	{X: 0, Y: 1},  // North
	{X: 1, Y: 0},  // East
	{X: 0, Y: -1}, // South
	{X: -1, Y: 0}, // West
}

var directionNames = [directionCount]string{"NORTH", "EAST", "SOUTH", "WEST"}

// Next returns the clockwise successor: N→E→S→W→N. Applying Next four times
// is the identity.
func (d Direction) Next() Direction {
	return (d + 1) % directionCount
}

// Vector returns the unit displacement for one forward step in direction d.
func (d Direction) Vector() Coordinates {
	return directionVectors[d%directionCount]
}

// String returns the display name, e.g. "NORTH".
func (d Direction) String() string {
	return directionNames[d%directionCount]
}

// ParseDirection converts a display name back into a Direction. It accepts
// exactly the four names produced by String.
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", name)
}
