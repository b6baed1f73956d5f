package engine

import "fmt"

// Position combines grid coordinates with a heading. It is the state the
// actions mutate; the Rover owns exactly one.
type Position struct {
	Coords  Coordinates
	Heading Direction
}

// TurnRight rotates the heading one successor step clockwise.
func (p *Position) TurnRight() {
	p.Heading = p.Heading.Next()
}

// Advance translates the coordinates one step along the current heading.
// It performs the raw geometric update only; safety is the caller's problem.
func (p *Position) Advance() {
	p.Coords = p.Coords.Add(p.Heading.Vector())
}

// SafeFor reports the sensor's verdict for the current coordinates.
func (p Position) SafeFor(sensor Sensor) bool {
	return sensor.IsSafe(p.Coords.X, p.Coords.Y)
}

// String renders the position as "(x, y) DIRNAME".
func (p Position) String() string {
	return fmt.Sprintf("%s %s", p.Coords, p.Heading)
}
