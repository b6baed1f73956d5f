package engine

// Sensor is the safety capability the core consults before committing a move.
// Implementations must be side-effect free from the engine's point of view;
// the same sensor instance may back any number of rovers concurrently.
type Sensor interface {
	IsSafe(x, y int) bool
}

// SensorFunc adapts a plain predicate into a Sensor.
type SensorFunc func(x, y int) bool

// IsSafe calls f(x, y).
func (f SensorFunc) IsSafe(x, y int) bool {
	return f(x, y)
}
