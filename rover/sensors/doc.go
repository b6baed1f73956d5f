// Package sensors provides concrete safety sensors for the rover engine.
//
// The engine only knows the Sensor predicate; this package supplies the
// implementations mission configs wire in:
//   - Terrain: a hazard map parsed from layout strings
//   - Bounds: an inclusive rectangular operating area
//   - Always: a constant verdict, mainly for tests and demos
//
// Sensors are immutable after construction and safe to share across any
// number of rovers.
package sensors
