// Package engine provides the core control logic for a programmable rover.
//
// The engine package implements:
//   - Grid coordinates and the four-point compass with its cyclic successor
//   - Position state combining a coordinate with a heading
//   - Actions: atomic rotations and moves, plus ordered composition
//   - Sensor-gated move validation with per-step atomicity
//   - The Rover state machine interpreting single-character command strings
//
// Core Types:
//
// Rover is the state machine. It is assembled through Builder, which fixes the
// command table (single character to Action) and the ordered sensor list for
// the rover's whole life. Sensor is the only external capability the core
// depends on; concrete sensors live outside this package.
//
// Usage:
//
//	rover := engine.NewBuilder().
//		ProgramCommand('F', engine.MoveForward()).
//		ProgramCommand('R', engine.RotateRight()).
//		AddSensor(terrain).
//		Build()
//
//	rover.Land(engine.Coordinates{X: 0, Y: 0}, engine.East)
//	if err := rover.Execute("FFR"); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(rover) // "(2, 0) SOUTH" or "... stopped" if halted early
//
// Execution Semantics:
//
// A command string is interpreted left to right. An unbound character or a
// move into terrain any sensor reports unsafe halts interpretation and raises
// the rover's stopped flag; the rover keeps the last safely reached position.
// Calling Execute before Land fails with ErrRoverDidNotLand.
package engine
