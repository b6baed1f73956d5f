package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDangerousField is returned by move actions when a sensor rejects the
	// candidate cell. The rover absorbs it into the stopped flag; it never
	// crosses the rover's public boundary.
	ErrDangerousField = errors.New("dangerous field")

	// ErrRoverDidNotLand is returned by Execute when the rover has not landed
	// yet. It is a hard precondition violation and propagates to the caller.
	ErrRoverDidNotLand = errors.New("rover did not land")
)

// Rover interprets command strings against its position, one character at a
// time, with stop-on-failure semantics. The command table and sensor list are
// fixed at construction; only Land and Execute mutate the rover.
//
// A Rover is not safe for concurrent use. Sensors are shared read-only
// capabilities and may back multiple rovers.
type Rover struct {
	landed   bool
	stopped  bool
	position Position
	commands map[rune]Action
	sensors  []Sensor
}

// Land places the rover at the given coordinates and heading. It may be
// called in any state; it clears the stopped flag.
func (r *Rover) Land(coords Coordinates, direction Direction) {
	r.position = Position{Coords: coords, Heading: direction}
	r.landed = true
	r.stopped = false
}

// Execute interprets the command string left to right. An unbound character
// or a move rejected by a sensor sets the stopped flag and halts
// interpretation; the rover keeps the last safely reached position. Both
// conditions are reported only through the stopped flag, not as errors.
//
// Calling Execute before Land fails with ErrRoverDidNotLand and changes
// nothing. Any other action error is outside the contract and propagates.
func (r *Rover) Execute(commands string) error {
	if !r.landed {
		return ErrRoverDidNotLand
	}

	r.stopped = false
	for _, name := range commands {
		action, ok := r.commands[name]
		if !ok {
			r.stopped = true
			return nil
		}
		if err := action.Execute(&r.position, r.sensors); err != nil {
			if errors.Is(err, ErrDangerousField) {
				r.stopped = true
				return nil
			}
			return err
		}
	}
	return nil
}

// Landed reports whether Land has been called.
func (r *Rover) Landed() bool {
	return r.landed
}

// Stopped reports whether the most recent Execute halted early.
func (r *Rover) Stopped() bool {
	return r.stopped
}

// Position returns the current position. The second result is false before
// landing, when the position is meaningless.
func (r *Rover) Position() (Position, bool) {
	return r.position, r.landed
}

// String renders "unknown" before landing, otherwise the position display
// suffixed with " stopped" when the stopped flag is set.
func (r *Rover) String() string {
	if !r.landed {
		return "unknown"
	}
	if r.stopped {
		return fmt.Sprintf("%s stopped", r.position)
	}
	return r.position.String()
}
