package engine

import "fmt"

// Status is a serializable snapshot of a rover's mutable state, used by the
// session layer for reporting and persistence. The command table and sensors
// are not part of the snapshot; they are rebuilt from the mission config.
type Status struct {
	Landed  bool   `json:"landed"`
	Stopped bool   `json:"stopped"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
	Heading string `json:"heading,omitempty"`
	Display string `json:"display"`
}

// Status returns a snapshot of the rover's current state. Coordinates and
// heading are only meaningful when Landed is true.
func (r *Rover) Status() Status {
	st := Status{
		Landed:  r.landed,
		Stopped: r.stopped,
		Display: r.String(),
	}
	if r.landed {
		st.X = r.position.Coords.X
		st.Y = r.position.Coords.Y
		st.Heading = r.position.Heading.String()
	}
	return st
}

// SetStatus restores a previously captured snapshot, used when loading a
// persisted session. Restoring an unlanded snapshot resets the rover to its
// pre-landing state.
func (r *Rover) SetStatus(st Status) error {
	if !st.Landed {
		r.landed = false
		r.stopped = false
		r.position = Position{}
		return nil
	}

	heading, err := ParseDirection(st.Heading)
	if err != nil {
		return fmt.Errorf("restore rover state: %w", err)
	}
	r.position = Position{Coords: Coordinates{X: st.X, Y: st.Y}, Heading: heading}
	r.landed = true
	r.stopped = st.Stopped
	return nil
}
