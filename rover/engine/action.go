package engine

// Action is a command the rover can execute against its position. Rotations
// cannot fail; moves return ErrDangerousField when the candidate position is
// rejected by any sensor, leaving the position untouched.
type Action interface {
	Execute(p *Position, sensors []Sensor) error
}

// RotateLeft returns the action that rotates the heading counter-clockwise.
// It is derived as three clockwise successor steps, the unique inverse of one.
func RotateLeft() Action {
	return rotateLeft{}
}

// RotateRight returns the action that rotates the heading clockwise.
func RotateRight() Action {
	return rotateRight{}
}

// MoveForward returns the action that advances one cell along the heading,
// subject to sensor approval of the target cell.
func MoveForward() Action {
	return moveForward{}
}

// MoveBackward returns the action that retreats one cell opposite the heading
// without changing it, subject to sensor approval of the target cell.
func MoveBackward() Action {
	return moveBackward{}
}

// Compose returns an action that applies the given actions in order against
// the same position. It fails fast: the first child error stops the sequence
// and the position keeps the effects of the children already applied.
func Compose(actions ...Action) Action {
	return compose{actions: actions}
}

type rotateLeft struct{}

func (rotateLeft) Execute(p *Position, _ []Sensor) error {
	p.TurnRight()
	p.TurnRight()
	p.TurnRight()
	return nil
}

type rotateRight struct{}

func (rotateRight) Execute(p *Position, _ []Sensor) error {
	p.TurnRight()
	return nil
}

type moveForward struct{}

func (moveForward) Execute(p *Position, sensors []Sensor) error {
	candidate := *p
	candidate.Advance()
	return commitIfSafe(p, candidate, sensors)
}

type moveBackward struct{}

func (moveBackward) Execute(p *Position, sensors []Sensor) error {
	// Flip 180, advance, flip back: net effect is one step against the
	// heading with the heading restored. Rotation never trips a sensor, so
	// this shares the exact validation path with moveForward.
	candidate := *p
	candidate.TurnRight()
	candidate.TurnRight()
	candidate.Advance()
	candidate.TurnRight()
	candidate.TurnRight()
	return commitIfSafe(p, candidate, sensors)
}

// commitIfSafe overwrites p with candidate only after every sensor, polled in
// list order, accepts the candidate cell. Any rejection leaves p untouched.
func commitIfSafe(p *Position, candidate Position, sensors []Sensor) error {
	for _, sensor := range sensors {
		if !candidate.SafeFor(sensor) {
			return ErrDangerousField
		}
	}
	*p = candidate
	return nil
}

type compose struct {
	actions []Action
}

func (c compose) Execute(p *Position, sensors []Sensor) error {
	for _, action := range c.actions {
		if err := action.Execute(p, sensors); err != nil {
			return err
		}
	}
	return nil
}
