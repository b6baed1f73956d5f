package mission

import (
	"encoding/json"
	"fmt"

	"github.com/roverops/mission-control/rover/engine"
)

// Action names accepted in mission command tables.
const (
	ActionMoveForward  = "move_forward"
	ActionMoveBackward = "move_backward"
	ActionRotateLeft   = "rotate_left"
	ActionRotateRight  = "rotate_right"
)

// ActionSpec is one command binding. In JSON it is either a bare action name
// ("move_forward") or an array of specs that compiles to a composite action
// executed left to right.
type ActionSpec struct {
	Name     string
	Sequence []ActionSpec
}

// UnmarshalJSON accepts a string or an array; arrays may nest.
func (a *ActionSpec) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		a.Name = name
		a.Sequence = nil
		return nil
	}

	var seq []ActionSpec
	if err := json.Unmarshal(data, &seq); err != nil {
		return fmt.Errorf("action spec: expected a name or a sequence: %w", err)
	}
	a.Name = ""
	a.Sequence = seq
	if a.Sequence == nil {
		a.Sequence = []ActionSpec{}
	}
	return nil
}

// MarshalJSON writes back the same shape the spec was read from.
func (a ActionSpec) MarshalJSON() ([]byte, error) {
	if a.Sequence != nil {
		return json.Marshal(a.Sequence)
	}
	return json.Marshal(a.Name)
}

// String renders the spec for logs and CLI output.
func (a ActionSpec) String() string {
	if a.Sequence == nil {
		return a.Name
	}
	out := "["
	for i, child := range a.Sequence {
		if i > 0 {
			out += ", "
		}
		out += child.String()
	}
	return out + "]"
}

func (a ActionSpec) build() (engine.Action, error) {
	if a.Sequence != nil {
		children := make([]engine.Action, 0, len(a.Sequence))
		for _, child := range a.Sequence {
			action, err := child.build()
			if err != nil {
				return nil, err
			}
			children = append(children, action)
		}
		return engine.Compose(children...), nil
	}

	switch a.Name {
	case ActionMoveForward:
		return engine.MoveForward(), nil
	case ActionMoveBackward:
		return engine.MoveBackward(), nil
	case ActionRotateLeft:
		return engine.RotateLeft(), nil
	case ActionRotateRight:
		return engine.RotateRight(), nil
	case "":
		return nil, fmt.Errorf("empty action spec")
	default:
		return nil, fmt.Errorf("unknown action %q", a.Name)
	}
}
