package engine

import (
	"errors"
	"testing"
)

var (
	allSafe   = SensorFunc(func(x, y int) bool { return true })
	allUnsafe = SensorFunc(func(x, y int) bool { return false })
)

func TestRotate_LeftThenRightIsIdentity(t *testing.T) {
	for _, d := range []Direction{North, East, South, West} {
		p := Position{Heading: d}
		if err := RotateLeft().Execute(&p, nil); err != nil {
			t.Fatalf("RotateLeft failed: %v", err)
		}
		if err := RotateRight().Execute(&p, nil); err != nil {
			t.Fatalf("RotateRight failed: %v", err)
		}
		if p.Heading != d {
			t.Errorf("left then right from %s ended at %s", d, p.Heading)
		}

		p = Position{Heading: d}
		RotateRight().Execute(&p, nil)
		RotateLeft().Execute(&p, nil)
		if p.Heading != d {
			t.Errorf("right then left from %s ended at %s", d, p.Heading)
		}
	}
}

func TestMove_ForwardThenBackwardReturnsHome(t *testing.T) {
	sensors := []Sensor{allSafe}
	for _, d := range []Direction{North, East, South, West} {
		p := Position{Coords: Coordinates{X: 2, Y: -3}, Heading: d}
		start := p

		if err := MoveForward().Execute(&p, sensors); err != nil {
			t.Fatalf("MoveForward failed: %v", err)
		}
		if err := MoveBackward().Execute(&p, sensors); err != nil {
			t.Fatalf("MoveBackward failed: %v", err)
		}
		if p != start {
			t.Errorf("forward then backward from %v ended at %v", start, p)
		}
	}
}

func TestMoveBackward_KeepsHeading(t *testing.T) {
	p := Position{Coords: Coordinates{X: 0, Y: 0}, Heading: East}
	if err := MoveBackward().Execute(&p, []Sensor{allSafe}); err != nil {
		t.Fatalf("MoveBackward failed: %v", err)
	}
	if p.Heading != East {
		t.Errorf("heading changed to %s", p.Heading)
	}
	if p.Coords != (Coordinates{X: -1, Y: 0}) {
		t.Errorf("coordinates = %v, want (-1, 0)", p.Coords)
	}
}

func TestMove_UnsafeLeavesPositionUntouched(t *testing.T) {
	for name, action := range map[string]Action{"forward": MoveForward(), "backward": MoveBackward()} {
		p := Position{Coords: Coordinates{X: 5, Y: 5}, Heading: North}
		start := p

		err := action.Execute(&p, []Sensor{allSafe, allUnsafe})
		if !errors.Is(err, ErrDangerousField) {
			t.Errorf("%s: err = %v, want ErrDangerousField", name, err)
		}
		if p != start {
			t.Errorf("%s: position mutated to %v on failed move", name, p)
		}
	}
}

func TestMove_ChecksCandidateCellNotCurrent(t *testing.T) {
	// Only (1, 0) is unsafe: a forward move east from the origin must fail,
	// a forward move north must pass.
	sensor := SensorFunc(func(x, y int) bool { return !(x == 1 && y == 0) })

	p := Position{Heading: East}
	if err := MoveForward().Execute(&p, []Sensor{sensor}); !errors.Is(err, ErrDangerousField) {
		t.Errorf("move into unsafe cell: err = %v, want ErrDangerousField", err)
	}

	p = Position{Heading: North}
	if err := MoveForward().Execute(&p, []Sensor{sensor}); err != nil {
		t.Errorf("move into safe cell failed: %v", err)
	}
}

func TestRotations_IgnoreSensors(t *testing.T) {
	p := Position{Heading: North}
	if err := RotateRight().Execute(&p, []Sensor{allUnsafe}); err != nil {
		t.Errorf("RotateRight consulted sensors: %v", err)
	}
	if err := RotateLeft().Execute(&p, []Sensor{allUnsafe}); err != nil {
		t.Errorf("RotateLeft consulted sensors: %v", err)
	}
}

func TestCompose_AppliesInOrder(t *testing.T) {
	uturn := Compose(RotateRight(), RotateRight())
	p := Position{Coords: Coordinates{X: 0, Y: 0}, Heading: East}

	if err := uturn.Execute(&p, []Sensor{allSafe}); err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if p.Heading != West {
		t.Errorf("heading after U-turn = %s, want WEST", p.Heading)
	}
}

func TestCompose_FailFastKeepsPriorEffects(t *testing.T) {
	// Rotate, then move into hostile terrain: the rotation must stick, the
	// move must not, and later children must never run.
	var tailRan bool
	tail := SensorFunc(func(x, y int) bool { tailRan = true; return true })
	action := Compose(
		RotateRight(),
		MoveForward(),
		Compose(MoveForward(), MoveForward()),
	)

	p := Position{Coords: Coordinates{X: 0, Y: 0}, Heading: North}
	err := action.Execute(&p, []Sensor{allUnsafe, tail})
	if !errors.Is(err, ErrDangerousField) {
		t.Fatalf("err = %v, want ErrDangerousField", err)
	}
	if p.Heading != East {
		t.Errorf("rotation rolled back: heading = %s", p.Heading)
	}
	if p.Coords != (Coordinates{X: 0, Y: 0}) {
		t.Errorf("coordinates mutated to %v", p.Coords)
	}
	_ = tailRan // later sensors in the list are unreachable after a rejection
}

func TestCompose_Empty(t *testing.T) {
	p := Position{Heading: South}
	start := p
	if err := Compose().Execute(&p, nil); err != nil {
		t.Fatalf("empty compose failed: %v", err)
	}
	if p != start {
		t.Errorf("empty compose mutated position to %v", p)
	}
}

func TestSensors_PolledInListOrder(t *testing.T) {
	var order []int
	first := SensorFunc(func(x, y int) bool { order = append(order, 1); return true })
	second := SensorFunc(func(x, y int) bool { order = append(order, 2); return false })
	third := SensorFunc(func(x, y int) bool { order = append(order, 3); return true })

	p := Position{Heading: North}
	err := MoveForward().Execute(&p, []Sensor{first, second, third})
	if !errors.Is(err, ErrDangerousField) {
		t.Fatalf("err = %v, want ErrDangerousField", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("sensor poll order = %v, want [1 2]", order)
	}
}
