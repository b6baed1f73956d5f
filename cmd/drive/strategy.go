package main

import (
	"fmt"

	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/service"
)

// Alphabet holds the mission's command characters for the four primitive
// actions the explorer drives with.
type Alphabet struct {
	Forward  string
	Backward string
	Left     string
	Right    string
}

// AlphabetFromMission scans the mission's command table for the primitive
// bindings. Forward and a rotation are required; backward is optional (the
// explorer just never backs up without it).
func AlphabetFromMission(mis *mission.Mission) (Alphabet, error) {
	var a Alphabet
	for char, spec := range mis.Commands {
		if spec.Sequence != nil {
			continue
		}
		switch spec.Name {
		case mission.ActionMoveForward:
			a.Forward = char
		case mission.ActionMoveBackward:
			a.Backward = char
		case mission.ActionRotateLeft:
			a.Left = char
		case mission.ActionRotateRight:
			a.Right = char
		}
	}

	if a.Forward == "" {
		return a, fmt.Errorf("no command bound to %s", mission.ActionMoveForward)
	}
	if a.Right == "" && a.Left == "" {
		return a, fmt.Errorf("no rotation command bound")
	}
	// Synthesize the missing rotation from three of the other.
	if a.Right == "" {
		a.Right = a.Left + a.Left + a.Left
	}
	if a.Left == "" {
		a.Left = a.Right + a.Right + a.Right
	}
	return a, nil
}

type cell struct {
	X, Y int
}

// Explorer drives a rover to maximize terrain coverage. It keeps a map of
// cells it has visited and hazards it has bumped into or seen in the 3x3
// window, and always prefers a safe neighbor it has not visited yet.
type Explorer struct {
	alphabet Alphabet
	visited  map[cell]bool
	hazards  map[cell]bool
}

func NewExplorer(alphabet Alphabet) *Explorer {
	return &Explorer{
		alphabet: alphabet,
		visited:  make(map[cell]bool),
		hazards:  make(map[cell]bool),
	}
}

// headingVectors in the same terms the status report uses.
var headingVectors = map[string]cell{
	"NORTH": {0, 1},
	"EAST":  {1, 0},
	"SOUTH": {0, -1},
	"WEST":  {-1, 0},
}

// rotateRight turns a heading vector 90° clockwise.
func rotateRight(v cell) cell {
	return cell{X: v.Y, Y: -v.X}
}

// Observe folds a status report into the explorer's map: the rover's cell
// is visited, and every hazard in the 3x3 window is recorded.
func (e *Explorer) Observe(report *service.StatusReport) {
	if !report.Rover.Landed {
		return
	}

	pos := cell{report.Rover.X, report.Rover.Y}
	e.visited[pos] = true

	if len(report.LocalView) != 3 {
		return
	}
	// Rows are printed north to south, columns west to east.
	for row := 0; row < 3; row++ {
		line := []rune(report.LocalView[row])
		if len(line) != 3 {
			continue
		}
		for col := 0; col < 3; col++ {
			if line[col] != '#' {
				continue
			}
			e.hazards[cell{pos.X + col - 1, pos.Y + 1 - row}] = true
		}
	}
}

// RecordHalt marks the cell a refused move was aiming at as a hazard so the
// explorer never tries it again. Unknown-command halts carry no terrain
// information and are ignored.
func (e *Explorer) RecordHalt(result *service.ExecuteResult) {
	if result.HaltReason != service.HaltDangerousField {
		return
	}

	// The rover ends the halted run where the last safe command left it.
	// A refused forward step points at the hazard; a refused backward step
	// points away from it.
	v, ok := headingVectors[result.Rover.Heading]
	if !ok {
		return
	}
	if e.alphabet.Backward != "" && result.HaltCommand == e.alphabet.Backward {
		v = cell{-v.X, -v.Y}
	}
	e.hazards[cell{result.Rover.X + v.X, result.Rover.Y + v.Y}] = true
}

// NextCommands picks the next short command string: rotations plus one
// forward step toward the best neighbor. Returns "" when every neighbor is
// a known hazard.
func (e *Explorer) NextCommands(report *service.StatusReport) string {
	if !report.Rover.Landed {
		return ""
	}

	pos := cell{report.Rover.X, report.Rover.Y}
	ahead, ok := headingVectors[report.Rover.Heading]
	if !ok {
		return ""
	}
	right := rotateRight(ahead)
	left := rotateRight(rotateRight(right))
	back := rotateRight(right)

	type option struct {
		delta    cell
		commands string
	}
	options := []option{
		{ahead, e.alphabet.Forward},
		{right, e.alphabet.Right + e.alphabet.Forward},
		{left, e.alphabet.Left + e.alphabet.Forward},
	}
	if e.alphabet.Backward != "" {
		options = append(options, option{back, e.alphabet.Backward})
	} else {
		options = append(options, option{back, e.alphabet.Right + e.alphabet.Right + e.alphabet.Forward})
	}

	safe := func(target cell) bool {
		return !e.hazards[target] && e.viewSafe(report, pos, target)
	}

	// First pass: unvisited safe neighbors.
	for _, opt := range options {
		target := cell{pos.X + opt.delta.X, pos.Y + opt.delta.Y}
		if safe(target) && !e.visited[target] {
			return opt.commands
		}
	}
	// Second pass: any safe neighbor, to backtrack out of dead ends.
	for _, opt := range options {
		target := cell{pos.X + opt.delta.X, pos.Y + opt.delta.Y}
		if safe(target) {
			return opt.commands
		}
	}
	return ""
}

// viewSafe consults the 3x3 window for the target cell. Cells outside the
// window are assumed safe until observed otherwise; the halt handling picks
// up the pieces when that assumption is wrong.
func (e *Explorer) viewSafe(report *service.StatusReport, pos, target cell) bool {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return true
	}
	if len(report.LocalView) != 3 {
		return true
	}
	row := 1 - dy
	col := dx + 1
	line := []rune(report.LocalView[row])
	if len(line) != 3 {
		return true
	}
	return line[col] != '#'
}

// Coverage returns the number of distinct cells the rover has stood on.
func (e *Explorer) Coverage() int {
	return len(e.visited)
}

// HazardsFound returns the number of hazard cells discovered so far.
func (e *Explorer) HazardsFound() int {
	return len(e.hazards)
}
