package engine

// Builder accumulates the command table and sensor list for a Rover. It is
// single-use and not safe for concurrent access; hand the built rover off and
// discard the builder.
type Builder struct {
	commands map[rune]Action
	sensors  []Sensor
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{commands: make(map[rune]Action)}
}

// ProgramCommand binds a single-character command name to an action. Binding
// the same name again overwrites the previous action.
func (b *Builder) ProgramCommand(name rune, action Action) *Builder {
	b.commands[name] = action
	return b
}

// AddSensor appends a sensor to the ordered list consulted on every move.
// Duplicates are legal; each entry is polled.
func (b *Builder) AddSensor(sensor Sensor) *Builder {
	b.sensors = append(b.sensors, sensor)
	return b
}

// Build produces an unlanded rover with the accumulated configuration. No
// validation is performed: an empty command table or sensor list is legal.
// The builder's maps and slices are copied, so reusing the builder afterwards
// does not affect the built rover.
func (b *Builder) Build() *Rover {
	commands := make(map[rune]Action, len(b.commands))
	for name, action := range b.commands {
		commands[name] = action
	}
	sensors := make([]Sensor, len(b.sensors))
	copy(sensors, b.sensors)

	return &Rover{
		commands: commands,
		sensors:  sensors,
	}
}
