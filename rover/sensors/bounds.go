package sensors

import "fmt"

// Bounds is a sensor that confines the rover to an inclusive rectangle.
// Any cell outside the rectangle is unsafe.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// NewBounds returns a bounds sensor after checking the rectangle is not
// inverted.
func NewBounds(minX, minY, maxX, maxY int) (*Bounds, error) {
	if minX > maxX || minY > maxY {
		return nil, fmt.Errorf("bounds: inverted rectangle (%d,%d)..(%d,%d)", minX, minY, maxX, maxY)
	}
	return &Bounds{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, nil
}

// IsSafe reports whether (x, y) lies inside the rectangle, edges included.
func (b *Bounds) IsSafe(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}
