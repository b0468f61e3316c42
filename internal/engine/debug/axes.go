// Package debug provides the axes overlay and screenshot capture.
package debug

import "github.com/Faultbox/toroids/pkg/math"

// Axis is one coloured segment of the axes overlay.
type Axis struct {
	Name  string
	From  math.Vec3
	To    math.Vec3
	Color math.Color
}

// Axes returns the X (red), Y (green) and Z (blue) segments of the given
// length starting at origin.
func Axes(origin math.Vec3, length float32) [3]Axis {
	return [3]Axis{
		{Name: "x", From: origin, To: origin.Add(math.Vec3{X: length}), Color: math.ColorFromHex(0xff0000)},
		{Name: "y", From: origin, To: origin.Add(math.Vec3{Y: length}), Color: math.ColorFromHex(0x00ff00)},
		{Name: "z", From: origin, To: origin.Add(math.Vec3{Z: length}), Color: math.ColorFromHex(0x0000ff)},
	}
}
