package math

// Color is a linear RGB colour with components in [0,1].
type Color struct {
	R, G, B float32
}

// ColorFromHex converts a 0xRRGGBB value to a Color.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// Lerp returns c + t*(other-c). t is not clamped.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + t*(other.R-c.R),
		G: c.G + t*(other.G-c.G),
		B: c.B + t*(other.B-c.B),
	}
}

// Scale multiplies each component by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Array returns the colour as a [3]float32 for GPU upload.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
