package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("Normalize of zero vector should stay zero")
	}
}

func TestVec3Component(t *testing.T) {
	v := Vec3{1, 2, 3}
	for axis, want := range []float32{1, 2, 3} {
		if got := v.Component(axis); got != want {
			t.Errorf("Component(%d) = %v, want %v", axis, got, want)
		}
	}
}

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0xff8000)
	if c.R != 1 || c.B != 0 {
		t.Errorf("ColorFromHex(0xff8000) = %+v", c)
	}
	if abs(c.G-128.0/255) > 1e-6 {
		t.Errorf("green = %v, want %v", c.G, 128.0/255)
	}
}

func TestColorLerp(t *testing.T) {
	white := Color{1, 1, 1}
	black := Color{}
	tests := []struct {
		t    float32
		want Color
	}{
		{0, white},
		{0.5, Color{0.5, 0.5, 0.5}},
		{1, black},
	}
	for _, tt := range tests {
		if got := white.Lerp(black, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %+v, want %+v", tt.t, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.25) != 0.25 {
		t.Error("Clamp01 out of range")
	}
}
