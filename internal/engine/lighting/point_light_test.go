package lighting

import (
	"testing"

	"github.com/Faultbox/toroids/pkg/math"
)

func TestPointLightBufferTruncates(t *testing.T) {
	b := NewPointLightBuffer()
	lights := make([]PointLight, MaxPointLights+2)
	b.SetLights(lights)

	if b.Count != MaxPointLights || len(b.Lights) != MaxPointLights {
		t.Errorf("expected %d lights, got %d", MaxPointLights, b.Count)
	}
	if b.AddLight(PointLight{}) {
		t.Error("AddLight should refuse when full")
	}
}

func TestPointLightBufferFlatten(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{
		Position:  math.Vec3{X: 1, Y: 2, Z: 3},
		Color:     math.Color{R: 0.5, G: 0.25, B: 1},
		Intensity: 4,
		Range:     600,
	})
	b.AddLight(PointLight{Position: math.Vec3{X: 7}, Shadow: ShadowConfig{Cast: true}})

	pos := b.GetPositions()
	if len(pos) != MaxPointLights*3 {
		t.Fatalf("expected padded slice, got %d", len(pos))
	}
	if pos[0] != 1 || pos[1] != 2 || pos[2] != 3 || pos[3] != 7 {
		t.Errorf("unexpected positions %v", pos[:6])
	}
	if c := b.GetColors(); c[0] != 0.5 || c[1] != 0.25 || c[2] != 1 {
		t.Errorf("unexpected colors %v", c[:3])
	}
	if r := b.GetRanges(); r[0] != 600 || r[1] != 0 {
		t.Errorf("unexpected ranges %v", r)
	}
	if in := b.GetIntensities(); in[0] != 4 {
		t.Errorf("unexpected intensities %v", in)
	}
	if sc := b.ShadowCasters(); len(sc) != 1 || sc[0] != 1 {
		t.Errorf("expected only light 1 to cast, got %v", sc)
	}

	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Error("Clear left lights behind")
	}
}

func TestAmbientRadiance(t *testing.T) {
	a := AmbientLight{Color: math.ColorFromHex(0x404040), Intensity: 2}
	r := a.Radiance()
	want := float32(0x40) / 255 * 2
	if r.R != want || r.G != want || r.B != want {
		t.Errorf("expected %v per channel, got %+v", want, r)
	}
}
