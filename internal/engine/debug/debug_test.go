package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/webp"

	"github.com/Faultbox/toroids/pkg/math"
)

func TestAxes(t *testing.T) {
	axes := Axes(math.Vec3{X: 1, Z: 1}, 100)

	wantTo := [3]math.Vec3{{X: 101, Z: 1}, {X: 1, Y: 100, Z: 1}, {X: 1, Z: 101}}
	wantColor := [3]math.Color{{R: 1}, {G: 1}, {B: 1}}
	for i, a := range axes {
		if a.From != (math.Vec3{X: 1, Z: 1}) {
			t.Errorf("axis %s starts at %+v", a.Name, a.From)
		}
		if a.To != wantTo[i] {
			t.Errorf("axis %s ends at %+v, want %+v", a.Name, a.To, wantTo[i])
		}
		if a.Color != wantColor[i] {
			t.Errorf("axis %s colour %+v, want %+v", a.Name, a.Color, wantColor[i])
		}
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(3, 1, color.RGBA{B: 255, A: 255})
	return img
}

func fixedCapture(dir string, format Format) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "toroids", format)
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return sc
}

func TestCaptureFromImagePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	path, err := fixedCapture(dir, FormatPNG).CaptureFromImage(testImage())
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	if filepath.Base(path) != "toroids_2024-05-01_12-30-00.000.png" {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("unexpected size %v", img.Bounds())
	}
}

func TestCaptureFromImageWebP(t *testing.T) {
	path, err := fixedCapture(t.TempDir(), FormatWebP).CaptureFromImage(testImage())
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	if !strings.HasSuffix(path, ".webp") {
		t.Errorf("expected .webp file, got %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding webp header: %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 2 {
		t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	// Bottom row red, top row green, as OpenGL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
	}
	path, err := fixedCapture(t.TempDir(), FormatPNG).CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r != 0 || g == 0 {
		t.Errorf("expected green top row, got %v", img.At(0, 0))
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	if _, err := NewScreenshotCapture(t.TempDir(), "x", FormatPNG).CaptureFromPixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestUnknownFormatFallsBackToPNG(t *testing.T) {
	sc := NewScreenshotCapture("", "x", Format("gif"))
	if !strings.HasSuffix(sc.GenerateFilename(), ".png") {
		t.Errorf("expected png filename, got %s", sc.GenerateFilename())
	}
}
