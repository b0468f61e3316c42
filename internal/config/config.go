// Package config handles render configuration loading and management.
package config

import (
	gomath "math"
	"time"

	"github.com/Faultbox/toroids/pkg/math"
)

// Config holds all settings. It is the single configuration of a
// session: read everywhere, never mutated once scene construction starts.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Toroids  ToroidConfig   `yaml:"toroids"`
	Planes   PlaneConfig    `yaml:"planes"`
	Lights   LightConfig    `yaml:"lights"`
	Camera   CameraConfig   `yaml:"camera"`
	Axes     AxesConfig     `yaml:"axes"`
	Textures TextureConfig  `yaml:"textures"`
	Capture  CaptureConfig  `yaml:"capture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig switches scene elements and post-processing on and off.
type RenderConfig struct {
	ToroidsOn     bool    `yaml:"toroids_on"`
	AxesOn        bool    `yaml:"axes_on"`
	ShadowsOn     bool    `yaml:"shadows_on"`
	TexturesOn    bool    `yaml:"textures_on"`
	CameraOrbitOn bool    `yaml:"camera_orbit_on"`
	ToneMapping   bool    `yaml:"tone_mapping"`
	Exposure      float32 `yaml:"exposure"`
	AntiAliasing  bool    `yaml:"anti_aliasing"`
}

// ToroidConfig describes the three rings.
type ToroidConfig struct {
	Radius          float32   `yaml:"radius"`      // major radius of the innermost ring
	TubeRadius      float32   `yaml:"tube_radius"` // minor radius shared by all rings
	RadialSegments  int       `yaml:"radial_segments"`
	TubularSegments int       `yaml:"tubular_segments"`
	Offset          math.Vec3 `yaml:"offset"`
	SpinStep        float64   `yaml:"spin_step"` // radians per tick on each axis
	Color           HexColor  `yaml:"color"`     // fallback material colour
	Specular        HexColor  `yaml:"specular"`  // fallback material highlight
	Shininess       float32   `yaml:"shininess"`
}

// PlaneConfig describes the three gradient bounding planes.
type PlaneConfig struct {
	Size         float32  `yaml:"size"`
	Segments     int      `yaml:"segments"`
	Offset       float32  `yaml:"offset"`
	ViewerColor  HexColor `yaml:"viewer_color"`
	HorizonColor HexColor `yaml:"horizon_color"`
	Specular     HexColor `yaml:"specular"`
	Shininess    float32  `yaml:"shininess"`
}

// LightConfig describes the point light rig and the ambient light.
type LightConfig struct {
	SurfaceSize      float32  `yaml:"surface_size"`
	Color            HexColor `yaml:"color"`
	Intensity        float32  `yaml:"intensity"`    // 0-100
	RangeOffset      float32  `yaml:"range_offset"` // added to surface size for falloff distance
	ShadowMapScale   float32  `yaml:"shadow_map_scale"`
	ShadowNear       float32  `yaml:"shadow_near"`
	ShadowFar        float32  `yaml:"shadow_far"`
	AmbientColor     HexColor `yaml:"ambient_color"`
	AmbientIntensity float32  `yaml:"ambient_intensity"` // 0-10
}

// CameraConfig holds the camera placement, orbit sweep and control limits.
type CameraConfig struct {
	Position        math.Vec3 `yaml:"position"`
	LookAt          math.Vec3 `yaml:"look_at"`
	FOV             float32   `yaml:"fov"` // vertical, degrees
	Near            float32   `yaml:"near"`
	Far             float32   `yaml:"far"`
	OrbitRadius     float32   `yaml:"orbit_radius"`
	OrbitHeight     float32   `yaml:"orbit_height"`
	OrbitStep       float64   `yaml:"orbit_step"` // radians per tick
	OrbitMin        float64   `yaml:"orbit_min"`
	OrbitMax        float64   `yaml:"orbit_max"`
	MinDistance     float32   `yaml:"min_distance"`
	MaxDistance     float32   `yaml:"max_distance"`
	DragSensitivity float32   `yaml:"drag_sensitivity"`
	ZoomSensitivity float32   `yaml:"zoom_sensitivity"`
}

// AxesConfig holds the debug axes overlay settings.
type AxesConfig struct {
	Length float32 `yaml:"length"`
}

// TextureConfig names the six texture maps of the ring material.
type TextureConfig struct {
	Color             string        `yaml:"color"`
	Roughness         string        `yaml:"roughness"`
	Metalness         string        `yaml:"metalness"`
	Environment       string        `yaml:"environment"`
	Displacement      string        `yaml:"displacement"`
	Normal            string        `yaml:"normal"`
	NormalScale       float32       `yaml:"normal_scale"`
	DisplacementScale float32       `yaml:"displacement_scale"`
	Timeout           time.Duration `yaml:"timeout"` // 0 waits forever
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the values of the reference scene.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			ToroidsOn:     true,
			AxesOn:        true,
			ShadowsOn:     true,
			TexturesOn:    true,
			CameraOrbitOn: false,
			ToneMapping:   true,
			Exposure:      2.0,
			AntiAliasing:  false,
		},
		Toroids: ToroidConfig{
			Radius:          100,
			TubeRadius:      10,
			RadialSegments:  64,
			TubularSegments: 64,
			Offset:          math.Vec3{X: 0, Y: 200, Z: 0},
			SpinStep:        0.01,
			Color:           0xffffff,
			Specular:        0x000032,
			Shininess:       50,
		},
		Planes: PlaneConfig{
			Size:         550,
			Segments:     10,
			Offset:       0,
			ViewerColor:  0xffffff,
			HorizonColor: 0x000000,
			Specular:     0x000032,
			Shininess:    50,
		},
		Lights: LightConfig{
			SurfaceSize:      500,
			Color:            0xdddddd,
			Intensity:        4,
			RangeOffset:      100,
			ShadowMapScale:   2,
			ShadowNear:       20,
			ShadowFar:        1000,
			AmbientColor:     0x404040,
			AmbientIntensity: 1,
		},
		Camera: CameraConfig{
			Position:        math.Vec3{X: 50, Y: 100, Z: 600},
			LookAt:          math.Vec3{},
			FOV:             75,
			Near:            0.1,
			Far:             1000,
			OrbitRadius:     600,
			OrbitHeight:     100,
			OrbitStep:       0.01,
			OrbitMin:        0,
			OrbitMax:        gomath.Pi / 2,
			MinDistance:     50,
			MaxDistance:     2000,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Axes: AxesConfig{
			Length: 100,
		},
		Textures: TextureConfig{
			Color:             "assets/Metal044A_1K-JPG/Metal044A_1K_Color.jpg",
			Roughness:         "assets/Metal044A_1K-JPG/Metal044A_1K_Roughness.jpg",
			Metalness:         "assets/Metal044A_1K-JPG/Metal044A_1K_Metalness.jpg",
			Environment:       "assets/OutdoorHDRI026_2K-TONEMAPPED.jpg",
			Displacement:      "assets/Metal044A_1K-JPG/Metal044A_1K_Displacement.jpg",
			Normal:            "assets/Metal044A_1K-JPG/Metal044A_1K_NormalGL.jpg",
			NormalScale:       10,
			DisplacementScale: 1,
			Timeout:           0,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
