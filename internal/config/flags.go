package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed      = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen    = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
	flagOrbit         = flag.Bool("orbit", false, "Sweep the camera back and forth")
	flagNoTextures    = flag.Bool("no-textures", false, "Use the flat fallback material")
	flagNoShadows     = flag.Bool("no-shadows", false, "Disable shadow mapping")
	flagNoAxes        = flag.Bool("no-axes", false, "Hide the axes overlay")
	flagCaptureFormat = flag.String("capture-format", "", "Screenshot format (png or webp)")
	flagDumpConfig    = flag.String("dump-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// DumpPath returns the path given via --dump-config, if any.
func DumpPath() string {
	return *flagDumpConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagOrbit {
		cfg.Render.CameraOrbitOn = true
	}
	if *flagNoTextures {
		cfg.Render.TexturesOn = false
	}
	if *flagNoShadows {
		cfg.Render.ShadowsOn = false
	}
	if *flagNoAxes {
		cfg.Render.AxesOn = false
	}
	if *flagCaptureFormat != "" {
		cfg.Capture.Format = *flagCaptureFormat
	}
}
