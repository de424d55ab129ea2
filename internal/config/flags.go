package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagCandles    = flag.Int("candles", 0, "Number of candles on the cake")
	flagTexture    = flag.String("texture", "", "Table texture path or URL")
	flagAudio      = flag.String("audio", "", "Audio cue played before blowout is allowed")
	flagTelemetry  = flag.String("telemetry", "", "Directory for frame telemetry CSV")
	flagShots      = flag.String("screenshots", "", "Directory for F12 screenshots")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
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
	if *flagCandles > 0 {
		cfg.Scene.CandleCount = *flagCandles
	}
	if *flagTexture != "" {
		cfg.Assets.TableTexture = *flagTexture
	}
	if *flagAudio != "" {
		cfg.Assets.AudioCue = *flagAudio
	}
	if *flagTelemetry != "" {
		cfg.Telemetry.Dir = *flagTelemetry
	}
	if *flagShots != "" {
		cfg.Debug.ScreenshotDir = *flagShots
	}
}
