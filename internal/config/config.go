// Package config handles scene configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/birthday-cake/internal/engine/lighting"
)

// MaxCandles is the most candles the light buffer can hold; each candle
// carries a steady and a flickering point light.
const MaxCandles = lighting.MaxPointLights / 2

// Config holds all application settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Audio       AudioConfig       `yaml:"audio"`
	Assets      AssetsConfig      `yaml:"assets"`
	Scene       SceneConfig       `yaml:"scene"`
	Interaction InteractionConfig `yaml:"interaction"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Debug       DebugConfig       `yaml:"debug"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Shadows    bool `yaml:"shadows"`
	ShadowSize int  `yaml:"shadow_size"`
	MSAA       int  `yaml:"msaa"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Volume float64 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
}

// AssetsConfig holds runtime asset locations. Paths may be local files or
// http(s) URLs.
type AssetsConfig struct {
	TableTexture string `yaml:"table_texture"`
	Font         string `yaml:"font"`      // TTF/OTF; empty uses the built-in bitmap face
	AudioCue     string `yaml:"audio_cue"` // WAV or MP3 played before blowout is allowed
}

// SceneConfig holds scene composition settings.
type SceneConfig struct {
	CandleCount int     `yaml:"candle_count"`
	RingRadius  float32 `yaml:"ring_radius"`
	CandleScale float32 `yaml:"candle_scale"`
	Text        string  `yaml:"text"`
	AutoRotate  bool    `yaml:"auto_rotate"`
}

// InteractionConfig holds the blowout gesture and post-blowout timings.
type InteractionConfig struct {
	HoldDelay      time.Duration `yaml:"hold_delay"`
	FadeTick       time.Duration `yaml:"fade_tick"`
	RampTick       time.Duration `yaml:"ramp_tick"`
	AmbientStart   float64       `yaml:"ambient_start"`
	AmbientStep    float64       `yaml:"ambient_step"`
	AmbientCeiling float64       `yaml:"ambient_ceiling"`
	OverlayFade    time.Duration `yaml:"overlay_fade"`
	Message        string        `yaml:"message"`
}

// TelemetryConfig holds frame statistics output settings.
type TelemetryConfig struct {
	Dir string `yaml:"dir"` // empty disables output
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Shadows:    true,
			ShadowSize: 2048,
			MSAA:       4,
		},
		Audio: AudioConfig{
			Volume: 0.8,
			Muted:  false,
		},
		Assets: AssetsConfig{
			TableTexture: "https://threejs.org/examples/textures/hardwood2_diffuse.jpg",
			Font:         "",
			AudioCue:     "",
		},
		Scene: SceneConfig{
			CandleCount: 10,
			RingRadius:  1,
			CandleScale: 0.3,
			Text:        "Happy Birthday",
			AutoRotate:  true,
		},
		Interaction: InteractionConfig{
			HoldDelay:      500 * time.Millisecond,
			FadeTick:       50 * time.Millisecond,
			RampTick:       100 * time.Millisecond,
			AmbientStart:   0.05,
			AmbientStep:    0.01,
			AmbientCeiling: 0.1,
			OverlayFade:    time.Second,
			Message:        "Happy Birthday!",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the scene cannot be built or animated with.
func (c *Config) Validate() error {
	var errs []error
	if c.Scene.CandleCount <= 0 || c.Scene.CandleCount > MaxCandles {
		errs = append(errs, fmt.Errorf("scene.candle_count must be in [1, %d], got %d", MaxCandles, c.Scene.CandleCount))
	}
	if c.Scene.CandleScale <= 0 {
		errs = append(errs, fmt.Errorf("scene.candle_scale must be positive, got %g", c.Scene.CandleScale))
	}
	if c.Interaction.HoldDelay <= 0 || c.Interaction.FadeTick <= 0 || c.Interaction.RampTick <= 0 {
		errs = append(errs, errors.New("interaction hold_delay, fade_tick and ramp_tick must be positive"))
	}
	if c.Interaction.AmbientStep <= 0 {
		errs = append(errs, fmt.Errorf("interaction.ambient_step must be positive, got %g", c.Interaction.AmbientStep))
	}
	if c.Interaction.AmbientCeiling < c.Interaction.AmbientStart {
		errs = append(errs, fmt.Errorf("interaction.ambient_ceiling %g is below ambient_start %g",
			c.Interaction.AmbientCeiling, c.Interaction.AmbientStart))
	}
	return errors.Join(errs...)
}
