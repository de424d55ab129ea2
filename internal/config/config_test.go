package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if !cfg.Graphics.Shadows {
		t.Error("expected shadows to be enabled by default")
	}

	// Test scene defaults
	if cfg.Scene.CandleCount != 10 {
		t.Errorf("expected 10 candles, got %d", cfg.Scene.CandleCount)
	}
	if cfg.Scene.RingRadius != 1 {
		t.Errorf("expected ring radius 1, got %f", cfg.Scene.RingRadius)
	}
	if cfg.Scene.CandleScale != 0.3 {
		t.Errorf("expected candle scale 0.3, got %f", cfg.Scene.CandleScale)
	}

	// Test interaction defaults
	if cfg.Interaction.HoldDelay != 500*time.Millisecond {
		t.Errorf("expected hold delay 500ms, got %v", cfg.Interaction.HoldDelay)
	}
	if cfg.Interaction.AmbientStart != 0.05 || cfg.Interaction.AmbientStep != 0.01 || cfg.Interaction.AmbientCeiling != 0.1 {
		t.Errorf("unexpected ambient ramp %v/%v/%v", cfg.Interaction.AmbientStart,
			cfg.Interaction.AmbientStep, cfg.Interaction.AmbientCeiling)
	}

	if cfg.Debug.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Debug.ScreenshotDir)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  shadows: false

audio:
  volume: 0.5
  muted: true

assets:
  table_texture: "textures/oak.png"
  font: "fonts/display.ttf"
  audio_cue: "audio/song.mp3"

scene:
  candle_count: 5
  ring_radius: 1.2
  text: "Feliz cumple"

interaction:
  hold_delay: 750ms
  fade_tick: 40ms
  ambient_ceiling: 0.2

logging:
  level: "debug"
  log_file: "cake.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.Shadows {
		t.Error("expected shadows to be false")
	}

	if cfg.Audio.Volume != 0.5 {
		t.Errorf("expected volume 0.5, got %f", cfg.Audio.Volume)
	}
	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}

	if cfg.Assets.AudioCue != "audio/song.mp3" {
		t.Errorf("expected audio cue audio/song.mp3, got %s", cfg.Assets.AudioCue)
	}

	if cfg.Scene.CandleCount != 5 {
		t.Errorf("expected 5 candles, got %d", cfg.Scene.CandleCount)
	}
	if cfg.Scene.Text != "Feliz cumple" {
		t.Errorf("expected text 'Feliz cumple', got %s", cfg.Scene.Text)
	}
	// Unset keys keep their defaults
	if cfg.Scene.CandleScale != 0.3 {
		t.Errorf("expected default candle scale 0.3, got %f", cfg.Scene.CandleScale)
	}

	if cfg.Interaction.HoldDelay != 750*time.Millisecond {
		t.Errorf("expected hold delay 750ms, got %v", cfg.Interaction.HoldDelay)
	}
	if cfg.Interaction.FadeTick != 40*time.Millisecond {
		t.Errorf("expected fade tick 40ms, got %v", cfg.Interaction.FadeTick)
	}
	if cfg.Interaction.AmbientCeiling != 0.2 {
		t.Errorf("expected ambient ceiling 0.2, got %f", cfg.Interaction.AmbientCeiling)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "cake.log" {
		t.Errorf("expected log file 'cake.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero candles",
			mutate:  func(c *Config) { c.Scene.CandleCount = 0 },
			wantErr: "candle_count",
		},
		{
			name:    "more candles than lights",
			mutate:  func(c *Config) { c.Scene.CandleCount = MaxCandles + 1 },
			wantErr: "candle_count",
		},
		{
			name:    "negative fade tick",
			mutate:  func(c *Config) { c.Interaction.FadeTick = -time.Millisecond },
			wantErr: "fade_tick",
		},
		{
			name:    "ceiling below start",
			mutate:  func(c *Config) { c.Interaction.AmbientCeiling = 0.01 },
			wantErr: "ambient_ceiling",
		},
		{
			name:    "zero ambient step",
			mutate:  func(c *Config) { c.Interaction.AmbientStep = 0 },
			wantErr: "ambient_step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Keep the user's real config out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  candle_count: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "screenshots flag",
			setup: func() { *flagShots = "/tmp/shots" },
			verify: func(cfg *Config) {
				if cfg.Debug.ScreenshotDir != "/tmp/shots" {
					t.Errorf("expected screenshot dir /tmp/shots, got %s", cfg.Debug.ScreenshotDir)
				}
			},
			teardown: func() { *flagShots = "" },
		},
		{
			name:  "candles flag",
			setup: func() { *flagCandles = 7 },
			verify: func(cfg *Config) {
				if cfg.Scene.CandleCount != 7 {
					t.Errorf("expected 7 candles, got %d", cfg.Scene.CandleCount)
				}
			},
			teardown: func() { *flagCandles = 0 },
		},
		{
			name: "asset flags",
			setup: func() {
				*flagTexture = "wood.jpg"
				*flagAudio = "song.wav"
			},
			verify: func(cfg *Config) {
				if cfg.Assets.TableTexture != "wood.jpg" {
					t.Errorf("expected texture wood.jpg, got %s", cfg.Assets.TableTexture)
				}
				if cfg.Assets.AudioCue != "song.wav" {
					t.Errorf("expected audio cue song.wav, got %s", cfg.Assets.AudioCue)
				}
			},
			teardown: func() {
				*flagTexture = ""
				*flagAudio = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  candle_count: -2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for negative candle count, got nil")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.CandleCount = 12
	cfg.Interaction.FadeTick = 30 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Scene.CandleCount != 12 {
		t.Errorf("expected 12 candles after reload, got %d", loaded.Scene.CandleCount)
	}
	if loaded.Interaction.FadeTick != 30*time.Millisecond {
		t.Errorf("expected fade tick 30ms after reload, got %v", loaded.Interaction.FadeTick)
	}
}
