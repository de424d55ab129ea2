// Package app wires the window, renderer, scene and interaction into the
// frame loop.
package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/Faultbox/birthday-cake/internal/animation"
	"github.com/Faultbox/birthday-cake/internal/assets"
	"github.com/Faultbox/birthday-cake/internal/config"
	"github.com/Faultbox/birthday-cake/internal/engine/audio"
	"github.com/Faultbox/birthday-cake/internal/engine/camera"
	"github.com/Faultbox/birthday-cake/internal/engine/debug"
	"github.com/Faultbox/birthday-cake/internal/engine/input"
	"github.com/Faultbox/birthday-cake/internal/engine/renderer"
	"github.com/Faultbox/birthday-cake/internal/engine/texture"
	"github.com/Faultbox/birthday-cake/internal/engine/ui2d"
	"github.com/Faultbox/birthday-cake/internal/engine/window"
	"github.com/Faultbox/birthday-cake/internal/interaction"
	"github.com/Faultbox/birthday-cake/internal/logger"
	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/internal/telemetry"
	"github.com/Faultbox/birthday-cake/internal/timer"
	"github.com/Faultbox/birthday-cake/pkg/encoding"
)

// Title is the window title.
const Title = "Happy Birthday"

// Reminder is shown once the cue has finished and until the candles go out.
const Reminder = "Press and hold to blow out the candles"

// placeholderSize is the edge of the generated wood texture.
const placeholderSize = 512

// maxFrameDelta caps dt after stalls (window drags, breakpoints) so timers
// do not replay seconds of ticks in one frame.
const maxFrameDelta = 250 * time.Millisecond

// App is the running birthday scene.
type App struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Context
	input    *input.Input

	scene      *scene.Scene
	timers     *timer.Scheduler
	camera     *camera.OrbitCamera
	loop       *animation.Loop
	controller *interaction.Controller
	router     *router

	audio       *audio.Manager
	assets      *assets.Manager
	telemetry   *telemetry.Recorder
	screenshots *debug.ScreenshotCapture

	message string
}

// New creates the window and GL resources, composes the scene and starts
// loading the configured assets.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing app",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	a := &App{config: cfg, message: encoding.ToLatin1(cfg.Interaction.Message)}

	// Window first, it owns the GL context
	var err error
	a.window, err = window.New(window.ConfigFrom(Title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:            width,
		Height:           height,
		ShadowsEnabled:   cfg.Graphics.Shadows,
		ShadowResolution: int32(cfg.Graphics.ShadowSize),
		MSAA:             cfg.Graphics.MSAA,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.ui, err = ui2d.NewContext(width, height, nil)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create ui: %w", err)
	}

	winW, winH := a.window.GetSize()
	a.input = input.New(winW, winH)

	a.scene, err = scene.Compose(sceneParams(cfg))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to compose scene: %w", err)
	}
	a.renderer.SetTexture(scene.TableTexture, texture.WoodPlaceholder(placeholderSize, time.Now().UnixNano()))

	if err := a.setText(ui2d.DefaultFace()); err != nil {
		logger.Warn("text mesh unavailable", zap.Error(err))
	}

	a.timers = timer.New()
	a.camera = camera.NewOrbitCamera()
	a.camera.AutoRotate = cfg.Scene.AutoRotate
	a.loop = animation.NewLoop(a.scene, a.timers, a.camera)

	now := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(now, now>>32|1))
	a.controller = interaction.New(interaction.SettingsFrom(cfg.Interaction), a.scene, a.timers, rng)
	a.router = &router{gesture: a.controller, camera: a.camera}

	a.telemetry, err = telemetry.NewRecorder(cfg.Telemetry.Dir)
	if err != nil {
		logger.Warn("telemetry disabled", zap.Error(err))
		a.telemetry = nil
	}
	a.screenshots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "cake")

	a.audio = audio.New(cfg.Audio.Volume, cfg.Audio.Muted)
	a.assets = assets.NewManager(nil)
	a.requestAssets()

	logger.Info("app initialized",
		zap.Int("candles", len(a.scene.Candles)),
		zap.Int("drawable_width", width),
		zap.Int("drawable_height", height),
	)
	return a, nil
}

// sceneParams maps the scene and interaction settings onto composition
// parameters.
func sceneParams(cfg *config.Config) scene.Params {
	p := scene.DefaultParams()
	p.CandleCount = cfg.Scene.CandleCount
	p.RingRadius = cfg.Scene.RingRadius
	p.CandleScale = cfg.Scene.CandleScale
	p.Ambient = float32(cfg.Interaction.AmbientStart)
	return p
}

// requestAssets starts the background loads. Without a cue the blowout is
// allowed right away.
func (a *App) requestAssets() {
	a.assets.Request(assets.Texture, a.config.Assets.TableTexture)
	a.assets.Request(assets.Font, a.config.Assets.Font)

	if a.config.Assets.AudioCue == "" {
		logger.Info("no audio cue configured")
		a.controller.AudioEnded()
		return
	}
	if err := a.audio.Init(); err != nil {
		logger.Warn("audio unavailable, skipping cue", zap.Error(err))
		a.controller.AudioEnded()
		return
	}
	a.assets.Request(assets.Audio, a.config.Assets.AudioCue)
}

// Run starts the frame loop and blocks until the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Update
		a.pollAssets()
		if !a.controller.Allowed() && a.audio.Ended() {
			a.controller.AudioEnded()
		}
		a.loop.Step(dt)

		// 3. Render
		a.render()
		a.window.SwapBuffers()

		if err := a.telemetry.Frame(dt, a.scene.BurningCount()); err != nil {
			logger.Warn("telemetry write failed, disabling", zap.Error(err))
			a.telemetry.Close()
			a.telemetry = nil
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Int("burning", a.scene.BurningCount()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	_, viewH := a.input.Size()
	for _, ev := range a.input.Events() {
		switch a.router.route(ev, float32(viewH)) {
		case actionQuit:
			a.running = false
		case actionResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
			a.ui.Resize(w, h)
		case actionScreenshot:
			a.captureScreenshot()
		case actionToggleMute:
			a.audio.SetMuted(!a.audio.Muted())
			logger.Info("audio mute toggled", zap.Bool("muted", a.audio.Muted()))
		}
	}
}

// pollAssets applies every finished load. Failed loads keep the
// placeholder (texture) or the built-in face (font); a failed cue must
// still unlock the blowout.
func (a *App) pollAssets() {
	for _, res := range a.assets.Poll() {
		if res.Err != nil {
			logger.Warn("asset load failed",
				zap.Stringer("kind", res.Kind),
				zap.String("source", res.Source),
				zap.Error(res.Err),
			)
			if res.Kind == assets.Audio {
				a.controller.AudioEnded()
			}
			continue
		}

		switch res.Kind {
		case assets.Texture:
			a.renderer.SetTexture(scene.TableTexture, res.Image)
		case assets.Font:
			a.ui.Renderer().SetFace(res.Face)
			if err := a.setText(res.Face); err != nil {
				logger.Warn("text mesh rebuild failed", zap.Error(err))
			}
		case assets.Audio:
			if err := a.audio.PlayCue(res.Data, res.Source); err != nil {
				logger.Warn("audio cue failed, skipping", zap.Error(err))
				a.controller.AudioEnded()
				continue
			}
			logger.Info("audio cue playing", zap.String("source", res.Source))
		}
		logger.Info("asset loaded", zap.Stringer("kind", res.Kind), zap.String("source", res.Source))
	}
}

// setText rebuilds the floating text with face.
func (a *App) setText(face font.Face) error {
	m, err := buildText(face, a.config.Scene.Text)
	if err != nil {
		return err
	}
	a.scene.SetText(m)
	return nil
}

func (a *App) render() {
	a.renderer.Render(a.scene, a.camera)

	a.ui.Begin()
	if a.controller.ReminderVisible() {
		a.ui.Hint(Reminder)
	}
	if a.controller.OverlayVisible() {
		a.ui.Overlay(a.message, a.controller.OverlayOpacity())
	}
	a.ui.End()
}

func (a *App) captureScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse order of creation.
func (a *App) Close() {
	logger.Info("closing app")

	if a.assets != nil {
		a.assets.Close()
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if err := a.telemetry.Close(); err != nil {
		logger.Warn("closing telemetry", zap.Error(err))
	}
	if a.ui != nil {
		a.ui.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
