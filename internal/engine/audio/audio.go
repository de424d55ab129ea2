// Package audio plays the greeting cue and reports when it has finished.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager handles cue playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	cueStreamer beep.StreamSeekCloser
	cueCtrl     *beep.Ctrl
	cueVolume   *effects.Volume

	// ended is set from the speaker goroutine when the cue finishes.
	ended atomic.Bool

	volume float64
	muted  bool
}

// New creates a new audio manager with a 0-1 volume.
func New(volume float64, muted bool) *Manager {
	return &Manager{
		volume: clamp(volume, 0, 1),
		muted:  muted,
	}
}

// Init initializes the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close stops playback and shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopInternal()
	if m.initialized {
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
	m.updateVolume()
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// SetMuted silences playback without stopping it.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.updateVolume()
}

// Muted reports whether playback is silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

func (m *Manager) updateVolume() {
	if m.cueVolume == nil {
		return
	}
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	applyVolume(m.cueVolume, m.volume, m.muted)
}

func applyVolume(v *effects.Volume, vol float64, muted bool) {
	v.Silent = muted || vol <= 0
	v.Volume = volumeToDb(vol)
}

// volumeToDb converts a 0-1 volume to the base-2 exponent effects.Volume
// expects, expressed so that vol=0.5 is about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * gomath.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Decode decodes WAV or MP3 data; the format is chosen by name's extension,
// defaulting to WAV.
func Decode(data []byte, name string) (beep.StreamSeekCloser, beep.Format, error) {
	r := io.NopCloser(bytes.NewReader(data))
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		s, f, err := mp3.Decode(r)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode mp3: %w", err)
		}
		return s, f, nil
	default:
		s, f, err := wav.Decode(r)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
		}
		return s, f, nil
	}
}

// PlayCue plays data once. Ended reports true after the last sample has
// been handed to the device.
func (m *Manager) PlayCue(data []byte, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	m.stopInternal()

	streamer, format, err := Decode(data, name)
	if err != nil {
		return err
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	m.cueCtrl = &beep.Ctrl{Streamer: resampled, Paused: false}
	m.cueVolume = &effects.Volume{Streamer: m.cueCtrl, Base: 2}
	applyVolume(m.cueVolume, m.volume, m.muted)

	m.cueStreamer = streamer
	m.ended.Store(false)

	speaker.Play(signalEnd(m.cueVolume, &m.ended))
	return nil
}

// signalEnd plays s and then sets done.
func signalEnd(s beep.Streamer, done *atomic.Bool) beep.Streamer {
	return beep.Seq(s, beep.Callback(func() {
		done.Store(true)
	}))
}

// Ended reports whether the last cue finished playing. Safe to poll from
// the render thread.
func (m *Manager) Ended() bool {
	return m.ended.Load()
}

func (m *Manager) stopInternal() {
	if m.initialized {
		speaker.Clear()
	}
	if m.cueStreamer != nil {
		m.cueStreamer.Close()
		m.cueStreamer = nil
	}
	m.cueCtrl = nil
	m.cueVolume = nil
}
