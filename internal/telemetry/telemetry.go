// Package telemetry writes per-second frame statistics to CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Window is how much frame time one row summarizes.
const Window = time.Second

// FrameStats is one row of frames.csv.
type FrameStats struct {
	ElapsedSec     float64 `csv:"elapsed_sec"`
	Frames         int     `csv:"frames"`
	AvgFrameMS     float64 `csv:"avg_frame_ms"`
	MaxFrameMS     float64 `csv:"max_frame_ms"`
	CandlesBurning int     `csv:"candles_burning"`
}

// Collector folds frame durations into FrameStats windows.
type Collector struct {
	elapsed time.Duration
	window  time.Duration
	frames  int
	max     time.Duration
}

// Add records one frame. It returns the finished window and true once at
// least Window of frame time has accumulated.
func (c *Collector) Add(dt time.Duration, burning int) (FrameStats, bool) {
	if dt < 0 {
		dt = 0
	}
	c.elapsed += dt
	c.window += dt
	c.frames++
	if dt > c.max {
		c.max = dt
	}
	if c.window < Window {
		return FrameStats{}, false
	}

	s := FrameStats{
		ElapsedSec:     c.elapsed.Seconds(),
		Frames:         c.frames,
		AvgFrameMS:     ms(c.window) / float64(c.frames),
		MaxFrameMS:     ms(c.max),
		CandlesBurning: burning,
	}
	c.window, c.frames, c.max = 0, 0, 0
	return s, true
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Recorder writes FrameStats rows to <dir>/frames.csv.
type Recorder struct {
	Collector
	out           io.WriteCloser
	headerWritten bool
}

// NewRecorder creates the output directory and file.
// Returns nil if dir is empty (output disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	return &Recorder{out: f}, nil
}

// Frame records one frame and writes a row when a window closes.
func (r *Recorder) Frame(dt time.Duration, burning int) error {
	if r == nil {
		return nil
	}
	s, ok := r.Add(dt, burning)
	if !ok {
		return nil
	}
	return r.Write(s)
}

// Write appends a row, emitting the header first.
func (r *Recorder) Write(s FrameStats) error {
	if r == nil {
		return nil
	}
	records := []FrameStats{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing frame stats: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}

// Close closes the output file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.out.Close()
}
