package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
)

func TestCollectorWindows(t *testing.T) {
	var c Collector

	// 59 frames of 16ms stay under one second
	for i := 0; i < 59; i++ {
		if _, ok := c.Add(16*time.Millisecond, 10); ok {
			t.Fatalf("window closed early at frame %d", i)
		}
	}
	s, ok := c.Add(100*time.Millisecond, 7)
	if !ok {
		t.Fatal("window should close after 1.044s")
	}
	if s.Frames != 60 {
		t.Errorf("Frames = %d, want 60", s.Frames)
	}
	if s.MaxFrameMS != 100 {
		t.Errorf("MaxFrameMS = %v, want 100", s.MaxFrameMS)
	}
	if want := 1044.0 / 60; s.AvgFrameMS < want-1e-9 || s.AvgFrameMS > want+1e-9 {
		t.Errorf("AvgFrameMS = %v, want %v", s.AvgFrameMS, want)
	}
	if s.CandlesBurning != 7 {
		t.Errorf("CandlesBurning = %d, want 7", s.CandlesBurning)
	}

	// Next window starts fresh but elapsed keeps counting
	s, ok = c.Add(2*time.Second, 0)
	if !ok || s.Frames != 1 || s.ElapsedSec < 3.04 || s.ElapsedSec > 3.05 {
		t.Errorf("second window = %+v, %v", s, ok)
	}
}

func TestNewRecorderDisabled(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil || r != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v; want nil, nil", r, err)
	}
	// nil recorder is a no-op
	if err := r.Frame(time.Second, 1); err != nil {
		t.Error(err)
	}
	if err := r.Close(); err != nil {
		t.Error(err)
	}
}

func TestRecorderWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := r.Frame(time.Second, 10-i); err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []FrameStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[2].CandlesBurning != 8 || rows[2].ElapsedSec != 3 {
		t.Errorf("last row = %+v", rows[2])
	}
}
