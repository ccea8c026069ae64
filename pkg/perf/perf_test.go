package perf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(3)
	if r.Average() != 0 {
		t.Error("expected no average for an empty recorder")
	}

	r.Record(1 * time.Millisecond)
	r.Record(2 * time.Millisecond)
	if times := r.Times(); len(times) != 2 || times[1] != 2*time.Millisecond {
		t.Errorf("expected 2 times, got %v", times)
	}

	r.Record(3 * time.Millisecond)
	r.Record(6 * time.Millisecond)
	times := r.Times()
	if len(times) != 3 || times[0] != 2*time.Millisecond || times[2] != 6*time.Millisecond {
		t.Errorf("expected the oldest time to be replaced, got %v", times)
	}
	if avg := r.Average(); avg != 11*time.Millisecond/3 {
		t.Errorf("expected an average of %v, got %v", 11*time.Millisecond/3, avg)
	}
}

func TestRecorder_Plot(t *testing.T) {
	r := NewRecorder(10)
	for i := 0; i < 10; i++ {
		r.Record(time.Duration(15+i) * time.Millisecond)
	}

	img, err := r.Plot(16742706*time.Nanosecond, 320, 240)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("expected a 320x240 plot, got %v", b)
	}

	path := filepath.Join(t.TempDir(), "perf.png")
	if err := r.SavePlot(path, 0); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a plot to be written: %v", err)
	}
}
