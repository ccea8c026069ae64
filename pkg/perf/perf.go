// Package perf records frame times and plots them.
package perf

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/thelolagemann/dmgcore/pkg/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Recorder keeps the most recent frame times in a ring. It is
// safe to Record from the emulation goroutine while plotting
// from another.
type Recorder struct {
	mu     sync.Mutex
	times  []time.Duration
	next   int
	filled bool
}

// NewRecorder returns a Recorder holding up to size frame times.
func NewRecorder(size int) *Recorder {
	return &Recorder{times: make([]time.Duration, size)}
}

// Record adds a frame time, replacing the oldest once full.
func (r *Recorder) Record(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.times[r.next] = d
	r.next = (r.next + 1) % len(r.times)
	if r.next == 0 {
		r.filled = true
	}
}

// Times returns the recorded frame times, oldest first.
func (r *Recorder) Times() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.filled {
		return append([]time.Duration(nil), r.times[:r.next]...)
	}
	return append(append([]time.Duration(nil), r.times[r.next:]...), r.times[:r.next]...)
}

// Average returns the mean of the recorded frame times.
func (r *Recorder) Average() time.Duration {
	times := r.Times()
	if len(times) == 0 {
		return 0
	}
	var total time.Duration
	for _, t := range times {
		total += t
	}
	return total / time.Duration(len(times))
}

// Plot draws the recorded frame times, in milliseconds, against
// the target frame time.
func (r *Recorder) Plot(target time.Duration, width, height int) (image.Image, error) {
	times := r.Times()

	p := plot.New()
	p.Title.Text = "Frame Time"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "ms"
	p.Y.Min = 0

	xys := make(plotter.XYs, len(times))
	for i, t := range times {
		xys[i].X = float64(i)
		xys[i].Y = float64(t) / float64(time.Millisecond)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("perf: plotting frame times: %w", err)
	}
	p.Add(line)

	if target > 0 {
		ms := float64(target) / float64(time.Millisecond)
		p.Add(plotter.NewFunction(func(float64) float64 { return ms }))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Draw(draw.New(c))
	return c.Image(), nil
}

// SavePlot writes the plot of the recorded frame times to a PNG.
func (r *Recorder) SavePlot(path string, target time.Duration) error {
	img, err := r.Plot(target, 640, 480)
	if err != nil {
		return err
	}
	return utils.SavePNG(path, img)
}
