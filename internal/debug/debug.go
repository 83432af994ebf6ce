// Package debug draws runtime overlays: FPS, heap size, frame-clock time and the
// most recent log lines. All overlays are off by default.
package debug

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	logSize    = 10
	logLine    = logSize + 2
	logLines   = 8
	// updateInterval: only refresh stat text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is what the stat overlay shows.
type Stats struct {
	FPS     int32
	Alloc   uint64
	Elapsed time.Duration
	Ticks   uint64
}

// Source supplies stats that only the caller knows about.
type Source interface {
	Elapsed() time.Duration
	Ticks() uint64
}

// Debug holds overlay toggles and cached text.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowElapsed  bool
	ShowLog      bool

	source     Source
	logLines   func() []string
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a Debug system with all overlays hidden. source may be nil.
func New(source Source) *Debug {
	return &Debug{source: source}
}

// SetLogSource sets where the log overlay reads recent lines from.
func (d *Debug) SetLogSource(lines func() []string) {
	d.logLines = lines
}

// Text formats the enabled stat lines.
func (d *Debug) Text(s Stats) []string {
	var out []string
	if d.ShowFPS {
		out = append(out, fmt.Sprintf("FPS: %d", s.FPS))
	}
	if d.ShowMemAlloc {
		out = append(out, fmt.Sprintf("Mem: %.2f MiB", float64(s.Alloc)/(1024*1024)))
	}
	if d.ShowElapsed {
		out = append(out, fmt.Sprintf("Time: %.1fs  Ticks: %d", s.Elapsed.Seconds(), s.Ticks))
	}
	return out
}

func (d *Debug) stats() Stats {
	runtime.ReadMemStats(&d.memStats)
	s := Stats{FPS: rl.GetFPS(), Alloc: d.memStats.Alloc}
	if d.source != nil {
		s.Elapsed = d.source.Elapsed()
		s.Ticks = d.source.Ticks()
	}
	return s
}

// Draw renders enabled overlays: stats top-right in green, log lines bottom-left.
// Stat text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowMemAlloc && !d.ShowElapsed && !d.ShowLog {
		return
	}
	if d.frameCount%updateInterval == 0 || len(d.lines) == 0 {
		d.lines = d.Text(d.stats())
	}
	d.frameCount++

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowLog && d.logLines != nil {
		lines := d.logLines()
		if len(lines) > logLines {
			lines = lines[len(lines)-logLines:]
		}
		y := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*logLine
		for _, text := range lines {
			rl.DrawText(strings.ReplaceAll(text, "\t", "  "), padding, y, logSize, rl.LightGray)
			y += logLine
		}
	}
}
