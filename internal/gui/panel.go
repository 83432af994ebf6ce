// Package gui is a minimal debug panel: a column of sliders, each bound to a
// float32 somewhere in the program.
package gui

import (
	"math"
	"strconv"

	"github.com/chewxy/math32"
)

// Slider edits one bound value. Min, Max and Step return the slider so calls chain:
//
//	panel.Add("intensity", &light.Intensity).Min(0).Max(3).Step(0.001)
type Slider struct {
	Label  string
	target *float32

	min, max float32
	step     float32
	hasMin   bool
	hasMax   bool
}

// Min sets the lower bound.
func (s *Slider) Min(v float32) *Slider {
	s.min, s.hasMin = v, true
	return s
}

// Max sets the upper bound.
func (s *Slider) Max(v float32) *Slider {
	s.max, s.hasMax = v, true
	return s
}

// Step sets the increment values snap to. Zero disables snapping.
func (s *Slider) Step(v float32) *Slider {
	s.step = v
	return s
}

// Value reads the bound field.
func (s *Slider) Value() float32 {
	return *s.target
}

// SetValue snaps v to the step, clamps it to the bounds and writes it through.
func (s *Slider) SetValue(v float32) {
	if s.step > 0 {
		v = math32.Round(v/s.step) * s.step
	}
	if s.hasMin {
		v = math32.Max(v, s.min)
	}
	if s.hasMax {
		v = math32.Min(v, s.max)
	}
	*s.target = v
}

// Bounded reports whether both bounds are set; only bounded sliders can be dragged.
func (s *Slider) Bounded() bool {
	return s.hasMin && s.hasMax && s.max > s.min
}

// Fraction is the value's position between the bounds, in [0,1].
func (s *Slider) Fraction() float32 {
	if !s.Bounded() {
		return 0
	}
	f := (*s.target - s.min) / (s.max - s.min)
	return math32.Max(0, math32.Min(1, f))
}

// SetFraction sets the value at fraction f between the bounds.
func (s *Slider) SetFraction(f float32) {
	if !s.Bounded() {
		return
	}
	f = math32.Max(0, math32.Min(1, f))
	s.SetValue(s.min + f*(s.max-s.min))
}

// Text formats the current value with as many decimals as the step needs.
func (s *Slider) Text() string {
	decimals := 3
	if s.step > 0 {
		decimals = int(math.Ceil(-math.Log10(float64(s.step)) - 1e-6))
		decimals = max(0, min(6, decimals))
	}
	return strconv.FormatFloat(float64(*s.target), 'f', decimals, 32)
}

// Panel lays sliders out in a column at (X, Y).
type Panel struct {
	Title  string
	X, Y   float32
	Width  float32
	Hidden bool

	sliders []*Slider
	drag    int
}

// Layout constants, in screen pixels.
const (
	RowHeight   = 22
	TitleHeight = 24
	LabelWidth  = 150
	Padding     = 6
)

// NewPanel returns an empty panel anchored at the top-left corner.
func NewPanel(title string) *Panel {
	return &Panel{Title: title, X: 10, Y: 10, Width: 360, drag: -1}
}

// Add binds a slider to target.
func (p *Panel) Add(label string, target *float32) *Slider {
	s := &Slider{Label: label, target: target}
	p.sliders = append(p.sliders, s)
	return s
}

// Sliders returns the sliders in display order.
func (p *Panel) Sliders() []*Slider {
	return p.sliders
}

// Clear removes every slider, e.g. before rebinding to a reloaded scene.
func (p *Panel) Clear() {
	p.sliders = nil
	p.drag = -1
}

// Height is the panel's on-screen height.
func (p *Panel) Height() float32 {
	return TitleHeight + float32(len(p.sliders))*RowHeight + Padding
}

// track returns the horizontal extent of slider i's track and its row top.
func (p *Panel) track(i int) (x0, x1, top float32) {
	x0 = p.X + LabelWidth
	x1 = p.X + p.Width - Padding - 60
	top = p.Y + TitleHeight + float32(i)*RowHeight
	return x0, x1, top
}

// Pointer is the pointer state the panel reacts to.
type Pointer struct {
	X, Y float32
	Down bool
}

// HandlePointer drags sliders: pressing on a track grabs it, moving while held
// updates the value, releasing lets go. It reports whether the panel consumed the
// pointer, so camera controls can ignore it.
func (p *Panel) HandlePointer(ptr Pointer) bool {
	if p.Hidden {
		p.drag = -1
		return false
	}
	if !ptr.Down {
		consumed := p.drag >= 0
		p.drag = -1
		return consumed || p.contains(ptr.X, ptr.Y)
	}
	if p.drag < 0 {
		p.drag = p.hit(ptr.X, ptr.Y)
		if p.drag < 0 {
			return p.contains(ptr.X, ptr.Y)
		}
	}
	x0, x1, _ := p.track(p.drag)
	p.sliders[p.drag].SetFraction((ptr.X - x0) / (x1 - x0))
	return true
}

// Dragging reports whether a slider is held.
func (p *Panel) Dragging() bool {
	return p.drag >= 0
}

func (p *Panel) contains(x, y float32) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height()
}

func (p *Panel) hit(x, y float32) int {
	for i, s := range p.sliders {
		if !s.Bounded() {
			continue
		}
		x0, x1, top := p.track(i)
		if x >= x0 && x <= x1 && y >= top && y < top+RowHeight {
			return i
		}
	}
	return -1
}
