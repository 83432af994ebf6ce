package graphics

import (
	"testing"

	"scene-demos/internal/camera"
	"scene-demos/internal/controls"
	"scene-demos/internal/gui"
)

func newRouter(t *testing.T) (*Router, *float32) {
	t.Helper()
	value := float32(0)
	panel := gui.NewPanel("test")
	panel.Add("value", &value).Min(0).Max(1).Step(0.01)
	cam := camera.NewPerspective(75, 1, camera.WithPosition(0, 0, 5))
	return &Router{Panel: panel, Orbit: controls.NewOrbit(cam)}, &value
}

// Slider row 0 spans x 160..304, y 34..56 for a panel at (10, 10).
const trackX, trackY = 232, 40

func TestDragOutsidePanelRotates(t *testing.T) {
	r, value := newRouter(t)
	r.Route(Input{X: 600, Y: 300, DX: 10, DY: 0, Left: true}, 600)
	if !r.Orbit.Pending() {
		t.Fatal("drag outside the panel did not reach the controls")
	}
	// The drag keeps rotating when it crosses the panel.
	r.Route(Input{X: trackX, Y: trackY, DX: 10, Left: true}, 600)
	if *value != 0 {
		t.Fatalf("slider moved to %v during an orbit drag", *value)
	}
}

func TestDragOnSliderStaysWithPanel(t *testing.T) {
	r, value := newRouter(t)
	r.Route(Input{X: trackX, Y: trackY, Left: true}, 600)
	if *value != 0.5 {
		t.Fatalf("value = %v, want 0.5", *value)
	}
	r.Route(Input{X: 900, Y: 500, DX: 100, Left: true}, 600)
	if *value != 1 {
		t.Fatalf("value = %v, want 1 after dragging past the track", *value)
	}
	if r.Orbit.Pending() {
		t.Fatal("panel drag leaked to the controls")
	}
	r.Route(Input{X: 900, Y: 500}, 600)
	r.Route(Input{X: 900, Y: 500, DX: 5, Left: true}, 600)
	if !r.Orbit.Pending() {
		t.Fatal("a new drag after release did not reach the controls")
	}
}

func TestWheelOverPanelIsConsumed(t *testing.T) {
	r, _ := newRouter(t)
	r.Route(Input{X: 50, Y: 20, Wheel: 1}, 600)
	if r.Orbit.Pending() {
		t.Fatal("wheel over the panel zoomed")
	}
	r.Route(Input{X: 600, Y: 300, Wheel: 1}, 600)
	if !r.Orbit.Pending() {
		t.Fatal("wheel outside the panel did not zoom")
	}
}

func TestTogglePanel(t *testing.T) {
	r, value := newRouter(t)
	r.Route(Input{TogglePanel: true}, 600)
	if !r.Panel.Hidden {
		t.Fatal("panel not hidden")
	}
	r.Route(Input{X: trackX, Y: trackY, DX: 3, Left: true}, 600)
	if *value != 0 || !r.Orbit.Pending() {
		t.Fatal("hidden panel still took input")
	}
}

func TestNilTargets(t *testing.T) {
	r := &Router{}
	r.Route(Input{X: 1, Y: 1, DX: 1, Left: true, Wheel: 1, TogglePanel: true}, 600)
}
