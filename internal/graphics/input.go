package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-demos/internal/controls"
	"scene-demos/internal/gui"
)

// Input is one poll of mouse and keyboard state.
type Input struct {
	X, Y        float32
	DX, DY      float32
	Wheel       float32
	Left, Right bool
	TogglePanel bool
}

// ReadInput polls raylib. Call once per loop iteration.
func ReadInput() Input {
	pos := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	return Input{
		X:           pos.X,
		Y:           pos.Y,
		DX:          delta.X,
		DY:          delta.Y,
		Wheel:       rl.GetMouseWheelMove(),
		Left:        rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Right:       rl.IsMouseButtonDown(rl.MouseButtonRight),
		TogglePanel: rl.IsKeyPressed(rl.KeyH),
	}
}

type owner int

const (
	ownerNone owner = iota
	ownerPanel
	ownerControls
)

// Router hands input to the debug panel first and to the orbit controls
// otherwise. A drag belongs to whichever started it until every button is
// released. Either target may be nil.
type Router struct {
	Panel *gui.Panel
	Orbit *controls.Orbit

	owner owner
}

// Route applies one poll. viewportHeight scales rotation and panning.
func (r *Router) Route(in Input, viewportHeight float32) {
	if in.TogglePanel && r.Panel != nil {
		r.Panel.Hidden = !r.Panel.Hidden
	}
	down := in.Left || in.Right
	overPanel := false
	if r.Panel != nil && r.owner != ownerControls {
		overPanel = r.Panel.HandlePointer(gui.Pointer{X: in.X, Y: in.Y, Down: in.Left})
	}
	switch {
	case !down:
		r.owner = ownerNone
	case r.owner == ownerNone && overPanel:
		r.owner = ownerPanel
	case r.owner == ownerNone:
		r.owner = ownerControls
	}
	if r.Orbit == nil || r.owner == ownerPanel || (r.owner == ownerNone && overPanel) {
		return
	}
	r.Orbit.HandlePointer(controls.Pointer{
		DX:       in.DX,
		DY:       in.DY,
		Rotating: in.Left,
		Panning:  in.Right && !in.Left,
		Wheel:    in.Wheel,
	}, viewportHeight)
}

// Pump returns a loop pump that reads raylib input and routes it.
func (r *Router) Pump(win Window) func() {
	return func() {
		_, h := win.Size()
		r.Route(ReadInput(), float32(h))
	}
}
