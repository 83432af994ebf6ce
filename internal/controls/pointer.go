package controls

import (
	"github.com/chewxy/math32"
)

// Pointer is one poll of pointer input: movement since the previous poll, which
// drag gesture is active, and wheel movement (positive scrolls away from the user).
type Pointer struct {
	DX, DY   float32
	Rotating bool
	Panning  bool
	Wheel    float32
}

// HandlePointer turns a pointer poll into queued motion. Nothing moves until Update.
func (o *Orbit) HandlePointer(p Pointer, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	if p.Rotating && o.EnableRotate && (p.DX != 0 || p.DY != 0) {
		o.RotateLeft(2 * math32.Pi * p.DX / viewportHeight * o.RotateSpeed)
		o.RotateUp(2 * math32.Pi * p.DY / viewportHeight * o.RotateSpeed)
	}
	if p.Panning && o.EnablePan && (p.DX != 0 || p.DY != 0) {
		o.Pan(p.DX*o.PanSpeed, p.DY*o.PanSpeed, viewportHeight)
	}
	if o.EnableZoom {
		switch {
		case p.Wheel > 0:
			o.DollyIn(o.zoomScale())
		case p.Wheel < 0:
			o.DollyOut(o.zoomScale())
		}
	}
}
