// Package controls implements orbit camera controls: the camera circles a target
// point, driven by pointer input that accumulates between frames and is applied
// once per frame by Update.
package controls

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demos/internal/camera"
)

const (
	// DefaultDampingFactor is the fraction of the pending motion applied per update when damping is on.
	DefaultDampingFactor = 0.05

	// polarEpsilon keeps the polar angle off the poles so the view basis stays
	// defined. Cos of anything much smaller rounds to 1 in float32.
	polarEpsilon = 1e-3

	// settleEpsilon is the magnitude below which pending motion is dropped.
	settleEpsilon = 1e-6
)

// spherical holds coordinates around the target: phi from +Y, theta around Y from +Z.
type spherical struct {
	radius float32
	phi    float32
	theta  float32
}

func sphericalFrom(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math32.Atan2(v.X(), v.Z()),
		phi:    math32.Acos(clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vector() mgl32.Vec3 {
	sinPhiRadius := math32.Sin(s.phi) * s.radius
	return mgl32.Vec3{
		sinPhiRadius * math32.Sin(s.theta),
		math32.Cos(s.phi) * s.radius,
		sinPhiRadius * math32.Cos(s.theta),
	}
}

// Orbit rotates, dollies and pans a perspective camera around Target.
type Orbit struct {
	camera *camera.Perspective

	Target mgl32.Vec3

	EnableDamping bool
	DampingFactor float32

	EnableRotate bool
	EnableZoom   bool
	EnablePan    bool
	RotateSpeed  float32
	ZoomSpeed    float32
	PanSpeed     float32

	MinDistance     float32
	MaxDistance     float32
	MinPolarAngle   float32
	MaxPolarAngle   float32
	MinAzimuthAngle float32
	MaxAzimuthAngle float32

	delta     spherical
	panOffset mgl32.Vec3
	scale     float32
}

// NewOrbit attaches controls to cam, orbiting the world origin.
func NewOrbit(cam *camera.Perspective) *Orbit {
	o := &Orbit{
		camera:          cam,
		DampingFactor:   DefaultDampingFactor,
		EnableRotate:    true,
		EnableZoom:      true,
		EnablePan:       true,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		PanSpeed:        1,
		MaxDistance:     math32.Inf(1),
		MaxPolarAngle:   math32.Pi,
		MinAzimuthAngle: math32.Inf(-1),
		MaxAzimuthAngle: math32.Inf(1),
		scale:           1,
	}
	cam.LookAt(o.Target)
	return o
}

// Camera returns the controlled camera.
func (o *Orbit) Camera() *camera.Perspective {
	return o.camera
}

// Pending reports whether any accumulated motion is still waiting to be applied.
func (o *Orbit) Pending() bool {
	return o.delta.theta != 0 || o.delta.phi != 0 || o.scale != 1 || o.panOffset != (mgl32.Vec3{})
}

// Update applies one step of accumulated motion to the camera and reports whether
// the camera moved. With damping on, only DampingFactor of the pending rotation and
// pan is applied and the remainder decays; without damping everything is applied.
func (o *Orbit) Update() bool {
	if !o.Pending() {
		o.camera.LookAt(o.Target)
		return false
	}

	before := o.camera.Position
	offset := o.camera.Position.Sub(o.Target)
	s := sphericalFrom(offset)

	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	s.theta += o.delta.theta * factor
	s.phi += o.delta.phi * factor

	if !math32.IsInf(o.MinAzimuthAngle, 0) && !math32.IsInf(o.MaxAzimuthAngle, 0) {
		s.theta = clamp(s.theta, o.MinAzimuthAngle, o.MaxAzimuthAngle)
	}
	s.phi = clamp(s.phi, o.MinPolarAngle, o.MaxPolarAngle)
	s.phi = clamp(s.phi, polarEpsilon, math32.Pi-polarEpsilon)
	s.radius = clamp(s.radius*o.scale, o.MinDistance, o.MaxDistance)

	o.Target = o.Target.Add(o.panOffset.Mul(factor))
	o.camera.SetPosition(o.Target.Add(s.vector()))
	o.camera.LookAt(o.Target)

	if o.EnableDamping {
		decay := 1 - o.DampingFactor
		o.delta.theta = settle(o.delta.theta * decay)
		o.delta.phi = settle(o.delta.phi * decay)
		o.panOffset = o.panOffset.Mul(decay)
		if o.panOffset.Len() < settleEpsilon {
			o.panOffset = mgl32.Vec3{}
		}
	} else {
		o.delta = spherical{}
		o.panOffset = mgl32.Vec3{}
	}
	o.scale = 1

	return o.camera.Position.Sub(before).Len() > settleEpsilon
}

// RotateLeft queues an azimuth rotation in radians.
func (o *Orbit) RotateLeft(angle float32) {
	o.delta.theta -= angle
}

// RotateUp queues a polar rotation in radians.
func (o *Orbit) RotateUp(angle float32) {
	o.delta.phi -= angle
}

// DollyIn moves the camera toward the target by factor (0 < factor < 1).
func (o *Orbit) DollyIn(factor float32) {
	o.scale *= factor
}

// DollyOut moves the camera away from the target by 1/factor.
func (o *Orbit) DollyOut(factor float32) {
	o.scale /= factor
}

// Pan queues a screen-space pan of dx, dy pixels for a viewport of the given height.
func (o *Orbit) Pan(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	offset := o.camera.Position.Sub(o.Target)
	distance := offset.Len() * math32.Tan(mgl32.DegToRad(o.camera.Fov)/2)

	forward := o.Target.Sub(o.camera.Position)
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(o.camera.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(forward)

	left := right.Mul(-2 * dx * distance / viewportHeight)
	upward := up.Mul(2 * dy * distance / viewportHeight)
	o.panOffset = o.panOffset.Add(left).Add(upward)
}

func (o *Orbit) zoomScale() float32 {
	return math32.Pow(0.95, o.ZoomSpeed)
}

func settle(v float32) float32 {
	if math32.Abs(v) < settleEpsilon {
		return 0
	}
	return v
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
