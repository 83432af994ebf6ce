package camera

import "github.com/go-gl/mathgl/mgl32"

// Defaults used when a camera is built without explicit clipping planes.
const (
	DefaultFov  = 50
	DefaultNear = 0.1
	DefaultFar  = 2000
)

// Perspective is a pinhole camera with a vertical field of view in degrees.
// Aspect, Fov, Near and Far are plain fields; the projection matrix built from them
// is cached and only rebuilt by UpdateProjectionMatrix.
type Perspective struct {
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection       mgl32.Mat4
	projectionAspect float32
}

// Option configures a Perspective at construction.
type Option func(*Perspective)

// WithClipPlanes sets the near and far planes.
func WithClipPlanes(near, far float32) Option {
	return func(c *Perspective) {
		c.Near = near
		c.Far = far
	}
}

// WithPosition places the camera.
func WithPosition(x, y, z float32) Option {
	return func(c *Perspective) {
		c.Position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the point the camera looks at.
func WithTarget(x, y, z float32) Option {
	return func(c *Perspective) {
		c.Target = mgl32.Vec3{x, y, z}
	}
}

// NewPerspective returns a camera at the origin looking at the origin along -Z,
// with its projection matrix already computed.
func NewPerspective(fov, aspect float32, opts ...Option) *Perspective {
	c := &Perspective{
		Fov:    fov,
		Aspect: aspect,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Up:     mgl32.Vec3{0, 1, 0},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix rebuilds the projection from Fov, Aspect, Near and Far.
// It must be called after any of those fields change.
func (c *Perspective) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
	c.projectionAspect = c.Aspect
}

// ProjectionMatrix returns the cached projection matrix.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ProjectionAspect returns the aspect ratio the cached projection was built with.
func (c *Perspective) ProjectionAspect() float32 {
	return c.projectionAspect
}

// ViewMatrix returns the world-to-camera transform.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	eye := c.Position
	if eye.ApproxEqual(c.Target) {
		// Degenerate look direction; fall back to looking down -Z.
		return mgl32.LookAtV(eye, eye.Sub(mgl32.Vec3{0, 0, 1}), c.Up)
	}
	return mgl32.LookAtV(eye, c.Target, c.Up)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.ViewMatrix())
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// SetPosition moves the camera without changing its target.
func (c *Perspective) SetPosition(p mgl32.Vec3) {
	c.Position = p
}
