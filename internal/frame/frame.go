// Package frame drives the update/render loop of a scene and keeps the camera and
// renderer in agreement with the viewport size.
//
// A Driver is either rendered once (RenderOnce) or started (Start), after which every
// tick advances the controls by one step, renders, and asks the Scheduler for the next
// display refresh. Resize reactions are applied synchronously and completely, so the
// render of the next tick always sees a consistent camera aspect and output size.
package frame

import (
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"scene-demos/internal/camera"
	"scene-demos/internal/scene"
)

// State is the lifecycle position of a Driver.
type State int

const (
	Idle State = iota
	Running
	RenderedOnce
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case RenderedOnce:
		return "rendered-once"
	}
	return "unknown"
}

// Scheduler invokes fn once at the next display refresh. It never runs fn
// concurrently with another callback it scheduled.
type Scheduler interface {
	RequestFrame(fn func())
}

// Renderer draws a scene through a camera into an output buffer of a given size.
type Renderer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
	Render(s *scene.Scene, cam *camera.Perspective)
}

// Controls are advanced exactly once per tick.
type Controls interface {
	Update() bool
}

// Viewport reports the current drawable size in device-independent pixels and the
// device pixel ratio.
type Viewport interface {
	Size() (width, height int)
	DevicePixelRatio() float32
}

// Size is a viewport size in device-independent pixels.
type Size struct {
	Width  int
	Height int
}

// Aspect returns Width/Height.
func (s Size) Aspect() float32 {
	return float32(s.Width) / float32(s.Height)
}

// Context is the set of objects a Driver renders. They are shared by reference
// with the rendering backend; the Driver only sequences calls on them.
type Context struct {
	Scene    *scene.Scene
	Camera   *camera.Perspective
	Renderer Renderer
}

// Driver owns the frame scheduling decision for one Context.
type Driver struct {
	ctx       Context
	viewport  Viewport
	scheduler Scheduler
	controls  Controls
	clock     *Clock
	log       *zap.Logger

	pixelRatioLimit float32

	size    Size
	state   State
	running bool
	// generation changes on Stop; ticks queued before it return without rendering.
	generation uint64
	ticks      uint64
}

// New returns an idle Driver. The camera aspect and renderer size are set from the
// viewport before New returns.
func New(ctx Context, viewport Viewport, scheduler Scheduler, opts ...Option) *Driver {
	d := &Driver{
		ctx:       ctx,
		viewport:  viewport,
		scheduler: scheduler,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = NewClock(nil)
	}
	d.applySize()
	return d
}

// Start moves the Driver to Running and runs the first tick immediately. Calling
// Start on a running Driver starts a second tick chain.
func (d *Driver) Start() {
	d.state = Running
	d.running = true
	d.log.Info("frame loop started",
		zap.Int("width", d.size.Width),
		zap.Int("height", d.size.Height))
	d.tick(d.generation)
}

// Stop cancels the loop. A tick already requested from the scheduler returns
// without rendering, even if Start is called again before it runs, and no
// further ticks are requested.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.generation++
	d.state = Idle
	d.log.Info("frame loop stopped", zap.Uint64("ticks", d.ticks))
}

// RenderOnce issues a single render call and schedules nothing.
func (d *Driver) RenderOnce() {
	d.ctx.Renderer.Render(d.ctx.Scene, d.ctx.Camera)
	d.state = RenderedOnce
}

func (d *Driver) tick(generation uint64) {
	if !d.running || generation != d.generation {
		return
	}
	if d.controls != nil {
		d.controls.Update()
	}
	d.clock.Tick()
	d.ctx.Renderer.Render(d.ctx.Scene, d.ctx.Camera)
	d.ticks++

	if d.running && generation == d.generation {
		d.scheduler.RequestFrame(func() { d.tick(generation) })
	}
}

// OnResize reacts to a viewport size change: the camera aspect and projection and
// the renderer output size (and, when limited, pixel ratio) are all updated before
// it returns.
func (d *Driver) OnResize() {
	d.applySize()
	d.log.Debug("viewport resized",
		zap.Int("width", d.size.Width),
		zap.Int("height", d.size.Height))
}

func (d *Driver) applySize() {
	w, h := d.viewport.Size()
	d.size = Size{Width: w, Height: h}

	d.ctx.Camera.Aspect = d.size.Aspect()
	d.ctx.Camera.UpdateProjectionMatrix()

	d.ctx.Renderer.SetSize(w, h)
	if d.pixelRatioLimit > 0 {
		d.ctx.Renderer.SetPixelRatio(ClampPixelRatio(d.viewport.DevicePixelRatio(), d.pixelRatioLimit))
	}
}

// ClampPixelRatio returns min(ratio, limit).
func ClampPixelRatio(ratio, limit float32) float32 {
	return math32.Min(ratio, limit)
}

// SetScene replaces the rendered scene. Takes effect on the next render.
func (d *Driver) SetScene(s *scene.Scene) {
	d.ctx.Scene = s
}

// Scene returns the scene currently rendered.
func (d *Driver) Scene() *scene.Scene {
	return d.ctx.Scene
}

// State returns the lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Viewport returns the size applied by the last resize reaction.
func (d *Driver) Viewport() Size {
	return d.size
}

// Ticks returns how many ticks have rendered.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Elapsed is the frame clock's time since the first tick.
func (d *Driver) Elapsed() time.Duration {
	return d.clock.Elapsed()
}

// Clock returns the frame clock advanced by each tick.
func (d *Driver) Clock() *Clock {
	return d.clock
}
