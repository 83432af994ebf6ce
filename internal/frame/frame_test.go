package frame

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"scene-demos/internal/camera"
	"scene-demos/internal/scene"
)

// events records calls from every fake in order.
type events []string

type fakeRenderer struct {
	log        *events
	cam        *camera.Perspective
	width      int
	height     int
	pixelRatio float32
	renders    int

	// aspect the camera projection had at each render
	seenAspects []float32
}

func (r *fakeRenderer) SetSize(w, h int) {
	*r.log = append(*r.log, "setSize")
	r.width, r.height = w, h
}

func (r *fakeRenderer) SetPixelRatio(ratio float32) {
	*r.log = append(*r.log, "setPixelRatio")
	r.pixelRatio = ratio
}

func (r *fakeRenderer) Render(_ *scene.Scene, cam *camera.Perspective) {
	*r.log = append(*r.log, "render")
	r.renders++
	r.seenAspects = append(r.seenAspects, cam.ProjectionAspect())
}

type fakeControls struct {
	log     *events
	updates int
}

func (c *fakeControls) Update() bool {
	*c.log = append(*c.log, "controls")
	c.updates++
	return false
}

type fakeViewport struct {
	w, h int
	dpr  float32
}

func (v *fakeViewport) Size() (int, int)          { return v.w, v.h }
func (v *fakeViewport) DevicePixelRatio() float32 { return v.dpr }

// manualScheduler queues frame requests until the test flushes them.
type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) RequestFrame(fn func()) {
	s.pending = append(s.pending, fn)
}

func (s *manualScheduler) step() bool {
	if len(s.pending) == 0 {
		return false
	}
	fn := s.pending[0]
	s.pending = s.pending[1:]
	fn()
	return true
}

type harness struct {
	log      events
	cam      *camera.Perspective
	renderer *fakeRenderer
	controls *fakeControls
	viewport *fakeViewport
	sched    *manualScheduler
	driver   *Driver
}

func newHarness(t *testing.T, w, h int, dpr float32, opts ...Option) *harness {
	t.Helper()
	hs := &harness{
		cam:      camera.NewPerspective(75, 1, camera.WithClipPlanes(0.1, 100)),
		viewport: &fakeViewport{w: w, h: h, dpr: dpr},
		sched:    &manualScheduler{},
	}
	hs.renderer = &fakeRenderer{log: &hs.log}
	hs.controls = &fakeControls{log: &hs.log}
	opts = append([]Option{WithControls(hs.controls)}, opts...)
	hs.driver = New(Context{Scene: scene.New(), Camera: hs.cam, Renderer: hs.renderer}, hs.viewport, hs.sched, opts...)
	hs.log = nil
	return hs
}

func TestNewAppliesInitialSize(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	if hs.cam.Aspect != float32(800)/600 || hs.cam.ProjectionAspect() != float32(800)/600 {
		t.Fatalf("aspect = %v / %v, want 800/600", hs.cam.Aspect, hs.cam.ProjectionAspect())
	}
	if hs.renderer.width != 800 || hs.renderer.height != 600 {
		t.Fatalf("renderer size = %dx%d", hs.renderer.width, hs.renderer.height)
	}
	if hs.driver.State() != Idle {
		t.Fatalf("state = %v, want idle", hs.driver.State())
	}
}

func TestResizeScenario(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()

	hs.viewport.w, hs.viewport.h = 1024, 768
	hs.driver.OnResize()
	hs.sched.step()

	want := []string{"controls", "render", "setSize", "controls", "render"}
	if len(hs.log) != len(want) {
		t.Fatalf("events = %v, want %v", hs.log, want)
	}
	for i := range want {
		if hs.log[i] != want[i] {
			t.Fatalf("events = %v, want %v", hs.log, want)
		}
	}
	if got := hs.cam.ProjectionAspect(); got != float32(1024)/768 {
		t.Fatalf("aspect = %v, want %v", got, float32(1024)/768)
	}
	if hs.renderer.width != 1024 || hs.renderer.height != 768 {
		t.Fatalf("renderer size = %dx%d, want 1024x768", hs.renderer.width, hs.renderer.height)
	}
	if v := hs.driver.Viewport(); v != (Size{1024, 768}) {
		t.Fatalf("viewport = %+v", v)
	}
}

func TestResizeConsistencyAfterTick(t *testing.T) {
	sizes := []Size{{800, 600}, {1920, 1080}, {300, 900}, {1, 1}, {1024, 768}, {640, 480}}
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()
	for i := 0; i < len(sizes); i++ {
		// Several resizes may land between two ticks.
		for _, s := range sizes[:i+1] {
			hs.viewport.w, hs.viewport.h = s.Width, s.Height
			hs.driver.OnResize()
		}
		hs.sched.step()

		last := sizes[i]
		vp := hs.driver.Viewport()
		if vp != last {
			t.Fatalf("viewport = %+v, want %+v", vp, last)
		}
		if hs.cam.Aspect != last.Aspect() || hs.cam.ProjectionAspect() != last.Aspect() {
			t.Fatalf("camera aspect = %v, want %v", hs.cam.Aspect, last.Aspect())
		}
		if hs.renderer.width != last.Width || hs.renderer.height != last.Height {
			t.Fatalf("renderer size = %dx%d, want %+v", hs.renderer.width, hs.renderer.height, last)
		}
		if got := hs.renderer.seenAspects[len(hs.renderer.seenAspects)-1]; got != last.Aspect() {
			t.Fatalf("render saw aspect %v, want %v", got, last.Aspect())
		}
	}
}

func TestPixelRatioClamp(t *testing.T) {
	for _, dpr := range []float32{0.5, 1, 1.5, 2, 2.5, 3, 4} {
		hs := newHarness(t, 800, 600, dpr, WithPixelRatioLimit(2))
		want := dpr
		if want > 2 {
			want = 2
		}
		if hs.renderer.pixelRatio != want {
			t.Fatalf("dpr %v: initial pixel ratio = %v, want %v", dpr, hs.renderer.pixelRatio, want)
		}
		hs.viewport.dpr = dpr + 1
		hs.driver.OnResize()
		want = ClampPixelRatio(dpr+1, 2)
		if hs.renderer.pixelRatio != want {
			t.Fatalf("dpr %v: resized pixel ratio = %v, want %v", dpr+1, hs.renderer.pixelRatio, want)
		}
	}
}

func TestPixelRatioUntouchedWithoutLimit(t *testing.T) {
	hs := newHarness(t, 800, 600, 3)
	hs.driver.OnResize()
	for _, e := range hs.log {
		if e == "setPixelRatio" {
			t.Fatal("pixel ratio applied without a limit")
		}
	}
}

func TestControlsUpdateBeforeRender(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()
	for i := 0; i < 5; i++ {
		hs.sched.step()
	}
	if len(hs.log) != 12 {
		t.Fatalf("events = %v", hs.log)
	}
	for i := 0; i < len(hs.log); i += 2 {
		if hs.log[i] != "controls" || hs.log[i+1] != "render" {
			t.Fatalf("tick %d order = %v", i/2, hs.log[i:i+2])
		}
	}
}

func TestRenderOnceSchedulesNothing(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.RenderOnce()
	if hs.renderer.renders != 1 {
		t.Fatalf("renders = %d, want 1", hs.renderer.renders)
	}
	if len(hs.sched.pending) != 0 {
		t.Fatalf("%d frames requested", len(hs.sched.pending))
	}
	if hs.controls.updates != 0 {
		t.Fatal("controls updated by a single render")
	}
	if hs.driver.State() != RenderedOnce {
		t.Fatalf("state = %v", hs.driver.State())
	}
}

func TestLoopReschedulesEveryTick(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()
	if hs.driver.State() != Running {
		t.Fatalf("state = %v", hs.driver.State())
	}
	for i := 0; i < 100; i++ {
		if len(hs.sched.pending) != 1 {
			t.Fatalf("tick %d: %d frames pending, want 1", i, len(hs.sched.pending))
		}
		hs.sched.step()
	}
	if hs.driver.Ticks() != 101 {
		t.Fatalf("ticks = %d, want 101", hs.driver.Ticks())
	}
	if hs.driver.State() != Running {
		t.Fatalf("state = %v", hs.driver.State())
	}
}

func TestStopCancelsPendingTick(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()
	hs.driver.Stop()
	if hs.driver.State() != Idle {
		t.Fatalf("state = %v", hs.driver.State())
	}
	renders := hs.renderer.renders
	for hs.sched.step() {
	}
	if hs.renderer.renders != renders {
		t.Fatal("cancelled tick rendered")
	}
	if len(hs.sched.pending) != 0 {
		t.Fatal("cancelled loop requested another frame")
	}
}

func TestRestartAfterStopRunsOneChain(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()
	hs.driver.Stop()
	hs.driver.Start()
	renders := hs.renderer.renders
	for i := 0; i < 6; i++ {
		hs.sched.step()
		if len(hs.sched.pending) != 1 {
			t.Fatalf("step %d: %d frames pending, want 1", i, len(hs.sched.pending))
		}
	}
	// The first step drains the tick queued before Stop, which renders nothing.
	if got := hs.renderer.renders - renders; got != 5 {
		t.Fatalf("renders = %d, want 5", got)
	}
	if hs.driver.State() != Running {
		t.Fatalf("state = %v", hs.driver.State())
	}
}

func TestStartTwiceRunsTwoChains(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	hs.driver.Start()
	hs.driver.Start()
	if len(hs.sched.pending) != 2 {
		t.Fatalf("%d frames pending, want 2", len(hs.sched.pending))
	}
}

func TestSetSceneTakesEffectNextRender(t *testing.T) {
	hs := newHarness(t, 800, 600, 1)
	next := scene.New()
	hs.driver.SetScene(next)
	if hs.driver.Scene() != next {
		t.Fatal("scene not replaced")
	}
}

func TestClockAdvancesPerTick(t *testing.T) {
	now := time.Unix(0, 0)
	clock := NewClock(func() time.Time {
		now = now.Add(16 * time.Millisecond)
		return now
	})
	hs := newHarness(t, 800, 600, 1, WithClock(clock))
	hs.driver.Start()
	hs.sched.step()
	hs.sched.step()
	if got := hs.driver.Elapsed(); got != 32*time.Millisecond {
		t.Fatalf("elapsed = %v, want 32ms", got)
	}
	if got := hs.driver.Clock().Delta(); got != 16*time.Millisecond {
		t.Fatalf("delta = %v, want 16ms", got)
	}
}

func TestLifecycleLogging(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	hs := newHarness(t, 800, 600, 1, WithLogger(zap.New(core)))
	hs.driver.Start()
	hs.driver.OnResize()
	hs.driver.Stop()

	msgs := []string{"frame loop started", "viewport resized", "frame loop stopped"}
	entries := recorded.All()
	if len(entries) != len(msgs) {
		t.Fatalf("got %d log entries, want %d", len(entries), len(msgs))
	}
	for i, m := range msgs {
		if entries[i].Message != m {
			t.Fatalf("entry %d = %q, want %q", i, entries[i].Message, m)
		}
		if entries[i].LoggerName != "frame" {
			t.Fatalf("logger name = %q", entries[i].LoggerName)
		}
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Running.String() != "running" || RenderedOnce.String() != "rendered-once" {
		t.Fatal("unexpected state names")
	}
}
