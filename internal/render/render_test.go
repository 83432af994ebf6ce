package render

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"scene-demos/internal/scene"
)

func TestOutputSizeFollowsPixelRatio(t *testing.T) {
	r := New()
	r.SetSize(800, 600)
	if w, h := r.OutputSize(); w != 800 || h != 600 {
		t.Fatalf("OutputSize = %dx%d, want 800x600", w, h)
	}
	r.SetPixelRatio(2)
	if w, h := r.OutputSize(); w != 1600 || h != 1200 {
		t.Fatalf("OutputSize = %dx%d, want 1600x1200", w, h)
	}
	r.SetSize(1024, 768)
	r.SetPixelRatio(1.5)
	if w, h := r.OutputSize(); w != 1536 || h != 1152 {
		t.Fatalf("OutputSize = %dx%d, want 1536x1152", w, h)
	}
	if w, h := r.Size(); w != 1024 || h != 768 {
		t.Fatalf("Size = %dx%d", w, h)
	}
}

func TestWithShadows(t *testing.T) {
	on, typ := New(WithShadows(scene.ShadowPCFSoft)).ShadowsEnabled()
	if !on || typ != scene.ShadowPCFSoft {
		t.Fatalf("ShadowsEnabled = %v, %v", on, typ)
	}
	if on, _ := New().ShadowsEnabled(); on {
		t.Fatal("shadows on by default")
	}
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(WithLogger(zap.New(core)))
	r.log.Info("hello")
	if entries := logs.All(); len(entries) != 1 || entries[0].LoggerName != "render" {
		t.Fatalf("entries = %v", entries)
	}
	if r := New(WithLogger(nil)); r.log == nil {
		t.Fatal("nil logger replaced the default")
	}
}

func lightsScene() (*scene.Scene, *scene.DirectionalLight, *scene.SpotLight) {
	dir := scene.NewDirectionalLight(scene.LightConfig{
		Name:       "directional",
		Intensity:  1.5,
		Position:   mgl32.Vec3{2, 2, -1},
		CastShadow: true,
		Shadow:     scene.ShadowConfig{MapWidth: 1024, MapHeight: 1024, Near: 1, Far: 6},
	})
	spot := scene.NewSpotLight(scene.SpotLightConfig{
		LightConfig: scene.LightConfig{
			Name:       "spot",
			Intensity:  3.6,
			Position:   mgl32.Vec3{0, 2, 2},
			CastShadow: true,
			Shadow:     scene.ShadowConfig{MapWidth: 1024, MapHeight: 1024, Fov: 30},
		},
		Distance: 10,
		Angle:    0.3 * math32.Pi,
	})
	ambient := scene.NewAmbientLight("ambient", scene.Hex(0xffffff), 1)
	return scene.New(ambient, dir, spot), dir, spot
}

func TestCollectLights(t *testing.T) {
	s, dir, spot := lightsScene()
	lit := collectLights(s, true)

	if !lit.Ambient.ApproxEqual(mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("ambient = %v", lit.Ambient)
	}
	if len(lit.Lights) != 2 {
		t.Fatalf("lights = %d, want 2", len(lit.Lights))
	}
	d, sp := lit.Lights[0], lit.Lights[1]
	if d.Kind != kindDirectional || d.ShadowSlot != shadowSlotDirectional {
		t.Fatalf("directional = %+v", d)
	}
	if !d.Direction.ApproxEqual(dir.Direction()) {
		t.Fatalf("direction = %v", d.Direction)
	}
	if !d.Color.ApproxEqual(mgl32.Vec3{1.5, 1.5, 1.5}) {
		t.Fatalf("directional color = %v", d.Color)
	}
	if sp.Kind != kindSpot || sp.ShadowSlot != shadowSlotSpot || sp.Distance != 10 || sp.Decay != 2 {
		t.Fatalf("spot = %+v", sp)
	}
	if math32.Abs(sp.ConeCos-math32.Cos(spot.Angle)) > 1e-6 || sp.PenumbraCos != sp.ConeCos {
		t.Fatalf("cone = %v / %v", sp.ConeCos, sp.PenumbraCos)
	}
	if len(lit.Shadows) != 2 {
		t.Fatalf("shadow passes = %d, want 2", len(lit.Shadows))
	}
	if lit.Shadows[0].Settings.MapWidth != 1024 || lit.Shadows[1].Caster != scene.ShadowCaster(spot) {
		t.Fatalf("shadow passes = %+v", lit.Shadows)
	}
}

func TestCollectLightsWithoutShadows(t *testing.T) {
	s, _, _ := lightsScene()
	lit := collectLights(s, false)
	if len(lit.Shadows) != 0 {
		t.Fatalf("shadow passes = %d with shadows off", len(lit.Shadows))
	}
	for _, l := range lit.Lights {
		if l.ShadowSlot != 0 {
			t.Fatalf("light %+v has a shadow slot", l)
		}
	}
}

func TestCollectLightsCapsCount(t *testing.T) {
	s := scene.New()
	for i := 0; i < MaxLights+2; i++ {
		s.Add(scene.NewDirectionalLight(scene.LightConfig{Intensity: 1, Position: mgl32.Vec3{0, 1, 0}, CastShadow: true}))
	}
	lit := collectLights(s, true)
	if len(lit.Lights) != MaxLights {
		t.Fatalf("lights = %d, want %d", len(lit.Lights), MaxLights)
	}
	if len(lit.Shadows) != 1 {
		t.Fatalf("shadow passes = %d, want 1 per slot", len(lit.Shadows))
	}
}

func TestAxesLinesFollowWorld(t *testing.T) {
	h := scene.NewAxesHelper("axes", 2)
	world := mgl32.Translate3D(0, 1, 0)
	lines := axesLines(h, world)
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	want := []mgl32.Vec3{{2, 1, 0}, {0, 3, 0}, {0, 1, 2}}
	for i, l := range lines {
		if !l.From.ApproxEqual(mgl32.Vec3{0, 1, 0}) || !l.To.ApproxEqualThreshold(want[i], 1e-5) {
			t.Fatalf("line %d = %v -> %v, want origin -> %v", i, l.From, l.To, want[i])
		}
	}
	if lines[0].Color != axisX || lines[1].Color != axisY || lines[2].Color != axisZ {
		t.Fatal("axis colors out of order")
	}
}

func TestFrustumLines(t *testing.T) {
	_, _, spot := lightsScene()
	lines := frustumLines(scene.NewCameraHelper("helper", spot))
	if len(lines) != 17 {
		t.Fatalf("lines = %d, want 17", len(lines))
	}
	eye := spot.WorldPosition()
	last := lines[len(lines)-1]
	if !last.From.ApproxEqual(eye) {
		t.Fatalf("target line starts at %v, want %v", last.From, eye)
	}
	// The far plane center lies along the light direction at the light's distance.
	far := last.To.Sub(eye)
	if got := far.Len(); math32.Abs(got-spot.Distance) > 1e-2 {
		t.Fatalf("far distance = %v, want %v", got, spot.Distance)
	}
	if !far.Normalize().ApproxEqualThreshold(spot.Direction(), 1e-4) {
		t.Fatalf("far direction = %v, want %v", far.Normalize(), spot.Direction())
	}
	if frustumLines(scene.NewCameraHelper("empty", nil)) != nil {
		t.Fatal("helper without source produced lines")
	}
}

func TestToMatrixKeepsTranslation(t *testing.T) {
	m := toMatrix(mgl32.Translate3D(1, 2, 3))
	if m.M12 != 1 || m.M13 != 2 || m.M14 != 3 || m.M0 != 1 || m.M15 != 1 {
		t.Fatalf("matrix = %+v", m)
	}
}
