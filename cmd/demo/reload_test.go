package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"scene-demos/internal/camera"
	"scene-demos/internal/engineconfig"
	"scene-demos/internal/frame"
	"scene-demos/internal/gui"
	"scene-demos/internal/scene"
	"scene-demos/internal/scenefile"
)

type countingRenderer struct{ renders int }

func (r *countingRenderer) SetSize(int, int)                         {}
func (r *countingRenderer) SetPixelRatio(float32)                    {}
func (r *countingRenderer) Render(*scene.Scene, *camera.Perspective) { r.renders++ }

type noScheduler struct{}

func (noScheduler) RequestFrame(func()) {}

func newReloader(t *testing.T, name string) (*reloader, *countingRenderer, *observer.ObservedLogs) {
	t.Helper()
	base, err := scenefile.Embedded(name)
	if err != nil {
		t.Fatal(err)
	}
	built, err := scenefile.Build(base)
	if err != nil {
		t.Fatal(err)
	}
	rend := &countingRenderer{}
	driver := frame.New(frame.Context{Scene: built.Scene, Camera: built.Camera, Renderer: rend},
		frame.FixedViewport{Width: 800, Height: 600, PixelRatio: 1}, noScheduler{})
	panel := gui.NewPanel(name)
	if err := built.Bind(panel); err != nil {
		t.Fatal(err)
	}
	core, logs := observer.New(zapcore.InfoLevel)
	return &reloader{base: base, driver: driver, panel: panel, loop: base.Loop, log: zap.New(core)}, rend, logs
}

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReloadSwapsSceneAndRebindsPanel(t *testing.T) {
	r, rend, logs := newReloader(t, "lights")
	before := r.driver.Scene()
	path := writeScene(t, "gui:\n  - { label: ambient, object: ambient, field: intensity, min: 0, max: 3 }\n")

	r.reload(path)

	if r.driver.Scene() == before {
		t.Fatal("scene not replaced")
	}
	if n := len(r.panel.Sliders()); n != 1 {
		t.Fatalf("sliders = %d, want 1", n)
	}
	if rend.renders != 0 {
		t.Fatalf("looping demo rendered %d times on reload", rend.renders)
	}
	if logs.FilterMessage("scene reloaded").Len() != 1 {
		t.Fatalf("logs = %v", logs.All())
	}
}

func TestReloadKeepsSceneOnError(t *testing.T) {
	r, _, logs := newReloader(t, "lights")
	before := r.driver.Scene()
	sliders := len(r.panel.Sliders())

	r.reload(writeScene(t, "objects: [\n"))
	r.reload(filepath.Join(t.TempDir(), "missing.yaml"))

	if r.driver.Scene() != before || len(r.panel.Sliders()) != sliders {
		t.Fatal("failed reload changed the scene")
	}
	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 2 {
		t.Fatalf("warnings = %d, want 2", n)
	}
}

func TestReloadKeepsSceneOnBadSliderTarget(t *testing.T) {
	r, _, logs := newReloader(t, "lights")
	before := r.driver.Scene()
	sliders := len(r.panel.Sliders())

	r.reload(writeScene(t, "gui:\n  - { object: ghost, field: intensity }\n"))
	r.reload(writeScene(t, "gui:\n  - { object: ambient, field: penumbra }\n"))

	if r.driver.Scene() != before {
		t.Fatal("scene replaced despite a bad slider")
	}
	if n := len(r.panel.Sliders()); n != sliders {
		t.Fatalf("sliders = %d, want %d", n, sliders)
	}
	if n := logs.FilterMessage("scene reload failed, keeping current scene").Len(); n != 2 {
		t.Fatalf("reload warnings = %d, want 2", n)
	}
}

func TestReloadRendersOnceForStillScene(t *testing.T) {
	r, rend, _ := newReloader(t, "cubes")
	r.reload(writeScene(t, "background: \"#202020\"\n"))
	if rend.renders != 1 {
		t.Fatalf("renders = %d, want 1", rend.renders)
	}
	if got := r.driver.Scene().Background; got != scene.Hex(0x202020) {
		t.Fatalf("background = %v", got)
	}
}

func TestRegistryHasBothDemos(t *testing.T) {
	reg := newRegistry(context.Background(), engineconfig.Default(), nil)
	names := reg.Names()
	if len(names) != 2 || names[0] != "cubes" || names[1] != "lights" {
		t.Fatalf("Names = %v", names)
	}
	if err := reg.Execute([]string{"lights", "-watch"}); err == nil {
		t.Fatal("-watch without -scene accepted")
	}
}
