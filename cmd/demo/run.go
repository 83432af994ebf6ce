package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"scene-demos/internal/debug"
	"scene-demos/internal/engineconfig"
	"scene-demos/internal/frame"
	"scene-demos/internal/graphics"
	"scene-demos/internal/gui"
	"scene-demos/internal/logger"
	"scene-demos/internal/render"
	"scene-demos/internal/scenefile"
)

type demoOptions struct {
	scene      string
	watch      bool
	gui        bool
	screenshot string
}

// runDemo opens a window for the named scene and runs the loop until the window
// closes or ctx is cancelled.
func runDemo(ctx context.Context, name string, opts demoOptions, prefs engineconfig.EnginePrefs, log *logger.Logger) error {
	if opts.watch && opts.scene == "" {
		return errors.New("-watch needs -scene")
	}
	base, err := scenefile.Embedded(name)
	if err != nil {
		return err
	}
	spec := base
	if opts.scene != "" {
		if spec, err = scenefile.LoadFile(opts.scene, base); err != nil {
			return err
		}
	}
	built, err := scenefile.Build(spec)
	if err != nil {
		return err
	}

	wcfg := graphics.WindowConfig{
		Title:     fmt.Sprintf("%s - %s", prefs.Window.Title, spec.Name),
		Width:     prefs.Window.Width,
		Height:    prefs.Window.Height,
		Resizable: prefs.Window.Resizable,
		HighDPI:   prefs.Window.HighDPI,
		MSAA:      prefs.Window.MSAA,
		TargetFPS: prefs.Window.TargetFPS,
	}
	fixed := spec.Viewport.Mode == scenefile.ViewportFixed
	if fixed {
		wcfg.Width, wcfg.Height, wcfg.Resizable = spec.Viewport.Width, spec.Viewport.Height, false
	}
	win := graphics.OpenWindow(wcfg)
	defer win.Close()
	var viewport frame.Viewport = win
	if fixed {
		viewport = frame.FixedViewport{Width: spec.Viewport.Width, Height: spec.Viewport.Height, PixelRatio: 1}
	}

	ropts := []render.Option{render.WithLogger(log.Logger)}
	if built.Shadows {
		ropts = append(ropts, render.WithShadows(built.ShadowType))
	}
	renderer := render.New(ropts...)
	defer renderer.Close()

	loop := graphics.NewLoop(win, log.Logger)
	dopts := []frame.Option{frame.WithLogger(log.Logger)}
	if spec.PixelRatioLimit > 0 {
		dopts = append(dopts, frame.WithPixelRatioLimit(spec.PixelRatioLimit))
	}
	orbit := built.NewControls()
	if orbit != nil {
		dopts = append(dopts, frame.WithControls(orbit))
	}
	driver := frame.New(frame.Context{Scene: built.Scene, Camera: built.Camera, Renderer: renderer}, viewport, loop, dopts...)
	if !fixed {
		loop.OnResize(driver.OnResize)
	}

	overlay := debug.New(driver)
	overlay.ShowFPS = prefs.Debug.ShowFPS
	overlay.ShowMemAlloc = prefs.Debug.ShowMemAlloc
	overlay.ShowElapsed = prefs.Debug.ShowElapsed
	overlay.ShowLog = prefs.Debug.ShowLog
	overlay.SetLogSource(log.Lines)
	renderer.AddOverlay(overlay.Draw)

	var panel *gui.Panel
	if opts.gui && len(spec.GUI) > 0 {
		panel = gui.NewPanel(spec.Name)
		panel.Hidden = !prefs.Debug.ShowPanel
		if err := built.Bind(panel); err != nil {
			return err
		}
		renderer.AddOverlay(panel.Draw)
	}
	router := &graphics.Router{Panel: panel, Orbit: orbit}
	loop.AddPump(router.Pump(win))

	if opts.watch {
		r := &reloader{base: base, driver: driver, panel: panel, loop: spec.Loop, log: log.Logger}
		stop, err := r.watch(opts.scene, loop)
		if err != nil {
			return err
		}
		defer stop()
	}

	log.Info("demo started",
		zap.String("scene", spec.Name),
		zap.Bool("loop", spec.Loop),
		zap.Bool("shadows", built.Shadows))
	if spec.Loop {
		driver.Start()
	} else {
		driver.RenderOnce()
	}
	if opts.screenshot != "" {
		if err := renderer.Capture(opts.screenshot); err != nil {
			return err
		}
		loop.Quit()
	}
	err = loop.Run(ctx)
	driver.Stop()
	return err
}
