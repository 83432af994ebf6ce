package main

import (
	"go.uber.org/zap"

	"scene-demos/internal/frame"
	"scene-demos/internal/graphics"
	"scene-demos/internal/gui"
	"scene-demos/internal/scenefile"
)

// reloader swaps in a rebuilt scene when its file changes. The camera, controls
// and renderer settings stay as they were at startup.
type reloader struct {
	base   *scenefile.Spec
	driver *frame.Driver
	panel  *gui.Panel
	loop   bool
	log    *zap.Logger
}

// watch forwards file changes to the loop as posted tasks and returns a function
// that stops watching.
func (r *reloader) watch(path string, loop *graphics.Loop) (func(), error) {
	w, err := scenefile.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	go func() {
		for {
			select {
			case changed, ok := <-w.Events:
				if !ok {
					return
				}
				loop.Post(func() { r.reload(changed) })
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				r.log.Warn("scene watcher error", zap.Error(err))
			}
		}
	}()
	r.log.Info("watching scene file", zap.String("file", path))
	return func() { _ = w.Close() }, nil
}

// reload runs on the loop goroutine. A file that fails to load or build leaves
// the current scene in place.
func (r *reloader) reload(path string) {
	spec, err := scenefile.LoadFile(path, r.base)
	if err != nil {
		r.log.Warn("scene reload failed, keeping current scene", zap.String("file", path), zap.Error(err))
		return
	}
	built, err := scenefile.Build(spec)
	if err != nil {
		r.log.Warn("scene reload failed, keeping current scene", zap.String("file", path), zap.Error(err))
		return
	}
	r.driver.SetScene(built.Scene)
	if r.panel != nil {
		r.panel.Clear()
		if err := built.Bind(r.panel); err != nil {
			r.log.Warn("debug panel not rebound", zap.Error(err))
		}
	}
	r.log.Info("scene reloaded", zap.String("file", path))
	if !r.loop {
		r.driver.RenderOnce()
	}
}
