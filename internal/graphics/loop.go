// Package graphics owns the window and the main loop. The loop plays the part of a
// browser event loop: it delivers resize notifications, runs tasks posted from
// other goroutines, pumps input and then runs the frame callbacks requested for
// the next display refresh.
package graphics

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Window is the host window the loop drives. All methods are called on the loop's
// goroutine, which for raylib must be the main OS thread.
type Window interface {
	ShouldClose() bool
	// Resized reports whether the size changed since the previous call.
	Resized() bool
	Size() (width, height int)
	DevicePixelRatio() float32
	// Idle polls input events and waits briefly; used when no frame is drawn.
	Idle()
}

// Loop implements frame.Scheduler on a Window.
type Loop struct {
	win Window
	log *zap.Logger

	frames []func()
	resize []func()
	pumps  []func()

	mu    sync.Mutex
	tasks []func()
	quit  bool
}

// NewLoop returns a loop over win.
func NewLoop(win Window, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{win: win, log: log.Named("loop")}
}

// RequestFrame runs fn on the next iteration. Callbacks requested while frame
// callbacks run wait for the following iteration.
func (l *Loop) RequestFrame(fn func()) {
	l.frames = append(l.frames, fn)
}

// OnResize registers fn to run, in registration order, when the window size changes.
func (l *Loop) OnResize(fn func()) {
	l.resize = append(l.resize, fn)
}

// AddPump registers an input pump run once per iteration before frame callbacks.
func (l *Loop) AddPump(fn func()) {
	l.pumps = append(l.pumps, fn)
}

// Post queues task to run on the loop's goroutine. Safe for concurrent use.
func (l *Loop) Post(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
}

// Quit makes Run return after the current iteration. Safe for concurrent use.
func (l *Loop) Quit() {
	l.mu.Lock()
	l.quit = true
	l.mu.Unlock()
}

// Pending reports how many frame callbacks wait for the next iteration.
func (l *Loop) Pending() int {
	return len(l.frames)
}

// Step runs one iteration: resize handlers, posted tasks, input pumps, then the
// frame callbacks requested before the iteration began. It reports false once the
// window wants to close or Quit was called.
func (l *Loop) Step() bool {
	l.mu.Lock()
	quit := l.quit
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()
	if quit || l.win.ShouldClose() {
		return false
	}

	if l.win.Resized() {
		w, h := l.win.Size()
		l.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
		for _, fn := range l.resize {
			fn()
		}
	}
	for _, task := range tasks {
		task()
	}
	for _, pump := range l.pumps {
		pump()
	}

	frames := l.frames
	l.frames = nil
	for _, fn := range frames {
		fn()
	}
	if len(frames) == 0 {
		l.win.Idle()
	}
	return true
}

// Run steps the loop until the window closes, Quit is called or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("loop running")
	defer l.log.Info("loop finished")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.Step() {
			return nil
		}
	}
}
