package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// idleWait is how long Idle sleeps, in seconds, when no frame is drawn.
const idleWait = 1.0 / 60

// WindowConfig configures the raylib window.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	HighDPI   bool
	MSAA      bool
	TargetFPS int
}

// RaylibWindow is the raylib-backed Window. Only one can be open at a time.
type RaylibWindow struct{}

// OpenWindow creates the window and its OpenGL context.
func OpenWindow(cfg WindowConfig) *RaylibWindow {
	var flags uint32
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if cfg.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	return &RaylibWindow{}
}

func (w *RaylibWindow) ShouldClose() bool {
	return rl.WindowShouldClose()
}

func (w *RaylibWindow) Resized() bool {
	return rl.IsWindowResized()
}

func (w *RaylibWindow) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// DevicePixelRatio is the horizontal DPI scale, 1 when unknown.
func (w *RaylibWindow) DevicePixelRatio() float32 {
	if s := rl.GetWindowScaleDPI().X; s > 0 {
		return s
	}
	return 1
}

func (w *RaylibWindow) Idle() {
	rl.PollInputEvents()
	rl.WaitTime(idleWait)
}

// Close destroys the window.
func (w *RaylibWindow) Close() {
	rl.CloseWindow()
}
