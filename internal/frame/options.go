package frame

import "go.uber.org/zap"

// Option configures a Driver.
type Option func(*Driver)

// WithControls advances c once per tick, before rendering.
func WithControls(c Controls) Option {
	return func(d *Driver) {
		d.controls = c
	}
}

// WithPixelRatioLimit makes every resize reaction apply min(devicePixelRatio, limit)
// to the renderer. Without it the renderer's pixel ratio is never touched.
func WithPixelRatioLimit(limit float32) Option {
	return func(d *Driver) {
		d.pixelRatioLimit = limit
	}
}

// WithClock replaces the frame clock.
func WithClock(c *Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l.Named("frame")
		}
	}
}
