package render

import (
	"go.uber.org/zap"

	"scene-demos/internal/scene"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithShadows enables shadow maps filtered with t.
func WithShadows(t scene.ShadowType) Option {
	return func(r *Renderer) {
		r.shadows = true
		r.shadowType = t
	}
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l.Named("render")
		}
	}
}
