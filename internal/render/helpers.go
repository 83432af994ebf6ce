package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"scene-demos/internal/scene"
)

// line is a colored world-space segment.
type line struct {
	From, To mgl32.Vec3
	Color    color.RGBA
}

var (
	axisX = scene.Hex(0xff0000)
	axisY = scene.Hex(0x00ff00)
	axisZ = scene.Hex(0x0000ff)

	frustumColor = scene.Hex(0xffaa00)
	coneColor    = scene.Hex(0xff0000)
	targetColor  = scene.Hex(0xffffff)
)

// axesLines returns the three axes of a helper placed at world.
func axesLines(h *scene.AxesHelper, world mgl32.Mat4) []line {
	origin := world.Col(3).Vec3()
	at := func(x, y, z float32) mgl32.Vec3 {
		return mgl32.TransformCoordinate(mgl32.Vec3{x, y, z}, world)
	}
	return []line{
		{From: origin, To: at(h.Size, 0, 0), Color: axisX},
		{From: origin, To: at(0, h.Size, 0), Color: axisY},
		{From: origin, To: at(0, 0, h.Size), Color: axisZ},
	}
}

// frustumLines outlines the shadow camera of h's source light: near and far
// rectangles, the edges joining them, the cone from the light to the near plane
// and the line to the far plane's center.
func frustumLines(h *scene.CameraHelper) []line {
	if h.Source == nil {
		return nil
	}
	c := scene.FrustumCorners(h.Source.ShadowViewProjection())
	eye := h.Source.Base().WorldPosition()
	out := make([]line, 0, 17)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		out = append(out,
			line{From: c[i], To: c[j], Color: frustumColor},
			line{From: c[4+i], To: c[4+j], Color: frustumColor},
			line{From: c[i], To: c[4+i], Color: frustumColor},
			line{From: eye, To: c[i], Color: coneColor},
		)
	}
	var far mgl32.Vec3
	for _, p := range c[4:] {
		far = far.Add(p)
	}
	out = append(out, line{From: eye, To: far.Mul(0.25), Color: targetColor})
	return out
}
