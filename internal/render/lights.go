package render

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demos/internal/scene"
)

type lightKind int

const (
	kindDirectional lightKind = 1
	kindSpot        lightKind = 2
)

// lightUniform is one entry of the standard shader's light array. Colors are
// linear and premultiplied by intensity.
type lightUniform struct {
	Kind        lightKind
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Color       mgl32.Vec3
	Distance    float32
	Decay       float32
	ConeCos     float32
	PenumbraCos float32
	ShadowSlot  int
	Bias        float32
}

// shadowPass is a shadow map to render this frame.
type shadowPass struct {
	Slot           int
	Caster         scene.ShadowCaster
	ViewProjection mgl32.Mat4
	Settings       scene.Shadow
}

// lighting is everything the standard shader needs from the scene's lights.
type lighting struct {
	Ambient mgl32.Vec3
	Lights  []lightUniform
	Shadows []shadowPass
}

// collectLights walks the scene and packs its lights. Ambient lights add up.
// The first shadow-casting directional light and the first shadow-casting spot
// light get a shadow slot when shadows are enabled. Lights past MaxLights are
// dropped.
func collectLights(s *scene.Scene, shadows bool) lighting {
	var out lighting
	used := map[int]bool{}
	claim := func(c scene.ShadowCaster, slot int) int {
		if !shadows || !c.CastsShadow() || used[slot] {
			return 0
		}
		used[slot] = true
		out.Shadows = append(out.Shadows, shadowPass{
			Slot:           slot,
			Caster:         c,
			ViewProjection: c.ShadowViewProjection(),
			Settings:       c.ShadowSettings(),
		})
		return slot
	}
	s.Traverse(func(obj scene.Object, world mgl32.Mat4) {
		switch l := obj.(type) {
		case *scene.AmbientLight:
			out.Ambient = out.Ambient.Add(linearColor(l.Color, l.Intensity))
		case *scene.DirectionalLight:
			if len(out.Lights) == MaxLights {
				return
			}
			out.Lights = append(out.Lights, lightUniform{
				Kind:       kindDirectional,
				Position:   world.Col(3).Vec3(),
				Direction:  l.Direction(),
				Color:      linearColor(l.Color, l.Intensity),
				ShadowSlot: claim(l, shadowSlotDirectional),
				Bias:       l.Shadow.Bias,
			})
		case *scene.SpotLight:
			if len(out.Lights) == MaxLights {
				return
			}
			out.Lights = append(out.Lights, lightUniform{
				Kind:        kindSpot,
				Position:    world.Col(3).Vec3(),
				Direction:   l.Direction(),
				Color:       linearColor(l.Color, l.Intensity),
				Distance:    l.Distance,
				Decay:       l.Decay,
				ConeCos:     math32.Cos(l.Angle),
				PenumbraCos: math32.Cos(l.Angle * (1 - l.Penumbra)),
				ShadowSlot:  claim(l, shadowSlotSpot),
				Bias:        l.Shadow.Bias,
			})
		}
	})
	return out
}

// linearColor decodes an sRGB color and scales it by intensity.
func linearColor(c color.Color, intensity float32) mgl32.Vec3 {
	r, g, b, _ := c.RGBA()
	dec := func(v uint32) float32 {
		return math32.Pow(float32(v)/0xffff, 2.2) * intensity
	}
	return mgl32.Vec3{dec(r), dec(g), dec(b)}
}
