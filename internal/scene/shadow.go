package scene

import "github.com/go-gl/mathgl/mgl32"

// ShadowType selects how shadow maps are filtered.
type ShadowType int

const (
	ShadowBasic ShadowType = iota
	ShadowPCF
	ShadowPCFSoft
)

func (t ShadowType) String() string {
	switch t {
	case ShadowBasic:
		return "basic"
	case ShadowPCF:
		return "pcf"
	case ShadowPCFSoft:
		return "pcf-soft"
	}
	return "unknown"
}

// ParseShadowType maps a name from String back to a ShadowType.
func ParseShadowType(s string) (ShadowType, bool) {
	for _, t := range []ShadowType{ShadowBasic, ShadowPCF, ShadowPCFSoft} {
		if t.String() == s {
			return t, true
		}
	}
	return ShadowBasic, false
}

// Shadow holds the shadow-map resolution and shadow camera of a light.
// Left/Right/Bottom/Top only apply to orthographic (directional) shadow cameras and
// Fov, in degrees, only to perspective (spot) ones.
type Shadow struct {
	MapWidth  int
	MapHeight int
	Near      float32
	Far       float32
	Bias      float32

	Left, Right, Bottom, Top float32
	Fov                      float32
}

// ShadowConfig overrides shadow defaults; zero fields keep the default.
type ShadowConfig struct {
	MapWidth  int
	MapHeight int
	Near      float32
	Far       float32
	Bias      float32
	Fov       float32
	HalfSize  float32
}

// Shadow defaults.
const (
	DefaultShadowMapSize  = 512
	DefaultShadowNear     = 0.5
	DefaultShadowFar      = 500
	DefaultShadowHalfSize = 5
	DefaultShadowBias     = 0.002
)

func (c ShadowConfig) base() Shadow {
	s := Shadow{
		MapWidth:  DefaultShadowMapSize,
		MapHeight: DefaultShadowMapSize,
		Near:      DefaultShadowNear,
		Far:       DefaultShadowFar,
		Bias:      DefaultShadowBias,
	}
	if c.MapWidth > 0 {
		s.MapWidth = c.MapWidth
	}
	if c.MapHeight > 0 {
		s.MapHeight = c.MapHeight
	}
	if c.Near > 0 {
		s.Near = c.Near
	}
	if c.Far > 0 {
		s.Far = c.Far
	}
	if c.Bias != 0 {
		s.Bias = c.Bias
	}
	return s
}

func (c ShadowConfig) directional() Shadow {
	s := c.base()
	half := float32(DefaultShadowHalfSize)
	if c.HalfSize > 0 {
		half = c.HalfSize
	}
	s.Left, s.Right, s.Bottom, s.Top = -half, half, -half, half
	return s
}

// spot uses the cone's full angle as the shadow field of view unless Fov is set.
func (c ShadowConfig) spot(angle float32) Shadow {
	s := c.base()
	s.Fov = mgl32.RadToDeg(2 * angle)
	if c.Fov > 0 {
		s.Fov = c.Fov
	}
	return s
}

// ShadowCaster is a light that may render a shadow map.
type ShadowCaster interface {
	Object
	CastsShadow() bool
	ShadowSettings() Shadow
	ShadowViewProjection() mgl32.Mat4
}

// FrustumCorners returns the eight world-space corners of the volume that
// viewProjection maps to clip space: near plane first, then far plane, each in
// (-x-y, +x-y, +x+y, -x+y) order.
func FrustumCorners(viewProjection mgl32.Mat4) [8]mgl32.Vec3 {
	inv := viewProjection.Inv()
	ndc := [8]mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	var out [8]mgl32.Vec3
	for i, p := range ndc {
		out[i] = mgl32.TransformCoordinate(p, inv)
	}
	return out
}
