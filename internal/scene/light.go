package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Node
	Color     color.RGBA
	Intensity float32
}

// NewAmbientLight returns an ambient light.
func NewAmbientLight(name string, c color.RGBA, intensity float32) *AmbientLight {
	return &AmbientLight{Node: newNode(name, Transform{}), Color: c, Intensity: intensity}
}

// LightConfig holds the parameters shared by directional and spot lights.
// A zero Color means white.
type LightConfig struct {
	Name       string
	Color      color.RGBA
	Intensity  float32
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	CastShadow bool
	Shadow     ShadowConfig
}

func (cfg LightConfig) color() color.RGBA {
	if cfg.Color == (color.RGBA{}) {
		return white
	}
	return cfg.Color
}

// DirectionalLight shines parallel rays from its position toward Target.
type DirectionalLight struct {
	Node
	Color      color.RGBA
	Intensity  float32
	Target     mgl32.Vec3
	CastShadow bool
	Shadow     Shadow
}

// NewDirectionalLight builds a directional light. Its shadow camera is orthographic.
func NewDirectionalLight(cfg LightConfig) *DirectionalLight {
	return &DirectionalLight{
		Node:       newNode(cfg.Name, Transform{Position: cfg.Position}),
		Color:      cfg.color(),
		Intensity:  cfg.Intensity,
		Target:     cfg.Target,
		CastShadow: cfg.CastShadow,
		Shadow:     cfg.Shadow.directional(),
	}
}

// Direction returns the unit vector from the light toward its target.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	return direction(l.WorldPosition(), l.Target)
}

// ShadowViewProjection returns the light-space transform used for its shadow map.
func (l *DirectionalLight) ShadowViewProjection() mgl32.Mat4 {
	s := l.Shadow
	proj := mgl32.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
	return proj.Mul4(lightView(l.WorldPosition(), l.Target))
}

// ShadowSettings returns the light's shadow parameters.
func (l *DirectionalLight) ShadowSettings() Shadow {
	return l.Shadow
}

// CastsShadow reports whether the light renders a shadow map.
func (l *DirectionalLight) CastsShadow() bool {
	return l.CastShadow
}

// SpotLight is a cone of light from its position toward Target.
type SpotLight struct {
	Node
	Color      color.RGBA
	Intensity  float32
	Distance   float32
	Angle      float32
	Penumbra   float32
	Decay      float32
	Target     mgl32.Vec3
	CastShadow bool
	Shadow     Shadow
}

// SpotLightConfig extends LightConfig with the cone parameters. Zero Angle means
// π/3 and zero Decay means 2.
type SpotLightConfig struct {
	LightConfig
	Distance float32
	Angle    float32
	Penumbra float32
	Decay    float32
}

// NewSpotLight builds a spot light. Its shadow camera is perspective.
func NewSpotLight(cfg SpotLightConfig) *SpotLight {
	l := &SpotLight{
		Node:       newNode(cfg.Name, Transform{Position: cfg.Position}),
		Color:      cfg.color(),
		Intensity:  cfg.Intensity,
		Distance:   cfg.Distance,
		Angle:      cfg.Angle,
		Penumbra:   cfg.Penumbra,
		Decay:      cfg.Decay,
		Target:     cfg.Target,
		CastShadow: cfg.CastShadow,
	}
	if l.Angle == 0 {
		l.Angle = math32.Pi / 3
	}
	if l.Decay == 0 {
		l.Decay = 2
	}
	l.Shadow = cfg.Shadow.spot(l.Angle)
	return l
}

// Direction returns the unit vector from the light toward its target.
func (l *SpotLight) Direction() mgl32.Vec3 {
	return direction(l.WorldPosition(), l.Target)
}

// ShadowViewProjection returns the light-space transform used for its shadow map.
// The far plane is the light's Distance when it has one.
func (l *SpotLight) ShadowViewProjection() mgl32.Mat4 {
	s := l.Shadow
	far := s.Far
	if l.Distance > 0 {
		far = l.Distance
	}
	aspect := float32(s.MapWidth) / float32(s.MapHeight)
	proj := mgl32.Perspective(mgl32.DegToRad(s.Fov), aspect, s.Near, far)
	return proj.Mul4(lightView(l.WorldPosition(), l.Target))
}

// ShadowSettings returns the light's shadow parameters.
func (l *SpotLight) ShadowSettings() Shadow {
	return l.Shadow
}

// CastsShadow reports whether the light renders a shadow map.
func (l *SpotLight) CastsShadow() bool {
	return l.CastShadow
}

func direction(from, to mgl32.Vec3) mgl32.Vec3 {
	d := to.Sub(from)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func lightView(eye, target mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if d := direction(eye, target); math32.Abs(d.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(eye, target, up)
}
