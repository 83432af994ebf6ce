package scenefile

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"scene-demos/internal/camera"
	"scene-demos/internal/controls"
	"scene-demos/internal/gui"
	"scene-demos/internal/scene"
)

// Built is a Spec turned into live objects.
type Built struct {
	Spec       *Spec
	Scene      *scene.Scene
	Camera     *camera.Perspective
	Shadows    bool
	ShadowType scene.ShadowType
}

// Build constructs the scene and camera described by s. The camera aspect is a
// placeholder until the frame driver applies the viewport.
func Build(s *Spec) (*Built, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := &builder{materials: make(map[string]scene.Material)}
	for _, m := range s.Materials {
		mat, err := buildMaterial(m)
		if err != nil {
			return nil, err
		}
		b.materials[m.Name] = mat
	}

	sc := scene.New()
	if s.Background != "" {
		bg, err := scene.ParseColor(s.Background)
		if err != nil {
			return nil, fmt.Errorf("scenefile: background: %w", err)
		}
		sc.Background = bg
	}
	for _, o := range s.Objects {
		obj, err := b.object(o)
		if err != nil {
			return nil, err
		}
		sc.Add(obj)
	}
	if err := b.resolveHelpers(sc); err != nil {
		return nil, err
	}
	for _, sl := range s.GUI {
		if _, err := sc.Field(sl.Object, sl.Field); err != nil {
			return nil, fmt.Errorf("scenefile: gui: %w", err)
		}
	}

	opts := []camera.Option{
		camera.WithPosition(s.Camera.Position[0], s.Camera.Position[1], s.Camera.Position[2]),
		camera.WithTarget(s.Camera.Target[0], s.Camera.Target[1], s.Camera.Target[2]),
	}
	near, far := s.Camera.Near, s.Camera.Far
	if near <= 0 {
		near = camera.DefaultNear
	}
	if far <= 0 {
		far = camera.DefaultFar
	}
	opts = append(opts, camera.WithClipPlanes(near, far))
	cam := camera.NewPerspective(s.Camera.Fov, 1, opts...)

	built := &Built{Spec: s, Scene: sc, Camera: cam, Shadows: s.Renderer.Shadows}
	if s.Renderer.ShadowType != "" {
		t, ok := scene.ParseShadowType(s.Renderer.ShadowType)
		if !ok {
			return nil, fmt.Errorf("scenefile: unknown shadow type %q", s.Renderer.ShadowType)
		}
		built.ShadowType = t
	}
	return built, nil
}

// NewControls returns orbit controls for the built camera, or nil when the spec
// disables them.
func (b *Built) NewControls() *controls.Orbit {
	cs := b.Spec.Controls
	if !cs.Enabled {
		return nil
	}
	o := controls.NewOrbit(b.Camera)
	o.Target = b.Camera.Target
	o.EnableDamping = cs.Damping
	if cs.DampingFactor > 0 {
		o.DampingFactor = cs.DampingFactor
	}
	return o
}

// Bind adds one slider per GUI entry to p, bound to the built scene's fields.
func (b *Built) Bind(p *gui.Panel) error {
	for _, sl := range b.Spec.GUI {
		target, err := b.Scene.Field(sl.Object, sl.Field)
		if err != nil {
			return fmt.Errorf("scenefile: gui: %w", err)
		}
		label := sl.Label
		if label == "" {
			label = sl.Field
		}
		s := p.Add(label, target).Min(sl.Min).Max(sl.Max)
		if sl.Step > 0 {
			s.Step(sl.Step)
		}
	}
	return nil
}

type builder struct {
	materials map[string]scene.Material
	helpers   []pendingHelper
}

type pendingHelper struct {
	helper *scene.CameraHelper
	source string
}

func buildMaterial(m MaterialSpec) (scene.Material, error) {
	c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if m.Color != "" {
		parsed, err := scene.ParseColor(m.Color)
		if err != nil {
			return nil, fmt.Errorf("scenefile: material %q: %w", m.Name, err)
		}
		c = parsed
	}
	switch m.Type {
	case "basic":
		return scene.NewBasicMaterial(m.Name, c), nil
	case "standard":
		return scene.NewStandardMaterial(scene.StandardMaterialConfig{
			Name:      m.Name,
			Color:     &c,
			Roughness: m.Roughness,
			Metalness: m.Metalness,
		}), nil
	}
	return nil, fmt.Errorf("scenefile: material %q: unknown type %q", m.Name, m.Type)
}

func buildGeometry(g GeometrySpec) (scene.Geometry, error) {
	switch g.Type {
	case "box":
		return scene.BoxGeometry{Width: or(g.Width, 1), Height: or(g.Height, 1), Depth: or(g.Depth, 1)}, nil
	case "sphere":
		ws, hs := g.WidthSegments, g.HeightSegments
		if ws <= 0 {
			ws = 32
		}
		if hs <= 0 {
			hs = 16
		}
		return scene.SphereGeometry{Radius: or(g.Radius, 1), WidthSegments: ws, HeightSegments: hs}, nil
	case "plane":
		return scene.PlaneGeometry{Width: or(g.Width, 1), Height: or(g.Height, 1)}, nil
	}
	return nil, fmt.Errorf("unknown geometry %q", g.Type)
}

func or(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func transformOf(o ObjectSpec) scene.Transform {
	t := scene.Transform{
		Position: mgl32.Vec3(o.Position),
		Rotation: mgl32.Vec3{float32(o.Rotation[0]), float32(o.Rotation[1]), float32(o.Rotation[2])},
	}
	if o.Scale != nil {
		t.Scale = mgl32.Vec3(*o.Scale)
	}
	return t
}

func lightColor(o ObjectSpec) (color.RGBA, error) {
	if o.Color == "" {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	c, err := scene.ParseColor(o.Color)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("scenefile: light %q: %w", o.Name, err)
	}
	return c, nil
}

func shadowConfig(s *ShadowSpec) scene.ShadowConfig {
	if s == nil {
		return scene.ShadowConfig{}
	}
	return scene.ShadowConfig{
		MapWidth:  s.MapSize[0],
		MapHeight: s.MapSize[1],
		Near:      s.Near,
		Far:       s.Far,
		Bias:      s.Bias,
		Fov:       s.Fov,
		HalfSize:  s.HalfSize,
	}
}

func (b *builder) object(o ObjectSpec) (scene.Object, error) {
	var obj scene.Object
	switch o.Type {
	case "group":
		obj = scene.NewGroup(o.Name, transformOf(o))
	case "mesh":
		geom, err := buildGeometry(*o.Geometry)
		if err != nil {
			return nil, fmt.Errorf("scenefile: mesh %q: %w", o.Name, err)
		}
		obj = scene.NewMesh(scene.MeshConfig{
			Name:          o.Name,
			Geometry:      geom,
			Material:      b.materials[o.Material],
			Transform:     transformOf(o),
			CastShadow:    o.CastShadow,
			ReceiveShadow: o.ReceiveShadow,
		})
	case "axes":
		a := scene.NewAxesHelper(o.Name, or(o.Size, 1))
		a.Transform = transformOf(o)
		if o.Scale == nil {
			a.Transform.Scale = mgl32.Vec3{1, 1, 1}
		}
		obj = a
	case "ambient_light":
		c, err := lightColor(o)
		if err != nil {
			return nil, err
		}
		obj = scene.NewAmbientLight(o.Name, c, o.Intensity)
	case "directional_light":
		c, err := lightColor(o)
		if err != nil {
			return nil, err
		}
		obj = scene.NewDirectionalLight(scene.LightConfig{
			Name:       o.Name,
			Color:      c,
			Intensity:  o.Intensity,
			Position:   mgl32.Vec3(o.Position),
			Target:     mgl32.Vec3(o.Target),
			CastShadow: o.CastShadow,
			Shadow:     shadowConfig(o.Shadow),
		})
	case "spot_light":
		c, err := lightColor(o)
		if err != nil {
			return nil, err
		}
		obj = scene.NewSpotLight(scene.SpotLightConfig{
			LightConfig: scene.LightConfig{
				Name:       o.Name,
				Color:      c,
				Intensity:  o.Intensity,
				Position:   mgl32.Vec3(o.Position),
				Target:     mgl32.Vec3(o.Target),
				CastShadow: o.CastShadow,
				Shadow:     shadowConfig(o.Shadow),
			},
			Distance: o.Distance,
			Angle:    float32(o.Angle),
			Penumbra: o.Penumbra,
			Decay:    o.Decay,
		})
	case "camera_helper":
		h := scene.NewCameraHelper(o.Name, nil)
		b.helpers = append(b.helpers, pendingHelper{helper: h, source: o.Source})
		obj = h
	default:
		return nil, fmt.Errorf("scenefile: object %q: unknown type %q", o.Name, o.Type)
	}

	for _, c := range o.Children {
		child, err := b.object(c)
		if err != nil {
			return nil, err
		}
		obj.Base().Add(child)
	}
	return obj, nil
}

// resolveHelpers links camera helpers to their lights once the whole tree exists,
// so a helper may be declared before its source.
func (b *builder) resolveHelpers(sc *scene.Scene) error {
	for _, p := range b.helpers {
		obj, ok := sc.Find(p.source)
		if !ok {
			return fmt.Errorf("scenefile: camera helper %q: no object %q", p.helper.Name, p.source)
		}
		caster, ok := obj.(scene.ShadowCaster)
		if !ok {
			return fmt.Errorf("scenefile: camera helper %q: %q has no shadow camera", p.helper.Name, p.source)
		}
		p.helper.Source = caster
	}
	return nil
}
