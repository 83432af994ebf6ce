// Package render draws a scene.Scene with raylib. It renders shadow maps for
// shadow-casting lights, draws meshes and helpers into an offscreen target sized
// by the output size and pixel ratio, then presents that target with any
// overlays on top.
package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"scene-demos/internal/camera"
	"scene-demos/internal/primitives"
	"scene-demos/internal/scene"
)

// Renderer implements frame.Renderer on top of raylib. GPU resources are created
// on the first Render, so a Renderer can be built and sized before the window
// exists.
type Renderer struct {
	log        *zap.Logger
	width      int
	height     int
	pixelRatio float32
	shadows    bool
	shadowType scene.ShadowType

	registry *primitives.Registry
	basic    *program
	standard *program
	depth    *program

	target     rl.RenderTexture2D
	targetW    int32
	targetH    int32
	shadowMaps map[int]rl.RenderTexture2D
	overlays   []func()
	skipped    map[*scene.Mesh]bool
}

// New returns a renderer with pixel ratio 1 and shadows off.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		log:        zap.NewNop(),
		pixelRatio: 1,
		shadowMaps: make(map[int]rl.RenderTexture2D),
		skipped:    make(map[*scene.Mesh]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetSize sets the presented size in device-independent pixels.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

// SetPixelRatio sets the device pixels per device-independent pixel of the
// offscreen target.
func (r *Renderer) SetPixelRatio(ratio float32) {
	r.pixelRatio = ratio
}

// Size returns the size last passed to SetSize.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// PixelRatio returns the ratio last passed to SetPixelRatio.
func (r *Renderer) PixelRatio() float32 {
	return r.pixelRatio
}

// OutputSize is the offscreen target size in device pixels.
func (r *Renderer) OutputSize() (int32, int32) {
	return int32(math32.Round(float32(r.width) * r.pixelRatio)),
		int32(math32.Round(float32(r.height) * r.pixelRatio))
}

// ShadowsEnabled reports whether shadow maps are rendered, and their filter.
func (r *Renderer) ShadowsEnabled() (bool, scene.ShadowType) {
	return r.shadows, r.shadowType
}

// AddOverlay registers a function drawn in screen space after the scene, in
// registration order.
func (r *Renderer) AddOverlay(draw func()) {
	r.overlays = append(r.overlays, draw)
}

// Render draws s as seen by cam and presents it.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	r.ensurePrograms()
	lit := collectLights(s, r.shadows)
	for _, pass := range lit.Shadows {
		r.renderShadow(s, pass)
	}

	if r.ensureTarget() {
		rl.BeginTextureMode(r.target)
		rl.ClearBackground(toColor(s.Background))
		begin3D(cam.ProjectionMatrix(), cam.ViewMatrix())
		r.prepareStandard(cam, lit)
		var lines []line
		s.Traverse(func(obj scene.Object, world mgl32.Mat4) {
			switch o := obj.(type) {
			case *scene.Mesh:
				r.drawMesh(o, world)
			case *scene.AxesHelper:
				lines = append(lines, axesLines(o, world)...)
			case *scene.CameraHelper:
				lines = append(lines, frustumLines(o)...)
			}
		})
		for _, l := range lines {
			rl.DrawLine3D(toVector3(l.From), toVector3(l.To), toColor(l.Color))
		}
		rl.EndMode3D()
		rl.EndTextureMode()
	}

	r.present()
}

// begin3D enters 3D mode for depth testing and replaces raylib's camera
// matrices with projection and view.
func begin3D(projection, view mgl32.Mat4) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   rl.NewVector3(0, 0, 1),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(toMatrix(projection))
	rl.SetMatrixModelview(toMatrix(view))
}

func (r *Renderer) ensurePrograms() {
	if r.registry != nil {
		return
	}
	r.registry = primitives.NewRegistry()
	r.basic = loadProgram(basicFS)
	r.standard = loadProgram(standardFS)
	r.depth = loadProgram(depthFS)
	for name, p := range map[string]*program{"basic": r.basic, "standard": r.standard, "depth": r.depth} {
		if !rl.IsShaderValid(p.shader) {
			r.log.Warn("shader failed to compile, using default", zap.String("program", name))
		}
	}
}

// ensureTarget (re)allocates the offscreen target when the output size changed.
// It reports false while the output is empty, e.g. a minimized window.
func (r *Renderer) ensureTarget() bool {
	w, h := r.OutputSize()
	if w <= 0 || h <= 0 {
		return false
	}
	if w == r.targetW && h == r.targetH && rl.IsRenderTextureValid(r.target) {
		return true
	}
	if r.targetW > 0 {
		rl.UnloadRenderTexture(r.target)
	}
	r.target = rl.LoadRenderTexture(w, h)
	r.targetW, r.targetH = w, h
	r.log.Debug("render target allocated", zap.Int32("width", w), zap.Int32("height", h))
	return true
}

func (r *Renderer) shadowMap(slot int, s scene.Shadow) rl.RenderTexture2D {
	w, h := int32(s.MapWidth), int32(s.MapHeight)
	if sm, ok := r.shadowMaps[slot]; ok {
		if sm.Texture.Width == w && sm.Texture.Height == h {
			return sm
		}
		rl.UnloadRenderTexture(sm)
	}
	sm := rl.LoadRenderTexture(w, h)
	r.shadowMaps[slot] = sm
	r.log.Debug("shadow map allocated", zap.Int("slot", slot), zap.Int32("width", w), zap.Int32("height", h))
	return sm
}

func (r *Renderer) renderShadow(s *scene.Scene, pass shadowPass) {
	sm := r.shadowMap(pass.Slot, pass.Settings)
	mtl := r.registry.Material("depth", r.depth.shader)
	rl.BeginTextureMode(sm)
	rl.ClearBackground(rl.White)
	begin3D(pass.ViewProjection, mgl32.Ident4())
	s.Traverse(func(obj scene.Object, world mgl32.Mat4) {
		m, ok := obj.(*scene.Mesh)
		if !ok || !m.CastShadow {
			return
		}
		mesh, base, err := r.registry.Mesh(m.Geometry)
		if err != nil {
			return
		}
		rl.DrawMesh(mesh, *mtl, toMatrix(world.Mul4(base)))
	})
	rl.EndMode3D()
	rl.EndTextureMode()
}

// prepareStandard uploads per-frame uniforms of the lit program and binds the
// shadow maps rendered this frame.
func (r *Renderer) prepareStandard(cam *camera.Perspective, lit lighting) {
	p := r.standard
	mtl := r.registry.Material("standard", p.shader)
	p.setVec3("viewPos", cam.Position)
	p.setVec3("ambientColor", lit.Ambient)
	p.setFloat("shadowType", float32(r.shadowType))
	p.setLights(lit.Lights)
	for _, pass := range lit.Shadows {
		sm := r.shadowMaps[pass.Slot]
		texel := [2]float32{1 / float32(pass.Settings.MapWidth), 1 / float32(pass.Settings.MapHeight)}
		switch pass.Slot {
		case shadowSlotDirectional:
			rl.SetMaterialTexture(mtl, rl.MapMetalness, sm.Texture)
			p.setMatrix("lightSpace1", pass.ViewProjection)
			p.setVec2("shadowTexel1", texel)
		case shadowSlotSpot:
			rl.SetMaterialTexture(mtl, rl.MapNormal, sm.Texture)
			p.setMatrix("lightSpace2", pass.ViewProjection)
			p.setVec2("shadowTexel2", texel)
		}
	}
}

func (r *Renderer) drawMesh(m *scene.Mesh, world mgl32.Mat4) {
	mesh, base, err := r.registry.Mesh(m.Geometry)
	if err != nil {
		if !r.skipped[m] {
			r.skipped[m] = true
			r.log.Warn("mesh skipped", zap.String("mesh", m.Name), zap.Error(err))
		}
		return
	}
	var mtl *rl.Material
	switch mat := m.Material.(type) {
	case *scene.StandardMaterial:
		mtl = r.registry.Material("standard", r.standard.shader)
		mtl.GetMap(rl.MapAlbedo).Color = toColor(mat.Color)
		r.standard.setFloat("roughness", mat.Roughness)
		r.standard.setFloat("metalness", mat.Metalness)
		receive := float32(0)
		if m.ReceiveShadow && r.shadows {
			receive = 1
		}
		r.standard.setFloat("receiveShadow", receive)
	case *scene.BasicMaterial:
		mtl = r.registry.Material("basic", r.basic.shader)
		mtl.GetMap(rl.MapAlbedo).Color = toColor(mat.Color)
	default:
		mtl = r.registry.Material("basic", r.basic.shader)
		mtl.GetMap(rl.MapAlbedo).Color = rl.White
	}
	rl.DrawMesh(mesh, *mtl, toMatrix(world.Mul4(base)))
}

func (r *Renderer) present() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	if r.targetW > 0 {
		tex := r.target.Texture
		src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
		dst := rl.NewRectangle(0, 0, float32(r.width), float32(r.height))
		rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	}
	for _, draw := range r.overlays {
		draw()
	}
	rl.EndDrawing()
}

// Close releases GPU resources. The renderer can render again afterwards.
func (r *Renderer) Close() {
	if r.targetW > 0 {
		rl.UnloadRenderTexture(r.target)
		r.targetW, r.targetH = 0, 0
	}
	for slot, sm := range r.shadowMaps {
		rl.UnloadRenderTexture(sm)
		delete(r.shadowMaps, slot)
	}
	if r.registry != nil {
		r.registry.Unload()
		r.basic.unload()
		r.standard.unload()
		r.depth.unload()
		r.registry = nil
	}
}
