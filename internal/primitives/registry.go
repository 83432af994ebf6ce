package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"scene-demos/internal/scene"
)

// cached holds the uploaded mesh for one geometry key and its model-space base transform.
type cached struct {
	mesh rl.Mesh
	base mgl32.Mat4
}

// Registry maps geometry keys to uploaded meshes and program names to materials.
// Meshes are created on first use so that GPU resources are allocated after the
// window/OpenGL context exists.
type Registry struct {
	meshes    map[string]cached
	materials map[string]*rl.Material
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		meshes:    make(map[string]cached),
		materials: make(map[string]*rl.Material),
	}
}

// Mesh returns the mesh for g, generating and uploading it on first use, and the
// transform to apply before the object's world matrix.
func (r *Registry) Mesh(g scene.Geometry) (rl.Mesh, mgl32.Mat4, error) {
	shape, err := ShapeOf(g)
	if err != nil {
		return rl.Mesh{}, mgl32.Mat4{}, err
	}
	key := g.Key()
	if c, ok := r.meshes[key]; ok {
		return c.mesh, c.base, nil
	}
	c := cached{mesh: generate(shape), base: shape.Base}
	r.meshes[key] = c
	return c.mesh, c.base, nil
}

func generate(s Shape) rl.Mesh {
	switch s.Kind {
	case Sphere:
		return rl.GenMeshSphere(s.Size[0], s.Rings, s.Slices)
	case Plane:
		return rl.GenMeshPlane(s.Size[0], s.Size[1], 1, 1)
	}
	return rl.GenMeshCube(s.Size[0], s.Size[1], s.Size[2])
}

// Material returns the material drawing with shader, creating it on first use.
// The returned pointer is stable so callers can bind textures on it per draw.
func (r *Registry) Material(name string, shader rl.Shader) *rl.Material {
	if m, ok := r.materials[name]; ok {
		return m
	}
	m := rl.LoadMaterialDefault()
	if albedo := m.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if rl.IsShaderValid(shader) {
		m.Shader = shader
	}
	r.materials[name] = &m
	return &m
}

// Len reports how many distinct meshes have been uploaded.
func (r *Registry) Len() int {
	return len(r.meshes)
}

// Unload frees every mesh. Materials share shaders and map textures owned by
// the caller, so only their map arrays are released.
func (r *Registry) Unload() {
	for key, c := range r.meshes {
		rl.UnloadMesh(&c.mesh)
		delete(r.meshes, key)
	}
	for name, m := range r.materials {
		m.Shader = rl.Shader{}
		for _, slot := range []int32{rl.MapMetalness, rl.MapNormal} {
			m.GetMap(slot).Texture = rl.Texture2D{}
		}
		rl.UnloadMaterial(*m)
		delete(r.materials, name)
	}
}
