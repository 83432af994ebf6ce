package scene

import "image/color"

// Material describes how a mesh surface is shaded.
type Material interface {
	MaterialName() string
}

// BasicMaterial is an unlit flat color.
type BasicMaterial struct {
	Name  string
	Color color.RGBA
}

// NewBasicMaterial returns an unlit material of the given color.
func NewBasicMaterial(name string, c color.RGBA) *BasicMaterial {
	return &BasicMaterial{Name: name, Color: c}
}

func (m *BasicMaterial) MaterialName() string { return m.Name }

// StandardMaterial is a lit metalness/roughness material.
type StandardMaterial struct {
	Name      string
	Color     color.RGBA
	Roughness float32
	Metalness float32
}

// StandardMaterialConfig holds construction parameters. A nil Roughness means fully
// rough; nil Color means white.
type StandardMaterialConfig struct {
	Name      string
	Color     *color.RGBA
	Roughness *float32
	Metalness float32
}

// NewStandardMaterial returns a white, fully rough, non-metallic material unless
// cfg says otherwise.
func NewStandardMaterial(cfg StandardMaterialConfig) *StandardMaterial {
	m := &StandardMaterial{
		Name:      cfg.Name,
		Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Roughness: 1,
		Metalness: cfg.Metalness,
	}
	if cfg.Color != nil {
		m.Color = *cfg.Color
	}
	if cfg.Roughness != nil {
		m.Roughness = *cfg.Roughness
	}
	return m
}

func (m *StandardMaterial) MaterialName() string { return m.Name }

// Mesh is geometry drawn with a material.
type Mesh struct {
	Node
	Geometry      Geometry
	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// MeshConfig holds construction parameters for a Mesh.
type MeshConfig struct {
	Name          string
	Geometry      Geometry
	Material      Material
	Transform     Transform
	CastShadow    bool
	ReceiveShadow bool
}

// NewMesh builds a mesh from cfg.
func NewMesh(cfg MeshConfig) *Mesh {
	return &Mesh{
		Node:          newNode(cfg.Name, cfg.Transform),
		Geometry:      cfg.Geometry,
		Material:      cfg.Material,
		CastShadow:    cfg.CastShadow,
		ReceiveShadow: cfg.ReceiveShadow,
	}
}
