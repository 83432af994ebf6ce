package primitives

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scene-demos/internal/scene"
)

// Kind names the raylib mesh generator behind a Shape.
type Kind int

const (
	Cube Kind = iota
	Sphere
	Plane
)

func (k Kind) String() string {
	switch k {
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	case Plane:
		return "plane"
	}
	return "unknown"
}

// Shape is the generator call for a geometry plus the model-space transform that
// puts the generated mesh into the geometry's convention.
type Shape struct {
	Kind Kind
	// Size is width/height/depth for cubes, radius in Size[0] for spheres and
	// width/height for planes.
	Size   [3]float32
	Rings  int
	Slices int
	// Base is applied before the object's world matrix.
	Base mgl32.Mat4
}

// Minimum sphere tessellation.
const (
	minSphereRings  = 2
	minSphereSlices = 3
)

// ShapeOf maps a scene geometry to its generator parameters.
func ShapeOf(g scene.Geometry) (Shape, error) {
	switch g := g.(type) {
	case scene.BoxGeometry:
		return Shape{
			Kind: Cube,
			Size: [3]float32{orOne(g.Width), orOne(g.Height), orOne(g.Depth)},
			Base: mgl32.Ident4(),
		}, nil
	case scene.SphereGeometry:
		return Shape{
			Kind:   Sphere,
			Size:   [3]float32{orOne(g.Radius)},
			Rings:  max(g.HeightSegments, minSphereRings),
			Slices: max(g.WidthSegments, minSphereSlices),
			Base:   mgl32.Ident4(),
		}, nil
	case scene.PlaneGeometry:
		// raylib planes lie in XZ facing +Y; turn them to XY facing +Z.
		return Shape{
			Kind: Plane,
			Size: [3]float32{orOne(g.Width), orOne(g.Height)},
			Base: mgl32.HomogRotate3DX(mgl32.DegToRad(90)),
		}, nil
	case nil:
		return Shape{}, fmt.Errorf("primitives: nil geometry")
	}
	return Shape{}, fmt.Errorf("primitives: unsupported geometry %T", g)
}

func orOne(v float32) float32 {
	if v <= 0 {
		return 1
	}
	return v
}
