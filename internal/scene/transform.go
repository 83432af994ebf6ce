package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a local position, XYZ Euler rotation in radians, and scale.
// A zero Scale is treated as unit scale when a node is built.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// At returns a transform positioned at x, y, z.
func At(x, y, z float32) Transform {
	return Transform{Position: mgl32.Vec3{x, y, z}}
}

// Rotated returns t with the given Euler rotation.
func (t Transform) Rotated(x, y, z float32) Transform {
	t.Rotation = mgl32.Vec3{x, y, z}
	return t
}

func (t Transform) withDefaults() Transform {
	if t.Scale == (mgl32.Vec3{}) {
		t.Scale = mgl32.Vec3{1, 1, 1}
	}
	return t
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	if t.Rotation != (mgl32.Vec3{}) {
		m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X())).
			Mul4(mgl32.HomogRotate3DY(t.Rotation.Y())).
			Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	}
	s := t.withDefaults().Scale
	return m.Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}
