package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewPerspectiveBuildsProjection(t *testing.T) {
	c := NewPerspective(75, 800.0/600.0, WithClipPlanes(0.1, 100), WithPosition(1, 1, 2))
	want := mgl32.Perspective(mgl32.DegToRad(75), 800.0/600.0, 0.1, 100)
	if !c.ProjectionMatrix().ApproxEqual(want) {
		t.Fatalf("projection = %v, want %v", c.ProjectionMatrix(), want)
	}
	if c.Position != (mgl32.Vec3{1, 1, 2}) {
		t.Fatalf("position = %v", c.Position)
	}
}

func TestProjectionIsCachedUntilUpdate(t *testing.T) {
	c := NewPerspective(75, 4.0/3.0)
	before := c.ProjectionMatrix()

	c.Aspect = 16.0 / 9.0
	if c.ProjectionMatrix() != before {
		t.Fatal("projection changed before UpdateProjectionMatrix")
	}
	if c.ProjectionAspect() != 4.0/3.0 {
		t.Fatalf("projection aspect = %v, want 4/3", c.ProjectionAspect())
	}

	c.UpdateProjectionMatrix()
	if c.ProjectionMatrix() == before {
		t.Fatal("projection not rebuilt")
	}
	if c.ProjectionAspect() != float32(16.0/9.0) {
		t.Fatalf("projection aspect = %v, want 16/9", c.ProjectionAspect())
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewPerspective(75, 1, WithPosition(0, 0, 3))
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqual(p.Z(), -3) || !mgl32.FloatEqual(p.X(), 0) || !mgl32.FloatEqual(p.Y(), 0) {
		t.Fatalf("origin in view space = %v, want (0,0,-3)", p)
	}
}

func TestViewMatrixDegenerateTarget(t *testing.T) {
	c := NewPerspective(75, 1)
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	if !mgl32.FloatEqual(p.Z(), -1) {
		t.Fatalf("point ahead in view space = %v", p)
	}
}
