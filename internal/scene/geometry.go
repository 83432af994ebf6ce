package scene

import "fmt"

// Geometry describes the shape of a mesh. Key identifies geometries with equal
// parameters so a backend can share GPU buffers between them.
type Geometry interface {
	Key() string
}

// BoxGeometry is an axis-aligned box centered on the origin.
type BoxGeometry struct {
	Width, Height, Depth float32
}

func (g BoxGeometry) Key() string {
	return fmt.Sprintf("box:%g:%g:%g", g.Width, g.Height, g.Depth)
}

// SphereGeometry is a UV sphere centered on the origin.
type SphereGeometry struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
}

func (g SphereGeometry) Key() string {
	return fmt.Sprintf("sphere:%g:%d:%d", g.Radius, g.WidthSegments, g.HeightSegments)
}

// PlaneGeometry is a rectangle in the XY plane facing +Z.
type PlaneGeometry struct {
	Width, Height float32
}

func (g PlaneGeometry) Key() string {
	return fmt.Sprintf("plane:%g:%g", g.Width, g.Height)
}
