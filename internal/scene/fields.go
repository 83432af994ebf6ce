package scene

import (
	"fmt"
	"strings"
)

// Tunable exposes named float32 fields for live editing, e.g. by a debug panel.
// The pointers stay valid for the lifetime of the owner.
type Tunable interface {
	FloatFields() map[string]*float32
}

// FloatFields exposes position.*, rotation.* and scale.* of the node.
func (n *Node) FloatFields() map[string]*float32 {
	t := &n.Transform
	return map[string]*float32{
		"position.x": &t.Position[0],
		"position.y": &t.Position[1],
		"position.z": &t.Position[2],
		"rotation.x": &t.Rotation[0],
		"rotation.y": &t.Rotation[1],
		"rotation.z": &t.Rotation[2],
		"scale.x":    &t.Scale[0],
		"scale.y":    &t.Scale[1],
		"scale.z":    &t.Scale[2],
	}
}

func (l *AmbientLight) FloatFields() map[string]*float32 {
	f := l.Node.FloatFields()
	f["intensity"] = &l.Intensity
	return f
}

func (l *DirectionalLight) FloatFields() map[string]*float32 {
	f := l.Node.FloatFields()
	f["intensity"] = &l.Intensity
	addTarget(f, l.Target[:])
	return f
}

func (l *SpotLight) FloatFields() map[string]*float32 {
	f := l.Node.FloatFields()
	f["intensity"] = &l.Intensity
	f["distance"] = &l.Distance
	f["angle"] = &l.Angle
	f["penumbra"] = &l.Penumbra
	f["decay"] = &l.Decay
	addTarget(f, l.Target[:])
	return f
}

func addTarget(f map[string]*float32, target []float32) {
	f["target.x"] = &target[0]
	f["target.y"] = &target[1]
	f["target.z"] = &target[2]
}

func (m *StandardMaterial) FloatFields() map[string]*float32 {
	return map[string]*float32{
		"roughness": &m.Roughness,
		"metalness": &m.Metalness,
	}
}

func (m *BasicMaterial) FloatFields() map[string]*float32 {
	return map[string]*float32{}
}

// Field resolves a named float field. owner is an object name, or a material name
// prefixed with "material:".
func (s *Scene) Field(owner, field string) (*float32, error) {
	var t Tunable
	if name, ok := strings.CutPrefix(owner, "material:"); ok {
		for _, m := range s.Materials() {
			if m.MaterialName() != name {
				continue
			}
			if mt, ok := m.(Tunable); ok {
				t = mt
			}
			break
		}
		if t == nil {
			return nil, fmt.Errorf("scene: no material %q", name)
		}
	} else {
		obj, ok := s.Find(owner)
		if !ok {
			return nil, fmt.Errorf("scene: no object %q", owner)
		}
		ot, ok := obj.(Tunable)
		if !ok {
			return nil, fmt.Errorf("scene: object %q has no tunable fields", owner)
		}
		t = ot
	}
	p, ok := t.FloatFields()[field]
	if !ok {
		return nil, fmt.Errorf("scene: %s has no field %q", owner, field)
	}
	return p, nil
}
