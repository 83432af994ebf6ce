// Package scene is a small backend-free scene graph: groups, meshes, lights and
// helpers arranged in a tree of transforms. It holds no GPU state; a renderer walks
// it with Traverse.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Object is anything that can be placed in the scene tree.
type Object interface {
	Base() *Node
}

// Node carries the name, local transform and children shared by every Object.
type Node struct {
	Name      string
	Transform Transform
	Visible   bool

	parent   *Node
	children []Object
}

func newNode(name string, t Transform) Node {
	return Node{Name: name, Transform: t.withDefaults(), Visible: true}
}

// Base returns n.
func (n *Node) Base() *Node {
	return n
}

// Add attaches objects as children of n, detaching them from any previous parent.
func (n *Node) Add(objs ...Object) {
	for _, obj := range objs {
		child := obj.Base()
		if child == n {
			continue
		}
		if child.parent != nil {
			child.parent.Remove(obj)
		}
		child.parent = n
		n.children = append(n.children, obj)
	}
}

// Remove detaches obj from n. It is a no-op if obj is not a child of n.
func (n *Node) Remove(obj Object) {
	child := obj.Base()
	for i, c := range n.children {
		if c.Base() == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []Object {
	return n.children
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.Transform.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.Matrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the origin of n in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// Group is a node with no content of its own.
type Group struct {
	Node
}

// NewGroup returns an empty group with the given transform.
func NewGroup(name string, t Transform) *Group {
	return &Group{Node: newNode(name, t)}
}

// Scene is the root of an object tree.
type Scene struct {
	Node
	Background color.RGBA
}

// New returns a scene with a black background holding objs.
func New(objs ...Object) *Scene {
	s := &Scene{
		Node:       newNode("scene", Transform{}),
		Background: color.RGBA{A: 255},
	}
	s.Add(objs...)
	return s
}

// Traverse visits every visible object depth-first, parents before children,
// passing each object's world matrix. Invisible objects hide their subtree.
func (s *Scene) Traverse(fn func(obj Object, world mgl32.Mat4)) {
	var walk func(obj Object, parent mgl32.Mat4)
	walk = func(obj Object, parent mgl32.Mat4) {
		n := obj.Base()
		if !n.Visible {
			return
		}
		world := parent.Mul4(n.Transform.Matrix())
		fn(obj, world)
		for _, c := range n.children {
			walk(c, world)
		}
	}
	root := s.Transform.Matrix()
	for _, c := range s.children {
		walk(c, root)
	}
}

// Find returns the first object named name, searching depth-first.
func (s *Scene) Find(name string) (Object, bool) {
	var found Object
	var walk func(obj Object) bool
	walk = func(obj Object) bool {
		if obj.Base().Name == name {
			found = obj
			return true
		}
		for _, c := range obj.Base().children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	for _, c := range s.children {
		if walk(c) {
			break
		}
	}
	return found, found != nil
}

// Materials returns every distinct material used by a mesh in the tree, in
// first-use order.
func (s *Scene) Materials() []Material {
	var out []Material
	seen := make(map[Material]bool)
	var walk func(obj Object)
	walk = func(obj Object) {
		if m, ok := obj.(*Mesh); ok && m.Material != nil && !seen[m.Material] {
			seen[m.Material] = true
			out = append(out, m.Material)
		}
		for _, c := range obj.Base().children {
			walk(c)
		}
	}
	for _, c := range s.children {
		walk(c)
	}
	return out
}
