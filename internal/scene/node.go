// Package scene assembles the cake, candles, table, text and lights into a
// node hierarchy that the renderer walks every frame.
package scene

import (
	"github.com/Faultbox/birthday-cake/internal/engine/lighting"
	"github.com/Faultbox/birthday-cake/internal/flame"
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// Shading selects how a mesh node is lit.
type Shading int

const (
	// Standard is diffuse plus specular lighting with shadows.
	Standard Shading = iota
	// Unlit draws vertex colors as-is.
	Unlit
)

// Material describes how a mesh node is drawn.
type Material struct {
	Shading   Shading
	Color     [3]float32
	Roughness float32
	// Texture names an asset slot; empty for untextured materials.
	Texture       string
	CastShadow    bool
	ReceiveShadow bool
}

// Node is one element of the scene graph. A node may carry a mesh, a point
// light or a flame; plain nodes group their children.
type Node struct {
	Name      string
	Position  math.Vec3
	RotationY float32
	Scale     math.Vec3
	Visible   bool

	Mesh     *geometry.Mesh
	Material Material
	Light    *lighting.PointLight
	Flame    *flame.Flame

	Children []*Node
	parent   *Node
}

// NewNode returns a visible node with unit scale.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: math.Vec3{X: 1, Y: 1, Z: 1}, Visible: true}
}

// Add attaches children to n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Parent returns the node n is attached to.
func (n *Node) Parent() *Node {
	return n.parent
}

// Local returns the node transform relative to its parent.
func (n *Node) Local() math.Mat4 {
	return math.Compose(n.Position, n.RotationY, n.Scale)
}

// World returns the node transform in world space.
func (n *Node) World() math.Mat4 {
	m := n.Local()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Local().Mul(m)
	}
	return m
}

// Walk visits n and its visible descendants depth first, passing each
// node's world transform. Hidden nodes prune their subtree.
func (n *Node) Walk(fn func(node *Node, world math.Mat4)) {
	if n == nil {
		return
	}
	var parent math.Mat4
	if n.parent != nil {
		parent = n.parent.World()
	} else {
		parent = math.Identity()
	}
	n.walk(parent, fn)
}

func (n *Node) walk(parent math.Mat4, fn func(*Node, math.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Local())
	fn(n, world)
	for _, c := range n.Children {
		c.walk(world, fn)
	}
}

// Find returns the first descendant named name, or nil.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Lights gathers every visible point light with its world position.
func (n *Node) Lights(buf *lighting.PointLightBuffer) {
	n.Walk(func(node *Node, world math.Mat4) {
		if node.Light == nil {
			return
		}
		l := *node.Light
		l.Position = world.TransformPoint([3]float32{})
		buf.AddLight(l)
	})
}
