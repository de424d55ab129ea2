package renderer

import (
	"sort"

	"github.com/Faultbox/birthday-cake/internal/flame"
	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// drawItem is one mesh node with its world transform.
type drawItem struct {
	Node  *scene.Node
	World math.Mat4
	// Depth is the squared distance from the eye to the node origin.
	Depth float32
}

// drawList splits a frame into passes.
type drawList struct {
	Lit     []drawItem
	Unlit   []drawItem
	Flames  []drawItem
	Casters []drawItem
}

// buildDrawList walks the visible scene graph. Flames with zero opacity are
// dropped and the rest are sorted back to front, back faces before front
// faces at equal depth.
func buildDrawList(root *scene.Node, eye math.Vec3) drawList {
	var dl drawList
	root.Walk(func(n *scene.Node, world math.Mat4) {
		if n.Mesh == nil || len(n.Mesh.Indices) == 0 {
			return
		}
		item := drawItem{Node: n, World: world}
		if n.Flame != nil {
			f := n.Flame
			if !f.Visible || f.Opacity <= 0 || f.Material == nil {
				return
			}
			p := world.TransformPoint([3]float32{})
			d := math.V3(p).Sub(eye)
			item.Depth = d.Dot(d)
			dl.Flames = append(dl.Flames, item)
			return
		}
		if n.Material.CastShadow {
			dl.Casters = append(dl.Casters, item)
		}
		if n.Material.Shading == scene.Unlit {
			dl.Unlit = append(dl.Unlit, item)
			return
		}
		dl.Lit = append(dl.Lit, item)
	})

	sort.SliceStable(dl.Flames, func(i, j int) bool {
		a, b := dl.Flames[i], dl.Flames[j]
		if a.Depth != b.Depth {
			return a.Depth > b.Depth
		}
		return a.Node.Flame.Material.Side == flame.Back && b.Node.Flame.Material.Side != flame.Back
	})
	return dl
}
