package geometry

import (
	"image"

	"github.com/Faultbox/birthday-cake/pkg/math"
)

// TextMesh turns a rasterized glyph mask into voxel geometry. Every pixel
// with alpha >= 128 becomes a box of pixelSize x pixelSize x depth; only
// faces between filled and empty cells are emitted. The result is centered
// on X, its bottom row sits on Y=0 and it spans Z in [-depth/2, depth/2].
func TextMesh(mask *image.Alpha, pixelSize, depth float32) (*Mesh, error) {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	filled := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.AlphaAt(b.Min.X+x, b.Min.Y+y).A >= 128
	}

	m := &Mesh{}
	found := false
	offsetX := -float32(w) * pixelSize / 2
	halfDepth := depth / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !filled(x, y) {
				continue
			}
			found = true
			// Image row 0 is the top of the text.
			x0 := offsetX + float32(x)*pixelSize
			x1 := x0 + pixelSize
			y1 := float32(h-y) * pixelSize
			y0 := y1 - pixelSize

			quad(m, // front
				math.Vec3{X: x0, Y: y0, Z: halfDepth}, math.Vec3{X: x1, Y: y0, Z: halfDepth},
				math.Vec3{X: x1, Y: y1, Z: halfDepth}, math.Vec3{X: x0, Y: y1, Z: halfDepth},
				math.Vec3{Z: 1})
			quad(m, // back
				math.Vec3{X: x1, Y: y0, Z: -halfDepth}, math.Vec3{X: x0, Y: y0, Z: -halfDepth},
				math.Vec3{X: x0, Y: y1, Z: -halfDepth}, math.Vec3{X: x1, Y: y1, Z: -halfDepth},
				math.Vec3{Z: -1})
			if !filled(x-1, y) {
				quad(m,
					math.Vec3{X: x0, Y: y0, Z: -halfDepth}, math.Vec3{X: x0, Y: y0, Z: halfDepth},
					math.Vec3{X: x0, Y: y1, Z: halfDepth}, math.Vec3{X: x0, Y: y1, Z: -halfDepth},
					math.Vec3{X: -1})
			}
			if !filled(x+1, y) {
				quad(m,
					math.Vec3{X: x1, Y: y0, Z: halfDepth}, math.Vec3{X: x1, Y: y0, Z: -halfDepth},
					math.Vec3{X: x1, Y: y1, Z: -halfDepth}, math.Vec3{X: x1, Y: y1, Z: halfDepth},
					math.Vec3{X: 1})
			}
			if !filled(x, y-1) {
				quad(m,
					math.Vec3{X: x0, Y: y1, Z: halfDepth}, math.Vec3{X: x1, Y: y1, Z: halfDepth},
					math.Vec3{X: x1, Y: y1, Z: -halfDepth}, math.Vec3{X: x0, Y: y1, Z: -halfDepth},
					math.Vec3{Y: 1})
			}
			if !filled(x, y+1) {
				quad(m,
					math.Vec3{X: x0, Y: y0, Z: -halfDepth}, math.Vec3{X: x1, Y: y0, Z: -halfDepth},
					math.Vec3{X: x1, Y: y0, Z: halfDepth}, math.Vec3{X: x0, Y: y0, Z: halfDepth},
					math.Vec3{Y: -1})
			}
		}
	}
	if !found {
		return nil, ErrTooFewPoints
	}
	return m, nil
}

// quad appends a counter-clockwise quad a-b-c-d.
func quad(m *Mesh, a, b, c, d, n math.Vec3) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		vertex(a, n, 0, 0), vertex(b, n, 1, 0), vertex(c, n, 1, 1), vertex(d, n, 0, 1))
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
