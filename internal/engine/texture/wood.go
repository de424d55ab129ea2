package texture

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/ojrac/opensimplex-go"
)

// Wood colors for the placeholder, dark grain and light ring.
var (
	WoodDark  = color.RGBA{R: 0x5c, G: 0x3a, B: 0x1e, A: 0xff}
	WoodLight = color.RGBA{R: 0xa6, G: 0x72, B: 0x41, A: 0xff}
)

// WoodPlaceholder renders a size x size wood-grain texture from simplex
// noise. The same seed always produces the same pixels.
func WoodPlaceholder(size int, seed int64) *image.RGBA {
	if size < 1 {
		size = 1
	}
	noise := opensimplex.NewNormalized(seed)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size)
			v := float64(y) / float64(size)

			// Stretched rings along X, warped by low-frequency noise
			warp := noise.Eval2(u*3, v*3)
			rings := (v*12 + warp*2.5)
			t := rings - gomath.Floor(rings)
			t = gomath.Pow(t, 3)

			grain := noise.Eval2(u*2, v*64)*0.25 - 0.125
			t = gomath.Max(0, gomath.Min(1, t+grain))

			img.SetRGBA(x, y, lerpRGBA(WoodLight, WoodDark, t))
		}
	}
	return img
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
