package assets

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RasterizeText draws text with face into a tight coverage mask. Row 0 is
// the top of the line box. Returns nil for text with no advance.
func RasterizeText(face font.Face, text string) *image.Alpha {
	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)
	return mask
}
