package app

import (
	"errors"

	"golang.org/x/image/font"

	"github.com/Faultbox/birthday-cake/internal/assets"
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/pkg/encoding"
)

// errNoText is returned for text that rasterizes to nothing.
var errNoText = errors.New("text has no glyphs")

// buildText folds text onto Latin-1, rasterizes it with face and extrudes
// it into the floating text mesh.
func buildText(face font.Face, text string) (*geometry.Mesh, error) {
	mask := assets.RasterizeText(face, encoding.ToLatin1(text))
	if mask == nil {
		return nil, errNoText
	}
	return scene.TextMeshFromMask(mask)
}
