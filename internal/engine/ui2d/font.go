package ui2d

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// atlasWidth is the width in pixels of the glyph atlas texture.
const atlasWidth = 512

// glyphPadding separates atlas cells so linear filtering does not bleed.
const glyphPadding = 2

// Glyph is one atlas cell. UVs are normalized; Advance is in pixels.
type Glyph struct {
	U0, V0, U1, V1 float32
	Advance        float32
}

// Atlas is a rasterized glyph sheet, ready for upload.
type Atlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight float32
	fallback   Glyph
}

// Font is an uploaded atlas.
type Font struct {
	*Atlas
	texID uint32
}

// DefaultRunes are the glyphs baked into every atlas: printable ASCII plus
// Latin-1 letters.
func DefaultRunes() []rune {
	runes := make([]rune, 0, 192)
	for r := rune(0x20); r < 0x7f; r++ {
		runes = append(runes, r)
	}
	for r := rune(0xa1); r <= 0xff; r++ {
		runes = append(runes, r)
	}
	return runes
}

// LoadFace parses TrueType or OpenType data and returns a face at size
// points (72 DPI, so points equal pixels).
func LoadFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// DefaultFace returns the built-in bitmap face used when no font is
// configured.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

// BuildAtlas rasterizes runes from face into a single-channel sheet.
// Runes the face cannot draw are skipped and render as '?' later.
func BuildAtlas(face font.Face, runes []rune) *Atlas {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineH := (m.Ascent + m.Descent).Ceil()
	if h := m.Height.Ceil(); h > lineH {
		lineH = h
	}

	type cell struct {
		r       rune
		x, y, w int
		advance fixed.Int26_6
	}
	cells := make([]cell, 0, len(runes))
	x, y := glyphPadding, glyphPadding
	for _, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		w := adv.Ceil()
		if w < 1 {
			w = 1
		}
		if x+w+glyphPadding > atlasWidth {
			x = glyphPadding
			y += lineH + glyphPadding
		}
		cells = append(cells, cell{r: r, x: x, y: y, w: w, advance: adv})
		x += w + glyphPadding
	}
	height := nextPow2(y + lineH + glyphPadding)

	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, height))
	d := &font.Drawer{Dst: img, Src: image.Opaque, Face: face}

	a := &Atlas{Image: img, Glyphs: make(map[rune]Glyph, len(cells)), LineHeight: float32(lineH)}
	for _, c := range cells {
		d.Dot = fixed.P(c.x, c.y+ascent)
		d.DrawString(string(c.r))
		a.Glyphs[c.r] = Glyph{
			U0:      float32(c.x) / atlasWidth,
			V0:      float32(c.y) / float32(height),
			U1:      float32(c.x+c.w) / atlasWidth,
			V1:      float32(c.y+lineH) / float32(height),
			Advance: float32(c.advance) / 64,
		}
	}
	a.fallback = a.Glyphs['?']
	return a
}

// Glyph returns the cell for r, or the '?' cell when r is not baked.
func (a *Atlas) Glyph(r rune) Glyph {
	if g, ok := a.Glyphs[r]; ok {
		return g
	}
	return a.fallback
}

// MeasureText returns the width and height of rendered text.
func (a *Atlas) MeasureText(text string, scale float32) (float32, float32) {
	var w, lineW float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
			lineW = 0
			continue
		}
		lineW += a.Glyph(r).Advance * scale
		if lineW > w {
			w = lineW
		}
	}
	return w, float32(lines) * a.LineHeight * scale
}

// NewFont uploads an atlas built from face. Must be called on the GL thread.
func NewFont(face font.Face) *Font {
	a := BuildAtlas(face, DefaultRunes())
	f := &Font{Atlas: a}

	b := a.Image.Bounds()
	gl.GenTextures(1, &f.texID)
	gl.BindTexture(gl.TEXTURE_2D, f.texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return f
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.texID
}

// Close releases the atlas texture.
func (f *Font) Close() {
	if f.texID != 0 {
		gl.DeleteTextures(1, &f.texID)
		f.texID = 0
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
