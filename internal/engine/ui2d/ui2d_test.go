package ui2d

import (
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBuildAtlasBasicFont(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, DefaultRunes())

	if a.LineHeight != 13 {
		t.Errorf("LineHeight = %v, want 13", a.LineHeight)
	}
	g, ok := a.Glyphs['A']
	if !ok {
		t.Fatal("glyph 'A' missing")
	}
	if g.Advance != 7 {
		t.Errorf("advance = %v, want 7", g.Advance)
	}
	if g.U0 >= g.U1 || g.V0 >= g.V1 {
		t.Errorf("degenerate UV rect %+v", g)
	}

	b := a.Image.Bounds()
	if b.Dx() != atlasWidth || b.Dy()&(b.Dy()-1) != 0 {
		t.Errorf("atlas size %v, want width %d and power-of-two height", b, atlasWidth)
	}

	// 'A' has ink, ' ' does not
	if coverage(a, 'A') == 0 {
		t.Error("glyph 'A' rasterized empty")
	}
	if coverage(a, ' ') != 0 {
		t.Error("space has ink")
	}
}

func coverage(a *Atlas, r rune) int {
	g := a.Glyphs[r]
	b := a.Image.Bounds()
	x0, x1 := int(g.U0*float32(b.Dx())), int(g.U1*float32(b.Dx()))
	y0, y1 := int(g.V0*float32(b.Dy())), int(g.V1*float32(b.Dy()))
	sum := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += int(a.Image.AlphaAt(x, y).A)
		}
	}
	return sum
}

func TestMeasureText(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, DefaultRunes())
	tests := []struct {
		text  string
		scale float32
		w, h  float32
	}{
		{"AB", 1, 14, 13},
		{"AB", 2, 28, 26},
		{"ABC\nA", 1, 21, 26},
		{"", 1, 0, 13},
	}
	for _, tt := range tests {
		w, h := a.MeasureText(tt.text, tt.scale)
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q, %v) = (%v, %v), want (%v, %v)", tt.text, tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestGlyphFallback(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, []rune{'?', 'a'})
	if a.Glyph('中') != a.Glyphs['?'] {
		t.Error("missing rune should fall back to '?'")
	}
}

func TestLoadFace(t *testing.T) {
	face, err := LoadFace(goregular.TTF, 24)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	a := BuildAtlas(face, DefaultRunes())
	if a.LineHeight < 24 {
		t.Errorf("LineHeight = %v, want >= 24", a.LineHeight)
	}
	if a.Glyphs['i'].Advance >= a.Glyphs['W'].Advance {
		t.Error("proportional font should have narrower 'i' than 'W'")
	}

	if _, err := LoadFace([]byte("nope"), 12); err == nil {
		t.Error("expected parse error")
	}
}

func TestLayoutText(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, DefaultRunes())
	v := layoutText(nil, a, 10, 20, "Hi\nA", 1, ColorWhite)

	// 3 glyphs * 6 vertices * 9 floats
	if len(v) != 3*6*9 {
		t.Fatalf("len = %d, want %d", len(v), 3*6*9)
	}
	// Second glyph starts one advance right
	if v[6*9] != 17 {
		t.Errorf("second glyph x = %v, want 17", v[6*9])
	}
	// Third glyph is on the next line at the left edge
	if v[12*9] != 10 || v[12*9+1] != 33 {
		t.Errorf("third glyph at (%v, %v), want (10, 33)", v[12*9], v[12*9+1])
	}
}

func TestLayoutRects(t *testing.T) {
	r := centeredRect(800, 600, 100, 40, 10)
	if r != (Rect{X: 340, Y: 270, W: 120, H: 60}) {
		t.Errorf("centeredRect = %+v", r)
	}
	if !r.Contains(400, 300) || r.Contains(0, 0) {
		t.Error("Contains mismatch")
	}

	b := bottomRect(800, 600, 100, 20, 5, 30)
	if b.Y+b.H != 570 || b.X != 345 {
		t.Errorf("bottomRect = %+v", b)
	}
}

func TestColorFade(t *testing.T) {
	c := ColorScrim.Fade(0.5)
	if c.A != 0.3 || c.R != ColorScrim.R {
		t.Errorf("Fade = %+v", c)
	}
	if RGB(255, 0, 0) != (Color{1, 0, 0, 1}) {
		t.Error("RGB mismatch")
	}
}
