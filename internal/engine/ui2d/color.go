package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for UI theming.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	// Warm candlelight palette
	ColorPanelBg     = Color{0.06, 0.05, 0.02, 0.85}
	ColorPanelBorder = Color{0.85, 0.65, 0.2, 1}
	ColorScrim       = Color{0, 0, 0, 0.6}
	ColorText        = Color{0.95, 0.92, 0.85, 1}
	ColorGold        = Color{1, 0.84, 0, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// Fade multiplies alpha by f.
func (c Color) Fade(f float32) Color {
	return Color{c.R, c.G, c.B, c.A * f}
}
