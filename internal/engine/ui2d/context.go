package ui2d

import (
	"fmt"

	"golang.org/x/image/font"
)

// Text scales for the scene overlays.
const (
	OverlayScale = 3
	HintScale    = 1.5
	panelPadding = 16
	hintMargin   = 32
)

// Context draws the screen-space overlays on top of the scene.
type Context struct {
	renderer *Renderer
}

// NewContext creates a UI context with its own renderer. A nil face uses
// the built-in font.
func NewContext(width, height int, face font.Face) (*Context, error) {
	r, err := New(width, height, face)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Context{renderer: r}, nil
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.renderer.Begin()
}

// End finishes the UI frame.
func (c *Context) End() {
	c.renderer.End()
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.renderer.GetScreenSize()
	return float32(w), float32(h)
}

// Overlay dims the whole screen and shows message in a centered panel.
// opacity scales every element, so 0 draws nothing.
func (c *Context) Overlay(message string, opacity float32) {
	if opacity <= 0 {
		return
	}
	sw, sh := c.GetScreenSize()
	tw, th := c.renderer.MeasureText(message, OverlayScale)
	panel := centeredRect(sw, sh, tw, th, panelPadding)

	c.renderer.DrawRect(0, 0, sw, sh, ColorScrim.Fade(opacity))
	c.renderer.DrawPanel(panel.X, panel.Y, panel.W, panel.H, ColorPanelBg.Fade(opacity), ColorPanelBorder.Fade(opacity))
	c.renderer.DrawText(panel.X+panelPadding, panel.Y+panelPadding, message, OverlayScale, ColorGold.Fade(opacity))
}

// Hint shows text in a small panel near the bottom of the screen.
func (c *Context) Hint(text string) {
	sw, sh := c.GetScreenSize()
	tw, th := c.renderer.MeasureText(text, HintScale)
	panel := bottomRect(sw, sh, tw, th, panelPadding/2, hintMargin)

	c.renderer.DrawPanel(panel.X, panel.Y, panel.W, panel.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawText(panel.X+panelPadding/2, panel.Y+panelPadding/2, text, HintScale, ColorText)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// centeredRect returns a box around a w x h block centered on the screen.
func centeredRect(screenW, screenH, w, h, pad float32) Rect {
	bw, bh := w+pad*2, h+pad*2
	return Rect{X: (screenW - bw) / 2, Y: (screenH - bh) / 2, W: bw, H: bh}
}

// bottomRect returns a box around a w x h block, horizontally centered and
// margin pixels above the bottom edge.
func bottomRect(screenW, screenH, w, h, pad, margin float32) Rect {
	bw, bh := w+pad*2, h+pad*2
	return Rect{X: (screenW - bw) / 2, Y: screenH - margin - bh, W: bw, H: bh}
}
