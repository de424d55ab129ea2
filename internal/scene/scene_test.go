package scene

import (
	"errors"
	"image"
	"image/color"
	gomath "math"
	"testing"

	"github.com/Faultbox/birthday-cake/internal/engine/lighting"
	"github.com/Faultbox/birthday-cake/internal/extinguish"
	"github.com/Faultbox/birthday-cake/internal/flame"
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func newTemplate(t *testing.T) *Template {
	t.Helper()
	tmpl, err := NewTemplate(DefaultCandleParams())
	if err != nil {
		t.Fatalf("NewTemplate() error = %v", err)
	}
	return tmpl
}

func TestCreateCandlesRing(t *testing.T) {
	front, back := flame.NewMaterials()
	group, candles := CreateCandles(newTemplate(t), front, back, 5, 1)

	if len(candles) != 5 || len(group.Children) != 5 {
		t.Fatalf("got %d candles, %d children; want 5", len(candles), len(group.Children))
	}
	for i, c := range candles {
		theta := float64(i) * 72 * gomath.Pi / 180
		want := math.Vec3{X: float32(gomath.Cos(theta)), Z: float32(gomath.Sin(theta))}
		if !near(c.Node.Position.X, want.X) || !near(c.Node.Position.Z, want.Z) {
			t.Errorf("candle %d at (%v, %v), want (%v, %v)", i, c.Node.Position.X, c.Node.Position.Z, want.X, want.Z)
		}
		if c.Node.Parent() != group {
			t.Errorf("candle %d not attached to group", i)
		}
	}
}

func TestCandlesShareMaterialsNotState(t *testing.T) {
	front, back := flame.NewMaterials()
	_, candles := CreateCandles(newTemplate(t), front, back, 2, 1)
	a, b := candles[0], candles[1]

	if a.Flames[0].Flame.Material != b.Flames[0].Flame.Material {
		t.Error("front materials not shared")
	}
	if a.Flames[1].Flame.Material.Side != flame.Back {
		t.Error("second flame should use the back material")
	}
	if a.Flicker == b.Flicker || a.Flicker.Light == b.Flicker.Light {
		t.Error("lights shared between candles")
	}

	a.SetFlameOpacity(0.2)
	if b.Flames[0].Flame.Opacity != 1 {
		t.Error("opacity leaked across candles")
	}
}

func TestCandleLayout(t *testing.T) {
	front, back := flame.NewMaterials()
	c := NewCandle(newTemplate(t), front, back, 0, 0)

	if c.Steady.Light.Intensity != 1 || c.Steady.Light.Range != 5 || c.Steady.Light.Decay != 2 {
		t.Errorf("steady light = %+v", *c.Steady.Light)
	}
	if c.Flicker.Light.Range != 10 {
		t.Errorf("flicker range = %v, want 10", c.Flicker.Light.Range)
	}
	if c.Steady.Position.Y != 4 || c.Flicker.Position.Y != 5 {
		t.Errorf("light heights = %v, %v; want 4, 5", c.Steady.Position.Y, c.Flicker.Position.Y)
	}
	for _, f := range c.Flames {
		if f.Position != (math.Vec3{X: 0.06, Y: 4, Z: 0.06}) {
			t.Errorf("flame position = %v", f.Position)
		}
		if !near(f.RotationY, float32(-gomath.Pi/4)) {
			t.Errorf("flame rotation = %v", f.RotationY)
		}
	}
}

func TestCandleExtinguishTarget(t *testing.T) {
	front, back := flame.NewMaterials()
	c := NewCandle(newTemplate(t), front, back, 0, 1)
	var _ extinguish.Target = c

	c.Fade.Trigger(4)
	c.Fade.Tick()
	if c.Burning() || c.Extinguished() {
		t.Errorf("fading candle: Burning = %v, Extinguished = %v", c.Burning(), c.Extinguished())
	}
	for _, f := range c.Flames {
		if !near(f.Flame.Opacity, 0.92) || !near(f.Scale.Y, 0.92) {
			t.Errorf("flame opacity/scale = %v/%v, want 0.92", f.Flame.Opacity, f.Scale.Y)
		}
	}
	if !near(c.Steady.Light.Intensity, 0.92) || !near(c.Flicker.Light.Intensity, 0.92) {
		t.Errorf("intensities = %v/%v, want 0.92", c.Steady.Light.Intensity, c.Flicker.Light.Intensity)
	}

	for !c.Fade.Tick() {
	}
	if !c.Extinguished() {
		t.Error("Extinguished() = false after the fade finished")
	}
	if c.Flames[0].Visible || c.Flicker.Light.Intensity != 0 {
		t.Error("extinguished candle still lit")
	}

	// Hidden flames drop out of the walk; zero-intensity lights out of the buffer.
	buf := lighting.NewPointLightBuffer()
	c.Node.Lights(buf)
	if buf.Count != 0 {
		t.Errorf("light count = %d, want 0", buf.Count)
	}
	flames := 0
	c.Node.Walk(func(n *Node, _ math.Mat4) {
		if n.Flame != nil {
			flames++
		}
	})
	if flames != 0 {
		t.Errorf("walked %d flames, want 0", flames)
	}
}

func TestCandleMissingParts(t *testing.T) {
	c := &Candle{}
	// Absent flames and lights are skipped.
	c.SetFlameOpacity(0.5)
	c.SetFlameScale(0.5)
	c.SetFlameVisible(false)
	c.SetLightIntensity(0.5)
	if !c.Burning() {
		t.Error("candle without fade should count as burning")
	}
}

func TestCakeStacking(t *testing.T) {
	cake, top, err := NewCake(DefaultTiers())
	if err != nil {
		t.Fatalf("NewCake() error = %v", err)
	}
	if !near(top, 1.75) {
		t.Errorf("top = %v, want 1.75", top)
	}

	var base float32
	for i, tier := range cake.Children {
		b := tier.Mesh.Bounds()
		bottom := tier.Position.Y + b.Min.Y
		if !near(bottom, base) {
			t.Errorf("tier %d bottom = %v, want %v", i, bottom, base)
		}
		base = tier.Position.Y + b.Max.Y
	}
}

func TestTable(t *testing.T) {
	table, err := NewTable()
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	b := table.Mesh.Bounds()
	if !near(b.Max.Y, 0) || !near(b.Min.Y, -0.5) {
		t.Errorf("table Y = [%v, %v], want [-0.5, 0]", b.Min.Y, b.Max.Y)
	}
	if table.Material.Texture != TableTexture || !table.Material.ReceiveShadow {
		t.Errorf("table material = %+v", table.Material)
	}
}

func TestCompose(t *testing.T) {
	s, err := Compose(DefaultParams())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if len(s.Candles) != 10 || s.BurningCount() != 10 {
		t.Fatalf("candles = %d, burning = %d", len(s.Candles), s.BurningCount())
	}
	if s.Ambient.Intensity != 0.05 || s.Sun.Intensity != 0.025 {
		t.Errorf("ambient/sun = %v/%v", s.Ambient.Intensity, s.Sun.Intensity)
	}
	if len(s.FlameMaterials()) != 2 {
		t.Error("expected two flame materials")
	}

	// Candle bases sit on the cake top.
	world := s.Candles[0].Node.World()
	p := world.TransformPoint([3]float32{})
	if !near(p[1], s.CakeTop) || !near(p[0], 1) {
		t.Errorf("candle 0 world origin = %v", p)
	}
	// Candle height scales to 4*0.3.
	tip := world.TransformPoint([3]float32{0, 4, 0})
	if !near(tip[1]-p[1], 1.2) {
		t.Errorf("scaled candle height = %v, want 1.2", tip[1]-p[1])
	}

	buf := lighting.NewPointLightBuffer()
	s.Root.Lights(buf)
	if buf.Count != 20 {
		t.Errorf("light count = %d, want 20", buf.Count)
	}

	b := s.Bounds()
	if b.Max.X < 2 || b.Max.Y < s.CakeTop+1 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestComposeRejectsBadGeometry(t *testing.T) {
	p := DefaultParams()
	p.Candle.Segments = 2
	if _, err := Compose(p); err == nil {
		t.Error("Compose() with 2 lathe segments should fail")
	}
}

func TestSetText(t *testing.T) {
	s, err := Compose(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	tmpl := newTemplate(t)
	s.SetText(tmpl.Cap)
	s.SetText(tmpl.Wick)
	if s.Text == nil || s.Text.Mesh != tmpl.Wick {
		t.Fatal("text not replaced")
	}
	texts := 0
	for _, c := range s.Cake.Children {
		if c.Name == "text" {
			texts++
		}
	}
	if texts != 1 {
		t.Errorf("text nodes = %d, want 1", texts)
	}
	if s.Root.Find("text") != s.Text {
		t.Error("Find(text) mismatch")
	}
}

func TestTextMeshFromMask(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 8, 2))
	for x := 0; x < 8; x++ {
		mask.SetAlpha(x, 1, color.Alpha{A: 255})
	}
	m, err := TextMeshFromMask(mask)
	if err != nil {
		t.Fatalf("TextMeshFromMask() error = %v", err)
	}
	if size := m.Bounds().Size(); !near(size.X, TextWidth) || !near(size.Z, TextDepth) {
		t.Errorf("size = %+v, want width %v depth %v", size, TextWidth, TextDepth)
	}

	if _, err := TextMeshFromMask(nil); !errors.Is(err, geometry.ErrTooFewPoints) {
		t.Errorf("nil mask error = %v", err)
	}
}
