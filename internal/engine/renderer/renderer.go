// Package renderer draws the composed scene with OpenGL: a shadow depth
// pass from the sun, lit and unlit opaque passes, then blended flames.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/birthday-cake/internal/engine/camera"
	"github.com/Faultbox/birthday-cake/internal/engine/lighting"
	"github.com/Faultbox/birthday-cake/internal/engine/renderer/shaders"
	"github.com/Faultbox/birthday-cake/internal/engine/shader"
	"github.com/Faultbox/birthday-cake/internal/engine/shadow"
	"github.com/Faultbox/birthday-cake/internal/engine/texture"
	"github.com/Faultbox/birthday-cake/internal/flame"
	"github.com/Faultbox/birthday-cake/internal/geometry"
	"github.com/Faultbox/birthday-cake/internal/logger"
	"github.com/Faultbox/birthday-cake/internal/scene"
	"github.com/Faultbox/birthday-cake/pkg/math"
)

// ClearColor is the background color.
const ClearColor = 0x101005

// Config holds renderer configuration.
type Config struct {
	Width            int
	Height           int
	ShadowsEnabled   bool
	ShadowResolution int32
	MSAA             int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	standard *shader.Program
	unlit    *shader.Program
	depth    *shader.Program
	flame    *shader.Program

	shadowMap *shadow.Map
	lights    *lighting.PointLightBuffer

	meshes   map[*geometry.Mesh]*gpuMesh
	textures map[string]uint32
	frame    uint64

	log *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		lights:   lighting.NewPointLightBuffer(),
		meshes:   make(map[*geometry.Mesh]*gpuMesh),
		textures: make(map[string]uint32),
		log:      logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.MSAA > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	bg := geometry.Hex(ClearColor)
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	programs := []struct {
		dst      **shader.Program
		name     string
		vertex   string
		fragment string
	}{
		{&r.standard, "standard", shaders.StandardVertexShader, shaders.StandardFragmentShader},
		{&r.unlit, "unlit", shaders.UnlitVertexShader, shaders.UnlitFragmentShader},
		{&r.depth, "shadow", shaders.ShadowVertexShader, shaders.ShadowFragmentShader},
		{&r.flame, "flame", flame.VertexSource, flame.FragmentSource},
	}
	for _, p := range programs {
		prog, err := shader.NewProgram(p.vertex, p.fragment)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("%s shader: %w", p.name, err)
		}
		*p.dst = prog
	}

	if cfg.ShadowsEnabled {
		sm, err := shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			r.log.Warn("shadows disabled", zap.Error(err))
		} else {
			r.shadowMap = sm
		}
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, p := range []*shader.Program{r.standard, r.unlit, r.depth, r.flame} {
		if p != nil {
			p.Delete()
		}
	}
	for m, g := range r.meshes {
		g.destroy()
		delete(r.meshes, m)
	}
	for name, id := range r.textures {
		texture.Delete(id)
		delete(r.textures, name)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height <= 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetTexture uploads img into the named texture slot, replacing any
// previous texture in that slot.
func (r *Renderer) SetTexture(name string, img *image.RGBA) {
	if old, ok := r.textures[name]; ok {
		texture.Delete(old)
	}
	r.textures[name] = texture.Upload(img)
	r.log.Debug("texture uploaded",
		zap.String("slot", name),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
}

// Render draws one frame of s as seen from cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.OrbitCamera) {
	r.frame++

	eye := cam.Position()
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(r.Aspect())
	dl := buildDrawList(s.Root, eye)

	r.lights.Clear()
	s.Root.Lights(r.lights)

	lightViewProj := math.Identity()
	shadows := r.shadowMap.IsValid()
	if shadows {
		lightViewProj = shadow.CalculateDirectionalLightMatrix(s.Sun.Direction().Neg(), shadow.FromBounds(s.Bounds()))
		r.renderShadowPass(dl.Casters, lightViewProj)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)

	r.renderLit(s, dl.Lit, view, proj, eye, lightViewProj, shadows)
	r.renderUnlit(dl.Unlit, view, proj)
	r.renderFlames(dl.Flames, view, proj)

	gl.BindVertexArray(0)
	r.prune()
}

func (r *Renderer) renderShadowPass(casters []drawItem, lightViewProj math.Mat4) {
	r.shadowMap.Bind()

	r.depth.Use()
	r.depth.SetMat4("uLightViewProj", lightViewProj)
	for _, it := range casters {
		r.depth.SetMat4("uModel", it.World)
		r.mesh(it.Node.Mesh).draw()
	}

	r.shadowMap.Unbind()
	gl.Disable(gl.CULL_FACE)
}

func (r *Renderer) renderLit(s *scene.Scene, items []drawItem, view, proj math.Mat4, eye math.Vec3, lightViewProj math.Mat4, shadows bool) {
	p := r.standard
	p.Use()

	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetMat4("uLightViewProj", lightViewProj)
	p.SetVec3("uCameraPos", eye.Arr())
	p.SetVec3("uAmbient", s.Ambient.Radiance())
	p.SetVec3("uSunDir", s.Sun.Direction().Arr())
	p.SetVec3("uSunColor", [3]float32{
		s.Sun.Color[0] * s.Sun.Intensity,
		s.Sun.Color[1] * s.Sun.Intensity,
		s.Sun.Color[2] * s.Sun.Intensity,
	})

	p.SetInt("uPointLightCount", int32(r.lights.Count))
	p.SetVec3Array("uPointLightPositions", r.lights.GetPositions())
	p.SetVec3Array("uPointLightColors", r.lights.GetColors())
	p.SetFloatArray("uPointLightRanges", r.lights.GetRanges())
	p.SetFloatArray("uPointLightDecays", r.lights.GetDecays())

	if shadows {
		p.SetInt("uShadowsEnabled", 1)
		r.shadowMap.BindTexture(gl.TEXTURE1)
		p.SetInt("uShadowMap", 1)
	} else {
		p.SetInt("uShadowsEnabled", 0)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	p.SetInt("uTexture", 0)

	for _, it := range items {
		mat := it.Node.Material
		p.SetMat4("uModel", it.World)
		p.SetMat3("uNormalMatrix", it.World.NormalMatrix())
		p.SetVec3("uBaseColor", mat.Color)
		p.SetFloat("uRoughness", mat.Roughness)
		p.SetInt("uReceiveShadow", boolToInt(mat.ReceiveShadow))

		tex, ok := r.textures[mat.Texture]
		if mat.Texture != "" && ok {
			gl.BindTexture(gl.TEXTURE_2D, tex)
			p.SetInt("uUseTexture", 1)
		} else {
			p.SetInt("uUseTexture", 0)
		}

		r.mesh(it.Node.Mesh).draw()
	}
}

func (r *Renderer) renderUnlit(items []drawItem, view, proj math.Mat4) {
	if len(items) == 0 {
		return
	}
	p := r.unlit
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	for _, it := range items {
		p.SetMat4("uModel", it.World)
		p.SetVec3("uBaseColor", it.Node.Material.Color)
		r.mesh(it.Node.Mesh).draw()
	}
}

func (r *Renderer) renderFlames(items []drawItem, view, proj math.Mat4) {
	if len(items) == 0 {
		return
	}
	p := r.flame
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.Enable(gl.CULL_FACE)

	for _, it := range items {
		f := it.Node.Flame
		if f.Material.Side == flame.Back {
			gl.CullFace(gl.FRONT)
		} else {
			gl.CullFace(gl.BACK)
		}
		p.SetMat4("uModel", it.World)
		p.SetFloat("uTime", f.Material.Time)
		p.SetFloat("uOpacity", f.Opacity)
		r.mesh(it.Node.Mesh).draw()
	}

	gl.CullFace(gl.BACK)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// mesh returns the uploaded copy of m, uploading on first use.
func (r *Renderer) mesh(m *geometry.Mesh) *gpuMesh {
	g, ok := r.meshes[m]
	if !ok {
		g = uploadMesh(m)
		r.meshes[m] = g
	}
	g.lastFrame = r.frame
	return g
}

// prune frees meshes no node has drawn for a while, e.g. replaced text.
func (r *Renderer) prune() {
	for m, g := range r.meshes {
		if r.frame-g.lastFrame > meshIdleFrames {
			g.destroy()
			delete(r.meshes, m)
		}
	}
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
