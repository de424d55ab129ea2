// Package shaders holds the GLSL sources for the scene renderer.
package shaders

import _ "embed"

// Lit surfaces: ambient, directional sun with shadow map, point lights.
var (
	//go:embed standard.vert
	StandardVertexShader string
	//go:embed standard.frag
	StandardFragmentShader string
)

// Vertex-colored surfaces that ignore lighting.
var (
	//go:embed unlit.vert
	UnlitVertexShader string
	//go:embed unlit.frag
	UnlitFragmentShader string
)

// Depth-only pass for the shadow map.
var (
	//go:embed depth.vert
	ShadowVertexShader string
	//go:embed depth.frag
	ShadowFragmentShader string
)
