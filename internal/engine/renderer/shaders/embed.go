// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// StandardVertexShader transforms lit surface geometry.
//
//go:embed standard.vert
var StandardVertexShader string

// StandardFragmentShader shades physical and Phong materials with point lights and shadows.
//
//go:embed standard.frag
var StandardFragmentShader string

// LineVertexShader is the vertex shader for unlit lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for unlit lines.
//
//go:embed line.frag
var LineFragmentShader string

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string

// PostVertexShader emits a fullscreen triangle.
//
//go:embed post.vert
var PostVertexShader string

// PostFragmentShader applies exposure, tone mapping and FXAA.
//
//go:embed post.frag
var PostFragmentShader string
