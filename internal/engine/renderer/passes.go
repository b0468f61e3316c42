package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/lighting"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/internal/engine/shader"
	"github.com/Faultbox/toroids/internal/engine/shadow"
	"github.com/Faultbox/toroids/pkg/math"
)

// shadowPass renders a depth map for every shadow-casting light and returns
// the light matrices, indexed like lights.Lights.
func (r *Renderer) shadowPass(s *scene.Scene, lights *lighting.PointLightBuffer) [lighting.MaxPointLights]math.Mat4 {
	var lightVP [lighting.MaxPointLights]math.Mat4
	if !r.opts.Shadows {
		return lightVP
	}
	casters := lights.ShadowCasters()
	if len(casters) == 0 {
		return lightVP
	}

	target := s.Bounds().Center()
	r.depth.Use()
	for _, i := range casters {
		light := lights.Lights[i]
		sm := r.shadowMap(i, light.Shadow.Resolution)
		if sm == nil {
			continue
		}
		lightVP[i] = light.ShadowViewProj(target)

		sm.Bind()
		r.depth.SetMat4("uLightViewProj", lightVP[i])
		for _, m := range s.Meshes {
			if !m.Visible || !m.CastShadow || m.Geometry.Primitive != geometry.Triangles {
				continue
			}
			r.setDisplacement(r.depth, m.Material)
			r.depth.SetMat4("uModel", m.ModelMatrix())
			r.mesh(m.Geometry).draw()
		}
		sm.Unbind()
	}
	gl.BindVertexArray(0)
	return lightVP
}

// shadowMap returns the depth map for light i, recreating it when the
// requested resolution changes.
func (r *Renderer) shadowMap(i int, resolution int32) *shadow.Map {
	for len(r.shadowMaps) <= i {
		r.shadowMaps = append(r.shadowMaps, nil)
	}
	sm := r.shadowMaps[i]
	if sm != nil && (resolution <= 0 || sm.Resolution == resolution) {
		return sm
	}
	if sm != nil {
		sm.Destroy()
	}
	sm = shadow.NewMap(resolution)
	if !sm.IsValid() {
		r.log.Warn("shadow map incomplete", zap.Int("light", i), zap.Int32("resolution", resolution))
		sm = nil
	}
	r.shadowMaps[i] = sm
	return sm
}

// drawSurfaces draws every visible triangle mesh with the standard program.
func (r *Renderer) drawSurfaces(s *scene.Scene, cam *camera.Camera, lights *lighting.PointLightBuffer, lightVP [lighting.MaxPointLights]math.Mat4) {
	p := r.standard
	p.Use()
	p.SetMat4("uViewProj", cam.ViewProjection())
	p.SetVec3("uCameraPos", cam.Position)
	p.SetColor("uAmbient", s.Ambient.Radiance())

	p.SetInt("uLightCount", int32(lights.Count))
	p.SetVec3Array("uLightPositions", lights.GetPositions())
	p.SetVec3Array("uLightColors", lights.GetColors())
	p.SetFloatArray("uLightRanges", lights.GetRanges())
	p.SetFloatArray("uLightIntensities", lights.GetIntensities())
	for i := 0; i < lighting.MaxPointLights; i++ {
		shadowed := false
		if i < lights.Count {
			l := lights.Lights[i]
			p.SetMat4(fmt.Sprintf("uLightViewProj[%d]", i), lightVP[i])
			shadowed = r.opts.Shadows && l.Shadow.Cast && i < len(r.shadowMaps) && r.shadowMaps[i] != nil
		}
		p.SetBool(fmt.Sprintf("uLightShadows[%d]", i), shadowed)
		if shadowed {
			r.shadowMaps[i].BindTexture(unitShadow + uint32(i))
		} else {
			r.noShadow.BindTexture(unitShadow + uint32(i))
		}
	}

	for _, m := range s.Meshes {
		if !m.Visible || m.Geometry.Primitive != geometry.Triangles {
			continue
		}
		r.setMaterial(m.Material)
		p.SetBool("uReceiveShadow", m.ReceiveShadow)
		model := m.ModelMatrix()
		p.SetMat4("uModel", model)
		p.SetMat4("uNormalMatrix", model.NormalMatrix())
		r.mesh(m.Geometry).draw()
	}
	gl.BindVertexArray(0)
	gl.Disable(gl.CULL_FACE)
}

// setMaterial uploads the state of mat to the standard program.
func (r *Renderer) setMaterial(mat material.Material) {
	p := r.standard
	if mat.DoubleSided() {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	switch m := mat.(type) {
	case *material.Physical:
		p.SetInt("uMaterial", 0)
		p.SetFloat("uRoughness", m.Roughness)
		p.SetFloat("uMetalness", m.Metalness)
		p.SetFloat("uNormalScale", m.NormalScale)
		bindTexture(unitColor, r.texture(m.ColorMap, gl.REPEAT).id)
		bindTexture(unitRoughness, r.texture(m.RoughnessMap, gl.REPEAT).id)
		bindTexture(unitMetalness, r.texture(m.MetalnessMap, gl.REPEAT).id)
		bindTexture(unitNormal, r.texture(m.NormalMap, gl.REPEAT).id)
		env := r.texture(m.EnvironmentMap, gl.CLAMP_TO_EDGE)
		bindTexture(unitEnvironment, env.id)
		p.SetFloat("uEnvMaxLod", float32(env.levels-1))
	case *material.Phong:
		p.SetInt("uMaterial", 1)
		p.SetColor("uColor", m.Color)
		p.SetColor("uSpecular", m.Specular)
		p.SetFloat("uShininess", m.Shininess)
		p.SetBool("uVertexColors", m.VertexColors)
		for _, unit := range []uint32{unitColor, unitRoughness, unitMetalness, unitNormal, unitEnvironment} {
			bindTexture(unit, r.white)
		}
	}
	r.setDisplacement(p, mat)
}

// setDisplacement binds the displacement map of a physical material, or
// turns displacement off.
func (r *Renderer) setDisplacement(p *shader.Program, mat material.Material) {
	m, ok := mat.(*material.Physical)
	if !ok || m.DisplacementMap == nil || m.DisplacementScale == 0 {
		p.SetBool("uUseDisplacement", false)
		bindTexture(unitDisplacement, r.white)
		return
	}
	p.SetBool("uUseDisplacement", true)
	p.SetFloat("uDisplacementScale", m.DisplacementScale)
	bindTexture(unitDisplacement, r.texture(m.DisplacementMap, gl.REPEAT).id)
}

// drawLines draws every visible line mesh unlit.
func (r *Renderer) drawLines(s *scene.Scene, cam *camera.Camera) {
	p := r.line
	p.Use()
	p.SetMat4("uViewProj", cam.ViewProjection())
	for _, m := range s.Meshes {
		if !m.Visible || m.Geometry.Primitive != geometry.Lines {
			continue
		}
		if lb, ok := m.Material.(*material.LineBasic); ok {
			p.SetColor("uColor", lb.Color)
			p.SetBool("uVertexColors", false)
		} else {
			p.SetBool("uVertexColors", true)
		}
		p.SetMat4("uModel", m.ModelMatrix())
		r.mesh(m.Geometry).draw()
	}
	gl.BindVertexArray(0)
}

// postPass resolves the HDR target into the output target.
func (r *Renderer) postPass() {
	r.output.Bind()
	gl.Disable(gl.DEPTH_TEST)

	p := r.post
	p.Use()
	p.SetBool("uToneMapping", r.opts.ToneMapping)
	p.SetFloat("uExposure", r.opts.Exposure)
	p.SetBool("uFXAA", r.opts.AntiAliasing)
	p.SetVec2("uInvResolution", 1/float32(r.width), 1/float32(r.height))
	bindTexture(0, r.hdr.ColorTexture())

	gl.BindVertexArray(r.postVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}
