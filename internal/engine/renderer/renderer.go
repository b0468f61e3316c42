// Package renderer draws a scene through OpenGL: a shadow pass per
// shadow-casting light, a lit HDR scene pass and a tone-mapping post pass.
package renderer

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/framebuffer"
	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/lighting"
	"github.com/Faultbox/toroids/internal/engine/renderer/shaders"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/internal/engine/shader"
	"github.com/Faultbox/toroids/internal/engine/shadow"
	"github.com/Faultbox/toroids/internal/logger"
)

// Texture units. Samplers of different types never share a unit.
const (
	unitColor uint32 = iota
	unitRoughness
	unitMetalness
	unitNormal
	unitEnvironment
	unitDisplacement
	unitShadow // first of lighting.MaxPointLights shadow units
)

// ErrNilScene is returned by Render when the scene or camera is missing.
var ErrNilScene = errors.New("renderer: nil scene or camera")

// Options holds renderer settings.
type Options struct {
	Width        int32
	Height       int32
	Shadows      bool
	ToneMapping  bool
	Exposure     float32
	AntiAliasing bool
}

// OptionsFrom derives renderer options from the configuration and the
// drawable size of the window.
func OptionsFrom(cfg *config.Config, width, height int32) Options {
	return Options{
		Width:        width,
		Height:       height,
		Shadows:      cfg.Render.ShadowsOn,
		ToneMapping:  cfg.Render.ToneMapping,
		Exposure:     cfg.Render.Exposure,
		AntiAliasing: cfg.Render.AntiAliasing,
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	opts   Options
	width  int32
	height int32

	standard *shader.Program
	line     *shader.Program
	depth    *shader.Program
	post     *shader.Program

	hdr     *framebuffer.Framebuffer
	output  *framebuffer.Framebuffer
	postVAO uint32

	meshes   map[*geometry.Geometry]*gpuMesh
	textures map[image.Image]*gpuTexture
	white    uint32
	maxTex   int32

	shadowMaps []*shadow.Map
	noShadow   *shadow.Map

	log *zap.Logger
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(opts Options) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		opts:     opts,
		width:    max(opts.Width, 1),
		height:   max(opts.Height, 1),
		meshes:   make(map[*geometry.Geometry]*gpuMesh),
		textures: make(map[image.Image]*gpuTexture),
		log:      logger.Named("renderer"),
	}
	if r.opts.Exposure <= 0 {
		r.opts.Exposure = 1
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &r.maxTex)

	if err := r.init(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init() error {
	var err error
	if r.standard, err = shader.NewProgram("standard", shaders.StandardVertexShader, shaders.StandardFragmentShader); err != nil {
		return err
	}
	if r.line, err = shader.NewProgram("line", shaders.LineVertexShader, shaders.LineFragmentShader); err != nil {
		return err
	}
	if r.depth, err = shader.NewProgram("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		return err
	}
	if r.post, err = shader.NewProgram("post", shaders.PostVertexShader, shaders.PostFragmentShader); err != nil {
		return err
	}

	if r.hdr, err = framebuffer.NewWithFormat(r.width, r.height, framebuffer.FormatHDR); err != nil {
		return fmt.Errorf("hdr target: %w", err)
	}
	if r.output, err = framebuffer.New(r.width, r.height); err != nil {
		return fmt.Errorf("output target: %w", err)
	}

	r.noShadow = shadow.NewMap(1)
	if !r.noShadow.IsValid() {
		return errors.New("placeholder shadow map incomplete")
	}

	r.white = uploadWhite()
	gl.GenVertexArrays(1, &r.postVAO)

	r.standard.Use()
	r.standard.SetInt("uColorMap", int32(unitColor))
	r.standard.SetInt("uRoughnessMap", int32(unitRoughness))
	r.standard.SetInt("uMetalnessMap", int32(unitMetalness))
	r.standard.SetInt("uNormalMap", int32(unitNormal))
	r.standard.SetInt("uEnvMap", int32(unitEnvironment))
	r.standard.SetInt("uDisplacementMap", int32(unitDisplacement))
	for i := 0; i < lighting.MaxPointLights; i++ {
		r.standard.SetInt(fmt.Sprintf("uShadowMaps[%d]", i), int32(unitShadow)+int32(i))
	}
	r.depth.Use()
	r.depth.SetInt("uDisplacementMap", int32(unitDisplacement))
	r.post.Use()
	r.post.SetInt("uScene", 0)
	gl.UseProgram(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	return nil
}

// Size returns the size of the drawing surface.
func (r *Renderer) Size() (int32, int32) {
	return r.width, r.height
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.hdr.Resize(width, height)
	r.output.Resize(width, height)
	r.log.Debug("renderer resized",
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
}

// Clear presents an empty frame.
func (r *Renderer) Clear() error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.width, r.height)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return glError("clear")
}

// Render draws one frame of the scene as seen by cam. The camera's aspect
// ratio follows the current surface size.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Camera) error {
	if s == nil || cam == nil {
		return ErrNilScene
	}
	cam.SetAspect(r.width, r.height)

	lights := s.LightBuffer()
	lightVP := r.shadowPass(s, lights)

	r.hdr.Bind()
	r.hdr.Clear(s.Background.R, s.Background.G, s.Background.B, 1)
	gl.Enable(gl.DEPTH_TEST)
	r.drawSurfaces(s, cam, lights, lightVP)
	r.drawLines(s, cam)

	r.postPass()
	r.output.BlitToScreen(r.width, r.height)

	return glError("render")
}

// Capture reads back the last rendered frame, top row first.
func (r *Renderer) Capture() *image.RGBA {
	pixels := r.output.ReadPixels()
	w, h := r.output.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	rowLen := int(w) * 4
	for y := 0; y < int(h); y++ {
		src := (int(h) - 1 - y) * rowLen
		copy(img.Pix[y*rowLen:(y+1)*rowLen], pixels[src:src+rowLen])
	}
	return img
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for g, m := range r.meshes {
		m.destroy()
		delete(r.meshes, g)
	}
	for img, t := range r.textures {
		t.destroy()
		delete(r.textures, img)
	}
	for _, sm := range r.shadowMaps {
		if sm != nil {
			sm.Destroy()
		}
	}
	r.shadowMaps = nil
	if r.noShadow != nil {
		r.noShadow.Destroy()
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.postVAO != 0 {
		gl.DeleteVertexArrays(1, &r.postVAO)
	}
	for _, fb := range []*framebuffer.Framebuffer{r.hdr, r.output} {
		if fb != nil {
			fb.Destroy()
		}
	}
	for _, p := range []*shader.Program{r.standard, r.line, r.depth, r.post} {
		if p != nil {
			p.Destroy()
		}
	}
}

// glError drains the OpenGL error queue into one error.
func glError(op string) error {
	var err error
	for i := 0; i < 8; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		err = multierr.Append(err, fmt.Errorf("%s: gl error 0x%x", op, code))
	}
	return err
}
