package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/texture"
)

// gpuMesh is an uploaded geometry.
type gpuMesh struct {
	vao     uint32
	vbo     uint32
	ebo     uint32
	count   int32
	mode    uint32
	indexed bool
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
}

func (m *gpuMesh) destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
}

// mesh returns the GPU copy of g, uploading it on first use.
func (r *Renderer) mesh(g *geometry.Geometry) *gpuMesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}
	m := uploadMesh(g)
	r.meshes[g] = m
	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(g.Vertices)),
		zap.Int("triangles", g.TriangleCount()),
	)
	return m
}

func uploadMesh(g *geometry.Geometry) *gpuMesh {
	m := &gpuMesh{mode: gl.TRIANGLES}
	if g.Primitive == geometry.Lines {
		m.mode = gl.LINES
	}
	if len(g.Vertices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(geometry.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*vertexSize, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(vertexSize)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	// Tangent
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.Vertex{}.Tangent))
	gl.EnableVertexAttribArray(2)
	// TexCoord
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(3)
	// Color
	gl.VertexAttribPointerWithOffset(4, 3, gl.FLOAT, false, stride, unsafe.Offsetof(geometry.Vertex{}.Color))
	gl.EnableVertexAttribArray(4)

	if len(g.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)
		m.count = int32(len(g.Indices))
		m.indexed = true
	} else {
		m.count = int32(len(g.Vertices))
	}

	gl.BindVertexArray(0)
	return m
}

// gpuTexture is an uploaded 2D texture.
type gpuTexture struct {
	id     uint32
	levels int
}

func (t *gpuTexture) destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
	}
}

// texture returns the GPU copy of img, uploading it on first use.
// A nil image binds the 1x1 white texture.
func (r *Renderer) texture(img image.Image, wrapT int32) *gpuTexture {
	if img == nil {
		return &gpuTexture{id: r.white, levels: 1}
	}
	if t, ok := r.textures[img]; ok {
		return t
	}

	rgba := texture.FlipVertical(texture.Fit(texture.ImageToRGBA(img), int(r.maxTex)))
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	t := &gpuTexture{levels: texture.MipLevels(w, h)}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapT)

	r.textures[img] = t
	r.log.Debug("texture uploaded", zap.Int("width", w), zap.Int("height", h))
	return t
}

func uploadWhite() uint32 {
	var id uint32
	pixel := []uint8{255, 255, 255, 255}
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixel[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return id
}

func bindTexture(unit, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}
