// Package renderer draws render.Frame batches with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/engine/shader"
	"github.com/Faultbox/midgard-spine/internal/logger"
	"github.com/Faultbox/midgard-spine/internal/render"
	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	Background    [4]float32
	Premultiplied bool
}

// Renderer owns the GL objects used to draw skeleton frames.
type Renderer struct {
	config Config
	shader *shader.Skeleton

	vao, vbo, ebo uint32
	// Capacities of the GL buffers in elements.
	vboCap, eboCap int

	whiteTex uint32
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{config: cfg}
	var err error
	if r.shader, err = shader.NewSkeleton(); err != nil {
		return nil, err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(render.Stride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.BindVertexArray(0)

	// Untextured attachments sample white.
	gl.GenTextures(1, &r.whiteTex)
	gl.BindTexture(gl.TEXTURE_2D, r.whiteTex)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close frees GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
	}
	r.shader.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw uploads f and issues one draw call per batch.
func (r *Renderer) Draw(f *render.Frame, projection *[16]float32) {
	if len(f.Indices) == 0 {
		return
	}
	gl.BindVertexArray(r.vao)
	r.upload(f)
	r.shader.Use(projection)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, b := range f.Batches {
		tex := uint32(b.Texture)
		if tex == 0 {
			tex = r.whiteTex
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)
		r.blend(b.Blend)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(b.IndexCount), gl.UNSIGNED_INT, uintptr(b.FirstIndex*4))
	}
	gl.BindVertexArray(0)
}

// upload grows the GL buffers when needed and streams the frame into them.
func (r *Renderer) upload(f *render.Frame) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if n := len(f.Vertices); n > r.vboCap {
		r.vboCap = grow(n)
		gl.BufferData(gl.ARRAY_BUFFER, r.vboCap*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(f.Vertices)*4, unsafe.Pointer(&f.Vertices[0]))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if n := len(f.Indices); n > r.eboCap {
		r.eboCap = grow(n)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, r.eboCap*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(f.Indices)*4, unsafe.Pointer(&f.Indices[0]))
}

func grow(n int) int {
	c := 1024
	for c < n {
		c *= 2
	}
	return c
}

// blend sets the GL blend function for a spine blend mode.
func (r *Renderer) blend(mode spine.BlendMode) {
	src := uint32(gl.SRC_ALPHA)
	if r.config.Premultiplied {
		src = gl.ONE
	}
	switch mode {
	case spine.BlendAdditive:
		gl.BlendFunc(src, gl.ONE)
	case spine.BlendMultiply:
		gl.BlendFunc(gl.DST_COLOR, gl.ONE_MINUS_SRC_ALPHA)
	case spine.BlendScreen:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_COLOR)
	default:
		gl.BlendFunc(src, gl.ONE_MINUS_SRC_ALPHA)
	}
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
