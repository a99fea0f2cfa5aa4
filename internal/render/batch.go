// Package render turns a posed skeleton into interleaved vertex and index
// buffers grouped into draw batches.
package render

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/logger"
	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// Stride is the number of floats per vertex: x, y, u, v, r, g, b, a.
const Stride = 8

// quadIndices triangulates a region's BL, UL, UR, BR corners.
var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// Batch is a run of indices sharing a texture and blend mode.
type Batch struct {
	Texture    uintptr
	Blend      spine.BlendMode
	FirstIndex int
	IndexCount int
}

// Frame holds the buffers for one skeleton draw. The slices are reused by
// the next Build call.
type Frame struct {
	Vertices []float32
	Indices  []uint32
	Batches  []Batch
	// Skipped counts empty slots and attachments without geometry.
	Skipped int
}

// VertexCount returns the number of vertices in the frame.
func (f *Frame) VertexCount() int {
	return len(f.Vertices) / Stride
}

// Options configures a Builder.
type Options struct {
	// Checked validates meshes and output sizing before every native call.
	Checked bool
	// LengthLimit bounds native length fields when Checked is set.
	LengthLimit int
	// Premultiplied multiplies vertex colour RGB by alpha.
	Premultiplied bool
}

// Builder builds Frames. It is not safe for concurrent use.
type Builder struct {
	opts  Options
	frame Frame
	log   *zap.Logger
}

// NewBuilder creates a builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts, log: logger.Named("render")}
}

// Build walks sk's draw order and fills the builder's frame. The returned
// frame is valid until the next call.
func (b *Builder) Build(sk *spine.Skeleton) (*Frame, error) {
	f := &b.frame
	f.Vertices = f.Vertices[:0]
	f.Indices = f.Indices[:0]
	f.Batches = f.Batches[:0]
	f.Skipped = 0

	tint := sk.Color()
	for slot := range sk.DrawOrder() {
		a, ok := slot.Attachment()
		if !ok {
			f.Skipped++
			continue
		}

		var err error
		switch att := a.(type) {
		case spine.RegionAttachment:
			err = b.region(slot, att, tint)
		case spine.MeshAttachment:
			err = b.mesh(slot, att, tint)
		default:
			f.Skipped++
			b.log.Debug("skipping attachment without geometry",
				zap.String("slot", slot.Name()),
				zap.String("attachment", a.Name()),
				zap.Stringer("type", a.Type()),
			)
		}
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", slot.Name(), err)
		}
	}
	return f, nil
}

func (b *Builder) region(slot spine.Slot, att spine.RegionAttachment, tint spine.Color) error {
	f := &b.frame
	base := len(f.Vertices)
	first := uint32(base / Stride)
	f.Vertices = extend(f.Vertices, spine.RegionVertexCount*Stride)

	if b.opts.Checked {
		if err := att.ComputeWorldVerticesChecked(slot.Bone(), f.Vertices, base, Stride); err != nil {
			return err
		}
	} else {
		att.ComputeWorldVertices(slot.Bone(), f.Vertices, base, Stride)
	}

	b.fill(base, att.UVs(), b.color(tint, slot.Color(), att.Color()))
	for _, idx := range quadIndices {
		f.Indices = append(f.Indices, first+idx)
	}

	var texture uintptr
	if att.HasRegion() {
		texture = att.Region().Page().Texture()
	}
	b.push(texture, slot.BlendMode(), len(quadIndices))
	return nil
}

func (b *Builder) mesh(slot spine.Slot, att spine.MeshAttachment, tint spine.Color) error {
	f := &b.frame
	if b.opts.Checked {
		if err := att.Validate(b.opts.LengthLimit); err != nil {
			return err
		}
	}

	n := att.WorldVerticesLen()
	base := len(f.Vertices)
	first := uint32(base / Stride)
	f.Vertices = extend(f.Vertices, n/2*Stride)

	if b.opts.Checked {
		if err := att.ComputeWorldVerticesChecked(slot, 0, n, f.Vertices, base, Stride); err != nil {
			return err
		}
	} else {
		att.ComputeWorldVertices(slot, 0, n, f.Vertices, base, Stride)
	}

	b.fill(base, att.UVs(), b.color(tint, slot.Color(), att.Color()))
	tris := att.Triangles()
	for _, idx := range tris {
		f.Indices = append(f.Indices, first+uint32(idx))
	}

	var texture uintptr
	if att.HasRegion() {
		texture = att.Region().Page().Texture()
	}
	b.push(texture, slot.BlendMode(), len(tris))
	return nil
}

// fill writes UVs and colour into the vertices starting at base, leaving
// the positions the runtime wrote untouched.
func (b *Builder) fill(base int, uvs []float32, c spine.Color) {
	v := b.frame.Vertices
	for i := 0; i < len(uvs)/2; i++ {
		o := base + i*Stride
		v[o+2], v[o+3] = uvs[2*i], uvs[2*i+1]
		v[o+4], v[o+5], v[o+6], v[o+7] = c.R, c.G, c.B, c.A
	}
}

func (b *Builder) color(skeleton, slot, attachment spine.Color) spine.Color {
	c := skeleton.Mul(slot).Mul(attachment)
	if b.opts.Premultiplied {
		c.R, c.G, c.B = c.R*c.A, c.G*c.A, c.B*c.A
	}
	return c
}

// push extends the last batch when texture and blend mode match.
func (b *Builder) push(texture uintptr, blend spine.BlendMode, count int) {
	if count == 0 {
		return
	}
	f := &b.frame
	if n := len(f.Batches); n > 0 {
		last := &f.Batches[n-1]
		if last.Texture == texture && last.Blend == blend {
			last.IndexCount += count
			return
		}
	}
	f.Batches = append(f.Batches, Batch{
		Texture:    texture,
		Blend:      blend,
		FirstIndex: len(f.Indices) - count,
		IndexCount: count,
	})
}

func extend(s []float32, n int) []float32 {
	s = slices.Grow(s, n)
	return s[:len(s)+n]
}
