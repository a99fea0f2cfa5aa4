package spinetest

import (
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// Runtime projects unweighted attachments by their bone's world affine
// transform, the same result spine-c produces for them. Weighted meshes are
// not supported.
type Runtime struct {
	RegionCalls int
	VertexCalls int
}

// RegionWorldVertices implements spine.Runtime.
func (r *Runtime) RegionWorldVertices(attachment, bone unsafe.Pointer, out []float32, offset, stride int) {
	r.RegionCalls++
	ra := (*abi.RegionAttachment)(attachment)
	b := (*abi.Bone)(bone)
	for i := 0; i < 4; i++ {
		x, y := ra.Offset[2*i], ra.Offset[2*i+1]
		out[offset] = x*b.A + y*b.B + b.WorldX
		out[offset+1] = x*b.C + y*b.D + b.WorldY
		offset += stride
	}
}

// VertexWorldVertices implements spine.Runtime.
func (r *Runtime) VertexWorldVertices(attachment, slot unsafe.Pointer, start, count int, out []float32, offset, stride int) {
	r.VertexCalls++
	va := (*abi.VertexAttachment)(attachment)
	sl := (*abi.Slot)(slot)
	if va.Bones != nil {
		panic("spinetest: weighted meshes are not supported")
	}
	b := (*abi.Bone)(sl.Bone)
	vertices := unsafe.Slice((*float32)(va.Vertices), va.VerticesCount)
	if sl.DeformCount > 0 {
		vertices = unsafe.Slice((*float32)(sl.Deform), sl.DeformCount)
	}
	for v := start; v < start+count; v += 2 {
		x, y := vertices[v], vertices[v+1]
		out[offset] = x*b.A + y*b.B + b.WorldX
		out[offset+1] = x*b.C + y*b.D + b.WorldY
		offset += stride
	}
}
