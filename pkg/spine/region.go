package spine

import (
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// RegionVertexCount is the fixed number of vertices of a region attachment.
const RegionVertexCount = 4

// RegionAttachment is a textured quad.
type RegionAttachment struct {
	handle[abi.RegionAttachment]
}

func (RegionAttachment) attachment() {}

// Name returns the attachment's name.
func (r RegionAttachment) Name() string {
	return abi.GoString(r.get().Super.Name)
}

// Type always returns TypeRegion.
func (r RegionAttachment) Type() AttachmentType {
	return AttachmentType(r.get().Super.Type)
}

// Path returns the image path the attachment was loaded with.
func (r RegionAttachment) Path() string {
	return abi.GoString(r.get().Path)
}

// Color returns the attachment tint.
func (r RegionAttachment) Color() Color {
	return Color(r.get().Color)
}

// HasRegion reports whether an atlas region is linked.
func (r RegionAttachment) HasRegion() bool {
	return r.get().RendererObject != nil
}

// Region returns the linked atlas region. It panics if none is linked.
func (r RegionAttachment) Region() AtlasRegion {
	n := r.get()
	return regionFrom(n.RendererObject, r.lease, abi.GoString(n.Super.Name))
}

// UVs returns the 8 texture coordinates of the quad's corners.
func (r RegionAttachment) UVs() []float32 {
	return r.get().UVs[:]
}

// Offsets returns the 8 bone-local corner coordinates.
func (r RegionAttachment) Offsets() []float32 {
	return r.get().Offset[:]
}

// ComputeWorldVertices writes the quad's 4 world-space corners into out,
// starting at offset and advancing stride floats per vertex. out must hold
// at least offset+3*stride+2 floats; this is not checked.
func (r RegionAttachment) ComputeWorldVertices(bone Bone, out []float32, offset, stride int) {
	rt := r.lease.runtime()
	r.get()
	bone.get()
	rt.RegionWorldVertices(r.Ptr(), bone.Ptr(), out, offset, stride)
}
