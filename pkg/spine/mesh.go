package spine

import (
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// MeshAttachment is a deformable, optionally weighted polygon.
type MeshAttachment struct {
	handle[abi.MeshAttachment]
}

func (MeshAttachment) attachment() {}

// Name returns the attachment's name.
func (m MeshAttachment) Name() string {
	return abi.GoString(m.get().Super.Super.Name)
}

// Type always returns TypeMesh.
func (m MeshAttachment) Type() AttachmentType {
	return AttachmentType(m.get().Super.Super.Type)
}

// Path returns the image path the attachment was loaded with.
func (m MeshAttachment) Path() string {
	return abi.GoString(m.get().Path)
}

// Color returns the attachment tint.
func (m MeshAttachment) Color() Color {
	return Color(m.get().Color)
}

// HasRegion reports whether an atlas region is linked.
func (m MeshAttachment) HasRegion() bool {
	return m.get().RendererObject != nil
}

// Region returns the linked atlas region. It panics if none is linked.
func (m MeshAttachment) Region() AtlasRegion {
	n := m.get()
	return regionFrom(n.RendererObject, m.lease, abi.GoString(n.Super.Super.Name))
}

// WorldVerticesLen is the number of floats (2 per vertex) the mesh
// produces in world space.
func (m MeshAttachment) WorldVerticesLen() int {
	return int(m.get().Super.WorldVerticesLength)
}

// Triangles returns the triangle index list, 3 indices per triangle.
func (m MeshAttachment) Triangles() []uint16 {
	n := m.get()
	return view[uint16](n.Triangles, n.TrianglesCount)
}

// UVs returns the page-space texture coordinates, WorldVerticesLen floats.
func (m MeshAttachment) UVs() []float32 {
	n := m.get()
	return view[float32](n.UVs, n.Super.WorldVerticesLength)
}

// RegionUVs returns the region-local texture coordinates the UVs were
// derived from.
func (m MeshAttachment) RegionUVs() []float32 {
	n := m.get()
	return view[float32](n.RegionUVs, n.Super.WorldVerticesLength)
}

// Vertices returns the raw setup vertices. For weighted meshes these are
// bone-relative entries, not x/y pairs.
func (m MeshAttachment) Vertices() []float32 {
	n := m.get()
	return view[float32](n.Super.Vertices, n.Super.VerticesCount)
}

// Bones returns the weighted-mesh bone table. Empty for unweighted meshes.
func (m MeshAttachment) Bones() []int32 {
	n := m.get()
	return view[int32](n.Super.Bones, n.Super.BonesCount)
}

// Edges returns the nonessential edge list, empty if not exported.
func (m MeshAttachment) Edges() []int32 {
	n := m.get()
	return view[int32](n.Edges, n.EdgesCount)
}

// HullLength is the number of vertices on the hull, times two.
func (m MeshAttachment) HullLength() int {
	return int(m.get().HullLength)
}

// Weighted reports whether vertices are bound to multiple bones.
func (m MeshAttachment) Weighted() bool {
	return m.get().Super.Bones != nil
}

// ComputeWorldVertices transforms count floats of the mesh's world-vertex
// sequence starting at start (both counted in floats, 2 per vertex) into
// out at offset, advancing stride floats per vertex. slot supplies the bone
// and deform state. out is not bounds checked.
func (m MeshAttachment) ComputeWorldVertices(slot Slot, start, count int, out []float32, offset, stride int) {
	rt := m.lease.runtime()
	m.get()
	slot.get()
	rt.VertexWorldVertices(m.Ptr(), slot.Ptr(), start, count, out, offset, stride)
}
