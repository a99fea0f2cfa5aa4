package spinetest

import (
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine"
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// Page is a native-layout spAtlasPage.
type Page struct {
	native *abi.AtlasPage
}

// NewPage returns a page whose rendererObject holds texture.
func NewPage(name string, width, height int, texture uintptr) *Page {
	return &Page{native: &abi.AtlasPage{
		Name:           cstr(name),
		Width:          int32(width),
		Height:         int32(height),
		RendererObject: texture,
	}}
}

// AtlasRegion is a native-layout spAtlasRegion.
type AtlasRegion struct {
	native *abi.AtlasRegion
}

// Region adds an unrotated region covering [u,u2]x[v,v2] of the page.
func (p *Page) Region(name string, u, v, u2, v2 float32) *AtlasRegion {
	w := int32((u2 - u) * float32(p.native.Width))
	h := int32((v2 - v) * float32(p.native.Height))
	return &AtlasRegion{native: &abi.AtlasRegion{
		Name:           cstr(name),
		X:              int32(u * float32(p.native.Width)),
		Y:              int32(v * float32(p.native.Height)),
		Width:          w,
		Height:         h,
		U:              u,
		V:              v,
		U2:             u2,
		V2:             v2,
		OriginalWidth:  w,
		OriginalHeight: h,
		Index:          -1,
		Page:           unsafe.Pointer(p.native),
	}}
}

// Region is a native-layout spRegionAttachment.
type Region struct {
	native *abi.RegionAttachment
}

// NewRegion returns a width x height quad centred on its bone. With a nil
// atlas region the UVs span the unit square and no region is linked.
func NewRegion(name string, width, height float32, atlas *AtlasRegion) *Region {
	r := &Region{native: &abi.RegionAttachment{
		Super:  abi.Attachment{Name: cstr(name), Type: abi.AttachmentRegion, RefCount: 1},
		Path:   cstr(name),
		ScaleX: 1,
		ScaleY: 1,
		Width:  width,
		Height: height,
		Color:  abi.Color{R: 1, G: 1, B: 1, A: 1},
	}}
	hw, hh := width/2, height/2
	// BL, UL, UR, BR, matching spine-c's corner order.
	r.native.Offset = [8]float32{-hw, -hh, -hw, hh, hw, hh, hw, -hh}
	u, v, u2, v2 := float32(0), float32(0), float32(1), float32(1)
	if atlas != nil {
		r.native.RendererObject = unsafe.Pointer(atlas.native)
		u, v, u2, v2 = atlas.native.U, atlas.native.V, atlas.native.U2, atlas.native.V2
	}
	r.native.UVs = [8]float32{u, v2, u, v, u2, v, u2, v2}
	return r
}

// SetColor sets the attachment tint.
func (r *Region) SetColor(cr, cg, cb, ca float32) {
	r.native.Color = abi.Color{R: cr, G: cg, B: cb, A: ca}
}

// Pointer returns the attachment's native address.
func (r *Region) Pointer() unsafe.Pointer {
	return unsafe.Pointer(r.native)
}

// MeshSpec describes an unweighted mesh.
type MeshSpec struct {
	Vertices  []float32 // bone-local x,y pairs
	UVs       []float32 // defaults to zeros
	Triangles []uint16
	Edges     []int32
	Hull      int
	Region    *AtlasRegion
}

// Mesh is a native-layout spMeshAttachment.
type Mesh struct {
	native    *abi.MeshAttachment
	vertices  []float32
	uvs       []float32
	regionUVs []float32
	triangles []uint16
	edges     []int32
}

// NewMesh builds an unweighted mesh attachment from spec.
func NewMesh(name string, spec MeshSpec) *Mesh {
	m := &Mesh{
		vertices:  append([]float32(nil), spec.Vertices...),
		uvs:       make([]float32, len(spec.Vertices)),
		triangles: append([]uint16(nil), spec.Triangles...),
		edges:     append([]int32(nil), spec.Edges...),
	}
	copy(m.uvs, spec.UVs)
	m.regionUVs = append([]float32(nil), m.uvs...)
	m.native = &abi.MeshAttachment{
		Super: abi.VertexAttachment{
			Super:               abi.Attachment{Name: cstr(name), Type: abi.AttachmentMesh, RefCount: 1},
			VerticesCount:       int32(len(m.vertices)),
			Vertices:            firstOf(m.vertices),
			WorldVerticesLength: int32(len(m.vertices)),
		},
		Path:           cstr(name),
		RegionUVs:      firstOf(m.regionUVs),
		UVs:            firstOf(m.uvs),
		TrianglesCount: int32(len(m.triangles)),
		Triangles:      firstOf(m.triangles),
		Color:          abi.Color{R: 1, G: 1, B: 1, A: 1},
		HullLength:     int32(spec.Hull),
		EdgesCount:     int32(len(m.edges)),
		Edges:          firstOf(m.edges),
	}
	m.native.Super.DeformAttachment = unsafe.Pointer(&m.native.Super)
	if spec.Region != nil {
		m.native.RendererObject = unsafe.Pointer(spec.Region.native)
	}
	return m
}

// SetWorldVerticesLength overwrites the native length field without
// touching the buffers, to simulate a corrupt or mismatched handle.
func (m *Mesh) SetWorldVerticesLength(n int32) {
	m.native.Super.WorldVerticesLength = n
}

// SetTrianglesCount overwrites the native triangle count.
func (m *Mesh) SetTrianglesCount(n int32) {
	m.native.TrianglesCount = n
}

// DropUVs nulls the UV buffer pointer, keeping its length field.
func (m *Mesh) DropUVs() {
	m.native.UVs = nil
}

// SetColor sets the attachment tint.
func (m *Mesh) SetColor(cr, cg, cb, ca float32) {
	m.native.Color = abi.Color{R: cr, G: cg, B: cb, A: ca}
}

// Pointer returns the attachment's native address.
func (m *Mesh) Pointer() unsafe.Pointer {
	return unsafe.Pointer(m.native)
}

// Other is a bare spAttachment header carrying an arbitrary type tag.
type Other struct {
	native *abi.Attachment
}

// NewOther returns an attachment header tagged t.
func NewOther(name string, t spine.AttachmentType) *Other {
	return &Other{native: &abi.Attachment{Name: cstr(name), Type: abi.AttachmentType(t), RefCount: 1}}
}

// Pointer returns the attachment's native address.
func (o *Other) Pointer() unsafe.Pointer {
	return unsafe.Pointer(o.native)
}

// SetType overwrites the native type tag.
func (o *Other) SetType(t spine.AttachmentType) {
	o.native.Type = abi.AttachmentType(t)
}

func firstOf[E any](s []E) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
