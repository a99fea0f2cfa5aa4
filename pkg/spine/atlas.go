package spine

import (
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// AtlasRegion is a handle to the spAtlasRegion an attachment was loaded
// from. The atlas owns it; this package never allocates or frees one.
type AtlasRegion struct {
	handle[abi.AtlasRegion]
}

// regionFrom follows an attachment's rendererObject link. A missing link
// means the attachment loader never ran for it, which is a setup bug.
func regionFrom(p unsafe.Pointer, l lease, owner string) AtlasRegion {
	if p == nil {
		panic("spine: attachment " + owner + " has no atlas region")
	}
	return AtlasRegion{handle[abi.AtlasRegion]{ptr: (*abi.AtlasRegion)(p), lease: l}}
}

// Name returns the region's name in the atlas.
func (r AtlasRegion) Name() string {
	return abi.GoString(r.get().Name)
}

// UV returns the region's texture coordinates on its page.
func (r AtlasRegion) UV() (u, v, u2, v2 float32) {
	n := r.get()
	return n.U, n.V, n.U2, n.V2
}

// Bounds returns the packed pixel rectangle on the page.
func (r AtlasRegion) Bounds() (x, y, width, height int) {
	n := r.get()
	return int(n.X), int(n.Y), int(n.Width), int(n.Height)
}

// Rotate reports whether the region was packed rotated.
func (r AtlasRegion) Rotate() bool {
	return r.get().Rotate != 0
}

// Degrees returns the packing rotation in degrees.
func (r AtlasRegion) Degrees() int {
	return int(r.get().Degrees)
}

// Page returns the atlas page holding the region.
func (r AtlasRegion) Page() AtlasPage {
	return AtlasPage{mustHandle[abi.AtlasPage](r.get().Page, r.lease, "atlas region page")}
}

// AtlasPage is a handle to a native spAtlasPage.
type AtlasPage struct {
	handle[abi.AtlasPage]
}

// Name returns the page image file name.
func (p AtlasPage) Name() string {
	return abi.GoString(p.get().Name)
}

// Size returns the page dimensions in pixels.
func (p AtlasPage) Size() (width, height int) {
	n := p.get()
	return int(n.Width), int(n.Height)
}

// Texture returns the renderer's texture id stored on the page when it was
// created.
func (p AtlasPage) Texture() uintptr {
	return p.get().RendererObject
}
