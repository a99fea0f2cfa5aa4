//go:build spinec

package spinec

/*
#cgo LDFLAGS: -lspine-c -lm
#include <spine/spine.h>
*/
import "C"

import (
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// Runtime performs world-vertex projection with spine-c.
type Runtime struct{}

var _ spine.Runtime = Runtime{}

// RegionWorldVertices calls spRegionAttachment_computeWorldVertices.
func (Runtime) RegionWorldVertices(attachment, bone unsafe.Pointer, out []float32, offset, stride int) {
	C.spRegionAttachment_computeWorldVertices(
		(*C.spRegionAttachment)(attachment),
		(*C.spBone)(bone),
		(*C.float)(unsafe.Pointer(unsafe.SliceData(out))),
		C.int(offset),
		C.int(stride),
	)
}

// VertexWorldVertices calls spVertexAttachment_computeWorldVertices.
func (Runtime) VertexWorldVertices(attachment, slot unsafe.Pointer, start, count int, out []float32, offset, stride int) {
	C.spVertexAttachment_computeWorldVertices(
		(*C.spVertexAttachment)(attachment),
		(*C.spSlot)(slot),
		C.int(start),
		C.int(count),
		(*C.float)(unsafe.Pointer(unsafe.SliceData(out))),
		C.int(offset),
		C.int(stride),
	)
}
