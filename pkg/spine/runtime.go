package spine

import "unsafe"

// Runtime is the native engine's vertex transform entry points. The
// pointers are native addresses as returned by Ptr; out is written in place
// and never retained.
type Runtime interface {
	// RegionWorldVertices mirrors spRegionAttachment_computeWorldVertices.
	RegionWorldVertices(attachment, bone unsafe.Pointer, out []float32, offset, stride int)
	// VertexWorldVertices mirrors spVertexAttachment_computeWorldVertices.
	VertexWorldVertices(attachment, slot unsafe.Pointer, start, count int, out []float32, offset, stride int)
}
