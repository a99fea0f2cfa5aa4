package spine

import "unsafe"

// view aliases n elements of native memory starting at p. A zero length
// yields an empty slice; a nil p with a non-zero length panics.
func view[E any](p unsafe.Pointer, n int32) []E {
	return unsafe.Slice((*E)(p), n)
}
