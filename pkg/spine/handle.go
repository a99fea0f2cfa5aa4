package spine

import (
	"fmt"
	"unsafe"
)

// handle is a non-owning, non-null reference to a native struct of type T.
type handle[T any] struct {
	ptr   *T
	lease lease
}

// newHandle wraps p. A nil p is the only rejected input.
func newHandle[T any](p unsafe.Pointer, l lease) (handle[T], error) {
	if p == nil {
		return handle[T]{}, ErrNullPointer
	}
	return handle[T]{ptr: (*T)(p), lease: l}, nil
}

// mustHandle wraps a pointer the native graph guarantees to be set.
func mustHandle[T any](p unsafe.Pointer, l lease, what string) handle[T] {
	h, err := newHandle[T](p, l)
	if err != nil {
		panic(fmt.Sprintf("spine: %s: %v", what, err))
	}
	return h
}

// recast reinterprets h as a handle to U at the same address. Only valid
// when U embeds T as its first field, as the native structs do.
func recast[U, T any](h handle[T]) handle[U] {
	return handle[U]{ptr: (*U)(unsafe.Pointer(h.ptr)), lease: h.lease}
}

func (h handle[T]) get() *T {
	h.lease.check()
	return h.ptr
}

// Ptr returns the native address. It is the handle's identity and the value
// to pass back into native calls.
func (h handle[T]) Ptr() unsafe.Pointer {
	return unsafe.Pointer(h.ptr)
}

// Valid reports whether the handle is set and its skeleton is still alive.
func (h handle[T]) Valid() bool {
	return h.ptr != nil && h.lease.live()
}
