package spine

import (
	"fmt"
	"math"
	"unsafe"
)

// maxNative is the largest offset, stride or range bound the native
// routines accept; their parameters are C ints.
const maxNative = math.MaxInt32

// RequiredLen returns the minimum output length for writing vertices
// vertices at offset with the given stride. For non-negative offset and
// stride the result saturates at math.MaxInt instead of overflowing.
func RequiredLen(offset, vertices, stride int) int {
	if vertices <= 0 {
		return offset
	}
	if offset >= 0 && stride > 0 && vertices-1 > (math.MaxInt-2-offset)/stride {
		return math.MaxInt
	}
	return offset + (vertices-1)*stride + 2
}

func checkOut(out []float32, offset, vertices, stride int) error {
	if stride < 2 || stride > maxNative {
		return fmt.Errorf("%w: stride %d outside [2,%d]", ErrInvalidInput, stride, maxNative)
	}
	if offset < 0 || offset > maxNative {
		return fmt.Errorf("%w: offset %d outside [0,%d]", ErrInvalidInput, offset, maxNative)
	}
	if need := RequiredLen(offset, vertices, stride); len(out) < need {
		return fmt.Errorf("%w: need %d floats, have %d", ErrBufferTooSmall, need, len(out))
	}
	return nil
}

// ComputeWorldVerticesChecked is ComputeWorldVertices after validating the
// output buffer.
func (r RegionAttachment) ComputeWorldVerticesChecked(bone Bone, out []float32, offset, stride int) error {
	if !bone.Valid() {
		return fmt.Errorf("region %q: %w: invalid bone", r.Name(), ErrInvalidInput)
	}
	if err := checkOut(out, offset, RegionVertexCount, stride); err != nil {
		return fmt.Errorf("region %q: %w", r.Name(), err)
	}
	r.ComputeWorldVertices(bone, out, offset, stride)
	return nil
}

// ComputeWorldVerticesChecked is ComputeWorldVertices after validating the
// requested range against WorldVerticesLen and the output buffer.
func (m MeshAttachment) ComputeWorldVerticesChecked(slot Slot, start, count int, out []float32, offset, stride int) error {
	if !slot.Valid() {
		return fmt.Errorf("mesh %q: %w: invalid slot", m.Name(), ErrInvalidInput)
	}
	total := m.WorldVerticesLen()
	switch {
	case start < 0 || count < 0:
		return fmt.Errorf("mesh %q: %w: negative range [%d,+%d)", m.Name(), ErrInvalidInput, start, count)
	case start > maxNative || count > maxNative:
		return fmt.Errorf("mesh %q: %w: range [%d,+%d) beyond native int", m.Name(), ErrInvalidInput, start, count)
	case start%2 != 0 || count%2 != 0:
		return fmt.Errorf("mesh %q: %w: odd range [%d,+%d)", m.Name(), ErrInvalidInput, start, count)
	case count > total-start:
		return fmt.Errorf("mesh %q: %w: range [%d,+%d) exceeds %d", m.Name(), ErrInvalidInput, start, count, total)
	}
	if err := checkOut(out, offset, count/2, stride); err != nil {
		return fmt.Errorf("mesh %q: %w", m.Name(), err)
	}
	m.ComputeWorldVertices(slot, start, count, out, offset, stride)
	return nil
}

// Validate checks the mesh's native length fields against limit and
// against the buffers they describe. The unchecked accessors trust those
// fields; call Validate first when the native data is not trusted.
func (m MeshAttachment) Validate(limit int) error {
	n := m.get()
	fields := []struct {
		name string
		n    int32
		p    unsafe.Pointer
	}{
		{"worldVerticesLength/uvs", n.Super.WorldVerticesLength, n.UVs},
		{"worldVerticesLength/regionUVs", n.Super.WorldVerticesLength, n.RegionUVs},
		{"verticesCount", n.Super.VerticesCount, n.Super.Vertices},
		{"bonesCount", n.Super.BonesCount, n.Super.Bones},
		{"trianglesCount", n.TrianglesCount, n.Triangles},
		{"edgesCount", n.EdgesCount, n.Edges},
	}
	for _, f := range fields {
		if f.n < 0 || int(f.n) > limit {
			return fmt.Errorf("mesh %q: %w: %s=%d outside [0,%d]", m.Name(), ErrCorruptHandle, f.name, f.n, limit)
		}
		if f.n > 0 && f.p == nil {
			return fmt.Errorf("mesh %q: %w: %s=%d with null buffer", m.Name(), ErrCorruptHandle, f.name, f.n)
		}
	}
	if n.Super.WorldVerticesLength%2 != 0 {
		return fmt.Errorf("mesh %q: %w: odd worldVerticesLength %d", m.Name(), ErrCorruptHandle, n.Super.WorldVerticesLength)
	}
	if n.TrianglesCount%3 != 0 {
		return fmt.Errorf("mesh %q: %w: trianglesCount %d not a multiple of 3", m.Name(), ErrCorruptHandle, n.TrianglesCount)
	}
	vertices := int(n.Super.WorldVerticesLength / 2)
	for i, idx := range m.Triangles() {
		if int(idx) >= vertices {
			return fmt.Errorf("mesh %q: %w: triangle index %d at %d exceeds %d vertices", m.Name(), ErrCorruptHandle, idx, i, vertices)
		}
	}
	return nil
}
