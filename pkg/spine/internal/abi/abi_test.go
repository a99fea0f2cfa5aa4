package abi

import (
	"testing"
	"unsafe"
)

// Offsets of spine-c 3.8 fields on LP64 targets, taken from the C headers.
func TestLayoutLP64(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout table is for 64-bit targets")
	}

	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"spAttachment.type", unsafe.Offsetof(Attachment{}.Type), 8},
		{"sizeof spAttachment", unsafe.Sizeof(Attachment{}), 40},
		{"spVertexAttachment.worldVerticesLength", unsafe.Offsetof(VertexAttachment{}.WorldVerticesLength), 72},
		{"sizeof spVertexAttachment", unsafe.Sizeof(VertexAttachment{}), 96},
		{"spRegionAttachment.rendererObject", unsafe.Offsetof(RegionAttachment{}.RendererObject), 96},
		{"spRegionAttachment.uvs", unsafe.Offsetof(RegionAttachment{}.UVs), 160},
		{"sizeof spRegionAttachment", unsafe.Sizeof(RegionAttachment{}), 192},
		{"spMeshAttachment.rendererObject", unsafe.Offsetof(MeshAttachment{}.RendererObject), 96},
		{"spMeshAttachment.uvs", unsafe.Offsetof(MeshAttachment{}.UVs), 168},
		{"spMeshAttachment.trianglesCount", unsafe.Offsetof(MeshAttachment{}.TrianglesCount), 176},
		{"spMeshAttachment.triangles", unsafe.Offsetof(MeshAttachment{}.Triangles), 184},
		{"sizeof spMeshAttachment", unsafe.Sizeof(MeshAttachment{}), 248},
		{"spSlot.attachment", unsafe.Offsetof(Slot{}.Attachment), 40},
		{"spSlot.deform", unsafe.Offsetof(Slot{}.Deform), 64},
		{"spSkeleton.drawOrder", unsafe.Offsetof(Skeleton{}.DrawOrder), 48},
		{"spAtlasPage.rendererObject", unsafe.Offsetof(AtlasPage{}.RendererObject), 40},
		{"spAtlasRegion.page", unsafe.Offsetof(AtlasRegion{}.Page), 88},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: offset %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestGoString(t *testing.T) {
	b := []byte("slot-name\x00trailing")
	if got := GoString(unsafe.Pointer(&b[0])); got != "slot-name" {
		t.Errorf("expected 'slot-name', got %q", got)
	}
	if got := GoString(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
}
