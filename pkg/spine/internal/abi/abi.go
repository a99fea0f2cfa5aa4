// Package abi mirrors the spine-c 3.8 struct layouts field for field.
//
// The definitions follow `cgo -godefs` output for the public headers, so a
// pointer to native memory can be reinterpreted as one of these types
// without cgo. Any change to the linked spine-c version must be reflected
// here; a layout mismatch is silent memory corruption.
package abi

import "unsafe"

// AttachmentType mirrors spAttachmentType.
type AttachmentType int32

const (
	AttachmentRegion      AttachmentType = 0
	AttachmentBoundingBox AttachmentType = 1
	AttachmentMesh        AttachmentType = 2
	AttachmentLinkedMesh  AttachmentType = 3
	AttachmentPath        AttachmentType = 4
	AttachmentPoint       AttachmentType = 5
	AttachmentClipping    AttachmentType = 6
)

// BlendMode mirrors spBlendMode.
type BlendMode int32

const (
	BlendNormal   BlendMode = 0
	BlendAdditive BlendMode = 1
	BlendMultiply BlendMode = 2
	BlendScreen   BlendMode = 3
)

// Color mirrors spColor.
type Color struct {
	R, G, B, A float32
}

// Attachment mirrors spAttachment, the common header of every attachment.
type Attachment struct {
	Name             unsafe.Pointer // const char*
	Type             AttachmentType
	Vtable           unsafe.Pointer
	RefCount         int32
	AttachmentLoader unsafe.Pointer
}

// VertexAttachment mirrors spVertexAttachment.
type VertexAttachment struct {
	Super               Attachment
	BonesCount          int32
	Bones               unsafe.Pointer // int*
	VerticesCount       int32
	Vertices            unsafe.Pointer // float*
	WorldVerticesLength int32
	DeformAttachment    unsafe.Pointer
	ID                  int32
}

// RegionAttachment mirrors spRegionAttachment.
type RegionAttachment struct {
	Super                Attachment
	Path                 unsafe.Pointer // const char*
	X                    float32
	Y                    float32
	ScaleX               float32
	ScaleY               float32
	Rotation             float32
	Width                float32
	Height               float32
	Color                Color
	RendererObject       unsafe.Pointer // spAtlasRegion* once the loader ran
	RegionOffsetX        int32
	RegionOffsetY        int32
	RegionWidth          int32
	RegionHeight         int32
	RegionOriginalWidth  int32
	RegionOriginalHeight int32
	Offset               [8]float32
	UVs                  [8]float32
}

// MeshAttachment mirrors spMeshAttachment.
type MeshAttachment struct {
	Super                VertexAttachment
	RendererObject       unsafe.Pointer // spAtlasRegion* once the loader ran
	RegionOffsetX        int32
	RegionOffsetY        int32
	RegionWidth          int32
	RegionHeight         int32
	RegionOriginalWidth  int32
	RegionOriginalHeight int32
	RegionU              float32
	RegionV              float32
	RegionU2             float32
	RegionV2             float32
	RegionRotate         int32
	RegionDegrees        int32
	Path                 unsafe.Pointer // const char*
	RegionUVs            unsafe.Pointer // float*
	UVs                  unsafe.Pointer // float*
	TrianglesCount       int32
	Triangles            unsafe.Pointer // unsigned short*
	Color                Color
	HullLength           int32
	ParentMesh           unsafe.Pointer
	EdgesCount           int32
	Edges                unsafe.Pointer // int*
	Width                float32
	Height               float32
}

// AtlasPage mirrors spAtlasPage.
type AtlasPage struct {
	Atlas          unsafe.Pointer
	Name           unsafe.Pointer // const char*
	Format         int32
	MinFilter      int32
	MagFilter      int32
	UWrap          int32
	VWrap          int32
	RendererObject uintptr // texture id chosen by the renderer, not a pointer
	Width          int32
	Height         int32
	Next           unsafe.Pointer
}

// AtlasRegion mirrors spAtlasRegion.
type AtlasRegion struct {
	Name           unsafe.Pointer // const char*
	X              int32
	Y              int32
	Width          int32
	Height         int32
	U              float32
	V              float32
	U2             float32
	V2             float32
	OffsetX        int32
	OffsetY        int32
	OriginalWidth  int32
	OriginalHeight int32
	Index          int32
	Rotate         int32
	Degrees        int32
	Flip           int32
	Splits         unsafe.Pointer
	Pads           unsafe.Pointer
	Page           unsafe.Pointer // spAtlasPage*
	Next           unsafe.Pointer
}

// BoneData mirrors spBoneData.
type BoneData struct {
	Index         int32
	Name          unsafe.Pointer // const char*
	Parent        unsafe.Pointer
	Length        float32
	X             float32
	Y             float32
	Rotation      float32
	ScaleX        float32
	ScaleY        float32
	ShearX        float32
	ShearY        float32
	TransformMode int32
	SkinRequired  int32
}

// Bone mirrors spBone.
type Bone struct {
	Data          unsafe.Pointer // spBoneData*
	Skeleton      unsafe.Pointer
	Parent        unsafe.Pointer // spBone*
	ChildrenCount int32
	Children      unsafe.Pointer // spBone**
	X             float32
	Y             float32
	Rotation      float32
	ScaleX        float32
	ScaleY        float32
	ShearX        float32
	ShearY        float32
	AX            float32
	AY            float32
	ARotation     float32
	AScaleX       float32
	AScaleY       float32
	AShearX       float32
	AShearY       float32
	AppliedValid  int32
	A             float32
	B             float32
	WorldX        float32
	C             float32
	D             float32
	WorldY        float32
	Sorted        int32
	Active        int32
}

// SlotData mirrors spSlotData.
type SlotData struct {
	Index          int32
	Name           unsafe.Pointer // const char*
	BoneData       unsafe.Pointer
	AttachmentName unsafe.Pointer // const char*
	Color          Color
	DarkColor      unsafe.Pointer // spColor*
	BlendMode      BlendMode
}

// Slot mirrors spSlot.
type Slot struct {
	Data            unsafe.Pointer // spSlotData*
	Bone            unsafe.Pointer // spBone*
	Color           Color
	DarkColor       unsafe.Pointer // spColor*
	Attachment      unsafe.Pointer // spAttachment*
	AttachmentState int32
	DeformCapacity  int32
	DeformCount     int32
	Deform          unsafe.Pointer // float*
}

// Skeleton mirrors spSkeleton.
type Skeleton struct {
	Data                      unsafe.Pointer
	BonesCount                int32
	Bones                     unsafe.Pointer // spBone**
	Root                      unsafe.Pointer // spBone*
	SlotsCount                int32
	Slots                     unsafe.Pointer // spSlot**
	DrawOrder                 unsafe.Pointer // spSlot**
	IkConstraintsCount        int32
	IkConstraints             unsafe.Pointer
	TransformConstraintsCount int32
	TransformConstraints      unsafe.Pointer
	PathConstraintsCount      int32
	PathConstraints           unsafe.Pointer
	Skin                      unsafe.Pointer
	Color                     Color
	Time                      float32
	ScaleX                    float32
	ScaleY                    float32
	X                         float32
	Y                         float32
}

// GoString copies a NUL-terminated native string. A nil pointer yields "".
func GoString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}
