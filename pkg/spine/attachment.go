package spine

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// AttachmentType is the native spAttachmentType tag.
type AttachmentType int32

const (
	TypeRegion      = AttachmentType(abi.AttachmentRegion)
	TypeBoundingBox = AttachmentType(abi.AttachmentBoundingBox)
	TypeMesh        = AttachmentType(abi.AttachmentMesh)
	TypeLinkedMesh  = AttachmentType(abi.AttachmentLinkedMesh)
	TypePath        = AttachmentType(abi.AttachmentPath)
	TypePoint       = AttachmentType(abi.AttachmentPoint)
	TypeClipping    = AttachmentType(abi.AttachmentClipping)
)

var typeNames = map[AttachmentType]string{
	TypeRegion:      "region",
	TypeBoundingBox: "boundingbox",
	TypeMesh:        "mesh",
	TypeLinkedMesh:  "linkedmesh",
	TypePath:        "path",
	TypePoint:       "point",
	TypeClipping:    "clipping",
}

func (t AttachmentType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Attachment is one of RegionAttachment, MeshAttachment or OtherAttachment.
// Use a type switch to reach the typed accessors.
type Attachment interface {
	Name() string
	Type() AttachmentType
	Ptr() unsafe.Pointer
	Valid() bool

	attachment()
}

// classify reads the native type tag and picks the variant. Tags other
// than region and mesh, including ones added by future runtimes, become
// OtherAttachment.
func classify(p unsafe.Pointer, l lease) (Attachment, error) {
	h, err := newHandle[abi.Attachment](p, l)
	if err != nil {
		return nil, fmt.Errorf("classify attachment: %w", err)
	}
	switch h.get().Type {
	case abi.AttachmentRegion:
		return RegionAttachment{recast[abi.RegionAttachment](h)}, nil
	case abi.AttachmentMesh:
		return MeshAttachment{recast[abi.MeshAttachment](h)}, nil
	default:
		return OtherAttachment{h}, nil
	}
}

// OtherAttachment is any attachment kind without typed accessors (bounding
// boxes, paths, points, clipping, or tags this package does not know).
type OtherAttachment struct {
	handle[abi.Attachment]
}

func (OtherAttachment) attachment() {}

// Name returns the attachment's name.
func (o OtherAttachment) Name() string {
	return abi.GoString(o.get().Name)
}

// Type returns the raw native tag.
func (o OtherAttachment) Type() AttachmentType {
	return AttachmentType(o.get().Type)
}
