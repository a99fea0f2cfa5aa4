package spine

import (
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// BlendMode mirrors spBlendMode.
type BlendMode int32

const (
	BlendNormal   BlendMode = BlendMode(abi.BlendNormal)
	BlendAdditive BlendMode = BlendMode(abi.BlendAdditive)
	BlendMultiply BlendMode = BlendMode(abi.BlendMultiply)
	BlendScreen   BlendMode = BlendMode(abi.BlendScreen)
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Slot is a handle to a native spSlot. Mesh attachments use it as the
// transform context for world-vertex projection.
type Slot struct {
	handle[abi.Slot]
}

func (s Slot) data() *abi.SlotData {
	return (*abi.SlotData)(s.get().Data)
}

// Name returns the slot's setup name.
func (s Slot) Name() string {
	if d := s.data(); d != nil {
		return abi.GoString(d.Name)
	}
	return ""
}

// BlendMode returns the slot's blend mode from its setup data.
func (s Slot) BlendMode() BlendMode {
	if d := s.data(); d != nil {
		return BlendMode(d.BlendMode)
	}
	return BlendNormal
}

// Bone returns the bone the slot is attached to.
func (s Slot) Bone() Bone {
	return Bone{mustHandle[abi.Bone](s.get().Bone, s.lease, "slot bone")}
}

// Color returns the slot's current tint.
func (s Slot) Color() Color {
	return Color(s.get().Color)
}

// Attachment classifies the slot's current attachment. It reports false if
// the slot is empty.
func (s Slot) Attachment() (Attachment, bool) {
	p := s.get().Attachment
	if p == nil {
		return nil, false
	}
	a, err := classify(p, s.lease)
	if err != nil {
		return nil, false
	}
	return a, true
}

// Deform returns the slot's deform buffer (deformCount floats). Empty when
// no deform timeline is applied.
func (s Slot) Deform() []float32 {
	n := s.get()
	return view[float32](n.Deform, n.DeformCount)
}
