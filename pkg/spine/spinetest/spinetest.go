// Package spinetest builds skeleton graphs with the native spine-c layout in
// Go memory, and a Runtime that projects them, so code built on package
// spine can be tested without linking the native library.
package spinetest

import (
	"testing"
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine"
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// Affine is a bone world transform.
type Affine struct {
	A, B, C, D, X, Y float32
}

// Identity leaves vertices unchanged.
var Identity = Affine{A: 1, D: 1}

func cstr(s string) unsafe.Pointer {
	b := append([]byte(s), 0)
	return unsafe.Pointer(&b[0])
}

// Skeleton is a native-layout spSkeleton under construction.
type Skeleton struct {
	native    abi.Skeleton
	bones     []unsafe.Pointer
	slots     []unsafe.Pointer
	drawOrder []unsafe.Pointer
	ordered   bool
}

// NewSkeleton returns an empty skeleton with a white tint.
func NewSkeleton() *Skeleton {
	s := &Skeleton{}
	s.native.Color = abi.Color{R: 1, G: 1, B: 1, A: 1}
	s.native.ScaleX, s.native.ScaleY = 1, 1
	return s
}

// Bone is a native-layout spBone.
type Bone struct {
	native *abi.Bone
}

// AddBone appends a bone. parent may be nil for the root.
func (s *Skeleton) AddBone(name string, parent *Bone, world Affine) *Bone {
	data := &abi.BoneData{Index: int32(len(s.bones)), Name: cstr(name), ScaleX: 1, ScaleY: 1}
	b := &Bone{native: &abi.Bone{
		Data:     unsafe.Pointer(data),
		Skeleton: unsafe.Pointer(&s.native),
		ScaleX:   1,
		ScaleY:   1,
		Active:   1,
	}}
	if parent != nil {
		b.native.Parent = unsafe.Pointer(parent.native)
	} else if len(s.bones) == 0 {
		s.native.Root = unsafe.Pointer(b.native)
	}
	b.SetWorld(world)
	s.bones = append(s.bones, unsafe.Pointer(b.native))
	return b
}

// SetWorld overwrites the bone's world transform, as a pose update would.
func (b *Bone) SetWorld(w Affine) {
	b.native.A, b.native.B, b.native.WorldX = w.A, w.B, w.X
	b.native.C, b.native.D, b.native.WorldY = w.C, w.D, w.Y
}

// Slot is a native-layout spSlot.
type Slot struct {
	native *abi.Slot
	data   *abi.SlotData
	deform []float32
}

// AddSlot appends an empty slot on bone.
func (s *Skeleton) AddSlot(name string, bone *Bone) *Slot {
	data := &abi.SlotData{
		Index: int32(len(s.slots)),
		Name:  cstr(name),
		Color: abi.Color{R: 1, G: 1, B: 1, A: 1},
	}
	sl := &Slot{
		native: &abi.Slot{
			Data:  unsafe.Pointer(data),
			Bone:  unsafe.Pointer(bone.native),
			Color: data.Color,
		},
		data: data,
	}
	data.BoneData = bone.native.Data
	s.slots = append(s.slots, unsafe.Pointer(sl.native))
	return sl
}

// Attachment is any fixture that can be placed in a slot.
type Attachment interface {
	Pointer() unsafe.Pointer
}

// SetAttachment sets the slot's current attachment. nil empties the slot.
func (sl *Slot) SetAttachment(a Attachment) {
	if a == nil {
		sl.native.Attachment = nil
		return
	}
	sl.native.Attachment = a.Pointer()
}

// SetColor sets the slot's current tint.
func (sl *Slot) SetColor(r, g, b, a float32) {
	sl.native.Color = abi.Color{R: r, G: g, B: b, A: a}
}

// SetBlendMode sets the blend mode in the slot's setup data.
func (sl *Slot) SetBlendMode(mode spine.BlendMode) {
	sl.data.BlendMode = abi.BlendMode(mode)
}

// SetDeform installs a deform buffer, replacing mesh vertices during
// projection. nil clears it.
func (sl *Slot) SetDeform(v []float32) {
	sl.deform = append([]float32(nil), v...)
	sl.native.DeformCount = int32(len(sl.deform))
	sl.native.DeformCapacity = int32(cap(sl.deform))
	if len(sl.deform) == 0 {
		sl.native.Deform = nil
		return
	}
	sl.native.Deform = unsafe.Pointer(&sl.deform[0])
}

// Pointer returns the slot's native address.
func (sl *Slot) Pointer() unsafe.Pointer {
	return unsafe.Pointer(sl.native)
}

// SetDrawOrder overrides the draw order, which defaults to setup order.
func (s *Skeleton) SetDrawOrder(order ...*Slot) {
	s.drawOrder = s.drawOrder[:0]
	for _, sl := range order {
		s.drawOrder = append(s.drawOrder, unsafe.Pointer(sl.native))
	}
	s.ordered = true
}

// SetPosition moves the skeleton root.
func (s *Skeleton) SetPosition(x, y float32) {
	s.native.X, s.native.Y = x, y
}

// Pointer syncs the bone and slot arrays and returns the native address.
func (s *Skeleton) Pointer() unsafe.Pointer {
	s.native.BonesCount = int32(len(s.bones))
	s.native.Bones = first(s.bones)
	s.native.SlotsCount = int32(len(s.slots))
	s.native.Slots = first(s.slots)
	if !s.ordered {
		s.drawOrder = append(s.drawOrder[:0], s.slots...)
	}
	s.native.DrawOrder = first(s.drawOrder)
	return unsafe.Pointer(&s.native)
}

// Wrap wraps the skeleton for package spine and releases it when the test
// ends.
func (s *Skeleton) Wrap(tb testing.TB, rt spine.Runtime) *spine.Skeleton {
	tb.Helper()
	sk, err := spine.WrapSkeleton(s.Pointer(), rt)
	if err != nil {
		tb.Fatalf("wrap skeleton: %v", err)
	}
	tb.Cleanup(sk.Release)
	return sk
}

func first(ps []unsafe.Pointer) unsafe.Pointer {
	if len(ps) == 0 {
		return nil
	}
	return unsafe.Pointer(&ps[0])
}
