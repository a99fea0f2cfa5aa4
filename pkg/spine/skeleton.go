package spine

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// Skeleton is the lease holder for a native spSkeleton. Handles obtained
// through it stay usable until Release or Rebind.
type Skeleton struct {
	native *abi.Skeleton
	owner  *owner
}

// WrapSkeleton wraps a native spSkeleton pointer. rt services the
// world-vertex delegates of every attachment reached from the skeleton.
func WrapSkeleton(p unsafe.Pointer, rt Runtime) (*Skeleton, error) {
	if p == nil {
		return nil, fmt.Errorf("wrap skeleton: %w", ErrNullPointer)
	}
	if rt == nil {
		return nil, fmt.Errorf("wrap skeleton: %w: nil runtime", ErrInvalidInput)
	}
	return &Skeleton{
		native: (*abi.Skeleton)(p),
		owner:  &owner{rt: rt},
	}, nil
}

// Release expires every handle derived from s. Call it before the native
// skeleton is disposed. Release is idempotent.
func (s *Skeleton) Release() {
	if s.owner.released {
		return
	}
	s.owner.gen++
	s.owner.released = true
	s.native = nil
}

// Released reports whether Release has been called.
func (s *Skeleton) Released() bool {
	return s.owner.released
}

// Rebind points s at a new native skeleton (after a reload, for example)
// and expires every handle derived from the previous one.
func (s *Skeleton) Rebind(p unsafe.Pointer) error {
	if s.owner.released {
		return fmt.Errorf("rebind skeleton: %w", ErrStaleHandle)
	}
	if p == nil {
		return fmt.Errorf("rebind skeleton: %w", ErrNullPointer)
	}
	s.owner.gen++
	s.native = (*abi.Skeleton)(p)
	return nil
}

// Generation counts Rebind and Release calls.
func (s *Skeleton) Generation() uint64 {
	return s.owner.gen
}

func (s *Skeleton) get() *abi.Skeleton {
	if s.owner.released {
		panic(ErrStaleHandle)
	}
	return s.native
}

// Ptr returns the native spSkeleton address.
func (s *Skeleton) Ptr() unsafe.Pointer {
	return unsafe.Pointer(s.get())
}

// Position returns the skeleton's root offset.
func (s *Skeleton) Position() (x, y float32) {
	n := s.get()
	return n.X, n.Y
}

// Color returns the skeleton tint.
func (s *Skeleton) Color() Color {
	return Color(s.get().Color)
}

// Classify wraps a native spAttachment pointer reached through s.
func (s *Skeleton) Classify(p unsafe.Pointer) (Attachment, error) {
	s.get()
	return classify(p, s.owner.lease())
}

// BoneCount returns the number of bones.
func (s *Skeleton) BoneCount() int {
	return int(s.get().BonesCount)
}

// Bone returns bone i. It panics if i is out of range.
func (s *Skeleton) Bone(i int) Bone {
	n := s.get()
	p := view[unsafe.Pointer](n.Bones, n.BonesCount)[i]
	return Bone{mustHandle[abi.Bone](p, s.owner.lease(), "bone")}
}

// Bones iterates bones in setup order.
func (s *Skeleton) Bones() iter.Seq[Bone] {
	return func(yield func(Bone) bool) {
		for i := 0; i < s.BoneCount(); i++ {
			if !yield(s.Bone(i)) {
				return
			}
		}
	}
}

// FindBone returns the first bone named name.
func (s *Skeleton) FindBone(name string) (Bone, bool) {
	for b := range s.Bones() {
		if b.Name() == name {
			return b, true
		}
	}
	return Bone{}, false
}

// SlotCount returns the number of slots.
func (s *Skeleton) SlotCount() int {
	return int(s.get().SlotsCount)
}

// Slot returns slot i in setup order. It panics if i is out of range.
func (s *Skeleton) Slot(i int) Slot {
	n := s.get()
	p := view[unsafe.Pointer](n.Slots, n.SlotsCount)[i]
	return Slot{mustHandle[abi.Slot](p, s.owner.lease(), "slot")}
}

// Slots iterates slots in setup order.
func (s *Skeleton) Slots() iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for i := 0; i < s.SlotCount(); i++ {
			if !yield(s.Slot(i)) {
				return
			}
		}
	}
}

// DrawOrder iterates slots back to front as they should be rendered.
func (s *Skeleton) DrawOrder() iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		for i := 0; i < s.SlotCount(); i++ {
			n := s.get()
			p := view[unsafe.Pointer](n.DrawOrder, n.SlotsCount)[i]
			if !yield(Slot{mustHandle[abi.Slot](p, s.owner.lease(), "draw order slot")}) {
				return
			}
		}
	}
}

// FindSlot returns the first slot named name.
func (s *Skeleton) FindSlot(name string) (Slot, bool) {
	for sl := range s.Slots() {
		if sl.Name() == name {
			return sl, true
		}
	}
	return Slot{}, false
}
