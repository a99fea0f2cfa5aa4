package spine_test

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-spine/pkg/spine"
	"github.com/Faultbox/midgard-spine/pkg/spine/spinetest"
)

func TestWrapSkeleton_InvalidInput(t *testing.T) {
	if _, err := spine.WrapSkeleton(nil, &spinetest.Runtime{}); !errors.Is(err, spine.ErrNullPointer) {
		t.Errorf("expected ErrNullPointer, got %v", err)
	}
	fx := spinetest.NewSkeleton()
	if _, err := spine.WrapSkeleton(fx.Pointer(), nil); !errors.Is(err, spine.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil runtime, got %v", err)
	}
}

func TestSkeletonGraph(t *testing.T) {
	fx := spinetest.NewSkeleton()
	root := fx.AddBone("root", nil, spinetest.Identity)
	arm := fx.AddBone("arm", root, spinetest.Affine{A: 1, D: 1, X: 10, Y: 5})
	back := fx.AddSlot("back", root)
	front := fx.AddSlot("front", arm)
	front.SetBlendMode(spine.BlendAdditive)
	front.SetColor(1, 0.5, 0.25, 1)
	fx.SetDrawOrder(front, back)
	fx.SetPosition(3, 4)
	sk := fx.Wrap(t, &spinetest.Runtime{})

	if sk.BoneCount() != 2 || sk.SlotCount() != 2 {
		t.Fatalf("expected 2 bones and 2 slots, got %d and %d", sk.BoneCount(), sk.SlotCount())
	}
	if x, y := sk.Position(); x != 3 || y != 4 {
		t.Errorf("expected position (3,4), got (%f,%f)", x, y)
	}

	var names []string
	for b := range sk.Bones() {
		names = append(names, b.Name())
	}
	if len(names) != 2 || names[0] != "root" || names[1] != "arm" {
		t.Errorf("unexpected bone order %v", names)
	}

	b, ok := sk.FindBone("arm")
	if !ok {
		t.Fatal("bone 'arm' not found")
	}
	parent, ok := b.Parent()
	if !ok {
		t.Fatal("expected 'arm' to have a parent")
	}
	if parent.Name() != "root" {
		t.Errorf("expected parent 'root', got %q", parent.Name())
	}
	if _, ok := parent.Parent(); ok {
		t.Error("expected root to have no parent")
	}
	if _, _, _, _, wx, wy := b.World(); wx != 10 || wy != 5 {
		t.Errorf("expected world (10,5), got (%f,%f)", wx, wy)
	}
	if !b.Active() {
		t.Error("expected bone to be active")
	}
	if _, ok := sk.FindBone("missing"); ok {
		t.Error("expected missing bone lookup to fail")
	}

	names = names[:0]
	for sl := range sk.DrawOrder() {
		names = append(names, sl.Name())
	}
	if len(names) != 2 || names[0] != "front" || names[1] != "back" {
		t.Errorf("unexpected draw order %v", names)
	}

	sl, _ := sk.FindSlot("front")
	if sl.Bone().Name() != "arm" {
		t.Errorf("expected slot bone 'arm', got %q", sl.Bone().Name())
	}
	if sl.BlendMode() != spine.BlendAdditive {
		t.Errorf("expected additive blend, got %v", sl.BlendMode())
	}
	if c := sl.Color(); c.G != 0.5 || c.B != 0.25 {
		t.Errorf("unexpected slot color %+v", c)
	}
}

func TestReleaseExpiresHandles(t *testing.T) {
	_, sk := newSkeleton(t)
	slot := sk.Slot(0)
	bone := slot.Bone()
	if !slot.Valid() || !bone.Valid() {
		t.Fatal("expected live handles before release")
	}

	sk.Release()
	sk.Release()

	if !sk.Released() {
		t.Error("expected skeleton to report released")
	}
	if slot.Valid() || bone.Valid() {
		t.Error("expected handles to be invalid after release")
	}
	r := assertPanics(t, "slot.Name", func() { slot.Name() })
	if err, ok := r.(error); !ok || !errors.Is(err, spine.ErrStaleHandle) {
		t.Errorf("expected ErrStaleHandle panic, got %v", r)
	}
	assertPanics(t, "bone.World", func() { bone.World() })
	assertPanics(t, "skeleton.Slot", func() { sk.Slot(0) })
}

func TestRebindExpiresOldHandles(t *testing.T) {
	_, sk := newSkeleton(t)
	old := sk.Slot(0)

	next := spinetest.NewSkeleton()
	root := next.AddBone("root", nil, spinetest.Identity)
	next.AddSlot("reloaded", root)

	if err := sk.Rebind(next.Pointer()); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if sk.Generation() != 1 {
		t.Errorf("expected generation 1, got %d", sk.Generation())
	}
	assertPanics(t, "stale slot", func() { old.Name() })
	if name := sk.Slot(0).Name(); name != "reloaded" {
		t.Errorf("expected slot 'reloaded', got %q", name)
	}

	if err := sk.Rebind(nil); !errors.Is(err, spine.ErrNullPointer) {
		t.Errorf("expected ErrNullPointer, got %v", err)
	}
	sk.Release()
	if err := sk.Rebind(next.Pointer()); !errors.Is(err, spine.ErrStaleHandle) {
		t.Errorf("expected ErrStaleHandle after release, got %v", err)
	}
}

func TestZeroHandlePanics(t *testing.T) {
	var sl spine.Slot
	if sl.Valid() {
		t.Error("expected zero slot to be invalid")
	}
	assertPanics(t, "zero slot", func() { sl.Name() })
}

func TestSlotDeform(t *testing.T) {
	fx := spinetest.NewSkeleton()
	root := fx.AddBone("root", nil, spinetest.Identity)
	slot := fx.AddSlot("s", root)
	sk := fx.Wrap(t, &spinetest.Runtime{})

	if len(sk.Slot(0).Deform()) != 0 {
		t.Error("expected empty deform")
	}
	slot.SetDeform([]float32{1, 2, 3, 4})
	if got := sk.Slot(0).Deform(); len(got) != 4 || got[3] != 4 {
		t.Errorf("unexpected deform %v", got)
	}
}
