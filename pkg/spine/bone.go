package spine

import (
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// Color is an RGBA tint in the 0..1 range.
type Color struct {
	R, G, B, A float32
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Bone is a handle to a native spBone. Region attachments use it as the
// transform context for world-vertex projection.
type Bone struct {
	handle[abi.Bone]
}

// Name returns the bone's setup name.
func (b Bone) Name() string {
	data := (*abi.BoneData)(b.get().Data)
	if data == nil {
		return ""
	}
	return abi.GoString(data.Name)
}

// World returns the bone's world transform as computed by the last pose
// update: x' = a*x + b*y + worldX, y' = c*x + d*y + worldY.
func (b Bone) World() (a, bb, c, d, worldX, worldY float32) {
	n := b.get()
	return n.A, n.B, n.C, n.D, n.WorldX, n.WorldY
}

// Parent returns the parent bone, or false for the root.
func (b Bone) Parent() (Bone, bool) {
	p := b.get().Parent
	if p == nil {
		return Bone{}, false
	}
	return Bone{handle[abi.Bone]{ptr: (*abi.Bone)(p), lease: b.lease}}, true
}

// Active reports whether the bone takes part in the current skin.
func (b Bone) Active() bool {
	return b.get().Active != 0
}
