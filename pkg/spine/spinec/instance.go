//go:build spinec

package spinec

/*
#include <stdlib.h>
#include <spine/spine.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// Instance is an animated skeleton: a native spSkeleton with its
// spAnimationState.
type Instance struct {
	data     *SkeletonData
	skeleton *C.spSkeleton
	state    *C.spAnimationState
	handle   *spine.Skeleton
	onEvent  func(Event)
}

// NewInstance creates a skeleton in its setup pose.
func NewInstance(data *SkeletonData) (*Instance, error) {
	if data == nil || data.ptr == nil {
		return nil, fmt.Errorf("new instance: %w", spine.ErrNullPointer)
	}
	inst := &Instance{}
	inst.create(data)

	h, err := spine.WrapSkeleton(unsafe.Pointer(inst.skeleton), Runtime{})
	if err != nil {
		inst.destroy()
		return nil, err
	}
	inst.handle = h
	return inst, nil
}

func (i *Instance) create(data *SkeletonData) {
	i.data = data
	i.skeleton = C.spSkeleton_create(data.ptr)
	i.state = C.spAnimationState_create(data.state)
	listen(i.state, i)
	C.spSkeleton_setToSetupPose(i.skeleton)
	C.spSkeleton_updateWorldTransform(i.skeleton)
}

func (i *Instance) destroy() {
	if i.state != nil {
		unlisten(i.state)
		C.spAnimationState_dispose(i.state)
		i.state = nil
	}
	if i.skeleton != nil {
		C.spSkeleton_dispose(i.skeleton)
		i.skeleton = nil
	}
}

// Skeleton returns the typed handle. It stays the same across Reload.
func (i *Instance) Skeleton() *spine.Skeleton {
	return i.handle
}

// Data returns the skeleton data the instance was created from.
func (i *Instance) Data() *SkeletonData {
	return i.data
}

// SetPosition moves the skeleton root.
func (i *Instance) SetPosition(x, y float32) {
	i.skeleton.x = C.float(x)
	i.skeleton.y = C.float(y)
}

// SetSkin switches skins by name.
func (i *Instance) SetSkin(name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	if C.spSkeleton_setSkinByName(i.skeleton, cname) == 0 {
		return fmt.Errorf("skin %q: %w: not found", name, spine.ErrInvalidInput)
	}
	C.spSkeleton_setSlotsToSetupPose(i.skeleton)
	return nil
}

// SetAnimation starts the named animation on track.
func (i *Instance) SetAnimation(track int, name string, loop bool) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	if C.spSkeletonData_findAnimation(i.data.ptr, cname) == nil {
		return fmt.Errorf("animation %q: %w: not found", name, spine.ErrInvalidInput)
	}
	cloop := C.int(0)
	if loop {
		cloop = 1
	}
	C.spAnimationState_setAnimationByName(i.state, C.int(track), cname, cloop)
	return nil
}

// OnEvent sets the function called for animation events fired during
// Update. It runs on the goroutine calling Update.
func (i *Instance) OnEvent(fn func(Event)) {
	i.onEvent = fn
}

// Update advances animations by dt seconds and recomputes world
// transforms. Handles must not be read while Update runs.
func (i *Instance) Update(dt float32) {
	C.spSkeleton_update(i.skeleton, C.float(dt))
	C.spAnimationState_update(i.state, C.float(dt))
	C.spAnimationState_apply(i.state, i.skeleton)
	C.spSkeleton_updateWorldTransform(i.skeleton)
}

// Reload rebuilds the native skeleton from data, keeping the Skeleton
// handle. Handles derived before the call expire. The previous data is
// not disposed.
func (i *Instance) Reload(data *SkeletonData) error {
	if data == nil || data.ptr == nil {
		return fmt.Errorf("reload instance: %w", spine.ErrNullPointer)
	}
	x, y := i.skeleton.x, i.skeleton.y
	i.destroy()
	i.create(data)
	i.skeleton.x, i.skeleton.y = x, y
	return i.handle.Rebind(unsafe.Pointer(i.skeleton))
}

// Dispose releases the handle and frees the native skeleton. The skeleton
// data is not disposed.
func (i *Instance) Dispose() {
	if i.handle != nil {
		i.handle.Release()
	}
	i.destroy()
}
