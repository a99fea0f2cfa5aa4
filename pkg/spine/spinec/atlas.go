//go:build spinec

package spinec

/*
#include <stdlib.h>
#include <spine/spine.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// ErrLoad reports that spine-c rejected an atlas or skeleton file.
var ErrLoad = errors.New("spinec: load failed")

// Atlas owns a native spAtlas.
type Atlas struct {
	ptr  *C.spAtlas
	path string
}

// LoadAtlas reads a .atlas file. Page images are created through the
// installed TextureLoader.
func LoadAtlas(path string) (*Atlas, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	p := C.spAtlas_createFromFile(cpath, nil)
	if p == nil {
		return nil, fmt.Errorf("atlas %s: %w", path, ErrLoad)
	}
	return &Atlas{ptr: p, path: path}, nil
}

// Path returns the file the atlas was loaded from.
func (a *Atlas) Path() string {
	return a.path
}

// Dispose frees the atlas and its page textures.
func (a *Atlas) Dispose() {
	if a.ptr == nil {
		return
	}
	C.spAtlas_dispose(a.ptr)
	a.ptr = nil
}

// SkeletonData owns native spSkeletonData and its animation state data.
type SkeletonData struct {
	ptr   *C.spSkeletonData
	state *C.spAnimationStateData
	path  string
}

// LoadSkeletonData reads a skeleton exported as JSON (.json) or binary
// (.skel) against atlas, scaling all lengths by scale.
func LoadSkeletonData(atlas *Atlas, path string, scale float32) (*SkeletonData, error) {
	if atlas == nil || atlas.ptr == nil {
		return nil, fmt.Errorf("skeleton %s: %w: nil atlas", path, spine.ErrInvalidInput)
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var (
		data *C.spSkeletonData
		msg  *C.char
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		json := C.spSkeletonJson_create(atlas.ptr)
		json.scale = C.float(scale)
		data = C.spSkeletonJson_readSkeletonDataFile(json, cpath)
		if data == nil {
			msg = json.error
		}
		err := loadError(path, data, msg)
		C.spSkeletonJson_dispose(json)
		if err != nil {
			return nil, err
		}
	case ".skel":
		bin := C.spSkeletonBinary_create(atlas.ptr)
		bin.scale = C.float(scale)
		data = C.spSkeletonBinary_readSkeletonDataFile(bin, cpath)
		if data == nil {
			msg = bin.error
		}
		err := loadError(path, data, msg)
		C.spSkeletonBinary_dispose(bin)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("skeleton %s: %w: unknown extension", path, spine.ErrInvalidInput)
	}

	return &SkeletonData{
		ptr:   data,
		state: C.spAnimationStateData_create(data),
		path:  path,
	}, nil
}

// loadError must run before the loader that owns msg is disposed.
func loadError(path string, data *C.spSkeletonData, msg *C.char) error {
	if data != nil {
		return nil
	}
	if msg != nil {
		return fmt.Errorf("skeleton %s: %w: %s", path, ErrLoad, C.GoString(msg))
	}
	return fmt.Errorf("skeleton %s: %w", path, ErrLoad)
}

// Path returns the file the data was loaded from.
func (d *SkeletonData) Path() string {
	return d.path
}

// Animations lists animation names in file order.
func (d *SkeletonData) Animations() []string {
	anims := unsafe.Slice(d.ptr.animations, d.ptr.animationsCount)
	names := make([]string, len(anims))
	for i, a := range anims {
		names[i] = C.GoString(a.name)
	}
	return names
}

// Skins lists skin names in file order.
func (d *SkeletonData) Skins() []string {
	skins := unsafe.Slice(d.ptr.skins, d.ptr.skinsCount)
	names := make([]string, len(skins))
	for i, s := range skins {
		names[i] = C.GoString(s.name)
	}
	return names
}

// SetMix sets the crossfade duration between two animations.
func (d *SkeletonData) SetMix(from, to string, duration float32) {
	cfrom, cto := C.CString(from), C.CString(to)
	defer C.free(unsafe.Pointer(cfrom))
	defer C.free(unsafe.Pointer(cto))
	C.spAnimationStateData_setMixByName(d.state, cfrom, cto, C.float(duration))
}

// Dispose frees the data. Instances created from it must be disposed
// first.
func (d *SkeletonData) Dispose() {
	if d.ptr == nil {
		return
	}
	C.spAnimationStateData_dispose(d.state)
	C.spSkeletonData_dispose(d.ptr)
	d.ptr, d.state = nil, nil
}
