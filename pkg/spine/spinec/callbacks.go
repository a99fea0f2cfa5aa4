//go:build spinec

package spinec

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/logger"
	"github.com/Faultbox/midgard-spine/internal/textfile"
	"github.com/Faultbox/midgard-spine/pkg/spine/internal/abi"
)

// TextureLoader creates renderer textures for atlas pages.
type TextureLoader interface {
	// LoadTexture loads the image at path and returns a non-zero id.
	LoadTexture(path string) (id uintptr, width, height int, err error)
	UnloadTexture(id uintptr)
}

var textures struct {
	sync.Mutex
	loader TextureLoader
}

// SetTextureLoader installs the loader used for atlas pages created after
// the call. A nil loader leaves pages without textures.
func SetTextureLoader(l TextureLoader) {
	textures.Lock()
	textures.loader = l
	textures.Unlock()
}

func textureLoader() TextureLoader {
	textures.Lock()
	defer textures.Unlock()
	return textures.loader
}

//export _spUtil_readFile
func _spUtil_readFile(path *C.char, length *C.int) *C.char {
	text, n := textfile.Callback(C.GoString(path))
	if text == nil {
		return nil
	}
	*length = C.int(n)
	// spine-c releases the buffer with free.
	return (*C.char)(C.CBytes(text))
}

//export _spAtlasPage_createTexture
func _spAtlasPage_createTexture(self unsafe.Pointer, path *C.char) {
	page := (*abi.AtlasPage)(self)
	l := textureLoader()
	if l == nil {
		logger.Named("spinec").Warn("no texture loader; atlas page left untextured",
			zap.String("path", C.GoString(path)))
		return
	}
	id, w, h, err := l.LoadTexture(C.GoString(path))
	if err != nil {
		logger.Named("spinec").Error("loading atlas texture",
			zap.String("path", C.GoString(path)), zap.Error(err))
		return
	}
	page.RendererObject = id
	page.Width = int32(w)
	page.Height = int32(h)
}

//export _spAtlasPage_disposeTexture
func _spAtlasPage_disposeTexture(self unsafe.Pointer) {
	page := (*abi.AtlasPage)(self)
	if page.RendererObject == 0 {
		return
	}
	if l := textureLoader(); l != nil {
		l.UnloadTexture(page.RendererObject)
	}
	page.RendererObject = 0
}

//export spinecAnimationListener
func spinecAnimationListener(state unsafe.Pointer, typ C.int, entry unsafe.Pointer, event unsafe.Pointer) {
	dispatch(state, int(typ), event)
}
