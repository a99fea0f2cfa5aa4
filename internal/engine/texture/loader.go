package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/assets"
	"github.com/Faultbox/midgard-spine/internal/logger"
)

// Loader creates GL textures for atlas pages. Decoded images are cached so
// a hot reload only decodes pages whose files changed.
type Loader struct {
	premultiply bool
	images      *assets.Cache[*image.NRGBA]
	live        map[uintptr]string
	log         *zap.Logger
}

// NewLoader creates a loader. With premultiply set, uploaded pixels have
// colour multiplied by alpha.
func NewLoader(premultiply bool) *Loader {
	return &Loader{
		premultiply: premultiply,
		images:      assets.NewCache(Decode),
		live:        make(map[uintptr]string),
		log:         logger.Named("texture"),
	}
}

// LoadTexture decodes path and uploads it. The GL context must be current.
func (l *Loader) LoadTexture(path string) (uintptr, int, int, error) {
	img, err := l.images.Get(path)
	if err != nil {
		return 0, 0, 0, err
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, fmt.Errorf("texture %s: empty image", path)
	}

	pix := img.Pix
	if l.premultiply {
		pix = Premultiply(img)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	hits, misses := l.images.Stats()
	l.log.Debug("texture uploaded",
		zap.String("path", path),
		zap.Uint32("id", id),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	l.live[uintptr(id)] = path
	return uintptr(id), w, h, nil
}

// UnloadTexture deletes a texture created by LoadTexture.
func (l *Loader) UnloadTexture(id uintptr) {
	if _, ok := l.live[id]; !ok {
		l.log.Warn("unloading unknown texture", zap.Uint64("id", uint64(id)))
		return
	}
	delete(l.live, id)
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

// Live returns the number of textures not yet unloaded.
func (l *Loader) Live() int {
	return len(l.live)
}
