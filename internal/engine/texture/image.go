// Package texture decodes atlas page images and uploads them to OpenGL.
package texture

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format (PNG, JPEG, BMP, TIFF or
// WebP) and returns it as non-premultiplied RGBA rows, top row first.
func Decode(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA converts img to *image.NRGBA anchored at the origin.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Premultiply returns RGBA bytes with colour multiplied by alpha, the
// layout expected with premultiplied blending.
func Premultiply(img *image.NRGBA) []byte {
	out := make([]byte, len(img.Pix))
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		out[i] = uint8(uint32(img.Pix[i]) * a / 255)
		out[i+1] = uint8(uint32(img.Pix[i+1]) * a / 255)
		out[i+2] = uint8(uint32(img.Pix[i+2]) * a / 255)
		out[i+3] = uint8(a)
	}
	return out
}
