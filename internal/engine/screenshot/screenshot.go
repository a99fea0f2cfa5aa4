// Package screenshot writes framebuffer captures to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer names and writes captures into a directory.
type Writer struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// NewWriter creates a writer. An empty dir means the working directory.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{Dir: dir, Prefix: prefix, now: time.Now}
}

// FromGL converts bottom-up RGBA rows, as glReadPixels returns them, into a
// top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Write encodes img as PNG and returns the file name used.
func (w *Writer) Write(img image.Image) (string, error) {
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	name := fmt.Sprintf("%s_%s.png", w.Prefix, w.now().Format("2006-01-02_15-04-05.000"))
	if w.Dir != "" {
		name = filepath.Join(w.Dir, name)
	}

	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, f.Close()
}
