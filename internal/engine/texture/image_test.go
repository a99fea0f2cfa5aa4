package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	return img
}

func TestDecodePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, checker()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 2 {
		t.Fatalf("expected 2x2, got %v", img.Rect)
	}
	// Top row first.
	if got := img.NRGBAAt(0, 0); got.R != 255 || got.A != 255 {
		t.Errorf("unexpected top-left pixel %v", got)
	}
	if got := img.NRGBAAt(1, 0); got.G != 255 || got.A != 128 {
		t.Errorf("unexpected top-right pixel %v", got)
	}
}

func TestDecodeBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	opaque := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	opaque.SetNRGBA(2, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := bmp.Encode(f, opaque); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.NRGBAAt(2, 0); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode("/nonexistent/page.png"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Decode(path); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestToNRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})

	out := ToNRGBA(src)
	if out.Rect.Min != (image.Point{}) {
		t.Errorf("expected origin-anchored image, got %v", out.Rect)
	}
	if got := out.NRGBAAt(0, 0); got.R != 255 {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestPremultiply(t *testing.T) {
	pix := Premultiply(checker())

	// Half-transparent green.
	if pix[5] != 128 || pix[7] != 128 {
		t.Errorf("expected (_,128,_,128), got %v", pix[4:8])
	}
	// Fully transparent pixels become zero.
	for i, v := range pix[12:16] {
		if v != 0 {
			t.Errorf("expected zero at %d, got %d", 12+i, v)
		}
	}
}
