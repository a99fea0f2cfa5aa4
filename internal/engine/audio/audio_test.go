package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestGain(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
	}
	for _, tt := range tests {
		if got := gain(tt.vol); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("gain(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
	if gain(0) > -5 {
		t.Errorf("gain(0) = %f, want a large attenuation", gain(0))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{-2, -1, 1, -1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSetVolume(t *testing.T) {
	p := New()
	if p.Volume() != 1 {
		t.Errorf("default volume = %f, want 1", p.Volume())
	}

	p.SetVolume(0.5)
	if p.Volume() != 0.5 {
		t.Errorf("volume = %f, want 0.5", p.Volume())
	}
	p.SetVolume(2)
	if p.Volume() != 1 {
		t.Errorf("volume = %f, want 1 (clamped)", p.Volume())
	}
	p.SetVolume(-1)
	if p.Volume() != 0 {
		t.Errorf("volume = %f, want 0 (clamped)", p.Volume())
	}
}

func TestPlayBeforeInit(t *testing.T) {
	p := New()
	if err := p.Play("footstep.wav", 1, 0); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestDecodeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footstep.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(1000), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	buf, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if buf.Len() != 1000 {
		t.Errorf("expected 1000 samples, got %d", buf.Len())
	}
	if buf.Format().SampleRate != 22050 {
		t.Errorf("expected sample rate 22050, got %d", buf.Format().SampleRate)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode("/nonexistent/footstep.wav"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "footstep.aiff")
	if err := os.WriteFile(path, []byte("FORM"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Decode(path); err == nil {
		t.Error("expected error for unsupported format")
	}

	bad := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(bad, []byte("not a wav"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Decode(bad); err == nil {
		t.Error("expected error for corrupt WAV")
	}
}
