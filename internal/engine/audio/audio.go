// Package audio plays the sounds referenced by skeleton events.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/Faultbox/midgard-spine/internal/assets"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned by Play before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Player mixes event sounds. Decoded sounds are cached by path and
// re-decoded when the file changes.
type Player struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	sounds      *assets.Cache[*beep.Buffer]
}

// New creates a player at full volume.
func New() *Player {
	return &Player{
		volume: 1,
		mixer:  &beep.Mixer{},
		sounds: assets.NewCache(Decode),
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	p.sampleRate = DefaultSampleRate
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// SetVolume sets the master volume, clamped to [0, 1].
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clamp(vol, 0, 1)
}

// Volume returns the master volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play starts the sound at path. volume scales the master volume and
// balance pans from -1 (left) to 1 (right).
func (p *Player) Play(path string, volume, balance float64) error {
	p.mu.Lock()
	initialized := p.initialized
	rate := p.sampleRate
	vol := p.volume * clamp(volume, 0, 1)
	p.mu.Unlock()

	if !initialized {
		return ErrNotInitialized
	}

	buf, err := p.sounds.Get(path)
	if err != nil {
		return err
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != rate {
		s = beep.Resample(4, buf.Format().SampleRate, rate, s)
	}
	if balance != 0 {
		s = &effects.Pan{Streamer: s, Pan: clamp(balance, -1, 1)}
	}
	speaker.Lock()
	p.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   gain(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// Decode reads a whole WAV, MP3 or Ogg Vorbis file into memory.
func Decode(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("decoding %s: unsupported format %q", path, ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return buf, nil
}

// gain converts a linear volume to an effects.Volume exponent for base 2.
func gain(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
