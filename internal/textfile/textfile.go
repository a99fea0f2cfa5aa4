// Package textfile implements the whole-file read the spine-c runtime asks
// its host for when loading atlases and skeleton JSON.
package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/logger"
	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// ErrEmbeddedNUL is returned for content that cannot be handed to C as a
// NUL-terminated string.
var ErrEmbeddedNUL = fmt.Errorf("%w: embedded NUL byte", spine.ErrInvalidInput)

// Read returns the file's bytes followed by one terminating NUL.
func Read(path string) ([]byte, error) {
	if !utf8.ValidString(path) {
		return nil, fmt.Errorf("read %q: %w: path is not valid UTF-8", path, spine.ErrInvalidInput)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return nil, fmt.Errorf("read %s: %w at offset %d", path, ErrEmbeddedNUL, i)
	}
	return append(data, 0), nil
}

// Callback is Read with the native calling convention: on failure it logs
// one line and returns (nil, 0). On success length excludes the NUL.
func Callback(path string) (text []byte, length int) {
	text, err := Read(path)
	if err != nil {
		fields := []zap.Field{zap.String("path", path), zap.Error(err)}
		if errors.Is(err, os.ErrNotExist) {
			fields = append(fields, zap.Bool("missing", true))
		}
		logger.Named("textfile").Error("native file read failed", fields...)
		return nil, 0
	}
	return text, len(text) - 1
}
