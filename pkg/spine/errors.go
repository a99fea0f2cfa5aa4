package spine

import (
	"errors"
	"fmt"
)

// Errors returned (or, for programming errors, panicked) by this package.
var (
	ErrInvalidInput   = errors.New("spine: invalid input")
	ErrNullPointer    = fmt.Errorf("%w: null pointer", ErrInvalidInput)
	ErrBufferTooSmall = errors.New("spine: output buffer too small")
	ErrCorruptHandle  = errors.New("spine: native handle failed validation")
	ErrStaleHandle    = errors.New("spine: handle used after its skeleton was released")
)
