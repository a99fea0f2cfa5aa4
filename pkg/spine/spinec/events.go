//go:build spinec

package spinec

/*
#include <spine/spine.h>

extern void spinecAnimationListener(spAnimationState* state, spEventType type, spTrackEntry* entry, spEvent* event);

static void spinec_listen(spAnimationState* state) {
	state->listener = spinecAnimationListener;
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// Event is a user event keyed in an animation.
type Event struct {
	Name      string
	Time      float32
	Int       int
	Float     float32
	String    string
	AudioPath string
	Volume    float32
	Balance   float32
}

// listeners maps native animation states to their instance.
var listeners struct {
	sync.Mutex
	m map[unsafe.Pointer]*Instance
}

func listen(state *C.spAnimationState, inst *Instance) {
	listeners.Lock()
	if listeners.m == nil {
		listeners.m = make(map[unsafe.Pointer]*Instance)
	}
	listeners.m[unsafe.Pointer(state)] = inst
	listeners.Unlock()
	C.spinec_listen(state)
}

func unlisten(state *C.spAnimationState) {
	listeners.Lock()
	delete(listeners.m, unsafe.Pointer(state))
	listeners.Unlock()
}

func dispatch(state unsafe.Pointer, typ int, event unsafe.Pointer) {
	if typ != int(C.SP_ANIMATION_EVENT) || event == nil {
		return
	}
	listeners.Lock()
	inst := listeners.m[state]
	listeners.Unlock()
	if inst == nil || inst.onEvent == nil {
		return
	}

	e := (*C.spEvent)(event)
	inst.onEvent(Event{
		Name:      C.GoString(e.data.name),
		Time:      float32(e.time),
		Int:       int(e.intValue),
		Float:     float32(e.floatValue),
		String:    goString(e.stringValue),
		AudioPath: goString(e.data.audioPath),
		Volume:    float32(e.volume),
		Balance:   float32(e.balance),
	})
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}
