package keyboard

import (
	"encoding/binary"
	"strconv"
	"strings"
	"sync"

	"github.com/jmylchreest/taliesin/internal/keys"
)

const (
	evKey         = 1
	keyRelease    = 0
	keyPress      = 1
	keyAutorepeat = 2

	// btnMisc is the first button code; everything from here up belongs to
	// mice, touchpads, joysticks and tablets.
	btnMisc = 0x100
)

// inputEventSize is the size of struct input_event on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4).
const inputEventSize = 24

// pressedState tracks held keys per device from streams of input events.
// The snapshot is the union over all devices.
type pressedState struct {
	mu      sync.Mutex
	devices map[int]keys.Set
}

func newPressedState() *pressedState {
	return &pressedState{devices: make(map[int]keys.Set)}
}

// apply decodes whole input_event records read from device dev and updates
// its held set. Trailing partial records are ignored, as are pointer buttons
// and codes without a key name.
func (s *pressedState) apply(dev int, buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.devices[dev]
	if !ok {
		held = keys.NewSet()
		s.devices[dev] = held
	}

	for i := 0; i+inputEventSize <= len(buf); i += inputEventSize {
		evType := binary.LittleEndian.Uint16(buf[i+16:])
		evCode := binary.LittleEndian.Uint16(buf[i+18:])
		evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

		if evType != evKey || evCode >= btnMisc || !keys.Known(keys.Key(evCode)) {
			continue
		}

		switch evValue {
		case keyPress, keyAutorepeat:
			held.Add(keys.Key(evCode))
		case keyRelease:
			held.Remove(keys.Key(evCode))
		}
	}
}

// drop forgets the keys held on one device, used when it goes away
// mid-press. Keys held on other devices are kept.
func (s *pressedState) drop(dev int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.devices, dev)
}

func (s *pressedState) snapshot() keys.Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := keys.NewSet()
	for _, held := range s.devices {
		for k := range held {
			out.Add(k)
		}
	}
	return out
}

// letterKeys must all be advertised by a device for it to count as a keyboard.
var letterKeys = []keys.Key{keys.A, keys.Q, keys.Z, keys.M, keys.P}

// hasKeyboardCaps parses a sysfs capabilities/key bitmap and reports whether
// it advertises the letter keys. The bitmap is space-separated hex words,
// most significant first; each word holds wordBits codes.
func hasKeyboardCaps(caps string, wordBits int) bool {
	words := strings.Fields(caps)
	if len(words) == 0 {
		return false
	}

	for _, k := range letterKeys {
		idx := len(words) - 1 - int(k)/wordBits
		if idx < 0 {
			return false
		}
		word, err := strconv.ParseUint(words[idx], 16, 64)
		if err != nil {
			return false
		}
		if word&(1<<(uint(k)%uint(wordBits))) == 0 {
			return false
		}
	}
	return true
}
