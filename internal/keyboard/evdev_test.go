package keyboard

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/taliesin/internal/keys"
)

// inputEvent encodes one input_event record.
func inputEvent(evType, code uint16, value int32) []byte {
	buf := make([]byte, inputEventSize)
	binary.LittleEndian.PutUint16(buf[16:], evType)
	binary.LittleEndian.PutUint16(buf[18:], code)
	binary.LittleEndian.PutUint32(buf[20:], uint32(value))
	return buf
}

func events(records ...[]byte) []byte {
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

func TestPressedState_PressAndRelease(t *testing.T) {
	s := newPressedState()

	s.apply(0, events(
		inputEvent(evKey, uint16(keys.A), keyPress),
		inputEvent(evKey, uint16(keys.LShift), keyPress),
	))
	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.A, keys.LShift)))

	s.apply(0, inputEvent(evKey, uint16(keys.A), keyRelease))
	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.LShift)))
}

func TestPressedState_AutorepeatKeepsKeyHeld(t *testing.T) {
	s := newPressedState()
	s.apply(0, inputEvent(evKey, uint16(keys.Space), keyPress))
	s.apply(0, inputEvent(evKey, uint16(keys.Space), keyAutorepeat))

	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.Space)))
}

func TestPressedState_IgnoresNonKeyEvents(t *testing.T) {
	s := newPressedState()

	const evSyn, evMsc = 0, 4
	s.apply(0, events(
		inputEvent(evMsc, 4, 30),
		inputEvent(evSyn, 0, 0),
	))
	assert.Equal(t, 0, s.snapshot().Len())
}

func TestPressedState_IgnoresPartialRecord(t *testing.T) {
	s := newPressedState()
	buf := inputEvent(evKey, uint16(keys.B), keyPress)

	s.apply(0, buf[:inputEventSize-1])
	assert.Equal(t, 0, s.snapshot().Len())
}

func TestPressedState_SnapshotIsACopy(t *testing.T) {
	s := newPressedState()
	s.apply(0, inputEvent(evKey, uint16(keys.C), keyPress))

	snap := s.snapshot()
	snap.Remove(keys.C)

	assert.True(t, s.snapshot().Contains(keys.C))
}

func TestPressedState_IgnoresPointerButtons(t *testing.T) {
	s := newPressedState()

	const btnLeft, btnTouch = 0x110, 0x14a
	s.apply(0, events(
		inputEvent(evKey, uint16(keys.A), keyPress),
		inputEvent(evKey, btnLeft, keyPress),
		inputEvent(evKey, btnTouch, keyPress),
	))
	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.A)))

	s.apply(0, inputEvent(evKey, btnLeft, keyRelease))
	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.A)))
}

func TestPressedState_IgnoresUnnamedCodes(t *testing.T) {
	s := newPressedState()

	const keyMute = 113
	s.apply(0, inputEvent(evKey, keyMute, keyPress))
	assert.Equal(t, 0, s.snapshot().Len())
}

func TestPressedState_UnionsDevices(t *testing.T) {
	s := newPressedState()
	s.apply(0, inputEvent(evKey, uint16(keys.A), keyPress))
	s.apply(1, inputEvent(evKey, uint16(keys.LShift), keyPress))

	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.A, keys.LShift)))

	// A release on another device does not affect the key held here.
	s.apply(1, inputEvent(evKey, uint16(keys.A), keyRelease))
	assert.True(t, s.snapshot().Contains(keys.A))
}

func TestPressedState_DropKeepsOtherDevices(t *testing.T) {
	s := newPressedState()
	s.apply(0, inputEvent(evKey, uint16(keys.C), keyPress))
	s.apply(1, inputEvent(evKey, uint16(keys.LControl), keyPress))

	s.drop(0)
	assert.True(t, s.snapshot().Equal(keys.NewSet(keys.LControl)))

	s.drop(1)
	assert.Equal(t, 0, s.snapshot().Len())
}

func TestHasKeyboardCaps(t *testing.T) {
	tests := []struct {
		name     string
		caps     string
		wordBits int
		expected bool
	}{
		{
			name:     "full keyboard",
			caps:     "120013 803078f800d001 feffffdfffefffff fffffffffffffffe",
			wordBits: 64,
			expected: true,
		},
		{
			name:     "mouse",
			caps:     "1f0000 0 0 0 0",
			wordBits: 64,
			expected: false,
		},
		{
			name:     "power button",
			caps:     "10000000000000 0",
			wordBits: 64,
			expected: false,
		},
		{
			name:     "32-bit words",
			caps:     "fffffffe",
			wordBits: 32,
			expected: false,
		},
		{
			name:     "32-bit keyboard",
			caps:     "ffffffff fffffffe",
			wordBits: 32,
			expected: true,
		},
		{
			name:     "empty",
			caps:     "",
			wordBits: 64,
			expected: false,
		},
		{
			name:     "garbage",
			caps:     "zz",
			wordBits: 64,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hasKeyboardCaps(tt.caps, tt.wordBits))
		})
	}
}
