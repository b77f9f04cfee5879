// Package keyboard provides the pressed-key snapshot source polled by the
// trigger loop.
package keyboard

import (
	"errors"

	"github.com/jmylchreest/taliesin/internal/keys"
)

var (
	// ErrUnsupported is returned by Open on platforms without a reader.
	ErrUnsupported = errors.New("keyboard state is not supported on this platform")
	// ErrNoKeyboards is returned when no keyboard device could be opened.
	ErrNoKeyboards = errors.New("no keyboard devices found (is user in 'input' group?)")
)

// Source yields the set of currently pressed keys. Pressed must not block.
type Source interface {
	Pressed() (keys.Set, error)
	Close() error
}
