//go:build !linux

package keyboard

import (
	"log/slog"

	"github.com/jmylchreest/taliesin/internal/keys"
)

// Evdev is only available on Linux.
type Evdev struct{}

// Open always fails outside Linux.
func Open(_ *slog.Logger) (*Evdev, error) {
	return nil, ErrUnsupported
}

func (e *Evdev) Pressed() (keys.Set, error) { return nil, ErrUnsupported }
func (e *Evdev) Close() error               { return nil }

// Diagnose always fails outside Linux.
func Diagnose() (string, error) {
	return "", ErrUnsupported
}
