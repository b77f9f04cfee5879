//go:build linux

package keyboard

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jmylchreest/taliesin/internal/keys"
)

const (
	inputDir = "/dev/input"
	sysInput = "/sys/class/input"
)

// Evdev reads key state directly from /dev/input.
// Requires the user to be in the 'input' group.
type Evdev struct {
	logger *slog.Logger
	state  *pressedState
	files  []*os.File

	live    atomic.Int32
	lastErr atomic.Value // error
	once    sync.Once
}

// Open starts a reader goroutine for every keyboard device.
func Open(logger *slog.Logger) (*Evdev, error) {
	if logger == nil {
		logger = slog.Default()
	}

	devices, err := keyboardDevices(sysInput)
	if err != nil {
		return nil, fmt.Errorf("finding keyboards: %w", err)
	}
	if len(devices) == 0 {
		return nil, ErrNoKeyboards
	}

	e := &Evdev{
		logger: logger,
		state:  newPressedState(),
	}

	var openErr error
	for _, name := range devices {
		f, err := os.Open(filepath.Join(inputDir, name))
		if err != nil {
			logger.Debug("skipping keyboard device", "device", name, "error", err)
			openErr = err
			continue
		}
		e.files = append(e.files, f)
	}

	if len(e.files) == 0 {
		if errors.Is(openErr, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: permission denied (run: sudo usermod -aG input $USER, then re-login)", ErrNoKeyboards)
		}
		return nil, fmt.Errorf("%w: %w", ErrNoKeyboards, openErr)
	}

	e.live.Store(int32(len(e.files)))
	for i, f := range e.files {
		go e.readEvents(i, f)
	}

	logger.Debug("keyboard devices opened", "count", len(e.files))
	return e, nil
}

func (e *Evdev) readEvents(dev int, f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		n, err := f.Read(buf)
		if err != nil {
			e.lastErr.Store(fmt.Errorf("reading %s: %w", f.Name(), err))
			e.live.Add(-1)
			e.state.drop(dev)
			e.logger.Debug("keyboard reader stopped", "path", f.Name(), "error", err)
			return
		}
		e.state.apply(dev, buf[:n])
	}
}

// Pressed returns the keys currently held on any keyboard. It fails once every
// device reader has stopped.
func (e *Evdev) Pressed() (keys.Set, error) {
	if e.live.Load() <= 0 {
		err, _ := e.lastErr.Load().(error)
		if err == nil {
			err = ErrNoKeyboards
		}
		return nil, err
	}
	return e.state.snapshot(), nil
}

// Close stops all readers.
func (e *Evdev) Close() error {
	e.once.Do(func() {
		for _, f := range e.files {
			_ = f.Close()
		}
	})
	return nil
}

// keyboardDevices lists the eventN names under sysRoot whose key capability
// bitmap advertises letter keys. Mice, touchpads and power buttons are left out.
func keyboardDevices(sysRoot string) ([]string, error) {
	entries, err := os.ReadDir(sysRoot)
	if err != nil {
		return nil, err
	}

	var devices []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "event") {
			continue
		}
		caps, err := os.ReadFile(filepath.Join(sysRoot, name, "device", "capabilities", "key"))
		if err != nil {
			continue
		}
		if hasKeyboardCaps(string(caps), strconv.IntSize) {
			devices = append(devices, name)
		}
	}
	return devices, nil
}

// Diagnose reports whether a keyboard can be read.
func Diagnose() (string, error) {
	devices, err := keyboardDevices(sysInput)
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(devices) == 0 {
		return "", ErrNoKeyboards
	}

	var readable []string
	for _, name := range devices {
		f, err := os.Open(filepath.Join(inputDir, name))
		if err != nil {
			continue
		}
		_ = f.Close()
		readable = append(readable, name)
	}
	if len(readable) == 0 {
		return "", fmt.Errorf("%w: found %d but none readable (run: sudo usermod -aG input $USER)", ErrNoKeyboards, len(devices))
	}

	return fmt.Sprintf("%d of %d keyboard(s) readable: %s", len(readable), len(devices), strings.Join(readable, ", ")), nil
}
