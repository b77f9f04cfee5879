package keyboard

import (
	"sync"

	"github.com/jmylchreest/taliesin/internal/keys"
)

// Fake replays scripted snapshots. Once the script runs out, the last
// snapshot is repeated.
type Fake struct {
	mu     sync.Mutex
	script []keys.Set
	pos    int
	err    error
	calls  int
}

// NewFake returns a Fake that yields the given snapshots in order.
func NewFake(snapshots ...keys.Set) *Fake {
	return &Fake{script: snapshots}
}

// Push appends snapshots to the script.
func (f *Fake) Push(snapshots ...keys.Set) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script = append(f.script, snapshots...)
}

// Fail makes every following Pressed call return err.
func (f *Fake) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Calls returns how many times Pressed was called.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) Pressed() (keys.Set, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.script) == 0 {
		return keys.NewSet(), nil
	}
	if f.pos >= len(f.script) {
		return f.script[len(f.script)-1].Clone(), nil
	}
	s := f.script[f.pos]
	f.pos++
	return s.Clone(), nil
}

func (f *Fake) Close() error { return nil }
