package trigger

import (
	"fmt"
	"time"

	"github.com/jmylchreest/taliesin/internal/config"
	"github.com/jmylchreest/taliesin/internal/keys"
	"github.com/jmylchreest/taliesin/internal/notify"
)

// State is the timer: either disabled or counting with an elapsed time.
type State struct {
	counting bool
	elapsed  time.Duration
}

// Disabled is the idle state.
var Disabled = State{}

// Counting returns a running state at elapsed.
func Counting(elapsed time.Duration) State {
	return State{counting: true, elapsed: elapsed}
}

// IsCounting reports whether a countdown is running.
func (s State) IsCounting() bool { return s.counting }

// Elapsed returns the countdown's elapsed time, 0 when disabled.
func (s State) Elapsed() time.Duration { return s.elapsed }

// exceeds reports whether the timer value is greater than d. A disabled
// timer exceeds every finite duration.
func (s State) exceeds(d time.Duration) bool {
	return !s.counting || s.elapsed > d
}

func (s State) String() string {
	if !s.counting {
		return "disabled"
	}
	return fmt.Sprintf("counting(%dms)", s.elapsed.Milliseconds())
}

// Machine holds the timer state and the previous key snapshot. It is owned by
// a single goroutine.
type Machine struct {
	cfg      *config.Config
	state    State
	previous keys.Set
}

// NewMachine returns a disabled machine with an empty previous snapshot.
func NewMachine(cfg *config.Config) *Machine {
	return &Machine{
		cfg:      cfg,
		previous: keys.NewSet(),
	}
}

// State returns the current timer state.
func (m *Machine) State() State { return m.state }

// Advance adds delta to a running countdown. When the countdown reaches the
// delay it returns a Played event and disables the timer.
func (m *Machine) Advance(delta time.Duration) []notify.Event {
	if !m.state.counting {
		return nil
	}

	m.state.elapsed += delta
	if m.state.elapsed < m.cfg.Delay {
		return nil
	}

	m.state = Disabled
	return []notify.Event{{Kind: notify.Played, File: m.cfg.File}}
}

// Observe applies a key snapshot. Only a snapshot that differs from the
// previous one can change the state; a trigger key takes priority over a
// cancel key.
func (m *Machine) Observe(snapshot keys.Set) []notify.Event {
	defer func() { m.previous = snapshot }()

	if snapshot.Equal(m.previous) {
		return nil
	}

	switch {
	case m.state.exceeds(m.cfg.IgnoreDuration) && snapshot.ContainsAny(m.cfg.Keys):
		m.state = Counting(0)
		return []notify.Event{{Kind: notify.TimerStarted, File: m.cfg.File, Delay: m.cfg.Delay}}

	case m.state.counting && snapshot.ContainsAny(m.cfg.CancelKeys):
		m.state = Disabled
		return []notify.Event{{Kind: notify.TimerCleared, File: m.cfg.File}}
	}

	return nil
}

// Step runs Advance then Observe.
func (m *Machine) Step(delta time.Duration, snapshot keys.Set) []notify.Event {
	events := m.Advance(delta)
	return append(events, m.Observe(snapshot)...)
}
