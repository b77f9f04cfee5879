package notify

import (
	"time"
)

// Kind identifies a state transition or playback outcome.
type Kind int

const (
	// TimerStarted is emitted when a trigger press (re)arms the timer.
	TimerStarted Kind = iota
	// TimerCleared is emitted when a cancel press disarms a running timer.
	TimerCleared
	// Played is emitted when the timer expires and playback is requested.
	Played
	// PlaybackFailed is emitted when a playback attempt could not complete.
	PlaybackFailed
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case TimerStarted:
		return "timer-started"
	case TimerCleared:
		return "timer-cleared"
	case Played:
		return "played"
	case PlaybackFailed:
		return "playback-failed"
	default:
		return "unknown"
	}
}

// Event is one entry on the notification channel.
type Event struct {
	Kind  Kind
	File  string
	Delay time.Duration

	// PlaybackID correlates Played with a later PlaybackFailed.
	PlaybackID string
	Err        error
}

// Sink receives events. Implementations must not block for long; they are
// called from the polling loop.
type Sink interface {
	Notify(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

func (f SinkFunc) Notify(ev Event) { f(ev) }

// Multi fans every event out to each sink in order.
type Multi []Sink

func (m Multi) Notify(ev Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(ev)
		}
	}
}
