package audio

import "errors"

// Playback failure causes. Errors returned by Player wrap one of these.
var (
	ErrSoundNotFound     = errors.New("sound file not found")
	ErrSoundUnreadable   = errors.New("sound file unreadable")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDecode            = errors.New("failed to decode sound")
	ErrNoOutputDevice    = errors.New("no audio output device")
)
