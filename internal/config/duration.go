package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a time.Duration that can be unmarshaled from config files.
// Supports integer milliseconds ("1500", 1500) as well as duration strings
// like "1.5s" or "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML and YAML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := ParseMillis(string(text))
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Duration(d).Milliseconds(), 10)), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// ParseMillis parses a non-negative number of milliseconds. Go duration
// strings are accepted too; negative values are rejected.
func ParseMillis(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if ms, err := strconv.ParseUint(s, 10, 63); err == nil {
		if ms > uint64(maxMillis) {
			return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidNumber, s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q must be milliseconds or a duration like '500ms', '2s'", ErrInvalidNumber, s)
	}
	if dur < 0 {
		return 0, fmt.Errorf("%w: %q must not be negative", ErrInvalidNumber, s)
	}
	return dur, nil
}

// maxMillis is the largest millisecond count representable as a time.Duration.
const maxMillis = int64(1<<63-1) / int64(time.Millisecond)
