package keys

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidKey is returned when a key name does not resolve to a known key.
var ErrInvalidKey = errors.New("invalid key")

// Key is an evdev key code.
type Key uint16

// Key codes from linux/input-event-codes.h.
const (
	Escape       Key = 1
	Key1         Key = 2
	Key2         Key = 3
	Key3         Key = 4
	Key4         Key = 5
	Key5         Key = 6
	Key6         Key = 7
	Key7         Key = 8
	Key8         Key = 9
	Key9         Key = 10
	Key0         Key = 11
	Minus        Key = 12
	Equal        Key = 13
	Backspace    Key = 14
	Tab          Key = 15
	Q            Key = 16
	W            Key = 17
	E            Key = 18
	R            Key = 19
	T            Key = 20
	Y            Key = 21
	U            Key = 22
	I            Key = 23
	O            Key = 24
	P            Key = 25
	LeftBracket  Key = 26
	RightBracket Key = 27
	Enter        Key = 28
	LControl     Key = 29
	A            Key = 30
	S            Key = 31
	D            Key = 32
	F            Key = 33
	G            Key = 34
	H            Key = 35
	J            Key = 36
	K            Key = 37
	L            Key = 38
	Semicolon    Key = 39
	Apostrophe   Key = 40
	Grave        Key = 41
	LShift       Key = 42
	BackSlash    Key = 43
	Z            Key = 44
	X            Key = 45
	C            Key = 46
	V            Key = 47
	B            Key = 48
	N            Key = 49
	M            Key = 50
	Comma        Key = 51
	Dot          Key = 52
	Slash        Key = 53
	RShift       Key = 54
	NumpadMul    Key = 55
	LAlt         Key = 56
	Space        Key = 57
	CapsLock     Key = 58
	F1           Key = 59
	F2           Key = 60
	F3           Key = 61
	F4           Key = 62
	F5           Key = 63
	F6           Key = 64
	F7           Key = 65
	F8           Key = 66
	F9           Key = 67
	F10          Key = 68
	NumLock      Key = 69
	ScrollLock   Key = 70
	Numpad7      Key = 71
	Numpad8      Key = 72
	Numpad9      Key = 73
	NumpadSub    Key = 74
	Numpad4      Key = 75
	Numpad5      Key = 76
	Numpad6      Key = 77
	NumpadAdd    Key = 78
	Numpad1      Key = 79
	Numpad2      Key = 80
	Numpad3      Key = 81
	Numpad0      Key = 82
	NumpadDot    Key = 83
	F11          Key = 87
	F12          Key = 88
	NumpadEnter  Key = 96
	RControl     Key = 97
	NumpadDiv    Key = 98
	PrintScreen  Key = 99
	RAlt         Key = 100
	Home         Key = 102
	Up           Key = 103
	PageUp       Key = 104
	Left         Key = 105
	Right        Key = 106
	End          Key = 107
	Down         Key = 108
	PageDown     Key = 109
	Insert       Key = 110
	Delete       Key = 111
	NumpadEquals Key = 117
	Pause        Key = 119
	LMeta        Key = 125
	RMeta        Key = 126
	F13          Key = 183
	F14          Key = 184
	F15          Key = 185
	F16          Key = 186
	F17          Key = 187
	F18          Key = 188
	F19          Key = 189
	F20          Key = 190
)

// names maps canonical key names to codes.
var names = map[string]Key{
	"Escape": Escape, "Space": Space, "Enter": Enter, "Tab": Tab,
	"Backspace": Backspace, "CapsLock": CapsLock, "NumLock": NumLock,
	"ScrollLock": ScrollLock, "PrintScreen": PrintScreen, "Pause": Pause,

	"Key0": Key0, "Key1": Key1, "Key2": Key2, "Key3": Key3, "Key4": Key4,
	"Key5": Key5, "Key6": Key6, "Key7": Key7, "Key8": Key8, "Key9": Key9,

	"A": A, "B": B, "C": C, "D": D, "E": E, "F": F, "G": G, "H": H, "I": I,
	"J": J, "K": K, "L": L, "M": M, "N": N, "O": O, "P": P, "Q": Q, "R": R,
	"S": S, "T": T, "U": U, "V": V, "W": W, "X": X, "Y": Y, "Z": Z,

	"F1": F1, "F2": F2, "F3": F3, "F4": F4, "F5": F5, "F6": F6, "F7": F7,
	"F8": F8, "F9": F9, "F10": F10, "F11": F11, "F12": F12, "F13": F13,
	"F14": F14, "F15": F15, "F16": F16, "F17": F17, "F18": F18, "F19": F19,
	"F20": F20,

	"LControl": LControl, "RControl": RControl,
	"LShift": LShift, "RShift": RShift,
	"LAlt": LAlt, "RAlt": RAlt,
	"LMeta": LMeta, "RMeta": RMeta,

	"Up": Up, "Down": Down, "Left": Left, "Right": Right,
	"Home": Home, "End": End, "PageUp": PageUp, "PageDown": PageDown,
	"Insert": Insert, "Delete": Delete,

	"Numpad0": Numpad0, "Numpad1": Numpad1, "Numpad2": Numpad2,
	"Numpad3": Numpad3, "Numpad4": Numpad4, "Numpad5": Numpad5,
	"Numpad6": Numpad6, "Numpad7": Numpad7, "Numpad8": Numpad8,
	"Numpad9": Numpad9,
	"NumpadSubtract": NumpadSub, "NumpadAdd": NumpadAdd,
	"NumpadDivide": NumpadDiv, "NumpadMultiply": NumpadMul,
	"NumpadEquals": NumpadEquals, "NumpadEnter": NumpadEnter,
	"NumpadDecimal": NumpadDot,

	"Grave": Grave, "Minus": Minus, "Equal": Equal,
	"LeftBracket": LeftBracket, "RightBracket": RightBracket,
	"BackSlash": BackSlash, "Semicolon": Semicolon, "Apostrophe": Apostrophe,
	"Comma": Comma, "Dot": Dot, "Slash": Slash,
}

var (
	byLower = make(map[string]Key, len(names))
	byCode  = make(map[Key]string, len(names))
)

func init() {
	for name, k := range names {
		byLower[strings.ToLower(name)] = k
		byCode[k] = name
	}
}

// Parse resolves a key name. Matching is case-insensitive.
func Parse(name string) (Key, error) {
	k, ok := byLower[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	return k, nil
}

// ParseList resolves every token into a Set. Tokens may themselves hold
// comma-separated names; empty tokens are skipped.
func ParseList(tokens []string) (Set, error) {
	set := NewSet()
	for _, tok := range tokens {
		for _, name := range strings.Split(tok, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			k, err := Parse(name)
			if err != nil {
				return nil, err
			}
			set.Add(k)
		}
	}
	return set, nil
}

// Known reports whether the code has a name.
func Known(k Key) bool {
	_, ok := byCode[k]
	return ok
}

// Names returns every known key name, sorted.
func Names() []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// String returns the canonical name, or the numeric code for unnamed keys.
func (k Key) String() string {
	if name, ok := byCode[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}
