// Package keys defines key identifiers and sets of pressed keys.
// Identifiers are Linux evdev key codes; names follow the conventional
// spelling used on the command line (A, Key1, LControl, F5, Space, ...).
package keys
