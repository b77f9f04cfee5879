// Package notify carries trigger state transitions and playback results to
// the user: status lines on stdout and, optionally, desktop notifications
// over the org.freedesktop.Notifications D-Bus interface.
package notify
