// Package trigger implements the debounced key-press timer and the polling
// loop that drives it.
//
// The timer is edge-triggered on coarse snapshot changes: whenever the set of
// pressed keys differs from the previous poll and contains a trigger key, the
// countdown (re)starts, provided the running countdown has already exceeded
// the ignore duration. A cancel key in a changed snapshot disarms a running
// countdown. When the countdown reaches the delay, playback is requested and
// the timer is disabled again.
package trigger
