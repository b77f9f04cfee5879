// Package audio provides sound file playback for taliesin.
// It uses the beep library to decode WAV, MP3, OGG and FLAC files, caches
// decoded buffers, and invalidates the cache when a file changes on disk.
package audio
