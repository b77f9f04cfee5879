// Package main is the entry point for taliesin, which plays a sound a set
// time after a key press.
package main

func main() {
	Execute()
}
