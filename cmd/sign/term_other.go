//go:build !linux

package main

// isTerminal reports false, diagnostics are not coloured on this platform.
func isTerminal(fd uintptr) bool {
	return false
}
