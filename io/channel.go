// Package io provides the output channels of the LS-8 emulator.
// PRN writes register values to a channel; the Tape channel prints them as
// decimal text lines to an io.Writer.
package io

// Channel defines the interface for all output channels in the LS-8 system.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Print sends a single byte value to the channel.
	Print(value byte) error
}
