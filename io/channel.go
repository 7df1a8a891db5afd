// Package io provides the output channels of the LS-8 emulator.
// The CPU prints register values through a Channel, either as decimal
// numbers (PRN) or as raw characters (PRA).
package io

// Channel defines the interface for CPU output channels.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Number writes a value as a decimal line.
	Number(value uint8) error
	// Char writes a value as a single raw byte.
	Char(value uint8) error
}
