package cpu

import (
	"fmt"
)

const (
	REGISTER_COUNT = 8    // General purpose registers, R0 to R7.
	REG_SP         = 7    // Stack pointer register.
	SP_INIT        = 0xf4 // Stack pointer at reset; the stack grows down.
)

// Registers is the register bank.
type Registers [REGISTER_COUNT]uint8

// Get returns the value of a register.
func (reg *Registers) Get(index int) (value uint8, err error) {
	if index < 0 || index >= len(reg) {
		err = ErrRegisterInvalid
		return
	}

	value = reg[index]
	return
}

// Set sets the value of a register.
func (reg *Registers) Set(index int, value uint8) (err error) {
	if index < 0 || index >= len(reg) {
		err = ErrRegisterInvalid
		return
	}

	reg[index] = value
	return
}

// Flags are the condition bits written by CMP.
type Flags struct {
	E bool // Equal
	L bool // Less than
	G bool // Greater than
}

// Compare returns the flags for comparing a against b.
func Compare(a, b uint8) Flags {
	return Flags{
		E: a == b,
		L: a < b,
		G: a > b,
	}
}

// Bits returns the flags in the LS-8 FL register layout, 00000LGE.
func (fl Flags) Bits() (bits uint8) {
	if fl.E {
		bits |= 1 << 0
	}
	if fl.G {
		bits |= 1 << 1
	}
	if fl.L {
		bits |= 1 << 2
	}
	return
}

func (fl Flags) String() string {
	flag := func(set bool, name string) string {
		if set {
			return name
		}
		return "-"
	}
	return fmt.Sprintf("%v%v%v", flag(fl.L, "L"), flag(fl.G, "G"), flag(fl.E, "E"))
}
