package cpu

import (
	"iter"
)

// Disassemble decodes a memory image, yielding the address and code of
// each instruction. Invalid opcodes, instructions with out of range
// registers, and instructions truncated by the end of the image, are
// yielded one byte at a time as data.
func Disassemble(data []uint8) iter.Seq2[int, Code] {
	return func(yield func(addr int, code Code) bool) {
		for addr := 0; addr < len(data); {
			code := Code{Opcode: Opcode(data[addr])}
			inst, ok := Lookup(code.Opcode)
			switch {
			case !ok:
				code.Data = true
			case addr+inst.Width() > len(data):
				code.Data = true
			default:
				copy(code.Operands[:], data[addr+1:addr+inst.Width()])
				code.Data = !code.Valid()
			}

			if !yield(addr, code) {
				return
			}
			addr += code.Width()
		}
	}
}
