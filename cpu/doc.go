// Package cpu implements the LS-8 microprocessor, its program loader and
// its assembler.
//
// The CPU consists of a program counter (PC), eight 8-bit registers (R0-R7,
// with R7 as the stack pointer), 256 bytes of memory, an ALU, and the
// E/L/G comparison flags. Instructions are one opcode byte followed by up
// to two operand bytes, dispatched through a static opcode table.
//
// The loader reads the LS-8 text format: one binary byte per line, with
// '#' comments. The assembler translates mnemonics (LDI R0,8) into that
// format, supporting labels, equates, and compile-time expression
// evaluation.
package cpu
