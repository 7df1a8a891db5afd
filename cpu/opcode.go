package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the instruction-identifying byte at the start of each instruction.
type Opcode uint8

// Base instruction set.
const (
	OP_HLT  = Opcode(0b00000001)
	OP_LDI  = Opcode(0b10000010)
	OP_PRN  = Opcode(0b01000111)
	OP_MUL  = Opcode(0b10100010)
	OP_ADD  = Opcode(0b10100000)
	OP_CMP  = Opcode(0b10100111)
	OP_AND  = Opcode(0b10101000)
	OP_OR   = Opcode(0b10101010)
	OP_XOR  = Opcode(0b10101011)
	OP_NOT  = Opcode(0b01101001)
	OP_PUSH = Opcode(0b01000101)
	OP_POP  = Opcode(0b01000110)
	OP_CALL = Opcode(0b01010000)
	OP_RET  = Opcode(0b00010001)
	OP_JMP  = Opcode(0b01010100)
	OP_JEQ  = Opcode(0b01010101)
	OP_JNE  = Opcode(0b01010110)
)

// Memory access, character output, and the remaining ALU and branch
// instructions of the LS-8.
const (
	OP_LD  = Opcode(0b10000011)
	OP_ST  = Opcode(0b10000100)
	OP_PRA = Opcode(0b01001000)
	OP_SUB = Opcode(0b10100001)
	OP_DIV = Opcode(0b10100011)
	OP_MOD = Opcode(0b10100100)
	OP_SHL = Opcode(0b10101100)
	OP_SHR = Opcode(0b10101101)
	OP_INC = Opcode(0b01100101)
	OP_DEC = Opcode(0b01100110)
	OP_JGT = Opcode(0b01010111)
	OP_JLT = Opcode(0b01011000)
	OP_JLE = Opcode(0b01011001)
	OP_JGE = Opcode(0b01011010)
)

// Kind selects the execution handler for an instruction.
//
//go:generate go tool stringer -linecomment -type=Kind
type Kind int

const (
	KIND_HALT  = Kind(iota) // halt
	KIND_LDI                // ldi
	KIND_LD                 // ld
	KIND_ST                 // st
	KIND_PRN                // prn
	KIND_PRA                // pra
	KIND_ALU                // alu
	KIND_PUSH               // push
	KIND_POP                // pop
	KIND_CALL               // call
	KIND_RET                // ret
	KIND_JUMP               // jump
)

// AluOp is an ALU operation type.
//
//go:generate go tool stringer -linecomment -type=AluOp
type AluOp int

const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_MOD = AluOp(4)  // mod
	ALU_OP_INC = AluOp(5)  // inc
	ALU_OP_DEC = AluOp(6)  // dec
	ALU_OP_CMP = AluOp(7)  // cmp
	ALU_OP_AND = AluOp(8)  // and
	ALU_OP_NOT = AluOp(9)  // not
	ALU_OP_OR  = AluOp(10) // or
	ALU_OP_XOR = AluOp(11) // xor
	ALU_OP_SHL = AluOp(12) // shl
	ALU_OP_SHR = AluOp(13) // shr
)

// Unary returns true if the operation only reads its first register.
func (op AluOp) Unary() bool {
	switch op {
	case ALU_OP_INC, ALU_OP_DEC, ALU_OP_NOT:
		return true
	}
	return false
}

// JumpCond is the flag test of a branch instruction.
//
//go:generate go tool stringer -linecomment -type=JumpCond
type JumpCond int

const (
	JUMP_ALWAYS = JumpCond(0) // always
	JUMP_EQ     = JumpCond(1) // eq
	JUMP_NE     = JumpCond(2) // ne
	JUMP_GT     = JumpCond(3) // gt
	JUMP_LT     = JumpCond(4) // lt
	JUMP_GE     = JumpCond(5) // ge
	JUMP_LE     = JumpCond(6) // le
)

// Taken returns true if a branch with this condition is taken under flags.
func (jc JumpCond) Taken(flags Flags) bool {
	switch jc {
	case JUMP_ALWAYS:
		return true
	case JUMP_EQ:
		return flags.E
	case JUMP_NE:
		return !flags.E
	case JUMP_GT:
		return flags.G
	case JUMP_LT:
		return flags.L
	case JUMP_GE:
		return flags.G || flags.E
	case JUMP_LE:
		return flags.L || flags.E
	}
	return false
}

// Instruction describes how one opcode is decoded and executed.
type Instruction struct {
	Opcode   Opcode
	Mnemonic string
	Operands int      // Operand bytes following the opcode.
	Kind     Kind     // Execution handler.
	Alu      AluOp    // For KIND_ALU.
	Cond     JumpCond // For KIND_JUMP.
}

// Width returns the total encoded size, opcode included.
func (inst *Instruction) Width() int {
	return 1 + inst.Operands
}

// Instructions is the full instruction set, in opcode listing order.
var Instructions = []Instruction{
	{OP_HLT, "HLT", 0, KIND_HALT, 0, 0},
	{OP_RET, "RET", 0, KIND_RET, 0, 0},
	{OP_PUSH, "PUSH", 1, KIND_PUSH, 0, 0},
	{OP_POP, "POP", 1, KIND_POP, 0, 0},
	{OP_PRN, "PRN", 1, KIND_PRN, 0, 0},
	{OP_PRA, "PRA", 1, KIND_PRA, 0, 0},
	{OP_CALL, "CALL", 1, KIND_CALL, 0, 0},
	{OP_JMP, "JMP", 1, KIND_JUMP, 0, JUMP_ALWAYS},
	{OP_JEQ, "JEQ", 1, KIND_JUMP, 0, JUMP_EQ},
	{OP_JNE, "JNE", 1, KIND_JUMP, 0, JUMP_NE},
	{OP_JGT, "JGT", 1, KIND_JUMP, 0, JUMP_GT},
	{OP_JLT, "JLT", 1, KIND_JUMP, 0, JUMP_LT},
	{OP_JLE, "JLE", 1, KIND_JUMP, 0, JUMP_LE},
	{OP_JGE, "JGE", 1, KIND_JUMP, 0, JUMP_GE},
	{OP_INC, "INC", 1, KIND_ALU, ALU_OP_INC, 0},
	{OP_DEC, "DEC", 1, KIND_ALU, ALU_OP_DEC, 0},
	{OP_NOT, "NOT", 1, KIND_ALU, ALU_OP_NOT, 0},
	{OP_LDI, "LDI", 2, KIND_LDI, 0, 0},
	{OP_LD, "LD", 2, KIND_LD, 0, 0},
	{OP_ST, "ST", 2, KIND_ST, 0, 0},
	{OP_ADD, "ADD", 2, KIND_ALU, ALU_OP_ADD, 0},
	{OP_SUB, "SUB", 2, KIND_ALU, ALU_OP_SUB, 0},
	{OP_MUL, "MUL", 2, KIND_ALU, ALU_OP_MUL, 0},
	{OP_DIV, "DIV", 2, KIND_ALU, ALU_OP_DIV, 0},
	{OP_MOD, "MOD", 2, KIND_ALU, ALU_OP_MOD, 0},
	{OP_CMP, "CMP", 2, KIND_ALU, ALU_OP_CMP, 0},
	{OP_AND, "AND", 2, KIND_ALU, ALU_OP_AND, 0},
	{OP_OR, "OR", 2, KIND_ALU, ALU_OP_OR, 0},
	{OP_XOR, "XOR", 2, KIND_ALU, ALU_OP_XOR, 0},
	{OP_SHL, "SHL", 2, KIND_ALU, ALU_OP_SHL, 0},
	{OP_SHR, "SHR", 2, KIND_ALU, ALU_OP_SHR, 0},
}

// decodeTable maps every opcode byte to its descriptor; nil means invalid.
var decodeTable [256]*Instruction

// mnemonicMap maps upper-case mnemonics to descriptors.
var mnemonicMap = map[string]*Instruction{}

func init() {
	for n := range Instructions {
		inst := &Instructions[n]
		if decodeTable[inst.Opcode] != nil {
			panic("duplicate opcode " + inst.Mnemonic)
		}
		decodeTable[inst.Opcode] = inst
		mnemonicMap[inst.Mnemonic] = inst
	}
}

// Lookup returns the descriptor for an opcode.
func Lookup(op Opcode) (inst *Instruction, ok bool) {
	inst = decodeTable[op]
	ok = inst != nil
	return
}

// LookupMnemonic returns the descriptor for a (case-insensitive) mnemonic.
func LookupMnemonic(mnemonic string) (inst *Instruction, ok bool) {
	inst, ok = mnemonicMap[strings.ToUpper(mnemonic)]
	return
}

func (op Opcode) String() string {
	inst, ok := Lookup(op)
	if !ok {
		return fmt.Sprintf("Opcode(0b%08b)", uint8(op))
	}
	return inst.Mnemonic
}

// Code is one decoded instruction: the opcode and its operand bytes.
type Code struct {
	Opcode   Opcode
	Operands [2]uint8
	Data     bool // Opcode is a raw data byte, not an instruction.
}

// Width returns the encoded size of the code, or 1 for data and invalid
// opcodes.
func (code Code) Width() int {
	inst, ok := Lookup(code.Opcode)
	if !ok || code.Data {
		return 1
	}
	return inst.Width()
}

// Valid returns true if the code is an instruction whose register
// operands are all in range.
func (code Code) Valid() bool {
	inst, ok := Lookup(code.Opcode)
	if !ok || code.Data {
		return false
	}

	for n := range inst.Operands {
		if inst.Kind == KIND_LDI && n == 1 {
			continue
		}
		if code.Operands[n] >= REGISTER_COUNT {
			return false
		}
	}

	return true
}

// Bytes returns the encoded form of the code.
func (code Code) Bytes() []uint8 {
	width := code.Width()
	data := make([]uint8, width)
	data[0] = uint8(code.Opcode)
	copy(data[1:], code.Operands[:width-1])
	return data
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	inst, ok := Lookup(code.Opcode)
	if !ok || code.Data {
		return fmt.Sprintf(".db 0x%02x", uint8(code.Opcode))
	}

	args := make([]string, 0, 2)
	for n := range inst.Operands {
		value := code.Operands[n]
		if inst.Kind == KIND_LDI && n == 1 {
			args = append(args, fmt.Sprintf("%d", value))
		} else {
			args = append(args, fmt.Sprintf("R%d", value))
		}
	}

	if len(args) == 0 {
		return inst.Mnemonic
	}

	return inst.Mnemonic + " " + strings.Join(args, ",")
}
