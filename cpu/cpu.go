// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"context"
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"SP_INIT":     fmt.Sprintf("0x%02x", SP_INIT),
	"SP":          "R7",
}

// Cpu is the simulation context for the LS-8.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory    // Main memory.
	Register Registers // Register bank, R7 is SP.
	Flags    Flags     // CMP result flags.
	Pc       int       // Program counter.
	Running  bool      // Cleared by HLT or a fault.

	Ticks int // Instructions retired since reset.

	Output Channel    // Destination of PRN and PRA.
	Trace  goio.Writer // If set, receives a trace line before each instruction.
}

// NewCpu creates a new CPU, in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = cpu.Flags.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			val := cpu.Register[byte(reg[1]-'0')]
			strval = fmt.Sprintf("%02X", val)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[REG_SP])
		case "stack":
			val, ok := cpu.Peek()
			if ok {
				strval = fmt.Sprintf("%02X (depth %d)", val, cpu.Depth())
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Zeros memory, registers, flags and PC.
// - Sets SP to SP_INIT.
// - Zeros the tick counter.
// - Rewinds the output channel.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Flags = Flags{}
	cpu.Pc = 0
	cpu.Running = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load copies a memory image to address 0.
// Nothing is written if the image does not fit.
func (cpu *Cpu) Load(data []uint8) (err error) {
	if len(data) > len(cpu.Memory) {
		err = ErrProgramTooLarge
		return
	}

	copy(cpu.Memory[:], data)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(data))
	}

	return
}

// LoadProgram copies a program to memory. Cells of lines that failed to
// parse are left untouched. Nothing is written if the program does not fit.
func (cpu *Cpu) LoadProgram(prog *Program) (err error) {
	if prog.Size() > len(cpu.Memory) {
		err = ErrProgramTooLarge
		return
	}

	for addr, value := range prog.Cells() {
		cpu.Memory[addr] = value
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes, blake2b %x", prog.Size(), prog.Digest())
	}

	return
}

// TraceLine returns PC, the next three bytes, and all registers in hex.
func (cpu *Cpu) TraceLine() (text string) {
	text = fmt.Sprintf("TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.Memory.Peek(cpu.Pc),
		cpu.Memory.Peek(cpu.Pc+1),
		cpu.Memory.Peek(cpu.Pc+2),
	)

	for _, value := range cpu.Register {
		text += fmt.Sprintf(" %02X", value)
	}

	return
}

// Fetch decodes the instruction at PC.
func (cpu *Cpu) Fetch() (code Code, err error) {
	value, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code.Opcode = Opcode(value)
	inst, ok := Lookup(code.Opcode)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	for n := range inst.Operands {
		code.Operands[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
// Any error is an *ErrFault, and halts the CPU.
func (cpu *Cpu) Tick() (err error) {
	var code Code

	pc := cpu.Pc
	defer func() {
		if err != nil {
			cpu.Running = false
			err = &ErrFault{Address: pc, Opcode: code.Opcode, Err: err}
		}
	}()

	if cpu.Trace != nil {
		fmt.Fprintln(cpu.Trace, cpu.TraceLine())
	}

	code, err = cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Run executes instructions until HLT, a fault, or the context is done.
func (cpu *Cpu) Run(ctx context.Context) (err error) {
	cpu.Running = true

	for cpu.Running {
		err = ctx.Err()
		if err != nil {
			cpu.Running = false
			return
		}

		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction at PC.
func (cpu *Cpu) Execute(code Code) (err error) {
	inst, ok := Lookup(code.Opcode)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	a := int(code.Operands[0])
	b := int(code.Operands[1])

	next_pc := cpu.Pc + inst.Width()

	switch inst.Kind {
	case KIND_HALT:
		cpu.Running = false
		next_pc = cpu.Pc
	case KIND_LDI:
		err = cpu.Register.Set(a, code.Operands[1])
	case KIND_LD:
		var addr, value uint8
		addr, err = cpu.Register.Get(b)
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(int(addr))
		if err != nil {
			return
		}
		err = cpu.Register.Set(a, value)
	case KIND_ST:
		var addr, value uint8
		addr, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		value, err = cpu.Register.Get(b)
		if err != nil {
			return
		}
		err = cpu.Memory.Write(int(addr), value)
	case KIND_PRN, KIND_PRA:
		var value uint8
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		if cpu.Output == nil {
			err = ErrChannelInvalid
			return
		}
		if inst.Kind == KIND_PRN {
			err = cpu.Output.Number(value)
		} else {
			err = cpu.Output.Char(value)
		}
	case KIND_ALU:
		err = cpu.Alu(inst.Alu, a, b)
	case KIND_PUSH:
		var value uint8
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		err = cpu.Push(value)
	case KIND_POP:
		var value uint8
		if a >= REGISTER_COUNT {
			err = ErrRegisterInvalid
			return
		}
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		err = cpu.Register.Set(a, value)
	case KIND_CALL:
		if a >= REGISTER_COUNT {
			err = ErrRegisterInvalid
			return
		}
		if next_pc >= MEMORY_SIZE {
			err = ErrAddressRange
			return
		}
		err = cpu.Push(uint8(next_pc))
		if err != nil {
			return
		}
		next_pc = int(cpu.Register[a])
	case KIND_RET:
		var value uint8
		value, err = cpu.Pop()
		next_pc = int(value)
	case KIND_JUMP:
		var target uint8
		target, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		if inst.Cond.Taken(cpu.Flags) {
			next_pc = int(target)
		}
	default:
		err = ErrInstructionInvalid
	}

	if err != nil {
		return
	}

	cpu.Pc = next_pc

	return
}

// Alu performs an ALU operation on registers a and b, storing the result
// in register a. CMP only sets the flags. Unary operations ignore b.
func (cpu *Cpu) Alu(op AluOp, a, b int) (err error) {
	input, err := cpu.Register.Get(a)
	if err != nil {
		return
	}

	var value uint8
	if !op.Unary() {
		value, err = cpu.Register.Get(b)
		if err != nil {
			return
		}
	}

	if op == ALU_OP_CMP {
		cpu.Flags = Compare(input, value)
		return
	}

	output, err := doAlu(op, input, value)
	if err != nil {
		return
	}

	cpu.Register[a] = output

	return
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op AluOp, input uint8, value uint8) (output uint8, err error) {
	switch op {
	case ALU_OP_ADD:
		output = input + value
	case ALU_OP_SUB:
		output = input - value
	case ALU_OP_MUL:
		output = input * value
	case ALU_OP_DIV:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input / value
	case ALU_OP_MOD:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input % value
	case ALU_OP_INC:
		output = input + 1
	case ALU_OP_DEC:
		output = input - 1
	case ALU_OP_AND:
		output = input & value
	case ALU_OP_NOT:
		output = ^input
	case ALU_OP_OR:
		output = input | value
	case ALU_OP_XOR:
		output = input ^ value
	case ALU_OP_SHL:
		output = input << value // shifts of 8 or more give 0
	case ALU_OP_SHR:
		output = input >> value
	default:
		err = ErrUnsupportedOperation
	}

	return
}
