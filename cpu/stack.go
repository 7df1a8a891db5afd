package cpu

// The stack lives in memory, addressed by SP (R7), and grows down from
// SP_INIT. SP must stay within the address space: a push at SP 0x00 is an
// overflow, a pop at SP 0xff is an underflow.

// Push decrements SP and stores value at the new top of stack.
func (cpu *Cpu) Push(value uint8) (err error) {
	sp := cpu.Register[REG_SP]
	if sp == 0 {
		err = ErrStackOverflow
		return
	}

	sp--
	cpu.Memory[sp] = value
	cpu.Register[REG_SP] = sp

	return
}

// Pop returns the value at the top of stack and increments SP.
func (cpu *Cpu) Pop() (value uint8, err error) {
	sp := cpu.Register[REG_SP]
	if int(sp) == MEMORY_SIZE-1 {
		err = ErrStackUnderflow
		return
	}

	value = cpu.Memory[sp]
	cpu.Register[REG_SP] = sp + 1

	return
}

// Peek returns the value at the top of stack, if the stack holds anything
// above its reset position.
func (cpu *Cpu) Peek() (value uint8, ok bool) {
	sp := cpu.Register[REG_SP]
	if sp >= SP_INIT {
		return
	}

	return cpu.Memory[sp], true
}

// Depth returns the number of bytes pushed below the reset position.
func (cpu *Cpu) Depth() int {
	sp := cpu.Register[REG_SP]
	if sp >= SP_INIT {
		return 0
	}
	return int(SP_INIT - sp)
}
