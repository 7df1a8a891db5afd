package cpu

const (
	MEMORY_SIZE = 256 // Addressable bytes.
)

// Memory is the flat byte-addressable store.
type Memory [MEMORY_SIZE]uint8

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}

// Read returns the byte at an address.
func (mem *Memory) Read(addr int) (value uint8, err error) {
	if addr < 0 || addr >= len(mem) {
		err = ErrAddressRange
		return
	}

	value = mem[addr]
	return
}

// Write stores a byte at an address.
func (mem *Memory) Write(addr int, value uint8) (err error) {
	if addr < 0 || addr >= len(mem) {
		err = ErrAddressRange
		return
	}

	mem[addr] = value
	return
}

// Peek returns the byte at an address, or 0 if out of range.
func (mem *Memory) Peek(addr int) (value uint8) {
	value, _ = mem.Read(addr)
	return
}
