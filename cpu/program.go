package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"golang.org/x/crypto/blake2b"
)

// Line is one source line of a program and the bytes it places in memory.
type Line struct {
	LineNo  int     // Source line number, from 1.
	Address int     // Memory address of the first byte.
	Text    string  // Source text, without comments.
	Bytes   []uint8 // Bytes placed at Address.
	Err     error   // If set, the line failed to parse and its bytes are not loaded.
}

// Program is a memory image annotated with its source lines.
type Program struct {
	Lines []Line
}

// Debug locates a memory address within a program line.
type Debug struct {
	*Line
	Index int
}

// Debug returns the line that placed the byte at addr. Line is nil if no
// line covers addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, line := range prog.Lines {
		if addr >= line.Address && addr < line.Address+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: addr - line.Address,
			}
			break
		}
	}

	return
}

// Size returns the number of memory bytes the program spans.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size = max(size, line.Address+len(line.Bytes))
	}

	return
}

// Cells yields the address and value of every byte the program loads.
// Bytes of lines that failed to parse are skipped.
func (prog *Program) Cells() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, line := range prog.Lines {
			if line.Err != nil {
				continue
			}
			for n, value := range line.Bytes {
				if !yield(line.Address+n, value) {
					return
				}
			}
		}
	}
}

// Binary returns the program as a memory image. Bytes of lines that failed
// to parse are zero.
func (prog *Program) Binary() (bins []uint8) {
	bins = make([]uint8, prog.Size())
	for addr, value := range prog.Cells() {
		bins[addr] = value
	}

	return
}

// Digest returns the BLAKE2b-256 digest of the memory image.
func (prog *Program) Digest() [32]byte {
	return blake2b.Sum256(prog.Binary())
}

// Errors returns all line errors, joined.
func (prog *Program) Errors() error {
	var errs []error
	for _, line := range prog.Lines {
		if line.Err != nil {
			errs = append(errs, line.Err)
		}
	}

	return errors.Join(errs...)
}

// WriteTo writes the program in the LS-8 text format: one binary byte per
// line, the first byte of each source line annotated with its text.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	write := func(format string, args ...any) {
		if err != nil {
			return
		}
		var count int
		count, err = fmt.Fprintf(w, format, args...)
		n += int64(count)
	}

	for _, line := range prog.Lines {
		for index, value := range line.Bytes {
			switch {
			case line.Err != nil:
				write("%08b # %v\n", 0, line.Err)
			case index == 0 && len(line.Text) != 0:
				write("%08b # %v\n", value, line.Text)
			default:
				write("%08b\n", value)
			}
		}
	}

	return
}
