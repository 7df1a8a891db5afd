package cpu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

const print8 = `# print8.ls8: print the number 8
10000010 # LDI R0,8
00000000

00001000
01000111 # PRN R0
00000000
00000001 # HLT
`

func TestLoader_Parse(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(print8))
	assert.NoError(err)
	assert.NoError(prog.Errors())

	expect := []uint8{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}
	if diff := cmp.Diff(expect, prog.Binary()); diff != "" {
		t.Errorf("binary mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(6, len(prog.Lines))
	assert.Equal(2, prog.Lines[0].LineNo)
	assert.Equal(0, prog.Lines[0].Address)
	assert.Equal("10000010 # LDI R0,8", prog.Lines[0].Text)
	assert.Equal(5, prog.Lines[2].LineNo)
	assert.Equal(2, prog.Lines[2].Address)
}

func TestLoader_Whitespace(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader("\t  00000001   trailing words\n\n   \n   # indented comment\n00000010"))
	assert.NoError(err)
	assert.NoError(prog.Errors())
	assert.Equal([]uint8{0x01, 0x02}, prog.Binary())
}

func TestLoader_Malformed(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"10000010",
		"00000000",
		"banana",
		"01000111",
		"00000000",
		"00000001",
	}, "\n")

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(source))
	assert.NoError(err)

	var perr ErrParse
	if assert.True(errors.As(prog.Errors(), &perr)) {
		assert.Equal(3, perr.LineNo)
		assert.Equal("banana", perr.Token)
	}

	// The address still advances past the bad line.
	assert.Equal(6, prog.Size())
	assert.Equal([]uint8{0x82, 0x00, 0x00, 0x47, 0x00, 0x01}, prog.Binary())

	// The bad cell keeps its prior memory value.
	cp, out := newTestCpu(t)
	cp.Memory[2] = 42
	assert.NoError(cp.LoadProgram(prog))
	assert.Equal(uint8(42), cp.Memory[2])

	assert.NoError(cp.Run(context.Background()))
	assert.Equal("42\n", out.String())
}

func TestLoader_Range(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader("100000000\n2\n-1\n00000001"))
	assert.NoError(err)

	errs := 0
	for _, line := range prog.Lines {
		if line.Err != nil {
			errs++
		}
	}
	assert.Equal(3, errs)
	assert.Equal(4, prog.Size())
}

func TestLoader_TooLarge(t *testing.T) {
	assert := assert.New(t)

	source := strings.Repeat("00000001\n", MEMORY_SIZE+1)

	ld := &Loader{}
	prog, err := ld.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(MEMORY_SIZE+1, prog.Size())

	cp := NewCpu()
	err = cp.LoadProgram(prog)
	assert.ErrorIs(err, ErrProgramTooLarge)
	assert.Equal(Memory{}, cp.Memory)
}
