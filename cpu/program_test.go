package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"
)

func testProgram() *Program {
	return &Program{
		Lines: []Line{
			{LineNo: 1, Address: 0, Text: "LDI R0,8", Bytes: []uint8{0x82, 0, 8}},
			{LineNo: 2, Address: 3, Text: "PRN R0", Bytes: []uint8{0x47, 0}},
			{LineNo: 4, Address: 5, Text: "banana", Bytes: []uint8{0},
				Err: ErrParse{LineNo: 4, Token: "banana"}},
			{LineNo: 5, Address: 6, Text: "HLT", Bytes: []uint8{0x01}},
			{LineNo: 6, Address: 7, Bytes: []uint8{0x55}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Line)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(6)
	assert.NotNil(dbg.Line)
	assert.Equal("HLT", dbg.Text)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(10)
	assert.Nil(dbg.Line)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(-1)
	assert.Nil(dbg.Line)
}

func TestProgram_Image(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(8, prog.Size())

	cells := map[int]uint8{}
	for addr, value := range prog.Cells() {
		cells[addr] = value
	}
	assert.Equal(7, len(cells))
	_, ok := cells[5]
	assert.False(ok)

	binary := prog.Binary()
	assert.Equal([]uint8{0x82, 0, 8, 0x47, 0, 0, 0x01, 0x55}, binary)
	assert.Equal(blake2b.Sum256(binary), prog.Digest())

	var perr ErrParse
	assert.True(errors.As(prog.Errors(), &perr))
	assert.Equal("banana", perr.Token)

	empty := &Program{}
	assert.Equal(0, empty.Size())
	assert.Equal([]uint8{}, empty.Binary())
	assert.NoError(empty.Errors())
}

func TestProgram_WriteTo(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	prog.Lines[2].Err = nil

	buf := &bytes.Buffer{}
	n, err := prog.WriteTo(buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), n)

	expected := "10000010 # LDI R0,8\n" +
		"00000000\n" +
		"00001000\n" +
		"01000111 # PRN R0\n" +
		"00000000\n" +
		"00000000 # banana\n" +
		"00000001 # HLT\n" +
		"01010101\n"
	assert.Equal(expected, buf.String())
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(data []byte) (int, error) {
	return 0, errWrite
}

func TestProgram_WriteTo_Error(t *testing.T) {
	assert := assert.New(t)

	n, err := testProgram().WriteTo(failWriter{})
	assert.ErrorIs(err, errWrite)
	assert.Equal(int64(0), n)
}
