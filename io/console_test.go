package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Number(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	con := &Console{Output: out}

	assert.NoError(con.Number(17))
	assert.NoError(con.Number(0))
	assert.NoError(con.Number(255))

	assert.Equal("17\n0\n255\n", out.String())
	assert.Equal(3, con.Count)
}

func TestConsole_Char(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	con := &Console{Output: out}

	for _, c := range []byte("Hi!\n") {
		assert.NoError(con.Char(c))
	}

	assert.Equal("Hi!\n", out.String())
	assert.Equal(4, con.Count)
}

func TestConsole_Rewind(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	con := &Console{Output: out}
	con.Number(1)
	con.Rewind()

	assert.Equal(0, con.Count)
	assert.Equal("1\n", out.String())
}

func TestConsole_NoOutput(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}

	assert.ErrorIs(con.Number(1), ErrOutputMissing)
	assert.ErrorIs(con.Char('a'), ErrOutputMissing)
	assert.Equal(0, con.Count)
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestConsole_WriteError(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Output: failWriter{}}

	assert.ErrorIs(con.Number(1), errWrite)
	assert.ErrorIs(con.Char('a'), errWrite)
	assert.Equal(0, con.Count)
}
