package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_GetSet(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{}

	for n := range REGISTER_COUNT {
		assert.NoError(reg.Set(n, uint8(0x10+n)))
	}
	for n := range REGISTER_COUNT {
		value, err := reg.Get(n)
		assert.NoError(err)
		assert.Equal(uint8(0x10+n), value)
	}

	_, err := reg.Get(REGISTER_COUNT)
	assert.ErrorIs(err, ErrRegisterInvalid)
	_, err = reg.Get(-1)
	assert.ErrorIs(err, ErrRegisterInvalid)
	assert.ErrorIs(reg.Set(REGISTER_COUNT, 1), ErrRegisterInvalid)
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b  uint8
		flags Flags
		bits  uint8
		str   string
	}{
		{5, 5, Flags{E: true}, 0b001, "--E"},
		{4, 5, Flags{L: true}, 0b100, "L--"},
		{6, 5, Flags{G: true}, 0b010, "-G-"},
		{0, 255, Flags{L: true}, 0b100, "L--"},
		{255, 0, Flags{G: true}, 0b010, "-G-"},
	}

	for _, entry := range table {
		flags := Compare(entry.a, entry.b)
		assert.Equal(entry.flags, flags, "%v vs %v", entry.a, entry.b)
		assert.Equal(entry.bits, flags.Bits())
		assert.Equal(entry.str, flags.String())
	}
}
