package cpu

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

// aluModel is the reference ALU, computed in int and truncated.
func aluModel(op AluOp, a, b int) (output int, ok bool) {
	ok = true
	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_SUB:
		output = a - b
	case ALU_OP_MUL:
		output = a * b
	case ALU_OP_DIV:
		if b == 0 {
			return 0, false
		}
		output = a / b
	case ALU_OP_MOD:
		if b == 0 {
			return 0, false
		}
		output = a % b
	case ALU_OP_INC:
		output = a + 1
	case ALU_OP_DEC:
		output = a - 1
	case ALU_OP_AND:
		output = a & b
	case ALU_OP_NOT:
		output = ^a
	case ALU_OP_OR:
		output = a | b
	case ALU_OP_XOR:
		output = a ^ b
	case ALU_OP_SHL:
		output = a << b
	case ALU_OP_SHR:
		output = a >> b
	}

	output &= 0xff
	return
}

func FuzzAlu(f *testing.F) {
	for op := range 14 {
		f.Add(uint8(op), uint8(0), uint8(0))
		f.Add(uint8(op), uint8(0xff), uint8(0xff))
		f.Add(uint8(op), uint8(0x80), uint8(1))
	}

	f.Fuzz(func(t *testing.T, opval uint8, a uint8, b uint8) {
		assert := assert.New(t)

		op := AluOp(opval % 14)

		cp := NewCpu()
		cp.Register[0] = a
		cp.Register[1] = b

		err := cp.Alu(op, 0, 1)
		if op == ALU_OP_CMP {
			assert.NoError(err)
			assert.Equal(a, cp.Register[0])
			assert.Equal(Compare(a, b), cp.Flags)
			return
		}

		expect, ok := aluModel(op, int(a), int(b))
		if !ok {
			assert.ErrorIs(err, ErrDivideByZero)
			assert.Equal(a, cp.Register[0])
			return
		}

		assert.NoError(err)
		assert.Equal(uint8(expect), cp.Register[0], "%v %v %v", op, a, b)
		assert.Equal(b, cp.Register[1])
		assert.Equal(Flags{}, cp.Flags)
	})
}

// FuzzCpu executes a single arbitrary instruction, and checks that it
// either retires or faults without leaving a partial update.
func FuzzCpu(f *testing.F) {
	for _, inst := range Instructions {
		f.Add(uint8(inst.Opcode), uint8(0), uint8(1), uint8(SP_INIT))
		f.Add(uint8(inst.Opcode), uint8(7), uint8(0), uint8(0))
		f.Add(uint8(inst.Opcode), uint8(8), uint8(9), uint8(0xff))
	}
	f.Add(uint8(0), uint8(0), uint8(0), uint8(0))

	f.Fuzz(func(t *testing.T, opcode uint8, a uint8, b uint8, sp uint8) {
		assert := assert.New(t)

		out := &bytes.Buffer{}
		cp := NewCpu()
		cp.Output = &io.Console{Output: out}

		cp.Load([]uint8{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, opcode, a, b, uint8(OP_HLT)})
		for n := range 7 {
			cp.Register[n] = uint8(0x10 + n)
		}
		cp.Register[REG_SP] = sp
		cp.Pc = 10
		cp.Running = true

		before := *cp
		before.Output = nil

		err := cp.Tick()

		inst, valid := Lookup(Opcode(opcode))
		if !valid {
			assert.ErrorIs(err, ErrInstructionInvalid)
		}

		if err != nil {
			var fault *ErrFault
			assert.True(errors.As(err, &fault))
			assert.Equal(10, fault.Address)
			assert.Equal(Opcode(opcode), fault.Opcode)
			assert.False(cp.Running)
			assert.Equal(0, cp.Ticks)

			cp.Output = nil
			cp.Running = before.Running
			assert.Equal(before, *cp)
			assert.Equal(0, out.Len())
			return
		}

		assert.Equal(1, cp.Ticks)

		switch inst.Kind {
		case KIND_HALT:
			assert.False(cp.Running)
			assert.Equal(10, cp.Pc)
		case KIND_CALL, KIND_RET, KIND_JUMP:
			assert.True(cp.Running)
		default:
			assert.True(cp.Running)
			assert.Equal(10+inst.Width(), cp.Pc)
		}

		switch inst.Kind {
		case KIND_PRN:
			assert.Equal(fmt.Sprintf("%d\n", cp.Register[a]), out.String())
		case KIND_PRA:
			assert.Equal([]byte{cp.Register[a]}, out.Bytes())
		default:
			assert.Equal(0, out.Len())
		}
	})
}
