package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrProgramTooLarge      = errors.New(f("program too large"))
	ErrAddressRange         = errors.New(f("address out of range"))
	ErrRegisterInvalid      = errors.New(f("register invalid"))
	ErrInstructionInvalid   = errors.New(f("instruction invalid"))
	ErrUnsupportedOperation = errors.New(f("unsupported alu operation"))
	ErrDivideByZero         = errors.New(f("divide by zero"))
	ErrStackOverflow        = errors.New(f("stack overflow"))
	ErrStackUnderflow       = errors.New(f("stack underflow"))
	ErrChannelInvalid       = errors.New(f("channel invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrFault is a fatal execution fault, located at the instruction that
// raised it.
type ErrFault struct {
	Address int
	Opcode  Opcode
	Err     error
}

func (err *ErrFault) Error() string {
	return f("0x%02x: opcode 0b%08b %v", err.Address, uint8(err.Opcode), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrParse is a program loader line that is not a binary byte.
type ErrParse struct {
	LineNo int
	Token  string
}

func (err ErrParse) Error() string {
	return f("line %d: invalid number: %v", err.LineNo, err.Token)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
