package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("cpu halted"))
	ErrMemory          = errors.New(f("memory fault"))
	ErrRegister        = errors.New(f("register fault"))
	ErrProgramTooLarge = errors.New(f("program larger than memory"))
	ErrAluUnsupported  = errors.New(f("unsupported alu operation"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeArg1   = errors.New(f("arg1"))
	ErrOpcodeArg2   = errors.New(f("arg2"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("wrong number of operands"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrValueRange      = errors.New(f("value out of byte range"))
)

// ErrOpcode marks the instruction that failed to execute.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("opcode 0x%02x %v", byte(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrUnknownOpcode is returned when the byte at the PC is not a defined
// instruction.
type ErrUnknownOpcode struct {
	Code byte
	Pc   int
}

func (err ErrUnknownOpcode) Error() string {
	return f("unknown instruction: %d, at address PC: %d", err.Code, err.Pc)
}

func (err ErrUnknownOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownOpcode)
	if !ok {
		ok = target == ErrOpcodeDecode
	}
	return
}

// ErrMemoryFault is an access outside of the memory address space.
type ErrMemoryFault int

func (err ErrMemoryFault) Error() string {
	return f("memory fault at address 0x%x", int(err))
}

func (err ErrMemoryFault) Unwrap() error {
	return ErrMemory
}

// ErrRegisterFault is an access to a register index outside of r0-r7.
type ErrRegisterFault int

func (err ErrRegisterFault) Error() string {
	return f("register fault at index %d", int(err))
}

func (err ErrRegisterFault) Unwrap() error {
	return ErrRegister
}

// ErrAluOp is an ALU invocation with an operation outside of the defined set.
type ErrAluOp AluOp

func (err ErrAluOp) Error() string {
	return f("unsupported alu operation %d", int(err))
}

func (err ErrAluOp) Unwrap() error {
	return ErrAluUnsupported
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

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
