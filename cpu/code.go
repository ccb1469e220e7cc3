package cpu

import (
	"fmt"
)

// Code is an LS-8 instruction opcode byte.
//
// The upper two bits of an opcode hold its operand count, and bit 5 marks
// instructions executed by the ALU.
type Code byte

//go:generate go tool stringer -linecomment -type=Code
const (
	OP_HLT = Code(0b00000001) // hlt
	OP_PRN = Code(0b01000111) // prn
	OP_LDI = Code(0b10000010) // ldi
	OP_MUL = Code(0b10100010) // mul
	OP_CMP = Code(0b10100111) // cmp
)

// Codes lists every defined instruction.
var Codes = []Code{OP_HLT, OP_PRN, OP_LDI, OP_MUL, OP_CMP}

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0b0000) // add
	ALU_OP_MUL = AluOp(0b0010) // mul
	ALU_OP_CMP = AluOp(0b0111) // cmp
)

const (
	CODE_ALU_MASK = Code(0b0010_0000) // Set on ALU instructions.
	CODE_OP_MASK  = Code(0b0000_1111) // ALU operation of an ALU instruction.
)

// Length returns the total byte length (opcode and operands) of the
// instruction, or 0 if the code is not a defined instruction.
func (code Code) Length() int {
	switch code {
	case OP_HLT:
		return 1
	case OP_PRN:
		return 2
	case OP_LDI, OP_MUL, OP_CMP:
		return 3
	}

	return 0
}

// Operands returns the number of operand bytes following the opcode.
func (code Code) Operands() int {
	return int(code >> 6)
}

// Valid returns true if the code is a defined instruction.
func (code Code) Valid() bool {
	return code.Length() != 0
}

// AluOp decodes the ALU operation of an ALU instruction.
func (code Code) AluOp() (op AluOp, ok bool) {
	if (code & CODE_ALU_MASK) == 0 {
		return
	}

	return AluOp(code & CODE_OP_MASK), true
}

// Disassemble returns the assembly language representation of the
// instruction with its operands.
func (code Code) Disassemble(a, b byte) string {
	switch code {
	case OP_HLT:
		return "hlt"
	case OP_PRN:
		return fmt.Sprintf("prn r%d", a)
	case OP_LDI:
		return fmt.Sprintf("ldi r%d, %d", a, b)
	case OP_MUL, OP_CMP:
		return fmt.Sprintf("%v r%d, r%d", code, a, b)
	}

	return fmt.Sprintf(".byte 0b%08b", byte(code))
}
