// Package cpu implements the LS-8 microprocessor and its assembler.
//
// The CPU consists of 256 bytes of memory, eight 8-bit general purpose
// registers (r0-r7, with r7 reserved as the stack pointer), a flags
// register written by comparisons, an ALU, and a program counter (PC)
// advanced by the length of each executed instruction.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting labels, equates, and compile-time expression evaluation.
package cpu
