package cpu

import (
	"iter"
)

// Opcode represents a line of source with its address and generated bytes.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	LinkLabel string // Label resolved into the last byte.
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source line that generated the byte at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address,
			}
			break
		}
	}

	return
}

// Len returns the number of bytes spanned by the program.
func (prog *Program) Len() (size int) {
	for address := range prog.Codes() {
		size = max(size, address+1)
	}

	return
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, prog.Len())
	for address, value := range prog.Codes() {
		bins[address] = value
	}

	return
}

// Codes iterates over the address and value of every generated byte.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(address int, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(op.Address+n, value) {
					return
				}
			}
		}
	}
}
