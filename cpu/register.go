package cpu

const (
	REGISTER_COUNT = 8    // General purpose registers.
	REG_SP         = 7    // Register reserved as the stack pointer.
	SP_INIT        = 0xf4 // Initial stack pointer value.
)

// Flags is the condition flags register, written by comparisons.
type Flags byte

const (
	FL_EQ = Flags(1 << 0) // Equal.
	FL_GT = Flags(1 << 1) // Greater than.
	FL_LT = Flags(1 << 2) // Less than.
)

// String returns the flags as a fixed-width "LGE" bit display.
func (fl Flags) String() string {
	text := []byte("---")
	if fl&FL_LT != 0 {
		text[0] = 'L'
	}
	if fl&FL_GT != 0 {
		text[1] = 'G'
	}
	if fl&FL_EQ != 0 {
		text[2] = 'E'
	}
	return string(text)
}

// Registers is the general purpose register bank.
type Registers [REGISTER_COUNT]byte

// Get the value of register index.
func (reg *Registers) Get(index byte) (value byte, err error) {
	if int(index) >= len(reg) {
		err = ErrRegisterFault(index)
		return
	}

	value = reg[index]
	return
}

// Set register index to value.
func (reg *Registers) Set(index byte, value byte) (err error) {
	if int(index) >= len(reg) {
		err = ErrRegisterFault(index)
		return
	}

	reg[index] = value
	return
}

// Reset clears all registers, and sets the stack pointer to its initial value.
func (reg *Registers) Reset() {
	clear(reg[:])
	reg[REG_SP] = SP_INIT
}
