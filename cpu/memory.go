package cpu

const (
	MEMORY_SIZE = 256 // Bytes of addressable memory.
)

// Memory is the byte addressable main memory of the CPU.
type Memory struct {
	Data [MEMORY_SIZE]byte
}

// Read the byte at address.
func (mem *Memory) Read(address int) (value byte, err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrMemoryFault(address)
		return
	}

	value = mem.Data[address]
	return
}

// Write a byte to address.
func (mem *Memory) Write(address int, value byte) (err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrMemoryFault(address)
		return
	}

	mem.Data[address] = value
	return
}

// Load copies program into memory starting at address 0.
// Memory past the end of the program is left as is.
// A program larger than memory is rejected without modifying memory.
func (mem *Memory) Load(program []byte) (err error) {
	if len(program) > len(mem.Data) {
		err = ErrProgramTooLarge
		return
	}

	copy(mem.Data[:], program)
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}
