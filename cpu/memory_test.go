package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	for _, address := range []int{0, 1, 0x7f, 0xff} {
		err := mem.Write(address, byte(address^0x5a))
		assert.NoError(err)
	}

	for _, address := range []int{0, 1, 0x7f, 0xff} {
		value, err := mem.Read(address)
		assert.NoError(err)
		assert.Equal(byte(address^0x5a), value)
	}
}

func TestMemory_Fault(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	for _, address := range []int{-1, MEMORY_SIZE, MEMORY_SIZE + 1} {
		_, err := mem.Read(address)
		assert.ErrorIs(err, ErrMemory)
		assert.Equal(ErrMemoryFault(address), err)

		err = mem.Write(address, 1)
		assert.ErrorIs(err, ErrMemory)
	}
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Data[5] = 0xee

	err := mem.Load([]byte{1, 2, 3})
	assert.NoError(err)

	assert.Equal([]byte{1, 2, 3, 0, 0, 0xee}, mem.Data[:6])

	// Loading does not clear the rest of memory.
	err = mem.Load([]byte{9})
	assert.NoError(err)
	assert.Equal([]byte{9, 2, 3}, mem.Data[:3])
}

func TestMemory_LoadBoundary(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	full := make([]byte, MEMORY_SIZE)
	for n := range full {
		full[n] = byte(n)
	}
	err := mem.Load(full)
	assert.NoError(err)
	assert.Equal(byte(0xff), mem.Data[0xff])

	mem.Reset()
	over := make([]byte, MEMORY_SIZE+1)
	for n := range over {
		over[n] = 0xaa
	}
	err = mem.Load(over)
	assert.ErrorIs(err, ErrProgramTooLarge)

	// Rejected programs leave memory untouched.
	assert.Equal(Memory{}, *mem)
}
