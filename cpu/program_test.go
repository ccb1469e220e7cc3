package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 0, Words: []string{"ldi", "r0", "8"},
				Bytes: []byte{byte(OP_LDI), 0, 8}},
			{LineNo: 3, Address: 3, Words: []string{"prn", "r0"},
				Bytes: []byte{byte(OP_PRN), 0}},
			{LineNo: 4, Address: 5, Words: []string{"hlt"},
				Bytes: []byte{byte(OP_HLT)}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.NotNil(dbg.Opcode)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(5)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(6)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(-1)
	assert.Nil(dbg.Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(6, prog.Len())
	assert.Equal([]byte{0x82, 0, 8, 0x47, 0, 0x01}, prog.Binary())
}

func TestProgram_Binary_Empty(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}

	assert.Equal(0, prog.Len())
	assert.Empty(prog.Binary())
}

func TestProgram_Binary_Gap(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 2, Bytes: []byte{byte(OP_HLT)}},
		},
	}

	assert.Equal([]byte{0, 0, byte(OP_HLT)}, prog.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addresses []int
	for address := range prog.Codes() {
		addresses = append(addresses, address)
		if address == 3 {
			break
		}
	}

	assert.Equal([]int{0, 1, 2, 3}, addresses)
}
