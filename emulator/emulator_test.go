package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/loader"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(&emu.Tape, emu.Cpu.Output)
}

func doAssemble(emu *Emulator, program []string, t *testing.T) (output *bytes.Buffer) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	output = &bytes.Buffer{}
	emu.Tape.Output = output

	err = emu.Reset()
	assert.NoError(err)

	return
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) (output []byte) {
	assert := assert.New(t)

	tape_output := doAssemble(emu, program, t)
	emu.Start()

	prog := emu.Program
	for n, op := range prog.Opcodes {
		here := program[op.LineNo-1]
		assert.Equal(op.LineNo, emu.LineNo(), here)
		assert.Equal(op.Address, emu.Pc(), here)
		debug := prog.Debug(emu.Pc())
		assert.Equal(0, debug.Index, here)

		done, err := emu.Tick()
		assert.NoError(err, here)
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		assert.Equal(n == len(prog.Opcodes)-1, done, here)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	output = tape_output.Bytes()
	return
}

func TestEmulatorMul(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"LDI R0,8",
		"LDI R1,9",
		"MUL R0,R1",
		"PRN R0",
		"HLT",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal("72\n", string(output))
	assert.Equal(5, emu.Ticks())
	assert.Equal([]byte{72}, emu.Tape.Values)
}

func TestEmulatorRegisters(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0, 0x10",
		"ldi r1, 0x20",
		"ldi r2, $(0x10 * 3)",
		"ldi r3, 0x40",
		"ldi r4, 0x50",
		"ldi r5, 0x60",
		"ldi r6, 0x70",
		"prn sp",
		"hlt",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal(cpu.Registers{0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70, cpu.SP_INIT}, emu.Cpu.Register)
	assert.Equal("244\n", string(output))
}

func TestEmulatorCompare(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"ldi r0, 10",
		"ldi r1, 20",
		"cmp r0, r1",
		"prn r0",
		"hlt",
	}

	doRunSingle(emu, program, t)
	assert.Equal(cpu.FL_LT, emu.Cpu.Flags)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"ldi r0, 3",
		"ldi r1, 5",
		"mul r0, r1",
		"mul r0, r0",
		"prn r0",
		"hlt",
	}, t)

	err := emu.Run()
	assert.NoError(err)
	assert.Equal([]byte{225}, emu.Tape.Values)

	// Halted emulators are done.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorRunState(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := doAssemble(emu, []string{
		"prn r0",
		"hlt",
	}, t)

	// Stopped until started.
	assert.False(emu.Cpu.Running)
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(0, emu.Ticks())

	err = emu.Run()
	assert.NoError(err)
	assert.Equal(2, emu.Ticks())
	assert.Equal("0\n", output.String())
	assert.False(emu.Cpu.Running)

	// A hand-built listing runs without Start.
	emu = NewEmulator()
	emu.Program = &cpu.Program{Opcodes: []cpu.Opcode{
		{LineNo: 1, Address: 0, Bytes: []byte{byte(cpu.OP_LDI), 0, 9}},
		{LineNo: 2, Address: 3, Bytes: []byte{byte(cpu.OP_HLT)}},
	}}
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(2, emu.Ticks())
	assert.Equal(byte(9), emu.Cpu.Register[0])
}

func TestEmulatorUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"ldi r0, 1",
		"prn r0",
		"",
		".byte 0b00000111",
		"hlt",
	}, t)

	err := emu.Run()

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(4, runtime.LineNo)
	assert.Equal(cpu.ErrUnknownOpcode{Code: 7, Pc: 5}, runtime.Err)
	assert.Equal("line 4 unknown instruction: 7, at address PC: 5", err.Error())
	assert.False(emu.Cpu.Running)
	assert.Equal([]byte{1}, emu.Tape.Values)
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TickLimit = 2
	doAssemble(emu, []string{
		"ldi r0, 1",
		"ldi r1, 2",
		"ldi r2, 3",
		"hlt",
	}, t)

	err := emu.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(2, emu.Ticks())
	assert.Equal(byte(0), emu.Cpu.Register[2])

	// A reset starts the count again.
	emu.TickLimit = 0
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(byte(3), emu.Cpu.Register[2])
}

func TestEmulatorLoader(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}

	ld := &loader.Loader{}
	prog, err := ld.Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	output := &bytes.Buffer{}
	emu.Tape.Output = output

	assert.NoError(emu.Reset())
	assert.Equal(1, emu.LineNo())
	assert.NoError(emu.Run())
	assert.Equal("8\n", output.String())
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorProgramSize(t *testing.T) {
	assert := assert.New(t)

	full := make([]byte, cpu.MEMORY_SIZE)
	full[0] = byte(cpu.OP_HLT)

	emu := NewEmulator()
	emu.Program = &cpu.Program{Opcodes: []cpu.Opcode{{LineNo: 1, Bytes: full}}}
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(1, emu.Pc())

	over := make([]byte, cpu.MEMORY_SIZE+1)
	over[0] = byte(cpu.OP_HLT)
	emu.Program = &cpu.Program{Opcodes: []cpu.Opcode{{LineNo: 1, Bytes: over}}}
	err := emu.Reset()
	assert.ErrorIs(err, cpu.ErrProgramTooLarge)
	assert.False(emu.Cpu.Running)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TickLimit = 99

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("99", defines["TICK_LIMIT"])
	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("r7", defines["SP"])
}
