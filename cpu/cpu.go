package cpu

import (
	"errors"
	"fmt"
	stdio "io"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Channel is the output channel written by PRN.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"SP_INIT":     fmt.Sprintf("0x%02x", SP_INIT),
	"FL_EQ":       fmt.Sprintf("0b%03b", byte(FL_EQ)),
	"FL_GT":       fmt.Sprintf("0b%03b", byte(FL_GT)),
	"FL_LT":       fmt.Sprintf("0b%03b", byte(FL_LT)),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose          bool         // Set to enable verbose logging.
	SpeculativeFetch bool         // Always fetch two operand bytes, regardless of arity.
	Trace            stdio.Writer // If set, receives a trace line before each instruction.

	Memory   Memory    // Main memory.
	Register Registers // Register bank.
	Flags    Flags     // Flags from the last comparison.
	Pc       int       // Program counter.
	Running  bool      // Run state.

	Output Channel // PRN output channel.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU in the stopped state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), iter.Seq2[string, string](registerDefines))
}

// registerDefines names every register for the assembler.
func registerDefines(yield func(name, value string) bool) {
	for n := range REGISTER_COUNT {
		if !yield(fmt.Sprintf("R%d", n), fmt.Sprintf("r%d", n)) {
			return
		}
	}
	yield("SP", fmt.Sprintf("r%d", REG_SP))
}

// Reset the CPU state.
// - Clears memory and the flags.
// - Clears the registers, and sets the stack pointer to SP_INIT.
// - Zeros the PC and the ticks counter.
// - Stops the CPU.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Register.Reset()
	cpu.Flags = 0
	cpu.Pc = 0
	cpu.Running = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load a program into memory at address 0.
func (cpu *Cpu) Load(program []byte) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: load %d bytes", len(program))
	}

	return cpu.Memory.Load(program)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "fl":
			strval = cpu.Flags.String()
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[REG_SP])
		default:
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		}
		text += fmt.Sprintf("% 3s: %v\n", reg, strval)
	}

	return
}

// TraceLine returns the trace of the CPU state: the PC, the three bytes
// of memory at the PC, and all registers.
func (cpu *Cpu) TraceLine() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X |", cpu.Pc)
	for n := range 3 {
		value, err := cpu.Memory.Read(cpu.Pc + n)
		if err != nil {
			sb.WriteString(" --")
		} else {
			fmt.Fprintf(&sb, " %02X", value)
		}
	}
	sb.WriteString(" |")
	for _, value := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// Run sets the CPU running, and executes instructions until a HLT
// or a fault. A fault stops the CPU.
func (cpu *Cpu) Run() (err error) {
	cpu.Running = true

	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			cpu.Running = false
			return
		}
	}

	return
}

// FetchCode fetches the instruction at the PC, and its operands.
//
// Only the operands the instruction declares are read, unless
// SpeculativeFetch is set, in which case the two bytes following the
// opcode are always read first.
func (cpu *Cpu) FetchCode() (code Code, a, b byte, err error) {
	value, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}
	code = Code(value)

	need := code.Operands()
	if cpu.SpeculativeFetch {
		need = 2
	} else if !code.Valid() {
		err = ErrUnknownOpcode{Code: value, Pc: cpu.Pc}
		return
	}

	operand := [2]byte{}
	for n := range need {
		operand[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	a, b = operand[0], operand[1]
	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	if cpu.Trace != nil {
		fmt.Fprintln(cpu.Trace, cpu.TraceLine())
	}

	code, a, b, err := cpu.FetchCode()
	if err != nil {
		return
	}

	length, err := cpu.Execute(code, a, b)
	if err != nil {
		return
	}

	cpu.Pc += length
	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction, and returns the
// instruction length the PC must advance by.
func (cpu *Cpu) Execute(code Code, a, b byte) (length int, err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrOpcodeDecode) {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code.Disassemble(a, b))
	}

	switch code {
	case OP_LDI:
		err = cpu.Register.Set(a, b)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
	case OP_PRN:
		var value byte
		value, err = cpu.Register.Get(a)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		if cpu.Output == nil {
			err = io.ErrChannelInvalid
			return
		}
		err = cpu.Output.Print(value)
		if err != nil {
			return
		}
	case OP_HLT:
		cpu.Running = false
	case OP_MUL, OP_CMP:
		_, err = cpu.Register.Get(a)
		if err != nil {
			err = errors.Join(ErrOpcodeArg1, err)
			return
		}
		_, err = cpu.Register.Get(b)
		if err != nil {
			err = errors.Join(ErrOpcodeArg2, err)
			return
		}
		op, _ := code.AluOp()
		err = cpu.Alu(op, a, b)
		if err != nil {
			return
		}
	default:
		err = ErrUnknownOpcode{Code: byte(code), Pc: cpu.Pc}
		return
	}

	length = code.Length()

	return
}
