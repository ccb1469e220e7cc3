// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + program listing + output tape.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program   *cpu.Program // Reference to the currently running program listing.
	TickLimit int          // If non-zero, the maximum instructions to run after a reset.

	Tape io.Tape // PRN output channel.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"TICK_LIMIT": fmt.Sprintf("%d", emu.TickLimit),
	}

	return internal.IterSeq2Concat(maps.All(defines), emu.Cpu.Defines())
}

// Reset the emulator and load the program into memory.
// The CPU is left stopped until Start or Run.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: %d bytes loaded", emu.Program.Len())
	}

	return
}

// Start sets the CPU running, for stepping with Tick.
func (emu *Emulator) Start() {
	emu.Cpu.Running = true
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			emu.Cpu.Running = false
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.TickLimit != 0 && emu.Cpu.Ticks >= emu.TickLimit {
		err = ErrTickLimit
		return
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running

	return
}

// Run starts the CPU and ticks the emulator until it halts or faults.
func (emu *Emulator) Run() (err error) {
	emu.Start()

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
