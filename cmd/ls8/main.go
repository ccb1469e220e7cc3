// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/ezrec/ls8/config"
	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the ls8 command, and returns the process exit status.
func run(name string, arguments []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, name+": ", 0)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		logger.Printf("usage: %v [options] <program>", name)
		fs.PrintDefaults()
	}

	cfg, err := config.Parse(fs, arguments)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Print(err)
		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	if cfg.Verbose {
		log.SetOutput(stderr)
		log.SetPrefix(name + ": ")
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.TickLimit = cfg.TickLimit
	emu.Cpu.SpeculativeFetch = cfg.SpeculativeFetch
	if cfg.Trace {
		emu.Cpu.Trace = stderr
	}
	emu.Tape.Output = stdout

	emu.Program, err = load(cfg, path, emu)
	if err != nil {
		logger.Printf("%v: %v", path, err)
		return 1
	}

	err = emu.Reset()
	if err != nil {
		logger.Printf("%v: %v", path, err)
		return 1
	}

	err = emu.Run()
	if err != nil {
		logger.Printf("%v: %v", path, err)
		if cfg.Verbose {
			logger.Printf("\n%v", emu.Cpu.String())
		}
		return 1
	}

	return 0
}

// load reads the program at path, either as binary text or as assembly.
// Assembly sources may use the emulator defines.
func load(cfg config.Config, path string, emu *emulator.Emulator) (prog *cpu.Program, err error) {
	if !cfg.Assembly {
		ld := &loader.Loader{Verbose: cfg.Verbose}
		return ld.ParseFile(path)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: cfg.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return asm.Parse(inf)
}
