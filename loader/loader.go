// Package loader reads LS-8 binary text programs.
//
// Each line of a program holds one byte as a string of binary digits.
// Text following a '#' is a comment. Lines that do not start with a binary
// digit once the comment and surrounding space are removed are ignored.
package loader

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
)

const (
	COMMENT = "#" // Comment marker.
	DIGITS  = 8   // Binary digits in a byte.
)

// Loader converts binary text into a program listing.
type Loader struct {
	Verbose bool // If set, verbosely logs the loader actions.
}

// ParseFile loads the binary text program at path.
func (ld *Loader) ParseFile(path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return ld.Parse(inf)
}

// Parse parses an input stream of binary text into a Program with one
// byte per qualifying line, at consecutive addresses from 0.
func (ld *Loader) Parse(input io.Reader) (prog *cpu.Program, err error) {
	scanner := bufio.NewScanner(input)

	prog = &cpu.Program{}

	var address int
	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		digits, ok := binaryDigits(text)
		if !ok {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(digits, 2, DIGITS)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: ErrBinaryDigits(digits)}
			prog = nil
			return
		}

		if ld.Verbose {
			log.Printf("loader: %02x: %08b (line %d)", address, value, lineno)
		}

		prog.Opcodes = append(prog.Opcodes, cpu.Opcode{
			LineNo:  lineno,
			Address: address,
			Words:   []string{digits},
			Bytes:   []byte{byte(value)},
		})
		address++
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}

// binaryDigits returns up to the first DIGITS characters of a line that
// carries an instruction byte.
func binaryDigits(text string) (digits string, ok bool) {
	line, _, _ := strings.Cut(text, COMMENT)
	line = strings.TrimRight(line, "\r\n")

	// Single characters are too short to be an instruction.
	// Surrounding blanks count towards the length.
	if len(line) < 2 {
		return
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	if line[0] != '0' && line[0] != '1' {
		return
	}

	digits = line[:min(len(line), DIGITS)]
	ok = true

	return
}
