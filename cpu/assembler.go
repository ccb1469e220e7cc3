// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"SP_INIT":     fmt.Sprintf("%#x", SP_INIT),
}

// Assembler is a single pass assembler for the LS-8 system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]byte{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": REG_SP,
}

// codeMap is a map of mnemonics to instruction codes.
var codeMap = func() map[string]Code {
	codes := make(map[string]Code, len(Codes))
	for _, code := range Codes {
		codes[code.String()] = code
	}
	return codes
}()

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// valueOf returns the byte value of a simple word.
// Negative values down to -128 are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xff || v64 < -0x80 {
		err = ErrValueRange
		return
	}

	value = byte(v64)
	return
}

// labelValue returns the byte value of a label address.
func labelValue(address int) (value byte, err error) {
	if address < 0 || address > 0xff {
		err = ErrValueRange
		return
	}

	value = byte(address)
	return
}

// register returns the register index of a word.
func (asm *Assembler) register(word string) (index byte, err error) {
	index, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	return
}

// immediate returns the value of a word, or the label to link it to
// when it names a label not yet defined.
func (asm *Assembler) immediate(word string) (value byte, label string, err error) {
	address, ok := asm.Label[word]
	if ok {
		value, err = labelValue(address)
		return
	}

	if reIdentifier.MatchString(word) {
		label = word
		return
	}

	value, err = asm.valueOf(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// characters replaces 'x' character literals with their decimal values.
func characters(line string) string {
	return reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})
}

// parseLine parses a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		value := words[2]
		equate, ok := asm.Equate[value]
		if ok {
			value = equate
		}
		asm.Equate[words[1]] = value
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reIdentifier.MatchString(label) {
			err = ErrParseNumber(label)
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddress()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddress gets the address of the next generated byte.
func (asm *Assembler) currentAddress() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		// Character literals may hold comment markers.
		text = characters(text)
		text, _, _ = strings.Cut(text, ";")
		text, _, _ = strings.Cut(text, "#")
		line = strings.TrimSpace(text)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		address, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		op.Bytes[len(op.Bytes)-1], err = labelValue(address)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if len(bytes) == 0 || err != nil {
			return
		}
		opcode := Opcode{LineNo: lineno, Address: asm.currentAddress(), Words: words, Bytes: bytes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	if mnemonic == ".byte" {
		if len(args) == 0 {
			err = ErrOperandCount
			return
		}
		for n, arg := range args {
			var value byte
			value, label, err = asm.immediate(arg)
			if err != nil {
				return
			}
			if len(label) != 0 && n != len(args)-1 {
				err = ErrLabelMissing(label)
				return
			}
			bytes = append(bytes, value)
		}
		return
	}

	code, ok := codeMap[mnemonic]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if len(args) != code.Operands() {
		err = ErrOperandCount
		return
	}

	bytes = append(bytes, byte(code))

	switch code {
	case OP_HLT:
		// No operands.
	case OP_PRN:
		var reg byte
		reg, err = asm.register(args[0])
		if err != nil {
			return
		}
		bytes = append(bytes, reg)
	case OP_LDI:
		var reg, value byte
		reg, err = asm.register(args[0])
		if err != nil {
			return
		}
		value, label, err = asm.immediate(args[1])
		if err != nil {
			return
		}
		bytes = append(bytes, reg, value)
	case OP_MUL, OP_CMP:
		var reg_a, reg_b byte
		reg_a, err = asm.register(args[0])
		if err != nil {
			return
		}
		reg_b, err = asm.register(args[1])
		if err != nil {
			return
		}
		bytes = append(bytes, reg_a, reg_b)
	default:
		err = ErrOpcodeInvalid
		return
	}

	return
}
