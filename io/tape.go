package io

import (
	"io"
	"strconv"
)

// Tape provides sequential text output of printed values. Each value is
// written immediately to Output as a decimal number on its own line.
type Tape struct {
	Output io.Writer

	Values []byte // Values printed since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind forgets the values printed. Output already written is not recalled.
func (tc *Tape) Rewind() {
	tc.Values = tc.Values[:0]
}

// Print writes the decimal value, newline terminated, to the output.
func (tc *Tape) Print(value byte) (err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	line := strconv.AppendUint(nil, uint64(value), 10)
	line = append(line, '\n')

	_, err = tc.Output.Write(line)
	if err != nil {
		return
	}

	tc.Values = append(tc.Values, value)
	return
}
