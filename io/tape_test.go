package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Print(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.Print(72))
	assert.NoError(tape.Print(0))
	assert.NoError(tape.Print(255))

	assert.Equal("72\n0\n255\n", output.String())
	assert.Equal([]byte{72, 0, 255}, tape.Values)
}

func TestTape_Rewind(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.Print(1))
	tape.Rewind()
	assert.Empty(tape.Values)
	assert.Equal("1\n", output.String())

	assert.NoError(tape.Print(2))
	assert.Equal([]byte{2}, tape.Values)
}

func TestTape_Missing(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	assert.ErrorIs(tape.Print(1), ErrTapeMissing)
	assert.Empty(tape.Values)
}

type failWriter struct{}

var errFail = errors.New("write failed")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFail
}

func TestTape_WriteError(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Output: failWriter{}}
	assert.ErrorIs(tape.Print(9), errFail)
	assert.Empty(tape.Values)
}
