package loader

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

type ErrBinaryDigits string

func (err ErrBinaryDigits) Error() string {
	return f("'%v' is not a binary number", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
