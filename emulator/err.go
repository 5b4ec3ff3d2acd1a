package emulator

import (
	"errors"

	"github.com/risclab/risc16/translate"
)

var f = translate.From

var (
	ErrCycleLimit = errors.New(f("cycle limit reached before halt"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
