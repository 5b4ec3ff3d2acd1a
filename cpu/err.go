package cpu

import (
	"errors"

	"github.com/risclab/risc16/translate"
)

var f = translate.From

var (
	// Program load errors
	ErrProgramTooLarge = errors.New(f("program too large"))
	ErrProgramEmpty    = errors.New(f("no instructions in program"))

	// Decode errors
	ErrStateInvalid = errors.New(f("state name invalid"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrOperandExtra     = errors.New(f("excessive operands"))
	ErrMnemonicInvalid  = errors.New(f("unknown instruction"))
	ErrRegisterInvalid  = errors.New(f("register invalid (use R0, R1, R2, or R3)"))
	ErrImmediateInvalid = errors.New(f("immediate invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
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

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrImmediateRange int

func (err ErrImmediateRange) Error() string {
	return f("immediate value out of range (0-255): %v", int(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
