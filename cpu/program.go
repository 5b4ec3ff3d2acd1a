package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and
// generated instruction-store words.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Instruction store address of the first word.
	Words     []string // Source tokens after expansion.
	Codes     []Word   // Encoded words (opcode, plus immediate in the compact variant).
	LinkLabel string   // Jump label resolved after the full parse.
}

// Program is an assembled program listing.
type Program struct {
	Variant Variant
	Opcodes []Opcode
}

// Debug locates the source opcode covering an instruction store address.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the source mapping for an instruction store address.
func (prog *Program) Debug(addr Word) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the instruction store image.
func (prog *Program) Binary() (words []Word) {
	for _, word := range prog.Words() {
		words = append(words, word)
	}

	return
}

// Words iterates over the (address, word) pairs of the program.
func (prog *Program) Words() iter.Seq2[Word, Word] {
	return func(yield func(addr Word, word Word) bool) {
		for _, op := range prog.Opcodes {
			addr := Word(op.Addr)
			for n, word := range op.Codes {
				if !yield(addr+Word(n), word) {
					return
				}
			}
		}
	}
}

// Minimum lines in a hex image, padded with zero words.
const HEX_MIN_LINES = 8

// Hex renders the program in the memory image format consumed by the
// hardware toolchain: one uppercase hex word per line, zero-padded to at
// least HEX_MIN_LINES entries.
func (prog *Program) Hex() string {
	digits := prog.Variant.HexDigits()

	var lines []string
	for _, word := range prog.Words() {
		lines = append(lines, fmt.Sprintf("%0*X", digits, word))
	}
	for len(lines) < HEX_MIN_LINES {
		lines = append(lines, fmt.Sprintf("%0*X", digits, 0))
	}

	return strings.Join(lines, "\n")
}
