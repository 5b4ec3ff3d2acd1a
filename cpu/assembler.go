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
	"LINENO": "0",
}

// operand describes the operand shape of a mnemonic.
type operand int

const (
	operandNone    = operand(iota) // NOP, HLT
	operandReg                     // NOT Rd / SHL Rd / SHR Rd
	operandRegReg                  // ADD Rd, Rs
	operandRegImm                  // LDI Rd, value
	operandRegAddr                 // LD Rd, [Rs]
	operandImm                     // JMP addr
)

// opShape maps each operation to its operand shape.
var opShape = map[Op]operand{
	OP_NOP: operandNone,
	OP_HLT: operandNone,
	OP_ADD: operandRegReg,
	OP_SUB: operandRegReg,
	OP_AND: operandRegReg,
	OP_OR:  operandRegReg,
	OP_XOR: operandRegReg,
	OP_MOV: operandRegReg,
	OP_NOT: operandReg,
	OP_SHL: operandReg,
	OP_SHR: operandReg,
	OP_LDI: operandRegImm,
	OP_LD:  operandRegAddr,
	OP_ST:  operandRegAddr,
	OP_JMP: operandImm,
	OP_JZ:  operandImm,
}

// opByName maps mnemonics to operations.
var opByName = func() map[string]Op {
	byName := make(map[string]Op, len(opShape))
	for op := range opShape {
		byName[op.String()] = op
	}
	return byName
}()

// Assembler is a single pass assembler for the RISC16 instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Variant Variant  // Encoding variant to emit.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to store addresses.
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

// valueOf returns the value of a simple numeric word: decimal, 0x hex, or
// 0b binary.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(strings.ToLower(word), 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}

// immediateOf returns an immediate operand value, range checked.
func (asm *Assembler) immediateOf(word string) (imm Word, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < 0 || value > 255 {
		err = ErrImmediateRange(value)
		return
	}
	imm = Word(value)

	return
}

// registerOf returns the register index for an operand, accepting the
// bracketed memory form [Rn].
func (asm *Assembler) registerOf(word string) (index int, err error) {
	reg := strings.ToUpper(word)
	reg = strings.ReplaceAll(reg, "[", "")
	reg = strings.ReplaceAll(reg, "]", "")

	if len(reg) != 2 || reg[0] != 'R' || reg[1] < '0' || reg[1] > '3' {
		err = ErrRegisterInvalid
		return
	}
	index = int(reg[1] - '0')

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var intval int
		intval, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or labels.
			continue
		}
		pred[key] = starlark.MakeInt(intval)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
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
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine expands a single source line into operand words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	// Commas are operand separators.
	line = strings.ReplaceAll(line, ",", " ")

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
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
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the instruction store address following the last
// generated opcode.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
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

		// Strip ';' comments.
		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

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

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		linked := len(op.Codes) - 1
		if asm.Variant == VARIANT_COMPACT {
			op.Codes[linked] = Word(addr) & ADDR_MASK
		} else {
			op.Codes[linked] |= Word(addr) & ADDR_MASK
		}
	}

	prog = &Program{
		Variant: asm.Variant,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op, ok := opByName[strings.ToUpper(words[0])]
	if !ok {
		err = ErrMnemonicInvalid
		return
	}

	var rd, rs int
	var imm Word
	var label string

	args := words[1:]

	need := map[operand]int{
		operandNone:    0,
		operandReg:     1,
		operandRegReg:  2,
		operandRegImm:  2,
		operandRegAddr: 2,
		operandImm:     1,
	}[opShape[op]]

	if len(args) < need {
		err = ErrOperandMissing
		return
	}
	if len(args) > need {
		err = ErrOperandExtra
		return
	}

	switch opShape[op] {
	case operandNone:
		// pass
	case operandReg:
		rd, err = asm.registerOf(args[0])
	case operandRegReg, operandRegAddr:
		rd, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		rs, err = asm.registerOf(args[1])
	case operandRegImm:
		rd, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		imm, err = asm.immediateOf(args[1])
	case operandImm:
		imm, err = asm.immediateOf(args[0])
		if _, isnum := err.(ErrParseNumber); isnum {
			// Not a number: link to a jump label after the
			// full source has been scanned.
			err = nil
			imm = 0
			label = args[0]
		}
	}
	if err != nil {
		return
	}

	opcode := Opcode{
		LineNo:    lineno,
		Addr:      asm.currentAddr(),
		Words:     words,
		Codes:     asm.Variant.Assemble(op, rd, rs, imm),
		LinkLabel: label,
	}
	asm.Opcode = append(asm.Opcode, opcode)

	return
}
