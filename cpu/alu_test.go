package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAluEvaluate(t *testing.T) {
	assert := assert.New(t)

	alu := Alu{Mask: 0xffff}

	table := [](struct {
		name   string
		op     Op
		a, b   Word
		result Word
		zero   bool
	}){
		{"add", OP_ADD, 5, 3, 8, false},
		{"add_wrap", OP_ADD, 0xffff, 0x0001, 0x0000, true},
		{"sub", OP_SUB, 5, 3, 2, false},
		{"sub_zero", OP_SUB, 7, 7, 0, true},
		{"sub_wrap", OP_SUB, 0, 1, 0xffff, false},
		{"and", OP_AND, 0xf0f0, 0xff00, 0xf000, false},
		{"and_zero", OP_AND, 0xf0f0, 0x0f0f, 0, true},
		{"or", OP_OR, 0xf000, 0x000f, 0xf00f, false},
		{"xor", OP_XOR, 0xff00, 0x0ff0, 0xf0f0, false},
		{"xor_self", OP_XOR, 0x1234, 0x1234, 0, true},
		{"not", OP_NOT, 0x00ff, 0xdead, 0xff00, false},
		{"not_zero", OP_NOT, 0xffff, 0, 0, true},
		{"shl", OP_SHL, 0x0001, 0xdead, 0x0002, false},
		{"shl_msb_out", OP_SHL, 0x8000, 0, 0, true},
		{"shr", OP_SHR, 0x0002, 0xdead, 0x0001, false},
		{"shr_lsb_out", OP_SHR, 0x0001, 0, 0, true},
		{"mov", OP_MOV, 0xdead, 0xbeef, 0xbeef, false},
		{"mov_zero", OP_MOV, 0xdead, 0, 0, true},
		// Opcodes outside the ALU set produce a deterministic zero.
		{"nop", OP_NOP, 0xdead, 0xbeef, 0, true},
		{"ldi", OP_LDI, 0xdead, 0xbeef, 0, true},
		{"ld", OP_LD, 0xdead, 0xbeef, 0, true},
		{"st", OP_ST, 0xdead, 0xbeef, 0, true},
		{"jmp", OP_JMP, 0xdead, 0xbeef, 0, true},
		{"jz", OP_JZ, 0xdead, 0xbeef, 0, true},
		{"hlt", OP_HLT, 0xdead, 0xbeef, 0, true},
	}

	for _, entry := range table {
		result, zero := alu.Evaluate(entry.op, entry.a, entry.b)
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.zero, zero, entry.name)
	}
}

func TestAluEvaluateCompact(t *testing.T) {
	assert := assert.New(t)

	alu := Alu{Mask: 0xff}

	table := [](struct {
		name   string
		op     Op
		a, b   Word
		result Word
		zero   bool
	}){
		{"add_wrap", OP_ADD, 0xff, 0x01, 0x00, true},
		{"sub_wrap", OP_SUB, 0x00, 0x01, 0xff, false},
		{"not", OP_NOT, 0x0f, 0, 0xf0, false},
		{"shl_msb_out", OP_SHL, 0x80, 0, 0x00, true},
		{"shr", OP_SHR, 0x80, 0, 0x40, false},
	}

	for _, entry := range table {
		result, zero := alu.Evaluate(entry.op, entry.a, entry.b)
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.zero, zero, entry.name)
	}
}
