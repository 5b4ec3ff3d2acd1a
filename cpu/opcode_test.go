package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEmbedded(t *testing.T) {
	assert := assert.New(t)

	v := VARIANT_EMBEDDED

	for op := OP_NOP; op <= OP_MOV; op++ {
		for rd := range 4 {
			for rs := range 4 {
				for _, imm := range []Word{0, 1, 0x7f, 0xff} {
					word := v.Encode(op, rd, rs, imm)
					d_op, d_rd, d_rs, d_imm := v.Decode(word)
					assert.Equal(op, d_op)
					assert.Equal(rd, d_rd)
					assert.Equal(rs, d_rs)
					assert.Equal(imm, d_imm)
				}
			}
		}
	}

	// Field layout of the 16-bit word: [op(4)][rd(2)][rs(2)][imm(8)]
	assert.Equal(Word(0x9005), v.Encode(OP_LDI, 0, 0, 5))
	assert.Equal(Word(0x1100), v.Encode(OP_ADD, 0, 1, 0))
	assert.Equal(Word(0xb300), v.Encode(OP_ST, 0, 3, 0))
	assert.Equal(Word(0xe000), v.Encode(OP_HLT, 0, 0, 0))
}

func TestEncodeDecodeCompact(t *testing.T) {
	assert := assert.New(t)

	v := VARIANT_COMPACT

	for op := OP_NOP; op <= OP_MOV; op++ {
		for rd := range 4 {
			for rs := range 4 {
				word := v.Encode(op, rd, rs, 0)
				assert.Less(word, Word(0x100))
				d_op, d_rd, d_rs, d_imm := v.Decode(word)
				assert.Equal(op, d_op)
				assert.Equal(rd, d_rd)
				assert.Equal(rs, d_rs)
				assert.Equal(Word(0), d_imm)
			}
		}
	}
}

func TestVariantWidth(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(8, VARIANT_COMPACT.Width())
	assert.Equal(Word(0xff), VARIANT_COMPACT.WordMask())
	assert.Equal(2, VARIANT_COMPACT.HexDigits())

	assert.Equal(16, VARIANT_EMBEDDED.Width())
	assert.Equal(Word(0xffff), VARIANT_EMBEDDED.WordMask())
	assert.Equal(4, VARIANT_EMBEDDED.HexDigits())
}

func TestImmediateWord(t *testing.T) {
	assert := assert.New(t)

	for op := OP_NOP; op <= OP_MOV; op++ {
		expect := op == OP_LDI || op == OP_JMP || op == OP_JZ
		assert.Equal(expect, op.Immediate(), op.String())
		assert.Equal(expect, VARIANT_COMPACT.ImmediateWord(op), op.String())
		assert.False(VARIANT_EMBEDDED.ImmediateWord(op), op.String())
	}
}

func TestAssembleWords(t *testing.T) {
	assert := assert.New(t)

	// Embedded instructions are always one word.
	words := VARIANT_EMBEDDED.Assemble(OP_LDI, 2, 0, 0x42)
	assert.Equal([]Word{0x9842}, words)

	// Compact immediate operations take a second word.
	words = VARIANT_COMPACT.Assemble(OP_LDI, 2, 0, 0x42)
	assert.Equal([]Word{0x98, 0x42}, words)

	words = VARIANT_COMPACT.Assemble(OP_ADD, 1, 2, 0)
	assert.Equal([]Word{0x16}, words)
}

func TestWriteback(t *testing.T) {
	assert := assert.New(t)

	noWrite := map[Op]bool{OP_NOP: true, OP_ST: true, OP_JMP: true, OP_JZ: true, OP_HLT: true}
	for op := OP_NOP; op <= OP_MOV; op++ {
		assert.Equal(!noWrite[op], op.Writeback(), op.String())
	}
}
