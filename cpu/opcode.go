package cpu

import (
	"iter"
	"maps"
)

// Word is a native machine word. The embedded variant uses all 16 bits,
// the compact variant only the low 8.
type Word uint16

// Op is a processor operation code.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP = Op(0)  // NOP
	OP_ADD = Op(1)  // ADD
	OP_SUB = Op(2)  // SUB
	OP_AND = Op(3)  // AND
	OP_OR  = Op(4)  // OR
	OP_XOR = Op(5)  // XOR
	OP_NOT = Op(6)  // NOT
	OP_SHL = Op(7)  // SHL
	OP_SHR = Op(8)  // SHR
	OP_LDI = Op(9)  // LDI
	OP_LD  = Op(10) // LD
	OP_ST  = Op(11) // ST
	OP_JMP = Op(12) // JMP
	OP_JZ  = Op(13) // JZ
	OP_HLT = Op(14) // HLT
	OP_MOV = Op(15) // MOV
)

// MarshalText emits the mnemonic, for the JSON trace.
func (op Op) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText parses a mnemonic.
func (op *Op) UnmarshalText(text []byte) error {
	decoded, ok := opByName[string(text)]
	if !ok {
		return ErrMnemonicInvalid
	}
	*op = decoded

	return nil
}

// Immediate returns true if the operation carries an immediate operand.
func (op Op) Immediate() bool {
	switch op {
	case OP_LDI, OP_JMP, OP_JZ:
		return true
	}
	return false
}

// Writeback returns true if the operation commits a value to the
// register file in its writeback cycle.
func (op Op) Writeback() bool {
	switch op {
	case OP_NOP, OP_ST, OP_JMP, OP_JZ, OP_HLT:
		return false
	}
	return true
}

// Variant selects the instruction word encoding, chosen once at engine
// construction.
type Variant int

//go:generate go tool stringer -linecomment -type=Variant
const (
	// 8-bit words; LDI/JMP/JZ take the immediate from the next
	// instruction-store word, fetched in a dedicated cycle.
	VARIANT_COMPACT = Variant(0) // compact
	// 16-bit words with the immediate embedded in the low byte.
	VARIANT_EMBEDDED = Variant(1) // embedded
)

// Width returns the native word width in bits.
func (v Variant) Width() int {
	if v == VARIANT_COMPACT {
		return 8
	}
	return 16
}

// WordMask returns the mask for the native word width.
func (v Variant) WordMask() Word {
	return Word((1 << v.Width()) - 1)
}

// HexDigits returns the number of hex digits of a native word, for the
// memory image format.
func (v Variant) HexDigits() int {
	return v.Width() / 4
}

// Encode packs the instruction fields into a single word.
// The compact variant has no room for the immediate; it occupies the next
// instruction-store word and is ignored here.
func (v Variant) Encode(op Op, rd, rs int, imm Word) (word Word) {
	if v == VARIANT_COMPACT {
		word = Word(op)<<4 | Word(rd&0x3)<<2 | Word(rs&0x3)
	} else {
		word = Word(op)<<12 | Word(rd&0x3)<<10 | Word(rs&0x3)<<8 | (imm & 0xff)
	}
	return
}

// Decode unpacks an instruction word. The compact variant always reports a
// zero immediate; the true value arrives in a later fetch cycle.
func (v Variant) Decode(word Word) (op Op, rd, rs int, imm Word) {
	if v == VARIANT_COMPACT {
		op = Op((word >> 4) & 0xf)
		rd = int((word >> 2) & 0x3)
		rs = int(word & 0x3)
	} else {
		op = Op((word >> 12) & 0xf)
		rd = int((word >> 10) & 0x3)
		rs = int((word >> 8) & 0x3)
		imm = word & 0xff
	}
	return
}

// ImmediateWord returns true if the operation consumes an extra
// instruction-store word for its immediate in this variant.
func (v Variant) ImmediateWord(op Op) bool {
	return v == VARIANT_COMPACT && op.Immediate()
}

// Assemble encodes one instruction as its instruction-store words: a
// single word, or opcode word plus immediate word in the compact variant.
func (v Variant) Assemble(op Op, rd, rs int, imm Word) (words []Word) {
	words = []Word{v.Encode(op, rd, rs, imm)}
	if v.ImmediateWord(op) {
		words = append(words, imm&0xff)
	}
	return
}

var _variant_defines = map[Variant]map[string]string{
	VARIANT_COMPACT: {
		"WIDTH":     "8",
		"WORD_MASK": "0xff",
	},
	VARIANT_EMBEDDED: {
		"WIDTH":     "16",
		"WORD_MASK": "0xffff",
	},
}

// Defines for the encoding variant.
func (v Variant) Defines() iter.Seq2[string, string] {
	return maps.All(_variant_defines[v])
}
