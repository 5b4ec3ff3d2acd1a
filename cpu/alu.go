package cpu

// Alu is the combinational arithmetic-logic unit. It is stateless; Mask
// truncates every result to the native word width.
type Alu struct {
	Mask Word
}

// Evaluate computes the ALU output for an operation and two operands.
// Arithmetic wraps silently at the word width. Opcodes outside the ALU set
// produce a zero result. The zero flag is true iff the result is zero,
// including for MOV and NOT.
func (alu Alu) Evaluate(op Op, a, b Word) (result Word, zero bool) {
	switch op {
	case OP_ADD:
		result = a + b
	case OP_SUB:
		result = a + (^b + 1)
	case OP_AND:
		result = a & b
	case OP_OR:
		result = a | b
	case OP_XOR:
		result = a ^ b
	case OP_NOT:
		result = ^a
	case OP_SHL:
		result = a << 1
	case OP_SHR:
		result = (a & alu.Mask) >> 1
	case OP_MOV:
		result = b
	default:
		result = 0
	}

	result &= alu.Mask
	zero = result == 0

	return
}
