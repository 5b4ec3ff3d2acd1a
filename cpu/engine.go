package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// State is a control engine state. Outputs depend only on the current state
// and the latched opcode (Moore machine).
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	ST_FETCH     = State(0) // FETCH
	ST_DECODE    = State(1) // DECODE
	ST_FETCH_IMM = State(2) // FETCH_IMM
	ST_EXECUTE   = State(3) // EXECUTE
	ST_MEMORY    = State(4) // MEMORY
	ST_WRITEBACK = State(5) // WRITEBACK
	ST_HALT      = State(6) // HALT
)

// MarshalText emits the state name, for the JSON trace.
func (st State) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}

// stateByName maps state names to states.
var stateByName = func() map[string]State {
	byName := make(map[string]State)
	for st := ST_FETCH; st <= ST_HALT; st++ {
		byName[st.String()] = st
	}
	return byName
}()

// UnmarshalText parses a state name.
func (st *State) UnmarshalText(text []byte) error {
	decoded, ok := stateByName[string(text)]
	if !ok {
		return ErrStateInvalid
	}
	*st = decoded

	return nil
}

var _cpu_defines = map[string]string{
	"MEM_SIZE":       fmt.Sprintf("%v", MEM_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Snapshot is the externally observable processor state after one cycle.
// It is a value object; tracing and visualization consume it without ever
// seeing a half-updated engine.
type Snapshot struct {
	Cycle       uint64                `json:"cycle"`       // Cycles stepped since reset.
	State       State                 `json:"state"`       // Control state after the step.
	Pc          Word                  `json:"pc"`          // Program counter.
	Instruction Word                  `json:"instruction"` // Latched instruction word.
	Op          Op                    `json:"opcode"`      // Decoded operation.
	Rd          int                   `json:"rd"`          // Decoded destination register.
	Rs          int                   `json:"rs"`          // Decoded source register.
	Immediate   Word                  `json:"immediate"`   // Latched immediate value.
	Register    [REGISTER_COUNT]Word  `json:"registers"`   // Register bank contents.
	AluResult   Word                  `json:"aluResult"`   // Latched ALU result.
	Zero        bool                  `json:"zero"`        // Zero flag from the last ALU evaluation.
	Halted      bool                  `json:"halted"`      // Terminal halt flag.
	Retired     uint64                `json:"retired"`     // Completed instructions since reset.
}

// Engine is the control finite-state machine plus the datapath it drives.
// It owns the register file, the stores, and all per-instruction latches
// exclusively; steps must not run concurrently against one instance.
type Engine struct {
	Verbose bool // Set to enable verbose logging.

	variant Variant
	alu     Alu
	regs    RegisterFile
	imem    *InstructionStore
	dmem    DataStore

	state State
	pc    Word

	// Latches for the instruction in flight. Overwritten, never
	// accumulated.
	instr  Word
	op     Op
	rd, rs int
	imm    Word
	aluOut Word

	zero   bool
	halted bool

	cycles  uint64
	retired uint64
}

// NewEngine constructs an engine for an encoding variant with the
// instruction store pre-loaded from a program image of at most 256 words.
func NewEngine(variant Variant, program []Word) (e *Engine, err error) {
	imem, err := NewInstructionStore(program)
	if err != nil {
		return
	}

	e = &Engine{
		variant: variant,
		alu:     Alu{Mask: variant.WordMask()},
		imem:    imem,
	}

	return
}

// Defines for the engine configuration.
func (e *Engine) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Variant returns the encoding variant chosen at construction.
func (e *Engine) Variant() Variant {
	return e.variant
}

// Halted reports whether the terminal HALT state has been reached.
func (e *Engine) Halted() bool {
	return e.halted
}

// Reset restores the engine to its power-on state. The instruction store
// keeps its program; everything else is zeroed.
func (e *Engine) Reset() {
	if e.Verbose {
		log.Printf("cpu: reset")
	}

	e.regs.Reset()
	e.dmem.Reset()

	e.state = ST_FETCH
	e.pc = 0
	e.instr = 0
	e.op = OP_NOP
	e.rd = 0
	e.rs = 0
	e.imm = 0
	e.aluOut = 0
	e.zero = false
	e.halted = false
	e.cycles = 0
	e.retired = 0
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Cycle:       e.cycles,
		State:       e.state,
		Pc:          e.pc,
		Instruction: e.instr,
		Op:          e.op,
		Rd:          e.rd,
		Rs:          e.rs,
		Immediate:   e.imm,
		Register:    e.regs.All(),
		AluResult:   e.aluOut,
		Zero:        e.zero,
		Halted:      e.halted,
		Retired:     e.retired,
	}
}

// Data reads a word from the data store, for external observation.
func (e *Engine) Data(addr Word) Word {
	return e.dmem.Read(addr)
}

// Step advances the engine by exactly one clock cycle and returns the
// resulting snapshot. Stepping never fails: address truncation, undefined
// opcodes, and arithmetic wraparound are all total behaviors. Once halted,
// stepping changes nothing.
func (e *Engine) Step() Snapshot {
	if e.halted {
		return e.Snapshot()
	}

	e.cycles++

	switch e.state {
	case ST_FETCH:
		e.instr = e.imem.Read(e.pc)
		e.pc = (e.pc + 1) & e.variant.WordMask()
		e.state = ST_DECODE

	case ST_DECODE:
		var imm Word
		e.op, e.rd, e.rs, imm = e.variant.Decode(e.instr)
		if e.variant == VARIANT_EMBEDDED {
			e.imm = imm
		}
		if e.Verbose {
			log.Printf("cpu: %02x: %v r%v r%v", e.pc-1, e.op, e.rd, e.rs)
		}
		switch {
		case e.op == OP_HLT:
			e.halted = true
			e.state = ST_HALT
		case e.variant.ImmediateWord(e.op):
			e.state = ST_FETCH_IMM
		default:
			e.state = ST_EXECUTE
		}

	case ST_FETCH_IMM:
		e.imm = e.imem.Read(e.pc)
		e.pc = (e.pc + 1) & e.variant.WordMask()
		e.state = ST_EXECUTE

	case ST_EXECUTE:
		a := e.regs.Read(e.rd)
		b := e.regs.Read(e.rs)
		switch e.op {
		case OP_JMP:
			e.pc = e.imm & e.variant.WordMask()
			e.state = ST_WRITEBACK
		case OP_JZ:
			// Tests the flag latched by the last ALU evaluation;
			// the jump itself never evaluates.
			if e.zero {
				e.pc = e.imm & e.variant.WordMask()
			}
			e.state = ST_WRITEBACK
		case OP_LD, OP_ST:
			e.aluOut, e.zero = e.alu.Evaluate(e.op, a, b)
			e.state = ST_MEMORY
		default:
			e.aluOut, e.zero = e.alu.Evaluate(e.op, a, b)
			e.state = ST_WRITEBACK
		}

	case ST_MEMORY:
		a := e.regs.Read(e.rd)
		b := e.regs.Read(e.rs)
		if e.op == OP_ST {
			e.dmem.Write(b, a)
		} else {
			e.aluOut = e.dmem.Read(b)
		}
		e.state = ST_WRITEBACK

	case ST_WRITEBACK:
		if e.op.Writeback() {
			value := e.aluOut
			if e.op == OP_LDI {
				value = e.imm & e.variant.WordMask()
			}
			e.regs.Write(e.rd, value)
		}
		e.retired++
		e.state = ST_FETCH
	}

	return e.Snapshot()
}

// Run steps the engine up to maxCycles times, collecting a snapshot per
// cycle and stopping early once halted.
func (e *Engine) Run(maxCycles int) (trace []Snapshot) {
	for range maxCycles {
		if e.halted {
			return
		}
		trace = append(trace, e.Step())
	}

	return
}

// String returns the current engine state as a string.
func (e *Engine) String() (text string) {
	text = fmt.Sprintf("%9s pc:%02x", e.state, e.pc)
	for n := range REGISTER_COUNT {
		text += fmt.Sprintf(" r%d:%0*x", n, e.variant.HexDigits(), e.regs.Read(n))
	}
	text += fmt.Sprintf(" z:%v", e.zero)
	if e.halted {
		text += " halted"
	}

	return
}
