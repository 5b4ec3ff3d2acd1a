// Package emulator ties the processor engine to an assembled program,
// recording the per-cycle trace consumed by external tooling.
package emulator

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/risclab/risc16/cpu"
	"github.com/risclab/risc16/internal"
)

const (
	DEFAULT_MAX_CYCLES = 100000 // Default cycle cap for a run.
)

var _emulator_defines = map[string]string{
	"MAX_CYCLES": fmt.Sprintf("%v", DEFAULT_MAX_CYCLES),
}

// Emulator state. Engine + program listing + trace.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	*cpu.Engine                // Reference to the processor engine.
	Program     *cpu.Program   // Reference to the currently loaded program listing.
	Trace       []cpu.Snapshot // Per-cycle snapshots since the last reset.
}

// New creates an emulator with a program loaded into the instruction store.
func New(variant cpu.Variant, prog *cpu.Program) (emu *Emulator, err error) {
	emu = &Emulator{}

	err = emu.Load(variant, prog)
	if err != nil {
		emu = nil
	}

	return
}

// Load replaces the engine with one constructed for the program, and
// resets.
func (emu *Emulator) Load(variant cpu.Variant, prog *cpu.Program) (err error) {
	engine, err := cpu.NewEngine(variant, prog.Binary())
	if err != nil {
		return
	}

	emu.Engine = engine
	emu.Program = prog
	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Engine.Defines(),
		emu.Engine.Variant().Defines(),
	)
}

// Assembler returns an assembler for the emulator's encoding variant,
// preloaded with the emulator defines as equates.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Variant: emu.Engine.Variant()}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// Reset the engine and discard the trace.
func (emu *Emulator) Reset() {
	emu.Engine.Verbose = emu.Verbose
	emu.Engine.Reset()
	emu.Trace = emu.Trace[:0]
}

// LineNo returns the source line number for the next instruction to
// execute.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Engine.Snapshot().Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single cycle of the emulator, recording the snapshot.
func (emu *Emulator) Tick() (done bool) {
	snap := emu.Engine.Step()
	emu.Trace = append(emu.Trace, snap)
	done = snap.Halted

	return
}

// Run ticks the emulator until the program halts or the cycle cap is
// reached. A cap of zero or less selects DEFAULT_MAX_CYCLES.
func (emu *Emulator) Run(maxCycles int) (err error) {
	if maxCycles <= 0 {
		maxCycles = DEFAULT_MAX_CYCLES
	}

	for range maxCycles {
		if emu.Tick() {
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrCycleLimit}

	return
}

// WriteTrace writes the recorded trace as a JSON array.
func (emu *Emulator) WriteTrace(w io.Writer) (err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(emu.Trace)
}
