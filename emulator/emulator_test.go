package emulator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risclab/risc16/cpu"
)

func doAssemble(t *testing.T, emu *Emulator, program []string) *cpu.Program {
	t.Helper()

	asm := emu.Assembler()
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	return prog
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Engine)
	assert.False(emu.Halted())
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("256", defines["MEM_SIZE"])
	assert.Equal("4", defines["REGISTER_COUNT"])
	assert.Equal("16", defines["WIDTH"])
	assert.Equal("0xffff", defines["WORD_MASK"])

	// Defines arrive in the assembler as equates.
	asm := emu.Assembler()
	_, err = asm.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal("16", asm.Equate["WIDTH"])
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	prog := doAssemble(t, emu, []string{
		"LDI R0, 5",
		"LDI R1, 3",
		"ADD R0, R1",
		"LDI R2, 2",
		"SUB R0, R2",
		"LDI R3, 0",
		"ST R0, [R3]",
		"HLT",
	})

	err = emu.Load(cpu.VARIANT_EMBEDDED, prog)
	require.NoError(t, err)

	err = emu.Run(0)
	assert.NoError(err)
	assert.True(emu.Halted())

	snap := emu.Engine.Snapshot()
	assert.Equal([cpu.REGISTER_COUNT]cpu.Word{6, 3, 2, 0}, snap.Register)
	assert.Equal(cpu.Word(6), emu.Engine.Data(0))

	// Every cycle was recorded.
	assert.Equal(int(snap.Cycle), len(emu.Trace))
	assert.Equal(snap, emu.Trace[len(emu.Trace)-1])
}

func TestEmulatorCycleLimit(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	prog := doAssemble(t, emu, []string{
		"loop: NOP",
		"JMP loop",
	})

	err = emu.Load(cpu.VARIANT_EMBEDDED, prog)
	require.NoError(t, err)

	err = emu.Run(10)
	assert.ErrorIs(err, ErrCycleLimit)

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(2, runtime.LineNo)
	assert.Equal(10, len(emu.Trace))
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	prog := doAssemble(t, emu, []string{
		"LDI R0, 1",
		"LDI R1, 2",
		"HLT",
	})

	err = emu.Load(cpu.VARIANT_EMBEDDED, prog)
	require.NoError(t, err)

	assert.Equal(1, emu.LineNo())

	// Step through the first instruction; the PC then points at line 2.
	for range 4 {
		emu.Tick()
	}
	assert.Equal(2, emu.LineNo())
}

func TestEmulatorWriteTrace(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	prog := doAssemble(t, emu, []string{
		"LDI R0, 5",
		"HLT",
	})

	err = emu.Load(cpu.VARIANT_EMBEDDED, prog)
	require.NoError(t, err)
	require.NoError(t, emu.Run(0))

	buf := &bytes.Buffer{}
	err = emu.WriteTrace(buf)
	require.NoError(t, err)

	var decoded []map[string]any
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)

	assert.Equal(len(emu.Trace), len(decoded))
	assert.Equal("DECODE", decoded[0]["state"])
	assert.Equal("LDI", decoded[1]["opcode"])

	last := decoded[len(decoded)-1]
	assert.Equal("HALT", last["state"])
	assert.Equal(true, last["halted"])
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu, err := New(cpu.VARIANT_EMBEDDED, &cpu.Program{Variant: cpu.VARIANT_EMBEDDED})
	require.NoError(t, err)

	prog := doAssemble(t, emu, []string{
		"LDI R0, 5",
		"HLT",
	})

	err = emu.Load(cpu.VARIANT_EMBEDDED, prog)
	require.NoError(t, err)
	require.NoError(t, emu.Run(0))
	assert.True(emu.Halted())

	emu.Reset()
	assert.False(emu.Halted())
	assert.Equal(0, len(emu.Trace))
	assert.Equal(cpu.Word(0), emu.Engine.Snapshot().Register[0])
}
