package cpu

const (
	REGISTER_COUNT = 4 // Number of general purpose registers.
)

// RegisterFile models the four-entry register bank: asynchronous read,
// synchronous write. Indexes come from 2-bit instruction fields and are
// always in range.
type RegisterFile struct {
	cell [REGISTER_COUNT]Word
}

// Read returns the current value of a register.
func (rf *RegisterFile) Read(index int) Word {
	return rf.cell[index]
}

// Write commits a value to a register. The engine calls this only in its
// writeback cycle, so the new value is visible from the following cycle.
func (rf *RegisterFile) Write(index int, value Word) {
	rf.cell[index] = value
}

// All returns a copy of the register bank for external observation.
func (rf *RegisterFile) All() [REGISTER_COUNT]Word {
	return rf.cell
}

// Reset zeroes every register.
func (rf *RegisterFile) Reset() {
	clear(rf.cell[:])
}
