package cpu

const (
	MEM_SIZE  = 256                // Words in each of the instruction and data stores.
	ADDR_MASK = Word(MEM_SIZE - 1) // Addresses are truncated to the low 8 bits.
)

// InstructionStore is the fixed 256-word program memory, loaded once at
// construction and read-only during execution.
type InstructionStore struct {
	cell [MEM_SIZE]Word
}

// NewInstructionStore loads a program image, zero-filling unused addresses.
func NewInstructionStore(program []Word) (im *InstructionStore, err error) {
	if len(program) > MEM_SIZE {
		err = ErrProgramTooLarge
		return
	}

	im = &InstructionStore{}
	copy(im.cell[:], program)

	return
}

// Read returns the word at an address, truncated to the low 8 bits.
func (im *InstructionStore) Read(addr Word) Word {
	return im.cell[addr&ADDR_MASK]
}

// DataStore is the fixed 256-word data memory, zeroed at reset.
type DataStore struct {
	cell [MEM_SIZE]Word
}

// Read returns the word at an address, truncated to the low 8 bits.
func (dm *DataStore) Read(addr Word) Word {
	return dm.cell[addr&ADDR_MASK]
}

// Write stores a word at an address, truncated to the low 8 bits. The value
// is observable on the next read.
func (dm *DataStore) Write(addr Word, value Word) {
	dm.cell[addr&ADDR_MASK] = value
}

// Reset zeroes the data store.
func (dm *DataStore) Reset() {
	clear(dm.cell[:])
}
