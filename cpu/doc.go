// Package cpu implements the cycle-accurate model of the RISC16 processor
// and its assembler.
//
// The processor is a multi-cycle, non-pipelined machine: a control engine
// steps an explicit FETCH/DECODE/EXECUTE/MEMORY/WRITEBACK state machine,
// driving an ALU, a four-entry register file, a 256-word instruction store
// and a 256-word data store. Two instruction encodings are supported: the
// compact 8-bit form with out-of-band immediates, and the embedded 16-bit
// form with the immediate packed into the instruction word.
//
// The assembler provides the processor's assembly language, supporting
// labels, equates, and compile-time expression evaluation.
package cpu
