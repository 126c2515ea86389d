package cpu

import (
	"errors"

	"github.com/gbarletta/varch-vm/translate"
)

var f = translate.From

var (
	// Machine construction errors
	ErrMemorySize = errors.New(f("memory size invalid"))

	// Memory errors
	ErrMemoryBounds = errors.New(f("memory access out of range"))
	ErrLoadBounds   = errors.New(f("load past end of memory"))

	// Instruction decode errors
	ErrOpcodeUndefined = errors.New(f("opcode undefined"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrFlagInvalid     = errors.New(f("flag invalid"))

	// Stack errors
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
)

// ErrFault is a fatal execution fault. The machine that raised it
// does not execute any further instruction.
type ErrFault struct {
	Pc      uint16 // Address of the faulting instruction's opcode.
	Opcode  Opcode // Faulting opcode.
	Address int    // Faulting memory address, opcode, or operand value.
	Err     error  // Kind of fault.
}

func (err *ErrFault) Error() string {
	return f("fault at pc 0x%04x (%v): %v 0x%04x", err.Pc, err.Opcode, err.Err, err.Address)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
