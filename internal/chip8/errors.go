package chip8

import (
	"errors"
	"fmt"
)

// Errors reported by the interpreter core. Step never terminates the process;
// the driving loop decides whether to halt, diagnose, or skip past the fault.
var (
	ErrProgramTooLarge = errors.New("program size exceeds the available program space")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
)

// UnknownOpcodeError reports an instruction word outside the recognized set.
type UnknownOpcodeError struct {
	Word uint16
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode: %04X", e.Word)
}

// MemoryOutOfBoundsError reports an instruction that would access memory
// outside the 4 KB address space.
type MemoryOutOfBoundsError struct {
	Addr uint32
}

func (e MemoryOutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds: %04X", e.Addr)
}
