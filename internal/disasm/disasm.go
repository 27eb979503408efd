// Package disasm resolves CHIP-8 instruction words to assembler mnemonics.
// It is used for diagnostics only: step errors and debug traces name the
// instruction a ROM was executing.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Name returns the mnemonic of the instruction word, or an empty string for
// words outside the recognized instruction set.
func Name(word uint16) string {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return ""
}

// Sprint formats an instruction word with its mnemonic for log output.
func Sprint(word uint16) string {
	name := Name(word)
	if name == "" {
		name = "???"
	}
	return fmt.Sprintf("%04X (%s)", word, name)
}
