package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want Instruction
	}{
		{"cls", 0x00E0, Instruction{Op: OpClearScreen, Word: 0x00E0, NN: 0xE0, N: 0x0, Y: 0xE, NNN: 0x0E0}},
		{"ret", 0x00EE, Instruction{Op: OpReturn, Word: 0x00EE, NN: 0xEE, N: 0xE, Y: 0xE, NNN: 0x0EE}},
		{"jp", 0x1ABC, Instruction{Op: OpJump, Word: 0x1ABC, X: 0xA, Y: 0xB, N: 0xC, NN: 0xBC, NNN: 0xABC}},
		{"call", 0x2ABC, Instruction{Op: OpCall, Word: 0x2ABC, X: 0xA, Y: 0xB, N: 0xC, NN: 0xBC, NNN: 0xABC}},
		{"se imm", 0x3122, Instruction{Op: OpSkipEqImm, Word: 0x3122, X: 0x1, Y: 0x2, N: 0x2, NN: 0x22, NNN: 0x122}},
		{"sne imm", 0x4122, Instruction{Op: OpSkipNeImm, Word: 0x4122, X: 0x1, Y: 0x2, N: 0x2, NN: 0x22, NNN: 0x122}},
		{"se reg", 0x5120, Instruction{Op: OpSkipEqReg, Word: 0x5120, X: 0x1, Y: 0x2, NN: 0x20, NNN: 0x120}},
		{"ld imm", 0x6122, Instruction{Op: OpLoadImm, Word: 0x6122, X: 0x1, Y: 0x2, N: 0x2, NN: 0x22, NNN: 0x122}},
		{"add imm", 0x7122, Instruction{Op: OpAddImm, Word: 0x7122, X: 0x1, Y: 0x2, N: 0x2, NN: 0x22, NNN: 0x122}},
		{"ld reg", 0x8120, Instruction{Op: OpMove, Word: 0x8120, X: 0x1, Y: 0x2, NN: 0x20, NNN: 0x120}},
		{"or", 0x8121, Instruction{Op: OpOr, Word: 0x8121, X: 0x1, Y: 0x2, N: 0x1, NN: 0x21, NNN: 0x121}},
		{"and", 0x8122, Instruction{Op: OpAnd, Word: 0x8122, X: 0x1, Y: 0x2, N: 0x2, NN: 0x22, NNN: 0x122}},
		{"xor", 0x8123, Instruction{Op: OpXor, Word: 0x8123, X: 0x1, Y: 0x2, N: 0x3, NN: 0x23, NNN: 0x123}},
		{"add reg", 0x8124, Instruction{Op: OpAdd, Word: 0x8124, X: 0x1, Y: 0x2, N: 0x4, NN: 0x24, NNN: 0x124}},
		{"sub", 0x8125, Instruction{Op: OpSub, Word: 0x8125, X: 0x1, Y: 0x2, N: 0x5, NN: 0x25, NNN: 0x125}},
		{"shr", 0x8126, Instruction{Op: OpShiftRight, Word: 0x8126, X: 0x1, Y: 0x2, N: 0x6, NN: 0x26, NNN: 0x126}},
		{"subn", 0x8127, Instruction{Op: OpSubN, Word: 0x8127, X: 0x1, Y: 0x2, N: 0x7, NN: 0x27, NNN: 0x127}},
		{"shl", 0x812E, Instruction{Op: OpShiftLeft, Word: 0x812E, X: 0x1, Y: 0x2, N: 0xE, NN: 0x2E, NNN: 0x12E}},
		{"sne reg", 0x9120, Instruction{Op: OpSkipNeReg, Word: 0x9120, X: 0x1, Y: 0x2, NN: 0x20, NNN: 0x120}},
		{"ld i", 0xAABC, Instruction{Op: OpLoadIndex, Word: 0xAABC, X: 0xA, Y: 0xB, N: 0xC, NN: 0xBC, NNN: 0xABC}},
		{"jp v0", 0xBABC, Instruction{Op: OpJumpOffset, Word: 0xBABC, X: 0xA, Y: 0xB, N: 0xC, NN: 0xBC, NNN: 0xABC}},
		{"rnd", 0xC1FF, Instruction{Op: OpRandom, Word: 0xC1FF, X: 0x1, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0x1FF}},
		{"drw", 0xD125, Instruction{Op: OpDraw, Word: 0xD125, X: 0x1, Y: 0x2, N: 0x5, NN: 0x25, NNN: 0x125}},
		{"skp", 0xE19E, Instruction{Op: OpSkipKeyPressed, Word: 0xE19E, X: 0x1, Y: 0x9, N: 0xE, NN: 0x9E, NNN: 0x19E}},
		{"sknp", 0xE1A1, Instruction{Op: OpSkipKeyNotPressed, Word: 0xE1A1, X: 0x1, Y: 0xA, N: 0x1, NN: 0xA1, NNN: 0x1A1}},
		{"ld vx dt", 0xF107, Instruction{Op: OpReadDelay, Word: 0xF107, X: 0x1, N: 0x7, NN: 0x07, NNN: 0x107}},
		{"ld vx k", 0xF10A, Instruction{Op: OpWaitKey, Word: 0xF10A, X: 0x1, N: 0xA, NN: 0x0A, NNN: 0x10A}},
		{"ld dt vx", 0xF115, Instruction{Op: OpSetDelay, Word: 0xF115, X: 0x1, Y: 0x1, N: 0x5, NN: 0x15, NNN: 0x115}},
		{"ld st vx", 0xF118, Instruction{Op: OpSetSound, Word: 0xF118, X: 0x1, Y: 0x1, N: 0x8, NN: 0x18, NNN: 0x118}},
		{"add i vx", 0xF11E, Instruction{Op: OpAddIndex, Word: 0xF11E, X: 0x1, Y: 0x1, N: 0xE, NN: 0x1E, NNN: 0x11E}},
		{"ld f vx", 0xF129, Instruction{Op: OpFontChar, Word: 0xF129, X: 0x1, Y: 0x2, N: 0x9, NN: 0x29, NNN: 0x129}},
		{"ld b vx", 0xF133, Instruction{Op: OpStoreBCD, Word: 0xF133, X: 0x1, Y: 0x3, N: 0x3, NN: 0x33, NNN: 0x133}},
		{"ld [i] vx", 0xF155, Instruction{Op: OpStoreRegs, Word: 0xF155, X: 0x1, Y: 0x5, N: 0x5, NN: 0x55, NNN: 0x155}},
		{"ld vx [i]", 0xF165, Instruction{Op: OpLoadRegs, Word: 0xF165, X: 0x1, Y: 0x6, N: 0x5, NN: 0x65, NNN: 0x165}},
		{"sys ignored", 0x0123, Instruction{Op: OpUnknown, Word: 0x0123, X: 0x1, Y: 0x2, N: 0x3, NN: 0x23, NNN: 0x123}},
		{"bad 5xxx tail", 0x5121, Instruction{Op: OpUnknown, Word: 0x5121, X: 0x1, Y: 0x2, N: 0x1, NN: 0x21, NNN: 0x121}},
		{"bad 8xxx tail", 0x8128, Instruction{Op: OpUnknown, Word: 0x8128, X: 0x1, Y: 0x2, N: 0x8, NN: 0x28, NNN: 0x128}},
		{"bad 9xxx tail", 0x9121, Instruction{Op: OpUnknown, Word: 0x9121, X: 0x1, Y: 0x2, N: 0x1, NN: 0x21, NNN: 0x121}},
		{"bad exxx tail", 0xE1FF, Instruction{Op: OpUnknown, Word: 0xE1FF, X: 0x1, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0x1FF}},
		{"bad fxxx tail", 0xF1FF, Instruction{Op: OpUnknown, Word: 0xF1FF, X: 0x1, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0x1FF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.word))
		})
	}
}

// Decode is total and deterministic over the full 16-bit input space.
func TestDecode_Total(t *testing.T) {
	for word := 0; word <= 0xFFFF; word++ {
		first := Decode(uint16(word))
		second := Decode(uint16(word))
		assert.Equal(t, first, second)
		assert.Equal(t, uint16(word), first.Word)
	}
}
