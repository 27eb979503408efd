package chip8

// Op identifies the operation selected by an instruction word.
type Op uint8

// The recognized operations. OpUnknown covers every word outside the set so
// that the executor can report an unsupported opcode instead of panicking.
const (
	OpUnknown Op = iota
	OpClearScreen
	OpReturn
	OpJump
	OpCall
	OpSkipEqImm
	OpSkipNeImm
	OpSkipEqReg
	OpLoadImm
	OpAddImm
	OpMove
	OpOr
	OpAnd
	OpXor
	OpAdd
	OpSub
	OpShiftRight
	OpSubN
	OpShiftLeft
	OpSkipNeReg
	OpLoadIndex
	OpJumpOffset
	OpRandom
	OpDraw
	OpSkipKeyPressed
	OpSkipKeyNotPressed
	OpReadDelay
	OpWaitKey
	OpSetDelay
	OpSetSound
	OpAddIndex
	OpFontChar
	OpStoreBCD
	OpStoreRegs
	OpLoadRegs
)

// Instruction is a decoded instruction word. It is produced fresh on every
// fetch and never persisted. All operand fields are extracted up front per
// the standard nibble layout; which ones are meaningful depends on Op.
type Instruction struct {
	Op   Op
	Word uint16 // the raw instruction word, kept for diagnostics

	X   uint8  // bits 8-11, first register index
	Y   uint8  // bits 4-7, second register index
	N   uint8  // bits 0-3, nibble operand
	NN  uint8  // bits 0-7, immediate byte
	NNN uint16 // bits 0-11, address
}

// Decode maps a 16-bit instruction word to its operation and operands. It is
// pure and total: every input decodes to exactly one Instruction, with
// OpUnknown for unrecognized words. No machine state is read or written.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Op:   OpUnknown,
		Word: word,
		X:    uint8((word >> 8) & 0x000F),
		Y:    uint8((word >> 4) & 0x000F),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}

	switch word & 0xF000 {
	case 0x0000:
		switch word {
		case 0x00E0:
			ins.Op = OpClearScreen
		case 0x00EE:
			ins.Op = OpReturn
		}
	case 0x1000:
		ins.Op = OpJump
	case 0x2000:
		ins.Op = OpCall
	case 0x3000:
		ins.Op = OpSkipEqImm
	case 0x4000:
		ins.Op = OpSkipNeImm
	case 0x5000:
		if ins.N == 0x0 {
			ins.Op = OpSkipEqReg
		}
	case 0x6000:
		ins.Op = OpLoadImm
	case 0x7000:
		ins.Op = OpAddImm
	case 0x8000:
		switch ins.N {
		case 0x0:
			ins.Op = OpMove
		case 0x1:
			ins.Op = OpOr
		case 0x2:
			ins.Op = OpAnd
		case 0x3:
			ins.Op = OpXor
		case 0x4:
			ins.Op = OpAdd
		case 0x5:
			ins.Op = OpSub
		case 0x6:
			ins.Op = OpShiftRight
		case 0x7:
			ins.Op = OpSubN
		case 0xE:
			ins.Op = OpShiftLeft
		}
	case 0x9000:
		if ins.N == 0x0 {
			ins.Op = OpSkipNeReg
		}
	case 0xA000:
		ins.Op = OpLoadIndex
	case 0xB000:
		ins.Op = OpJumpOffset
	case 0xC000:
		ins.Op = OpRandom
	case 0xD000:
		ins.Op = OpDraw
	case 0xE000:
		switch ins.NN {
		case 0x9E:
			ins.Op = OpSkipKeyPressed
		case 0xA1:
			ins.Op = OpSkipKeyNotPressed
		}
	case 0xF000:
		switch ins.NN {
		case 0x07:
			ins.Op = OpReadDelay
		case 0x0A:
			ins.Op = OpWaitKey
		case 0x15:
			ins.Op = OpSetDelay
		case 0x18:
			ins.Op = OpSetSound
		case 0x1E:
			ins.Op = OpAddIndex
		case 0x29:
			ins.Op = OpFontChar
		case 0x33:
			ins.Op = OpStoreBCD
		case 0x55:
			ins.Op = OpStoreRegs
		case 0x65:
			ins.Op = OpLoadRegs
		}
	}
	return ins
}
