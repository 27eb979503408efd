// Package chip8 implements the CHIP-8 interpreter core: memory, registers,
// stack, display buffer, timers, and the fetch-decode-execute loop.
//
// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
package chip8

import (
	"math/rand"
	"time"
)

// CHIP-8 machine constants
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr

	// TimerHz is the fixed logical rate of the delay and sound timers.
	TimerHz = 60

	numRegisters = 16
	numKeys      = 16
)

// Machine is an emulated CHIP-8 machine. It is exclusively owned by one
// driving loop: Step and TickTimers must not be called concurrently.
//
// The machine runs on two independent clocks. The instruction clock is
// whatever rate the driving loop calls Step at; the timer clock is a fixed
// 60 Hz driven through TickTimers. The core imposes no ratio between them.
type Machine struct {
	regV   [numRegisters]uint8 // 16 general purpose 8-bit registers, V0-VF
	regI   uint16              // index register, generally holds memory addresses
	pc     uint16              // program counter
	stack  Stack               // return-address stack for CALL/RET
	memory [totalMemory]uint8  // 4 KB global memory

	delayTimer uint8
	soundTimer uint8

	display Display

	// Key state is supplied by the host via SetKey; prevKeys is the snapshot
	// from the previous Step, used to derive press edges for FX0A.
	keys     [numKeys]bool
	prevKeys [numKeys]bool

	// FX0A suspension state. While waiting is set, Step is a no-op until a
	// new press edge appears; the pressed key index then lands in V[waitReg].
	waiting bool
	waitReg uint8

	randByte func() uint8
}

// NewMachine creates a machine with zeroed registers, an empty stack, a
// cleared display, and the built-in font copied into memory. PC starts at
// 0x200, where Load places the program.
func NewMachine() *Machine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m := &Machine{
		pc:       pcStartAddr,
		randByte: func() uint8 { return uint8(rng.Intn(256)) },
	}
	copy(m.memory[fontStartAddr:], fontset)
	return m
}

// SetRandSource replaces the random byte source used by CXNN. Tests use it to
// substitute a deterministic generator.
func (m *Machine) SetRandSource(fn func() uint8) {
	m.randByte = fn
}

// Load copies a CHIP-8 program into memory starting at 0x200. It fails with
// ErrProgramTooLarge when the program does not fit the available space.
func (m *Machine) Load(program []byte) error {
	if len(program) > maxProgramSize {
		return ErrProgramTooLarge
	}
	copy(m.memory[pcStartAddr:], program)
	return nil
}

// Display returns the machine's framebuffer. The renderer polls TakeDirty on
// it and reads pixels when a repaint is due.
func (m *Machine) Display() *Display {
	return &m.display
}

// PC returns the current program counter. After a Step error it points at the
// faulting instruction, so a caller that wants to continue past the fault can
// SetPC(m.PC() + 2).
func (m *Machine) PC() uint16 {
	return m.pc
}

// SetPC overwrites the program counter.
func (m *Machine) SetPC(addr uint16) {
	m.pc = addr
}

// ReadMemory returns the byte at addr. Debuggers and fault reporting use it
// to inspect the instruction a ROM was executing.
func (m *Machine) ReadMemory(addr uint16) (uint8, error) {
	if int(addr) >= totalMemory {
		return 0, MemoryOutOfBoundsError{Addr: uint32(addr)}
	}
	return m.memory[addr], nil
}

// SetKey records the pressed state of one of the 16 keypad keys. The host
// feeds the full key state before each Step/TickTimers pair; press edges for
// the blocking key wait are derived internally from consecutive snapshots.
func (m *Machine) SetKey(key uint8, pressed bool) {
	if key < numKeys {
		m.keys[key] = pressed
	}
}

// WaitingForKey reports whether the machine is suspended on an FX0A
// instruction.
func (m *Machine) WaitingForKey() bool {
	return m.waiting
}

// TickTimers advances the timer clock by one 60 Hz tick, decrementing the
// delay and sound timers toward zero. It is never driven by Step.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// DelayTimer returns the value of the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the value of the sound timer.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SoundActive reports whether the audio device should be emitting a tone.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// Step executes exactly one fetch-decode-execute cycle. While the machine is
// suspended on FX0A it only checks for a new key press edge and returns.
//
// On error the machine state is exactly the pre-fetch state: faulting
// instructions perform their checks before any mutation, and the PC is
// restored to the faulting instruction's address.
func (m *Machine) Step() error {
	defer m.snapshotKeys()

	if m.waiting {
		if key, ok := m.pressEdge(); ok {
			m.regV[m.waitReg] = key
			m.waiting = false
			m.pc += 2
		}
		return nil
	}

	if int(m.pc)+1 >= totalMemory {
		return MemoryOutOfBoundsError{Addr: uint32(m.pc)}
	}
	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += 2

	if err := m.execute(Decode(word)); err != nil {
		m.pc -= 2
		return err
	}
	return nil
}

func (m *Machine) execute(ins Instruction) error {
	switch ins.Op {
	case OpClearScreen:
		m.display.Clear()
	case OpReturn:
		addr, err := m.stack.Pop()
		if err != nil {
			return err
		}
		m.pc = addr
	case OpJump:
		m.pc = ins.NNN
	case OpCall:
		if err := m.stack.Push(m.pc); err != nil {
			return err
		}
		m.pc = ins.NNN
	case OpSkipEqImm:
		if m.regV[ins.X] == ins.NN {
			m.pc += 2
		}
	case OpSkipNeImm:
		if m.regV[ins.X] != ins.NN {
			m.pc += 2
		}
	case OpSkipEqReg:
		if m.regV[ins.X] == m.regV[ins.Y] {
			m.pc += 2
		}
	case OpLoadImm:
		m.regV[ins.X] = ins.NN
	case OpAddImm:
		// No carry flag for the immediate form.
		m.regV[ins.X] += ins.NN
	case OpMove:
		m.regV[ins.X] = m.regV[ins.Y]
	case OpOr:
		m.regV[ins.X] |= m.regV[ins.Y]
	case OpAnd:
		m.regV[ins.X] &= m.regV[ins.Y]
	case OpXor:
		m.regV[ins.X] ^= m.regV[ins.Y]
	case OpAdd:
		sum := uint16(m.regV[ins.X]) + uint16(m.regV[ins.Y])
		carry := uint8(0)
		if sum > 0xFF {
			carry = 1
		}
		// The flag write comes after the result write, so X = F keeps the
		// flag, not the sum.
		m.regV[ins.X] = uint8(sum)
		m.regV[0xF] = carry
	case OpSub:
		notBorrow := uint8(0)
		if m.regV[ins.X] >= m.regV[ins.Y] {
			notBorrow = 1
		}
		m.regV[ins.X] -= m.regV[ins.Y]
		m.regV[0xF] = notBorrow
	case OpShiftRight:
		// Shifts the X register in place; the Y operand is ignored.
		shiftedOut := m.regV[ins.X] & 0x01
		m.regV[ins.X] >>= 1
		m.regV[0xF] = shiftedOut
	case OpSubN:
		notBorrow := uint8(0)
		if m.regV[ins.Y] >= m.regV[ins.X] {
			notBorrow = 1
		}
		m.regV[ins.X] = m.regV[ins.Y] - m.regV[ins.X]
		m.regV[0xF] = notBorrow
	case OpShiftLeft:
		shiftedOut := m.regV[ins.X] >> 7
		m.regV[ins.X] <<= 1
		m.regV[0xF] = shiftedOut
	case OpSkipNeReg:
		if m.regV[ins.X] != m.regV[ins.Y] {
			m.pc += 2
		}
	case OpLoadIndex:
		m.regI = ins.NNN
	case OpJumpOffset:
		m.pc = ins.NNN + uint16(m.regV[0x0])
	case OpRandom:
		m.regV[ins.X] = m.randByte() & ins.NN
	case OpDraw:
		end := uint32(m.regI) + uint32(ins.N)
		if end > totalMemory {
			return MemoryOutOfBoundsError{Addr: end - 1}
		}
		rows := m.memory[m.regI:end]
		collision := m.display.DrawSprite(m.regV[ins.X], m.regV[ins.Y], rows)
		if collision {
			m.regV[0xF] = 1
		} else {
			m.regV[0xF] = 0
		}
	case OpSkipKeyPressed:
		if m.keys[m.regV[ins.X]&0xF] {
			m.pc += 2
		}
	case OpSkipKeyNotPressed:
		if !m.keys[m.regV[ins.X]&0xF] {
			m.pc += 2
		}
	case OpReadDelay:
		m.regV[ins.X] = m.delayTimer
	case OpWaitKey:
		// Suspend instead of spinning: restore PC to this instruction and
		// let Step resolve the wait on a later press edge.
		m.waiting = true
		m.waitReg = ins.X
		m.pc -= 2
	case OpSetDelay:
		m.delayTimer = m.regV[ins.X]
	case OpSetSound:
		m.soundTimer = m.regV[ins.X]
	case OpAddIndex:
		sum := m.regI + uint16(m.regV[ins.X])
		if sum < m.regI {
			m.regV[0xF] = 1
		} else {
			m.regV[0xF] = 0
		}
		m.regI = sum
	case OpFontChar:
		m.regI = fontStartAddr + fontGlyphSize*uint16(m.regV[ins.X]&0xF)
	case OpStoreBCD:
		if uint32(m.regI)+3 > totalMemory {
			return MemoryOutOfBoundsError{Addr: uint32(m.regI) + 2}
		}
		v := m.regV[ins.X]
		m.memory[m.regI] = v / 100
		m.memory[m.regI+1] = (v / 10) % 10
		m.memory[m.regI+2] = v % 10
	case OpStoreRegs:
		if uint32(m.regI)+uint32(ins.X)+1 > totalMemory {
			return MemoryOutOfBoundsError{Addr: uint32(m.regI) + uint32(ins.X)}
		}
		// I is left unmodified.
		for i := uint16(0); i <= uint16(ins.X); i++ {
			m.memory[m.regI+i] = m.regV[i]
		}
	case OpLoadRegs:
		if uint32(m.regI)+uint32(ins.X)+1 > totalMemory {
			return MemoryOutOfBoundsError{Addr: uint32(m.regI) + uint32(ins.X)}
		}
		for i := uint16(0); i <= uint16(ins.X); i++ {
			m.regV[i] = m.memory[m.regI+i]
		}
	default:
		return UnknownOpcodeError{Word: ins.Word}
	}
	return nil
}

// pressEdge returns the lowest key that is down now but was up in the
// previous snapshot.
func (m *Machine) pressEdge() (uint8, bool) {
	for k := uint8(0); k < numKeys; k++ {
		if m.keys[k] && !m.prevKeys[k] {
			return k, true
		}
	}
	return 0, false
}

func (m *Machine) snapshotKeys() {
	m.prevKeys = m.keys
}
