// Package tui is the terminal frontend: raw mode input, ANSI half-block
// rendering, and the terminal bell as beeper.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mnafees/chip8/internal/chip8"
	"github.com/mnafees/chip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const frameTime = time.Second / chip8.TimerHz

// Terminals report key presses but no release events, so a pressed key is
// held down for this many frames before it is released.
const keyHoldFrames = 6

// IO is the input/output abstraction layer for the terminal frontend
type IO struct {
	machine *chip8.Machine
	logger  *log.Logger

	cyclesPerFrame int
	mute           bool

	fd       int
	oldState *term.State
	input    chan byte

	keyHold [16]int
	beeping bool
}

// NewIO returns a new I/O instance for the terminal frontend.
func NewIO(machine *chip8.Machine, logger *log.Logger, mute bool, cpuHz int) *IO {
	cyclesPerFrame := cpuHz / chip8.TimerHz
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}
	return &IO{
		machine:        machine,
		logger:         logger,
		mute:           mute,
		cyclesPerFrame: cyclesPerFrame,
		input:          make(chan byte, 64),
	}
}

// Setup switches the terminal into raw mode and starts the stdin reader.
func (io *IO) Setup() error {
	io.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(io.fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	io.oldState = oldState

	// Hide the cursor and clear the screen.
	fmt.Print("\x1b[?25l\x1b[2J")

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n > 0 {
				io.input <- buf[0]
			}
		}
	}()
	return nil
}

// Destroy restores the terminal. It should be called before quitting.
func (io *IO) Destroy() {
	if io.oldState != nil {
		_ = term.Restore(io.fd, io.oldState)
		io.oldState = nil
	}
	// Show the cursor again and move past the rendered frame.
	fmt.Print("\x1b[?25h\n")
}

// Run drives the machine until Escape is pressed, the context is canceled,
// or the ROM faults.
func (io *IO) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if quit := io.readKeys(); quit {
			return nil
		}
		io.releaseKeys()

		for i := 0; i < io.cyclesPerFrame; i++ {
			if err := io.machine.Step(); err != nil {
				io.reportFault(err)
				return err
			}
		}
		io.machine.TickTimers()

		io.beep()
		if io.machine.Display().TakeDirty() {
			io.render()
		}
	}
}

// readKeys drains buffered stdin bytes into keypad state. It returns true
// when Escape was pressed.
func (io *IO) readKeys() bool {
	for {
		select {
		case b := <-io.input:
			if b == 0x1b { // Escape
				return true
			}
			code := keymap(b)
			if code < 0 {
				continue
			}
			io.machine.SetKey(uint8(code), true)
			io.keyHold[code] = keyHoldFrames
		default:
			return false
		}
	}
}

// releaseKeys counts down held keys and releases the expired ones.
func (io *IO) releaseKeys() {
	for k := range io.keyHold {
		if io.keyHold[k] == 0 {
			continue
		}
		io.keyHold[k]--
		if io.keyHold[k] == 0 {
			io.machine.SetKey(uint8(k), false)
		}
	}
}

// beep rings the terminal bell when the sound timer starts running.
func (io *IO) beep() {
	active := io.machine.SoundActive()
	if active && !io.beeping && !io.mute {
		fmt.Print("\x07")
	}
	io.beeping = active
}

// render repaints the framebuffer using half-block glyphs, two pixel rows
// per terminal line.
func (io *IO) render() {
	pixels := io.machine.Display().Pixels()
	var b strings.Builder
	b.WriteString("\x1b[H")
	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := 0; x < chip8.ScreenWidth; x++ {
			top := pixels[x][y]
			bottom := pixels[x][y+1]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("\r\n")
	}
	fmt.Print(b.String())
}

// reportFault logs a step error together with the faulting instruction.
func (io *IO) reportFault(err error) {
	pc := io.machine.PC()
	hi, err1 := io.machine.ReadMemory(pc)
	lo, err2 := io.machine.ReadMemory(pc + 1)
	if err1 == nil && err2 == nil {
		word := uint16(hi)<<8 | uint16(lo)
		io.logger.Error("Execution fault",
			log.Err(err),
			log.String("pc", fmt.Sprintf("%04X", pc)),
			log.String("instruction", disasm.Sprint(word)))
		return
	}
	io.logger.Error("Execution fault",
		log.Err(err),
		log.String("pc", fmt.Sprintf("%04X", pc)))
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8, with the
// same layout as the SDL frontend.
func keymap(b byte) int8 {
	switch b {
	case '1':
		return 0x1
	case '2':
		return 0x2
	case '3':
		return 0x3
	case '4':
		return 0xC
	case 'q':
		return 0x4
	case 'w':
		return 0x5
	case 'e':
		return 0x6
	case 'r':
		return 0xD
	case 'a':
		return 0x7
	case 's':
		return 0x8
	case 'd':
		return 0x9
	case 'f':
		return 0xE
	case 'z':
		return 0xA
	case 'x':
		return 0x0
	case 'c':
		return 0xB
	case 'v':
		return 0xF
	default:
		return -1
	}
}
