// Package sdl is the SDL2 frontend: it owns the window, the repaint loop,
// the QWERTY keymap, and the pacing of the machine's two clocks.
package sdl

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chip8/internal/chip8"
	"github.com/mnafees/chip8/internal/disasm"
	"github.com/mnafees/chip8/pkg/beep"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	pixelSize = 20

	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA

	frameTime = time.Second / chip8.TimerHz
)

// IO is the input/output abstraction layer for the machine
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	machine *chip8.Machine
	beeper  *beep.Beeper
	logger  *log.Logger

	cyclesPerFrame int
}

// NewIO returns a new I/O instance for the SDL frontend. beeper may be nil
// when sound is muted. cpuHz is the instruction clock rate; the timer clock
// stays at 60 Hz.
func NewIO(machine *chip8.Machine, logger *log.Logger, beeper *beep.Beeper, cpuHz int) *IO {
	cyclesPerFrame := cpuHz / chip8.TimerHz
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}
	return &IO{
		machine:        machine,
		beeper:         beeper,
		logger:         logger,
		cyclesPerFrame: cyclesPerFrame,
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.ScreenWidth*pixelSize, chip8.ScreenHeight*pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	io.surface.FillRect(nil, screenColor)
	io.window.UpdateSurface()
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		io.window.Destroy()
	}
	sdl.Quit()
}

// Run drives the machine until the window closes, the context is canceled,
// or the ROM faults. Each 60 Hz frame pumps input events, runs a batch of
// instruction steps, ticks the timers, and repaints when the framebuffer is
// dirty.
func (io *IO) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if quit := io.pumpEvents(); quit {
			return nil
		}

		for i := 0; i < io.cyclesPerFrame; i++ {
			if err := io.machine.Step(); err != nil {
				io.reportFault(err)
				return err
			}
		}
		io.machine.TickTimers()

		if io.beeper != nil {
			io.beeper.SetActive(io.machine.SoundActive())
		}
		if io.machine.Display().TakeDirty() {
			io.draw()
		}
	}
}

// reportFault logs a step error together with the faulting instruction. The
// machine state is unchanged by the fault, so PC points at the instruction.
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

// pumpEvents drains the SDL event queue, feeding key state into the machine.
// It returns true when the window was closed.
func (io *IO) pumpEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			code := keymap(t.Keysym.Scancode)
			if code < 0 {
				break
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				io.machine.SetKey(uint8(code), true)
			case sdl.KEYUP:
				io.machine.SetKey(uint8(code), false)
			}
		case *sdl.QuitEvent:
			return true
		}
	}
	return false
}

// Draws the current framebuffer contents on screen
func (io *IO) draw() {
	io.surface.FillRect(nil, screenColor)
	pixels := io.machine.Display().Pixels()
	for w := int32(0); w < chip8.ScreenWidth; w++ {
		for h := int32(0); h < chip8.ScreenHeight; h++ {
			if pixels[w][h] {
				rect := &sdl.Rect{X: w * pixelSize, Y: h * pixelSize, W: pixelSize, H: pixelSize}
				io.surface.FillRect(rect, spriteColor)
			}
		}
	}
	io.window.UpdateSurface()
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
