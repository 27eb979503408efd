// Package main implements the SDL frontend entry point for the CHIP-8
// emulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mnafees/chip8/internal/chip8"
	"github.com/mnafees/chip8/internal/cli"
	"github.com/mnafees/chip8/internal/config"
	"github.com/mnafees/chip8/pkg/beep"
	"github.com/mnafees/chip8/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args)
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger.Debug("chip8", log.String("version", buildinfo.Version(version, commit, date)))

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Fatal(err.Error())
	}
}

func run(ctx context.Context, logger *log.Logger, opts cli.Options) error {
	rom, err := os.ReadFile(opts.ROM)
	if err != nil {
		return fmt.Errorf("reading ROM file: %w", err)
	}

	machine := chip8.NewMachine()
	if err := machine.Load(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	var beeper *beep.Beeper
	if !opts.Mute {
		beeper, err = beep.New()
		if err != nil {
			return fmt.Errorf("opening audio device: %w", err)
		}
		defer beeper.Close()
	}

	io := sdl.NewIO(machine, logger, beeper, opts.CPUHz)
	if err := io.SetupWindow("CHIP-8 Emulator"); err != nil {
		return err
	}
	defer io.Destroy()

	return io.Run(ctx)
}
