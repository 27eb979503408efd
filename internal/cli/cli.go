// Package cli handles command line interface logic shared by the frontends.
package cli

import (
	"flag"
	"fmt"
	"os"
)

// Default instruction clock rate in instructions per second. The timer clock
// is fixed at 60 Hz regardless of this value.
const defaultCPUHz = 700

// Options holds the settings common to all frontends.
type Options struct {
	ROM string // path of the ROM file to run

	CPUHz int  // instruction clock rate
	Mute  bool // disable the beeper

	Debug bool
	Quiet bool
}

// ParseFlags parses command line flags and the ROM file argument.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	var opts Options
	flags.IntVar(&opts.CPUHz, "cpu", defaultCPUHz, "instruction clock rate in instructions per second")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(args[1:])
	rest := flags.Args()
	if err != nil || len(rest) != 1 {
		return opts, &UsageError{flags: flags}
	}
	opts.ROM = rest[0]

	if opts.CPUHz <= 0 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("invalid instruction clock rate: %d", opts.CPUHz),
		}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s [options] <ROM file>\n\n", e.flags.Name())
	e.flags.PrintDefaults()
	fmt.Fprintln(os.Stderr)
}
