// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/lassandro/gokenbak/pkg/clock"
)

const Usage = "gokenbak [options]"

type Options struct {
	Interval time.Duration
	Strict   bool
	Extended bool
	Headless bool
	Demo     bool
	Debug    bool
	Quiet    bool
	Help     bool
}

// UsageError is returned for arguments that should print the usage text.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s\n\n", Usage)
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.DurationVar(&opts.Interval, "interval", clock.DefaultInterval, "time between executed instructions")
	flags.BoolVar(&opts.Strict, "strict", false, "halt on unused instruction encodings instead of skipping them")
	flags.BoolVar(&opts.Extended, "extended", false, "decode every hardware encoding, including AND/OR/LNEG and bit 5 SET/SKP/shift forms")
	flags.BoolVar(&opts.Headless, "headless", false, "use the line console instead of the front panel")
	flags.BoolVar(&opts.Demo, "demo", false, "deposit a counter program at address 004")
	flags.BoolVar(&opts.Debug, "debug", false, "log every executed instruction")
	flags.BoolVar(&opts.Quiet, "quiet", false, "only log errors")
	flags.BoolVar(&opts.Help, "help", false, "Displays command usage")
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("gokenbak", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if opts.Help {
		return opts, &UsageError{flags: flags, msg: "help requested"}
	}

	if flags.NArg() != 0 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s", flags.Arg(0)),
		}
	}

	if opts.Interval <= 0 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("invalid interval %s", opts.Interval),
		}
	}

	return opts, nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
