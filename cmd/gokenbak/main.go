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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/lassandro/gokenbak/pkg/clock"
	"github.com/lassandro/gokenbak/pkg/config"
	"github.com/lassandro/gokenbak/pkg/machine"
	"github.com/lassandro/gokenbak/pkg/panel"
)

func gokenbak() int {
	opts, err := config.ParseFlags(os.Args[1:])

	if err != nil {
		var usageErr *config.UsageError

		if errors.As(err, &usageErr) && opts.Help {
			usageErr.ShowUsage(os.Stdout)
			return 0
		}

		fmt.Fprintf(os.Stderr, "gokenbak: %v\n", err)

		if usageErr != nil {
			usageErr.ShowUsage(os.Stderr)
		}

		return 1
	}

	// Log lines would tear the front panel, keep it to errors there
	quiet := opts.Quiet || (!opts.Headless && !opts.Debug)
	logger := config.CreateLogger(opts.Debug, quiet)

	mc := machine.New(logger)
	mc.Decoder.Strict = opts.Strict
	mc.Decoder.Extended = opts.Extended

	if opts.Demo {
		if err := depositDemo(mc); err != nil {
			logger.Error("Depositing demo program failed", log.Err(err))
			return 1
		}
	}

	ctx := app.Context()
	clk := clock.New(opts.Interval, logger)

	if opts.Headless {
		err = runHeadless(ctx, clk, mc)
	} else {
		err = runPanel(ctx, clk, mc)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Emulator stopped", log.Err(err))
		return 1
	}

	return 0
}

func runPanel(ctx context.Context, clk *clock.Clock, mc *machine.Machine) error {
	screen, err := tcell.NewScreen()

	if err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("opening screen: %w", err)
	}

	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := panel.New(screen)
	actions := make(chan clock.Action)

	go p.Listen(ctx, actions)

	return clk.Run(ctx, mc, actions, p.Draw)
}

func main() {
	os.Exit(gokenbak())
}
