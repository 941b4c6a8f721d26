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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lassandro/gokenbak/pkg/clock"
	"github.com/lassandro/gokenbak/pkg/console"
	"github.com/lassandro/gokenbak/pkg/encoding"
	"github.com/lassandro/gokenbak/pkg/machine"
)

// runHeadless drives the machine from stdin. A terminal gets single-key
// input, anything else is read one command word per line.
func runHeadless(ctx context.Context, clk *clock.Clock, mc *machine.Machine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan clock.Action)
	keys := term.IsTerminal(int(os.Stdin.Fd()))

	if keys {
		if err := enterRawTerm(); err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}

		defer exitRawTerm()

		fmt.Println(console.Usage)
		go readKeys(ctx, os.Stdin, actions)
	} else {
		go readLines(ctx, os.Stdin, os.Stdout, actions)
	}

	printer := lampPrinter{out: os.Stdout, overwrite: keys}
	err := clk.Run(ctx, mc, actions, printer.redraw)

	if keys {
		fmt.Println()
	}

	return err
}

func sendAction(ctx context.Context, actions chan<- clock.Action, action clock.Action) bool {
	select {
	case actions <- action:
		return true
	case <-ctx.Done():
		return false
	}
}

func quitAction(*machine.Machine) error {
	return clock.ErrQuit
}

func readKeys(ctx context.Context, in io.Reader, actions chan<- clock.Action) {
	reader := bufio.NewReader(in)

	for {
		key, _, err := reader.ReadRune()

		if err != nil {
			sendAction(ctx, actions, quitAction)
			return
		}

		cmd, ok := console.ParseKey(key)

		if !ok {
			continue
		}

		if cmd.Type == console.CMD_QUIT {
			sendAction(ctx, actions, quitAction)
			return
		}

		if !sendAction(ctx, actions, cmd.Apply) {
			return
		}
	}
}

// readLines runs the word console. Reaching the end of the input leaves
// the machine running until it is interrupted.
func readLines(ctx context.Context, in io.Reader, out io.Writer, actions chan<- clock.Action) {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		cmd, err := console.ParseLine(scanner.Text())

		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		switch cmd.Type {
		case console.CMD_NONE:
			continue

		case console.CMD_QUIT:
			sendAction(ctx, actions, quitAction)
			return
		}

		apply := func(mc *machine.Machine) error {
			if err := cmd.Apply(mc); err != nil {
				fmt.Fprintf(out, "%s: %v\n", cmd, err)
			}

			return nil
		}

		if !sendAction(ctx, actions, apply) {
			return
		}
	}
}

type lampPrinter struct {
	out       io.Writer
	overwrite bool
	last      string
}

// redraw prints the lamp line when it changed since the last call.
func (lp *lampPrinter) redraw(snap machine.Snapshot) {
	line := lampLine(snap)

	if line == lp.last {
		return
	}

	lp.last = line

	if lp.overwrite {
		fmt.Fprintf(lp.out, "\r\033[K%s", line)
	} else {
		fmt.Fprintln(lp.out, line)
	}
}

func lampLine(snap machine.Snapshot) string {
	var sb strings.Builder

	value := snap.Value()

	for bit := 7; bit >= 0; bit-- {
		if (value>>bit)&0x1 == 1 {
			sb.WriteString("\033[1;31m●\033[0m")
		} else {
			sb.WriteString("○")
		}
	}

	fmt.Fprintf(&sb, " \033[1m%s\033[0m %-7s", encoding.FormatOctal(value), snap.Display)

	if snap.Running {
		sb.WriteString(" RUN")
	} else {
		pc := snap.Memory[machine.REG_P]
		fmt.Fprintf(&sb, " P=%s ADDR=%s",
			encoding.FormatOctal(pc), encoding.FormatOctal(snap.Address))
	}

	return sb.String()
}
