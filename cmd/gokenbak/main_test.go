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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/lassandro/gokenbak/pkg/clock"
	"github.com/lassandro/gokenbak/pkg/machine"
)

func TestDepositDemo(t *testing.T) {
	mc := machine.New(log.NewTestLogger(t))
	assert.NoError(t, depositDemo(mc))

	assert.Equal(t, uint8(demoAddress), mc.State.Memory[machine.REG_P])
	assert.Equal(t, uint8(0), mc.State.Memory[machine.REG_INPUT])

	for i, b := range demoProgram {
		assert.Equal(t, b, mc.State.Memory[demoAddress+i])
	}

	mc.Start()
	for i := 0; i < 3*5; i++ {
		assert.NoError(t, mc.Step())
	}

	assert.Equal(t, uint8(5), mc.State.Memory[machine.REG_OUTPUT])
}

func TestDepositRefusedWhileRunning(t *testing.T) {
	mc := machine.New(log.NewTestLogger(t))
	mc.Start()

	assert.Error(t, depositDemo(mc))
	assert.Equal(t, uint8(0), mc.State.Memory[demoAddress])
}

func TestReadLines(t *testing.T) {
	mc := machine.New(log.NewTestLogger(t))

	in := strings.NewReader("in 010\nset\n\nin 123\nstor\nbogus\nstart\nread\nquit\nstop\n")
	var out bytes.Buffer

	actions := make(chan clock.Action, 16)
	readLines(context.Background(), in, &out, actions)
	close(actions)

	var quit bool
	for action := range actions {
		if err := action(mc); err == clock.ErrQuit {
			quit = true
		}
	}

	assert.True(t, quit)
	assert.True(t, mc.Running())
	assert.Equal(t, uint8(0o123), mc.State.Memory[0o010])
	assert.Contains(t, out.String(), "unknown command")
	assert.Contains(t, out.String(), "READ: read memory")
}

func TestReadKeys(t *testing.T) {
	mc := machine.New(log.NewTestLogger(t))

	actions := make(chan clock.Action, 16)
	readKeys(context.Background(), strings.NewReader("17x9c4"), actions)
	close(actions)

	var quit bool
	for action := range actions {
		if err := action(mc); err == clock.ErrQuit {
			quit = true
		}
	}

	// End of input quits
	assert.True(t, quit)
	assert.Equal(t, uint8(0b0001_0000), mc.State.Memory[machine.REG_INPUT])
}

func TestLampPrinter(t *testing.T) {
	mc := machine.New(log.NewTestLogger(t))

	var out bytes.Buffer
	printer := lampPrinter{out: &out}

	mc.WriteInput(0o201)
	printer.redraw(mc.Snapshot())
	printer.redraw(mc.Snapshot())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 1, len(lines))
	assert.Contains(t, lines[0], "201")
	assert.Contains(t, lines[0], "INPUT")
	assert.Contains(t, lines[0], "P=000")

	mc.Start()
	printer.redraw(mc.Snapshot())
	assert.Contains(t, out.String(), "RUN")
}
