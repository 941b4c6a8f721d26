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

package panel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/lassandro/gokenbak/pkg/clock"
	"github.com/lassandro/gokenbak/pkg/machine"
	"github.com/lassandro/gokenbak/pkg/panel"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	assert.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	return screen
}

func readString(screen tcell.Screen, x, y, n int) string {
	runes := make([]rune, n)

	for i := range runes {
		runes[i], _, _, _ = screen.GetContent(x+i, y)
	}

	return string(runes)
}

func TestDrawDataLamps(t *testing.T) {
	screen := newScreen(t)
	p := panel.New(screen)

	mc := machine.New(log.NewTestLogger(t))
	mc.State.Memory[machine.REG_OUTPUT] = 0b1000_0001

	p.Draw(mc.Snapshot())

	for bit := 7; bit >= 0; bit-- {
		x := panel.DATA_X + (7-bit)*panel.LAMP_WIDTH
		r, _, _, _ := screen.GetContent(x, panel.DATA_Y)

		if bit == 7 || bit == 0 {
			assert.Equal(t, panel.LAMP_ON, r)
		} else {
			assert.Equal(t, panel.LAMP_OFF, r)
		}
	}

	// RUN is dark while halted
	x := panel.CONTROL_X + 3*panel.LABEL_WIDTH
	r, _, _, _ := screen.GetContent(x, panel.CONTROL_Y)
	assert.Equal(t, panel.LAMP_OFF, r)
}

func TestDrawControlLamps(t *testing.T) {
	screen := newScreen(t)
	p := panel.New(screen)

	mc := machine.New(log.NewTestLogger(t))
	mc.WriteInput(0o377)
	p.Draw(mc.Snapshot())

	r, _, _, _ := screen.GetContent(panel.CONTROL_X, panel.CONTROL_Y)
	assert.Equal(t, panel.LAMP_ON, r)

	r, _, _, _ = screen.GetContent(panel.CONTROL_X+panel.LABEL_WIDTH, panel.CONTROL_Y)
	assert.Equal(t, panel.LAMP_OFF, r)

	assert.Equal(t, "INPUT", readString(screen, panel.CONTROL_X+2, panel.CONTROL_Y, 5))

	mc.Start()
	p.Draw(mc.Snapshot())

	r, _, _, _ = screen.GetContent(panel.CONTROL_X+3*panel.LABEL_WIDTH, panel.CONTROL_Y)
	assert.Equal(t, panel.LAMP_ON, r)

	// Touching the input while running switches RUN off
	assert.NoError(t, mc.ToggleInput(0))
	p.Draw(mc.Snapshot())

	r, _, _, _ = screen.GetContent(panel.CONTROL_X+3*panel.LABEL_WIDTH, panel.CONTROL_Y)
	assert.Equal(t, panel.LAMP_OFF, r)

	r, _, _, _ = screen.GetContent(panel.CONTROL_X, panel.CONTROL_Y)
	assert.Equal(t, panel.LAMP_ON, r)
}

func TestDrawMemory(t *testing.T) {
	screen := newScreen(t)
	p := panel.New(screen)

	mc := machine.New(log.NewTestLogger(t))
	mc.State.Memory[machine.REG_P] = 0o004
	mc.State.Memory[0o004] = 0o024 // LOAD A,MEM 005
	mc.State.Memory[0o005] = 0o005

	mc.WriteInput(0o021)
	assert.NoError(t, mc.SetAddress())
	mc.WriteInput(0o123)
	assert.NoError(t, mc.StoreMemory())

	p.Draw(mc.Snapshot())

	assert.Equal(t, "P 004  LOAD A,MEM 005", readString(screen, panel.CONTROL_X, panel.PROGRAM_Y, 21))

	// 021 was stored, the address register moved on to 022
	x := panel.TABLE_X + 1*panel.CELL_WIDTH
	y := panel.TABLE_Y + 1
	assert.Equal(t, "123", readString(screen, x, y, 3))

	_, _, style, _ := screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.ColorYellow, fg)

	_, _, style, _ = screen.GetContent(x+panel.CELL_WIDTH, y)
	_, _, attr := style.Decompose()
	assert.True(t, attr&tcell.AttrReverse != 0)

	_, _, style, _ = screen.GetContent(panel.TABLE_X+4*panel.CELL_WIDTH, panel.TABLE_Y)
	fg, _, _ = style.Decompose()
	assert.Equal(t, tcell.ColorGreen, fg)
	assert.Equal(t, "024", readString(screen, panel.TABLE_X+4*panel.CELL_WIDTH, panel.TABLE_Y, 3))
}

func TestListen(t *testing.T) {
	screen := newScreen(t)
	p := panel.New(screen)

	mc := machine.New(log.NewTestLogger(t))
	actions := make(chan clock.Action, 8)

	screen.InjectKey(tcell.KeyRune, '3', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '0', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	p.Listen(context.Background(), actions)
	close(actions)

	var quit bool
	for action := range actions {
		if err := action(mc); errors.Is(err, clock.ErrQuit) {
			quit = true
		} else {
			assert.NoError(t, err)
		}
	}

	assert.True(t, quit)
	assert.Equal(t, uint8(0b0000_1001), mc.State.Memory[machine.REG_INPUT])
}

func TestListenCtrlC(t *testing.T) {
	screen := newScreen(t)
	p := panel.New(screen)

	actions := make(chan clock.Action, 1)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	p.Listen(context.Background(), actions)

	action := <-actions
	assert.True(t, errors.Is(action(nil), clock.ErrQuit))
}

func TestListenReturnsOnFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	assert.NoError(t, screen.Init())

	p := panel.New(screen)
	screen.Fini()

	p.Listen(context.Background(), make(chan clock.Action))
}
