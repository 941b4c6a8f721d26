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

package panel

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell"

	"github.com/lassandro/gokenbak/pkg/clock"
	"github.com/lassandro/gokenbak/pkg/console"
	"github.com/lassandro/gokenbak/pkg/encoding"
	"github.com/lassandro/gokenbak/pkg/machine"
)

const (
	LAMP_ON  = '●'
	LAMP_OFF = '○'
)

// Screen coordinates of the panel elements
const (
	DATA_X      = 4
	DATA_Y      = 2
	CONTROL_X   = 4
	CONTROL_Y   = 3
	PROGRAM_Y   = 4
	TABLE_X     = 8
	TABLE_Y     = 6
	HELP_Y      = 23
	BOX_WIDTH   = 72
	BOX_HEIGHT  = 22
	CELL_WIDTH  = 4
	LAMP_WIDTH  = 4
	LABEL_WIDTH = 10
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLampOn  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleLampOff = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleWritten = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleProgram = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Control lamps. RUN only lights while the data lamps show the output
// register of a running machine.
var controls = [...]string{"INPUT", "ADDR", "MEM", "RUN"}

type Panel struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *Panel {
	return &Panel{screen: screen}
}

func (p *Panel) drawString(x, y int, style tcell.Style, str string) {
	for _, c := range str {
		p.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func (p *Panel) box(x, y, w, h int) {
	style := styleLabel

	p.screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	p.screen.SetContent(x+w, y, tcell.RuneURCorner, nil, style)
	p.screen.SetContent(x, y+h, tcell.RuneLLCorner, nil, style)
	p.screen.SetContent(x+w, y+h, tcell.RuneLRCorner, nil, style)

	for col := x + 1; col < x+w; col++ {
		p.screen.SetContent(col, y, tcell.RuneHLine, nil, style)
		p.screen.SetContent(col, y+h, tcell.RuneHLine, nil, style)
	}

	for row := y + 1; row < y+h; row++ {
		p.screen.SetContent(x, row, tcell.RuneVLine, nil, style)
		p.screen.SetContent(x+w, row, tcell.RuneVLine, nil, style)
	}
}

func (p *Panel) lamp(x, y int, lit bool) {
	if lit {
		p.screen.SetContent(x, y, LAMP_ON, nil, styleLampOn)
	} else {
		p.screen.SetContent(x, y, LAMP_OFF, nil, styleLampOff)
	}
}

// Draw renders snap and shows it.
func (p *Panel) Draw(snap machine.Snapshot) {
	p.screen.Clear()

	p.box(0, 0, BOX_WIDTH, BOX_HEIGHT)
	p.drawString(2, 0, styleTitle, " KENBAK-1 ")

	p.drawData(snap)
	p.drawControls(snap)
	p.drawProgram(snap)
	p.drawMemory(snap)

	p.drawString(0, HELP_Y, styleLabel,
		"0-7 bit  c clear  d disp  s set  r read  w stor  g start  h stop  q quit")

	p.screen.Show()
}

// Data lamps, bit 7 on the left
func (p *Panel) drawData(snap machine.Snapshot) {
	value := snap.Value()

	for bit := 7; bit >= 0; bit-- {
		x := DATA_X + (7-bit)*LAMP_WIDTH

		p.drawString(x, DATA_Y-1, styleLabel, fmt.Sprint(bit))
		p.lamp(x, DATA_Y, (value>>bit)&0x1 == 1)
	}

	p.drawString(DATA_X+8*LAMP_WIDTH+2, DATA_Y, styleText,
		fmt.Sprintf("%s  %s", encoding.FormatOctal(value), encoding.FormatBinary(value)))
}

func (p *Panel) drawControls(snap machine.Snapshot) {
	lit := [len(controls)]bool{
		snap.Display == machine.DISPLAY_INPUT,
		snap.Display == machine.DISPLAY_ADDRESS,
		snap.Display == machine.DISPLAY_MEMORY,
		snap.Running && snap.Display == machine.DISPLAY_OUTPUT,
	}

	for i, label := range controls {
		x := CONTROL_X + i*LABEL_WIDTH

		p.lamp(x, CONTROL_Y, lit[i])
		p.drawString(x+2, CONTROL_Y, styleLabel, label)
	}
}

func (p *Panel) drawProgram(snap machine.Snapshot) {
	pc := snap.Memory[machine.REG_P]

	text := "???"
	if inst, ok := snap.Instruction(); ok {
		text = inst.String()
	}

	p.drawString(CONTROL_X, PROGRAM_Y, styleProgram,
		fmt.Sprintf("P %s  %s", encoding.FormatOctal(pc), text))

	p.drawString(DATA_X+8*LAMP_WIDTH+2, PROGRAM_Y, styleText,
		fmt.Sprintf("ADDR %s", encoding.FormatOctal(snap.Address)))
}

// 16x16 octal memory table. The address register cell is reversed,
// the cell under P is green and cells written by the last step yellow.
func (p *Panel) drawMemory(snap machine.Snapshot) {
	pc := snap.Memory[machine.REG_P]

	for col := 0; col < 16; col++ {
		p.drawString(TABLE_X+col*CELL_WIDTH, TABLE_Y-1, styleLabel,
			fmt.Sprintf("+%02o", col))
	}

	for row := 0; row < 16; row++ {
		p.drawString(2, TABLE_Y+row, styleLabel,
			encoding.FormatOctal(uint8(row*16)))

		for col := 0; col < 16; col++ {
			addr := uint8(row*16 + col)
			style := styleText

			if snap.Written.Contains(addr) {
				style = styleWritten
			}

			if addr == pc {
				style = styleProgram
			}

			if addr == snap.Address {
				style = style.Reverse(true)
			}

			p.drawString(TABLE_X+col*CELL_WIDTH, TABLE_Y+row, style,
				encoding.FormatOctal(snap.Memory[addr]))
		}
	}
}

// Listen translates key events into clock actions until the screen is
// finalized, the context is done or the user quits.
func (p *Panel) Listen(ctx context.Context, actions chan<- clock.Action) {
	send := func(action clock.Action) bool {
		select {
		case actions <- action:
			return true
		case <-ctx.Done():
			return false
		}
	}

	quit := func(*machine.Machine) error {
		return clock.ErrQuit
	}

	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return

		case *tcell.EventResize:
			p.screen.Sync()

			if !send(func(*machine.Machine) error { return nil }) {
				return
			}

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC, tcell.KeyEscape:
				send(quit)
				return

			case tcell.KeyRune:
				cmd, ok := console.ParseKey(ev.Rune())
				if !ok {
					continue
				}

				if cmd.Type == console.CMD_QUIT {
					send(quit)
					return
				}

				if !send(cmd.Apply) {
					return
				}
			}
		}
	}
}
