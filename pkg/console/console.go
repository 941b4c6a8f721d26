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

package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lassandro/gokenbak/pkg/encoding"
	"github.com/lassandro/gokenbak/pkg/machine"
)

type CommandType uint8

const (
	CMD_NONE CommandType = iota
	CMD_TOGGLE
	CMD_INPUT
	CMD_CLEAR
	CMD_DISPLAY
	CMD_SET
	CMD_READ
	CMD_STORE
	CMD_START
	CMD_STOP
	CMD_QUIT
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is one front-panel gesture. Value holds the bit number for
// CMD_TOGGLE and the byte for CMD_INPUT.
type Command struct {
	Type  CommandType
	Value uint8
}

const Usage = `keys:  0-7 toggle input bit, c clear, d disp, s set, r read,
       w stor, g start, h stop, q quit
words: bit N, in VALUE, clear, disp, set, read, stor, start, stop, quit`

// ParseKey maps a single key press to a command.
func ParseKey(key rune) (Command, bool) {
	if key >= '0' && key <= '7' {
		return Command{Type: CMD_TOGGLE, Value: uint8(key - '0')}, true
	}

	switch key {
	case 'c', 'C':
		return Command{Type: CMD_CLEAR}, true
	case 'd', 'D':
		return Command{Type: CMD_DISPLAY}, true
	case 's', 'S':
		return Command{Type: CMD_SET}, true
	case 'r', 'R':
		return Command{Type: CMD_READ}, true
	case 'w', 'W':
		return Command{Type: CMD_STORE}, true
	case 'g', 'G':
		return Command{Type: CMD_START}, true
	case 'h', 'H':
		return Command{Type: CMD_STOP}, true
	case 'q', 'Q':
		return Command{Type: CMD_QUIT}, true
	}

	return Command{}, false
}

// ParseLine parses one line of the word console. An empty line parses
// to CMD_NONE.
func ParseLine(line string) (Command, error) {
	args := strings.Fields(strings.ToLower(line))

	if len(args) == 0 {
		return Command{}, nil
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "b", "bit", "toggle":
		const usage = "bit [0-7]"

		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: %s", usage)
		}

		bit, err := strconv.ParseUint(args[0], 10, 8)

		if err != nil || bit > 7 {
			return Command{}, fmt.Errorf("usage: %s", usage)
		}

		return Command{Type: CMD_TOGGLE, Value: uint8(bit)}, nil

	case "i", "in", "input":
		const usage = "in [377|0xFF|#255]"

		if len(args) != 1 {
			return Command{}, fmt.Errorf("usage: %s", usage)
		}

		value, err := encoding.DecodeByte(args[0])

		if err != nil {
			return Command{}, err
		}

		return Command{Type: CMD_INPUT, Value: value}, nil
	}

	var command Command

	switch cmd {
	case "c", "clear":
		command.Type = CMD_CLEAR
	case "d", "disp", "display":
		command.Type = CMD_DISPLAY
	case "s", "set":
		command.Type = CMD_SET
	case "r", "read":
		command.Type = CMD_READ
	case "w", "stor", "store":
		command.Type = CMD_STORE
	case "g", "start", "run":
		command.Type = CMD_START
	case "h", "stop", "halt":
		command.Type = CMD_STOP
	case "q", "quit", "exit":
		command.Type = CMD_QUIT
	default:
		return Command{}, fmt.Errorf("'%s': %w", cmd, ErrUnknownCommand)
	}

	if len(args) != 0 {
		return Command{}, fmt.Errorf("usage: %s", cmd)
	}

	return command, nil
}

// Apply performs the command on mc. CMD_NONE and CMD_QUIT do nothing.
func (cmd Command) Apply(mc *machine.Machine) error {
	switch cmd.Type {
	case CMD_TOGGLE:
		return mc.ToggleInput(cmd.Value)
	case CMD_INPUT:
		mc.WriteInput(cmd.Value)
	case CMD_CLEAR:
		mc.ClearInput()
	case CMD_DISPLAY:
		mc.DisplayAddress()
	case CMD_SET:
		return mc.SetAddress()
	case CMD_READ:
		_, err := mc.ReadMemory()
		return err
	case CMD_STORE:
		return mc.StoreMemory()
	case CMD_START:
		mc.Start()
	case CMD_STOP:
		mc.Stop()
	}

	return nil
}

func (cmd Command) String() string {
	switch cmd.Type {
	case CMD_TOGGLE:
		return fmt.Sprintf("BIT %d", cmd.Value)
	case CMD_INPUT:
		return "IN " + encoding.FormatOctal(cmd.Value)
	case CMD_CLEAR:
		return "CLEAR"
	case CMD_DISPLAY:
		return "DISP"
	case CMD_SET:
		return "SET"
	case CMD_READ:
		return "READ"
	case CMD_STORE:
		return "STOR"
	case CMD_START:
		return "START"
	case CMD_STOP:
		return "STOP"
	case CMD_QUIT:
		return "QUIT"
	}

	return ""
}
