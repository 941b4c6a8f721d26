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

package machine

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

type Opcode uint8
type Register uint8
type Mode uint8
type Condition uint8
type DisplayMode uint8

type Memory [MEMORY_SIZE]uint8

// Instruction is a decoded instruction word. Op selects which of the
// remaining fields are meaningful:
//
//	ADD SUB LOAD STORE   Register, Mode, Operand
//	AND OR LNEG          Mode, Operand (register A)
//	JPD JMD              Register (tested), Condition, Mode, Operand
//	SKP0 SKP1 SET        Bit, Value (SET only), Operand (address)
//	SFTL SFTR ROTL ROTR  Register (A or B), Places
//	NOOP HALT            none
type Instruction struct {
	Op        Opcode
	Register  Register
	Mode      Mode
	Operand   uint8
	Condition Condition
	Bit       uint8
	Value     uint8
	Places    uint8
}

type MachineState struct {
	Memory   Memory
	Running  bool
	Address  uint8
	Display  DisplayMode
	LastRead uint8
}

// Snapshot is a copy of the machine state handed to the display.
// Written holds the addresses modified by the most recent step or
// console store.
type Snapshot struct {
	Memory   Memory
	Running  bool
	Address  uint8
	Display  DisplayMode
	LastRead uint8
	Written  set.Set[uint8]
	Decoder  Decoder
}

type Machine struct {
	State   MachineState
	Decoder Decoder

	logger  *log.Logger
	written set.Set[uint8]
}

var opcodeNames = [...]string{
	OP_INVALID: "???",
	OP_ADD:     "ADD",
	OP_SUB:     "SUB",
	OP_LOAD:    "LOAD",
	OP_STORE:   "STORE",
	OP_AND:     "AND",
	OP_OR:      "OR",
	OP_LNEG:    "LNEG",
	OP_JPD:     "JPD",
	OP_JMD:     "JMD",
	OP_SKP0:    "SKP0",
	OP_SKP1:    "SKP1",
	OP_SET:     "SET",
	OP_SFTL:    "SFTL",
	OP_SFTR:    "SFTR",
	OP_ROTL:    "ROTL",
	OP_ROTR:    "ROTR",
	OP_NOOP:    "NOOP",
	OP_HALT:    "HALT",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return opcodeNames[OP_INVALID]
}

func (r Register) String() string {
	switch r {
	case REGISTER_A:
		return "A"
	case REGISTER_B:
		return "B"
	case REGISTER_X:
		return "X"
	case REGISTER_UNCONDITIONAL:
		return "UNC"
	}
	return "?"
}

// Addr returns the memory cell backing the register.
func (r Register) Addr() uint8 {
	switch r {
	case REGISTER_B:
		return REG_B
	case REGISTER_X:
		return REG_X
	}
	return REG_A
}

// FlagAddr returns the overflow/carry cell of the register.
func (r Register) FlagAddr() uint8 {
	switch r {
	case REGISTER_B:
		return REG_OVERFLOW_B
	case REGISTER_X:
		return REG_OVERFLOW_X
	}
	return REG_OVERFLOW_A
}

func (m Mode) String() string {
	switch m {
	case MODE_IMMEDIATE:
		return "IMM"
	case MODE_MEMORY:
		return "MEM"
	case MODE_INDIRECT:
		return "IND"
	case MODE_INDEXED:
		return "IDX"
	case MODE_INDIRECT_INDEXED:
		return "IIX"
	}
	return "?"
}

func (c Condition) String() string {
	switch c {
	case COND_NONZERO:
		return "NZ"
	case COND_ZERO:
		return "Z"
	case COND_NEGATIVE:
		return "LT"
	case COND_POSITIVE:
		return "GE"
	case COND_POSITIVE_NONZERO:
		return "GT"
	}
	return "?"
}

func (d DisplayMode) String() string {
	switch d {
	case DISPLAY_INPUT:
		return "INPUT"
	case DISPLAY_ADDRESS:
		return "ADDRESS"
	case DISPLAY_MEMORY:
		return "MEMORY"
	}
	return "OUTPUT"
}
