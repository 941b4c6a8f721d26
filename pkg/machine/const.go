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

const MEMORY_SIZE = 1 << 8

// Memory-mapped registers (octal, as printed on the front panel)
const (
	REG_A          uint8 = 0o000
	REG_B          uint8 = 0o001
	REG_X          uint8 = 0o002
	REG_P          uint8 = 0o003
	REG_OUTPUT     uint8 = 0o200
	REG_OVERFLOW_A uint8 = 0o201
	REG_OVERFLOW_B uint8 = 0o202
	REG_OVERFLOW_X uint8 = 0o203
	REG_INPUT      uint8 = 0o377
)

// Bits of the overflow/carry cells
const (
	FLAG_OVERFLOW uint8 = 1 << 0
	FLAG_CARRY    uint8 = 1 << 1
)

const (
	OP_INVALID Opcode = iota
	OP_ADD
	OP_SUB
	OP_LOAD
	OP_STORE
	OP_AND
	OP_OR
	OP_LNEG
	OP_JPD
	OP_JMD
	OP_SKP0
	OP_SKP1
	OP_SET
	OP_SFTL
	OP_SFTR
	OP_ROTL
	OP_ROTR
	OP_NOOP
	OP_HALT
)

const (
	REGISTER_A Register = iota
	REGISTER_B
	REGISTER_X
	REGISTER_UNCONDITIONAL
)

// Addressing mode codes match bits 2-0 of the first instruction byte
const (
	MODE_IMMEDIATE        Mode = 0b011
	MODE_MEMORY           Mode = 0b100
	MODE_INDIRECT         Mode = 0b101
	MODE_INDEXED          Mode = 0b110
	MODE_INDIRECT_INDEXED Mode = 0b111
)

// Jump condition codes match bits 2-0 of the first instruction byte
const (
	COND_NONZERO          Condition = 0b011
	COND_ZERO             Condition = 0b100
	COND_NEGATIVE         Condition = 0b101
	COND_POSITIVE         Condition = 0b110
	COND_POSITIVE_NONZERO Condition = 0b111
)

const (
	DISPLAY_OUTPUT DisplayMode = iota
	DISPLAY_INPUT
	DISPLAY_ADDRESS
	DISPLAY_MEMORY
)
