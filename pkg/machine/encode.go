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
	"errors"
	"fmt"
)

var ErrInvalidInstruction = errors.New("instruction cannot be encoded")

// Width returns the encoded length of the instruction in bytes.
func (inst Instruction) Width() uint8 {
	switch inst.Op {
	case OP_SFTL, OP_SFTR, OP_ROTL, OP_ROTR, OP_NOOP, OP_HALT:
		return 1
	}

	return 2
}

func validMode(mode Mode) bool {
	return mode >= MODE_IMMEDIATE && mode <= MODE_INDIRECT_INDEXED
}

// Encode returns the machine code for inst. Decode(Encode(inst)) yields
// inst back for every instruction Encode accepts.
func Encode(inst Instruction) ([]byte, error) {
	var b1 uint8

	switch inst.Op {
	case OP_ADD, OP_SUB, OP_LOAD, OP_STORE:
		if inst.Register > REGISTER_X || !validMode(inst.Mode) {
			return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
		}

		b1 = uint8(inst.Register)<<6 | uint8(inst.Op-OP_ADD)<<3 | uint8(inst.Mode)

	case OP_AND, OP_OR, OP_LNEG:
		if inst.Register != REGISTER_A || !validMode(inst.Mode) {
			return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
		}

		switch inst.Op {
		case OP_AND:
			b1 = 0b11010_000
		case OP_OR:
			b1 = 0b11000_000
		case OP_LNEG:
			b1 = 0b11011_000
		}

		b1 |= uint8(inst.Mode)

	case OP_JPD, OP_JMD:
		if inst.Condition < COND_NONZERO || inst.Condition > COND_POSITIVE_NONZERO {
			return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
		}

		b1 = uint8(inst.Register)<<6 | 1<<5 | uint8(inst.Condition)

		if inst.Op == OP_JMD {
			b1 |= 1 << 4
		}

		switch inst.Mode {
		case MODE_MEMORY:
		case MODE_INDIRECT:
			b1 |= 1 << 3
		default:
			return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
		}

	case OP_SKP0, OP_SKP1, OP_SET:
		if inst.Bit > 7 || inst.Value > 1 {
			return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
		}

		b1 = inst.Bit<<3 | 0b010

		switch inst.Op {
		case OP_SKP0:
			b1 |= 1 << 7
		case OP_SKP1:
			b1 |= 1<<7 | 1<<6
		case OP_SET:
			b1 |= inst.Value << 6
		}

	case OP_SFTL, OP_SFTR, OP_ROTL, OP_ROTR:
		if inst.Places < 1 || inst.Places > 4 || inst.Register > REGISTER_B {
			return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
		}

		b1 = uint8(inst.Register)<<5 | (inst.Places-1)<<3 | 0b001

		if inst.Op == OP_SFTL || inst.Op == OP_ROTL {
			b1 |= 1 << 7
		}

		if inst.Op == OP_ROTL || inst.Op == OP_ROTR {
			b1 |= 1 << 6
		}

	case OP_NOOP:
		b1 = 0b10000_000

	case OP_HALT:
		b1 = 0b00000_000

	default:
		return nil, fmt.Errorf("%s: %w", inst, ErrInvalidInstruction)
	}

	if inst.Width() == 1 {
		return []byte{b1}, nil
	}

	return []byte{b1, inst.Operand}, nil
}

// String formats the instruction in front-panel mnemonics with octal
// operands, e.g. "LOAD A,MEM 005" or "JMD UNC,IND 020".
func (inst Instruction) String() string {
	switch inst.Op {
	case OP_ADD, OP_SUB, OP_LOAD, OP_STORE, OP_AND, OP_OR, OP_LNEG:
		return fmt.Sprintf(
			"%s %s,%s %03o", inst.Op, inst.Register, inst.Mode, inst.Operand,
		)

	case OP_JPD, OP_JMD:
		if inst.Register == REGISTER_UNCONDITIONAL {
			return fmt.Sprintf(
				"%s %s,%s %03o", inst.Op, inst.Register, inst.Mode, inst.Operand,
			)
		}

		return fmt.Sprintf(
			"%s %s %s,%s %03o",
			inst.Op, inst.Register, inst.Condition, inst.Mode, inst.Operand,
		)

	case OP_SKP0, OP_SKP1:
		return fmt.Sprintf("%s %d,%03o", inst.Op, inst.Bit, inst.Operand)

	case OP_SET:
		return fmt.Sprintf(
			"%s%d %d,%03o", inst.Op, inst.Value, inst.Bit, inst.Operand,
		)

	case OP_SFTL, OP_SFTR, OP_ROTL, OP_ROTR:
		return fmt.Sprintf("%s %s,%d", inst.Op, inst.Register, inst.Places)
	}

	return inst.Op.String()
}
