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

// Decoder turns instruction bytes into Instructions.
//
// The default rule order claims every bit5=1 byte for the jump rule, so
// those with bits 2-0 below 011 fail to decode, and the register rule
// shadows AND/OR/LNEG. Extended reorders the table so that every
// encoding the hardware defines is reachable: AND/OR/LNEG ahead of the
// register rule, SET/SKP on bits 4-7, shifts of B and the bit5=1 forms of
// NOOP/HALT. A strict decoder also rejects the unused register-field
// encoding 11 001 xxx instead of reading it as SUB A.
type Decoder struct {
	Strict   bool
	Extended bool
}

type decodeRule struct {
	mask  uint8
	match uint8

	// operand rules only apply when bits 2-0 hold an addressing mode or
	// jump condition code (011-111)
	operand bool

	// nil means a matching byte fails to decode
	build func(b1, b2 uint8) Instruction
}

func (rule *decodeRule) matches(b1 uint8) bool {
	if rule.operand && b1&0b111 < 0b011 {
		return false
	}

	return b1&rule.mask == rule.match
}

var (
	// ADD  |REG|0|0 0|MODE | operand
	// SUB  |REG|0|0 1|MODE | operand
	// LOAD |REG|0|1 0|MODE | operand
	// STORE|REG|0|1 1|MODE | operand
	// ---- [ _ _ _ _ _ _ _ _ ]
	registerRules = []decodeRule{
		{0b00100_000, 0b00000_000, true, decodeArithmetic},
	}

	// AND  |1 1 0 1 0|MODE | operand
	// OR   |1 1 0 0 0|MODE | operand
	// LNEG |1 1 0 1 1|MODE | operand
	// ---- [ _ _ _ _ _ _ _ _ ]
	logicalRules = []decodeRule{
		{0b11111_000, 0b11010_000, true, decodeLogical(OP_AND)},
		{0b11111_000, 0b11000_000, true, decodeLogical(OP_OR)},
		{0b11111_000, 0b11011_000, true, decodeLogical(OP_LNEG)},
	}

	// JPD  |REG|1|0|I|COND | address
	// JMD  |REG|1|1|I|COND | address
	// ---- [ _ _ _ _ _ _ _ _ ]
	jumpRules = []decodeRule{
		{0b00100_000, 0b00100_000, true, decodeJump},
	}

	// Any other bit5=1 byte is a jump with an invalid condition code
	jumpFailRules = []decodeRule{
		{0b00100_000, 0b00100_000, false, nil},
	}

	// SKP0 |1|0|BIT  |0 1 0| address
	// SKP1 |1|1|BIT  |0 1 0| address
	// SET0 |0|0|BIT  |0 1 0| address
	// SET1 |0|1|BIT  |0 1 0| address
	// ---- [ _ _ _ _ _ _ _ _ ]
	//
	// SFTR |0|0|R|PL |0 0 1|
	// ROTR |0|1|R|PL |0 0 1|
	// SFTL |1|0|R|PL |0 0 1|
	// ROTL |1|1|R|PL |0 0 1|
	// ---- [ _ _ _ _ _ _ _ _ ]
	//
	// NOOP |1|x x x x|0 0 0|
	// HALT |0|x x x x|0 0 0|
	// ---- [ _ _ _ _ _ _ _ _ ]
	controlRules = []decodeRule{
		{0b10000_111, 0b10000_010, false, decodeSkip},
		{0b10000_111, 0b00000_010, false, decodeSet},
		{0b00000_111, 0b00000_001, false, decodeShift},
		{0b10000_111, 0b10000_000, false, decodeSimple(OP_NOOP)},
		{0b10000_111, 0b00000_000, false, decodeSimple(OP_HALT)},
	}

	// 11 001 xxx
	unusedRegisterRules = []decodeRule{
		{0b11111_000, 0b11001_000, true, nil},
	}
)

func concatRules(groups ...[]decodeRule) []decodeRule {
	var table []decodeRule

	for _, group := range groups {
		table = append(table, group...)
	}

	return table
}

// Rules are tried in order, first match wins.
var (
	decodeTable = concatRules(
		registerRules, logicalRules, jumpRules, jumpFailRules, controlRules,
	)

	extendedTable = concatRules(
		logicalRules, registerRules, jumpRules, controlRules,
	)

	strictTable         = concatRules(unusedRegisterRules, decodeTable)
	strictExtendedTable = concatRules(unusedRegisterRules, extendedTable)
)

// Width returns the length in bytes of the instruction starting with b1.
func Width(b1 uint8) uint8 {
	if b1&0b111 <= 0b001 {
		return 1
	}

	return 2
}

// Decode decodes with the default, permissive rule set.
func Decode(b1, b2 uint8) (Instruction, error) {
	return Decoder{}.Decode(b1, b2)
}

func (dec Decoder) table() []decodeRule {
	switch {
	case dec.Strict && dec.Extended:
		return strictExtendedTable
	case dec.Strict:
		return strictTable
	case dec.Extended:
		return extendedTable
	}

	return decodeTable
}

func (dec Decoder) Decode(b1, b2 uint8) (Instruction, error) {
	table := dec.table()

	if Width(b1) == 1 {
		b2 = 0
	}

	for i := range table {
		rule := &table[i]

		if !rule.matches(b1) {
			continue
		}

		if rule.build == nil {
			break
		}

		return rule.build(b1, b2), nil
	}

	return Instruction{}, &DecodeError{Byte1: b1, Byte2: b2}
}

func decodeRegister(b1 uint8) Register {
	switch b1 >> 6 {
	case 0b01:
		return REGISTER_B
	case 0b10:
		return REGISTER_X
	}

	return REGISTER_A
}

func decodeArithmetic(b1, b2 uint8) Instruction {
	var op Opcode

	switch (b1 >> 3) & 0b11 {
	case 0b00:
		op = OP_ADD
	case 0b01:
		op = OP_SUB
	case 0b10:
		op = OP_LOAD
	case 0b11:
		op = OP_STORE
	}

	return Instruction{
		Op:       op,
		Register: decodeRegister(b1),
		Mode:     Mode(b1 & 0b111),
		Operand:  b2,
	}
}

func decodeLogical(op Opcode) func(b1, b2 uint8) Instruction {
	return func(b1, b2 uint8) Instruction {
		return Instruction{
			Op:       op,
			Register: REGISTER_A,
			Mode:     Mode(b1 & 0b111),
			Operand:  b2,
		}
	}
}

func decodeJump(b1, b2 uint8) Instruction {
	inst := Instruction{
		Op:        OP_JPD,
		Register:  Register(b1 >> 6),
		Mode:      MODE_MEMORY,
		Condition: Condition(b1 & 0b111),
		Operand:   b2,
	}

	if (b1>>4)&0x1 == 1 {
		inst.Op = OP_JMD
	}

	if (b1>>3)&0x1 == 1 {
		inst.Mode = MODE_INDIRECT
	}

	return inst
}

func decodeSkip(b1, b2 uint8) Instruction {
	inst := Instruction{
		Op:      OP_SKP0,
		Mode:    MODE_MEMORY,
		Bit:     (b1 >> 3) & 0b111,
		Operand: b2,
	}

	if (b1>>6)&0x1 == 1 {
		inst.Op = OP_SKP1
	}

	return inst
}

func decodeSet(b1, b2 uint8) Instruction {
	return Instruction{
		Op:      OP_SET,
		Mode:    MODE_MEMORY,
		Bit:     (b1 >> 3) & 0b111,
		Value:   (b1 >> 6) & 0x1,
		Operand: b2,
	}
}

func decodeShift(b1, _ uint8) Instruction {
	inst := Instruction{
		Register: REGISTER_A,
		Places:   (b1>>3)&0b11 + 1,
	}

	if (b1>>5)&0x1 == 1 {
		inst.Register = REGISTER_B
	}

	left := (b1>>7)&0x1 == 1
	rotate := (b1>>6)&0x1 == 1

	switch {
	case left && rotate:
		inst.Op = OP_ROTL
	case left:
		inst.Op = OP_SFTL
	case rotate:
		inst.Op = OP_ROTR
	default:
		inst.Op = OP_SFTR
	}

	return inst
}

func decodeSimple(op Opcode) func(b1, b2 uint8) Instruction {
	return func(_, _ uint8) Instruction {
		return Instruction{Op: op}
	}
}
