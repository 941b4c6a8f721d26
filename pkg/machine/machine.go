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

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// New returns a halted machine with zeroed memory. A nil logger is
// replaced by one with the default configuration.
func New(logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	mc := &Machine{logger: logger}
	mc.Reset()

	return mc
}

func (mc *MachineState) Reset() {
	for i := range mc.Memory {
		mc.Memory[i] = 0x00
	}

	mc.Running = false
	mc.Address = 0
	mc.Display = DISPLAY_OUTPUT
	mc.LastRead = 0
}

// Reset zeroes memory and returns the machine to HALTED.
func (mc *Machine) Reset() {
	mc.State.Reset()
	mc.written = set.New[uint8]()
}

func (mc *Machine) Running() bool {
	return mc.State.Running
}

func (mc *Machine) halt() {
	mc.State.Running = false
	mc.State.Display = DISPLAY_OUTPUT
}

// Step executes the instruction at P. It does nothing while the machine
// is halted. The returned error is always recoverable: the machine stays
// steppable afterwards.
func (mc *Machine) Step() error {
	if !mc.State.Running {
		return nil
	}

	mc.written = set.New[uint8]()

	pc := mc.program()
	b1 := mc.read(pc)
	b2 := mc.read(pc + 1)

	inst, err := mc.Decoder.Decode(b1, b2)

	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.PC = pc
		}

		if mc.Decoder.Strict {
			mc.logger.Warn("Invalid instruction, halting",
				log.Hex("pc", pc), log.Err(err))
			mc.halt()
			return err
		}

		mc.logger.Warn("Invalid instruction skipped",
			log.Hex("pc", pc), log.Err(err))
		mc.setProgram(pc + Width(b1))
		return err
	}

	mc.logger.Debug("Step",
		log.Hex("pc", pc), log.Stringer("instruction", inst))

	mc.execute(pc, inst)

	return nil
}

// execute applies inst, fetched from pc. Instructions that fall through
// advance P from its value after execution, so a store into P is seen by
// the program counter update.
func (mc *Machine) execute(pc uint8, inst Instruction) {
	var advance uint8

	switch inst.Op {
	// ADD  |REG|0|0 0|MODE | operand          | Add
	// SUB  |REG|0|0 1|MODE | operand          | Subtract
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_ADD, OP_SUB:
		value := mc.resolveOperand(inst.Mode, inst.Operand)

		if inst.Op == OP_SUB {
			value = -value
		}

		mc.add(inst.Register, value)
		advance = 2

	// LOAD |REG|0|1 0|MODE | operand          | Load register
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_LOAD:
		mc.setRegister(inst.Register, mc.resolveOperand(inst.Mode, inst.Operand))
		advance = 2

	// STORE|REG|0|1 1|MODE | operand          | Store register
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_STORE:
		mc.write(mc.resolveAddress(inst.Mode, inst.Operand), mc.register(inst.Register))
		advance = 2

	// AND  |1 1 0 1 0|MODE | operand          | Bitwise and into A
	// OR   |1 1 0 0 0|MODE | operand          | Bitwise or into A
	// LNEG |1 1 0 1 1|MODE | operand          | Negate into A
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		value := mc.resolveOperand(inst.Mode, inst.Operand)
		mc.setRegister(REGISTER_A, mc.register(REGISTER_A)&value)
		advance = 2

	case OP_OR:
		value := mc.resolveOperand(inst.Mode, inst.Operand)
		mc.setRegister(REGISTER_A, mc.register(REGISTER_A)|value)
		advance = 2

	case OP_LNEG:
		// Flags are left alone, as on the hardware
		value := mc.resolveOperand(inst.Mode, inst.Operand)
		mc.setRegister(REGISTER_A, -value)
		advance = 2

	// JPD  |REG|1|0|I|COND | address          | Jump direct/indirect
	// JMD  |REG|1|1|I|COND | address          | Jump and mark
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_JPD, OP_JMD:
		if !mc.condition(inst.Register, inst.Condition) {
			advance = 2
			break
		}

		target := inst.Operand
		if inst.Mode == MODE_INDIRECT {
			target = mc.read(inst.Operand)
		}

		if inst.Op == OP_JMD {
			mc.write(target, pc+2)
			target++
		}

		mc.setProgram(target)

	// SKP0 |1|0|BIT  |0 1 0| address          | Skip if bit clear
	// SKP1 |1|1|BIT  |0 1 0| address          | Skip if bit set
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_SKP0, OP_SKP1:
		bit := (mc.read(inst.Operand) >> inst.Bit) & 0x1
		advance = 2

		if (inst.Op == OP_SKP0 && bit == 0) || (inst.Op == OP_SKP1 && bit == 1) {
			advance = 4
		}

	// SET  |0|V|BIT  |0 1 0| address          | Set bit to V
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_SET:
		value := mc.read(inst.Operand)

		if inst.Value == 1 {
			value |= 1 << inst.Bit
		} else {
			value &= ^uint8(1 << inst.Bit)
		}

		mc.write(inst.Operand, value)
		advance = 2

	// SFTR |0|0|R|PL |0 0 1|                  | Arithmetic shift right
	// ROTR |0|1|R|PL |0 0 1|                  | Rotate right
	// SFTL |1|0|R|PL |0 0 1|                  | Shift left
	// ROTL |1|1|R|PL |0 0 1|                  | Rotate left
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_SFTL, OP_SFTR, OP_ROTL, OP_ROTR:
		mc.setRegister(inst.Register, shift(inst.Op, mc.register(inst.Register), inst.Places))
		advance = 1

	// NOOP |1|x x x x|0 0 0|                  | No operation
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_NOOP:
		advance = 1

	// HALT |0|x x x x|0 0 0|                  | Halt
	// ---- [ _ _ _ _ _ _ _ _ ]
	case OP_HALT:
		mc.halt()
		mc.logger.Info("Machine halted", log.Hex("pc", pc))
		advance = 1

	default:
		mc.logger.Warn("Unknown opcode treated as NOOP",
			log.Hex("pc", pc), log.Stringer("opcode", inst.Op))
		advance = 1
	}

	if advance > 0 {
		mc.setProgram(mc.program() + advance)
	}
}

// add sums value into r and records overflow and carry in r's flag cell.
func (mc *Machine) add(r Register, value uint8) {
	current := mc.register(r)
	sum := uint16(current) + uint16(value)
	result := uint8(sum)

	overflow := (current^result)&(value^result)&0x80 != 0
	carry := sum > 0xFF

	mc.setRegister(r, result)
	mc.setFlags(r, overflow, carry)
}

func (mc *Machine) condition(r Register, cond Condition) bool {
	if r == REGISTER_UNCONDITIONAL {
		return true
	}

	value := mc.register(r)
	negative := value&0x80 != 0

	switch cond {
	case COND_NONZERO:
		return value != 0
	case COND_ZERO:
		return value == 0
	case COND_NEGATIVE:
		return negative
	case COND_POSITIVE:
		return !negative
	case COND_POSITIVE_NONZERO:
		return value != 0 && !negative
	}

	return false
}

func shift(op Opcode, value uint8, places uint8) uint8 {
	for i := uint8(0); i < places; i++ {
		switch op {
		case OP_SFTL:
			value <<= 1
		case OP_SFTR:
			value = value>>1 | value&0x80
		case OP_ROTL:
			value = value<<1 | value>>7
		case OP_ROTR:
			value = value>>1 | value<<7
		}
	}

	return value
}
