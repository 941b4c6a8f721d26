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

package machine_test

import (
	"testing"

	"github.com/retroenv/retrogolib/log"

	"github.com/lassandro/gokenbak/pkg/machine"
)

// run resets mc, loads code at address 4 and steps once per instruction.
func run(t *testing.T, mc *machine.Machine, setup func(mc *machine.Machine), code ...uint8) {
	t.Helper()

	mc.Reset()
	mc.State.Memory[machine.REG_P] = 0o004

	copy(mc.State.Memory[0o004:], code)

	if setup != nil {
		setup(mc)
	}

	mc.Start()

	for pc := 0; pc < len(code); {
		width := int(machine.Width(code[pc]))

		if err := mc.Step(); err != nil {
			t.Fatalf("Unexpected step error\nhave:%v", err)
		}

		pc += width
	}
}

func TestAddFlagsExhaustive(t *testing.T) {
	registers := []machine.Register{
		machine.REGISTER_A, machine.REGISTER_B, machine.REGISTER_X,
	}

	mc := machine.New(log.NewTestLogger(t))

	for _, r := range registers {
		for old := 0; old < 256; old++ {
			for v := 0; v < 256; v++ {
				run(t, mc, func(mc *machine.Machine) {
					mc.State.Memory[r.Addr()] = uint8(old)
				}, uint8(r)<<6|0o003, uint8(v))

				sum := old + v
				result := uint8(sum)

				oldSign := old&0x80 != 0
				valueSign := v&0x80 != 0
				resultSign := result&0x80 != 0

				var want uint8
				if oldSign == valueSign && oldSign != resultSign {
					want |= machine.FLAG_OVERFLOW
				}
				if sum > 255 {
					want |= machine.FLAG_CARRY
				}

				if have := mc.State.Memory[r.Addr()]; have != result {
					t.Fatalf(
						"Register mismatch %s+%#03o"+
							"\nwant:%#03o\nhave:%#03o", r, v, result, have,
					)
				}

				if have := mc.State.Memory[r.FlagAddr()]; have != want {
					t.Fatalf(
						"Flag mismatch %#03o+%#03o"+
							"\nwant:%#02b\nhave:%#02b", old, v, want, have,
					)
				}
			}
		}
	}
}

func TestSubIsAddOfNegation(t *testing.T) {
	sub := machine.New(log.NewTestLogger(t))
	add := machine.New(log.NewTestLogger(t))

	for old := 0; old < 256; old++ {
		for v := 0; v < 256; v++ {
			setup := func(mc *machine.Machine) {
				mc.State.Memory[machine.REG_A] = uint8(old)
			}

			run(t, sub, setup, 0o013, uint8(v))
			run(t, add, setup, 0o003, -uint8(v))

			if sub.State.Memory[machine.REG_A] != add.State.Memory[machine.REG_A] ||
				sub.State.Memory[machine.REG_OVERFLOW_A] != add.State.Memory[machine.REG_OVERFLOW_A] {
				t.Fatalf("SUB %#03o from %#03o differs from ADD", v, old)
			}
		}
	}
}

func TestHalfRotationIsSymmetric(t *testing.T) {
	left := machine.New(log.NewTestLogger(t))
	right := machine.New(log.NewTestLogger(t))

	for x := 0; x < 256; x++ {
		setup := func(mc *machine.Machine) {
			mc.State.Memory[machine.REG_A] = uint8(x)
		}

		run(t, left, setup, 0o331)  // ROTL A,4
		run(t, right, setup, 0o131) // ROTR A,4

		if left.State.Memory[machine.REG_A] != right.State.Memory[machine.REG_A] {
			t.Fatalf("ROTL 4 and ROTR 4 differ for %#08b", x)
		}
	}
}

func TestSetThenSkip(t *testing.T) {
	mc := machine.New(log.NewTestLogger(t))

	// Bits 4-7 set bit 5 of the opcode, which only the extended table
	// reads as SET/SKP
	for _, extended := range []bool{false, true} {
		mc.Decoder.Extended = extended

		bits := uint8(4)
		if extended {
			bits = 8
		}

		for bit := uint8(0); bit < bits; bit++ {
			for _, initial := range []uint8{0x00, 0xFF, 0b1010_0101} {
				setup := func(mc *machine.Machine) {
					mc.State.Memory[0o200] = initial
				}

				// SET1 bit,200; SKP1 bit,200
				run(t, mc, setup, 0o102|bit<<3, 0o200, 0o302|bit<<3, 0o200)
				if have := mc.State.Memory[machine.REG_P]; have != 0o012 {
					t.Fatalf("SKP1 %d did not skip after SET1\nhave:%#03o", bit, have)
				}

				// SET0 bit,200; SKP0 bit,200
				run(t, mc, setup, 0o002|bit<<3, 0o200, 0o202|bit<<3, 0o200)
				if have := mc.State.Memory[machine.REG_P]; have != 0o012 {
					t.Fatalf("SKP0 %d did not skip after SET0\nhave:%#03o", bit, have)
				}
			}
		}
	}
}
