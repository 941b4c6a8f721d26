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

// resolveAddress returns the effective address of an operand. In
// immediate mode that is the operand byte itself, which lets STORE
// rewrite its own second byte.
func (mc *Machine) resolveAddress(mode Mode, operand uint8) uint8 {
	switch mode {
	case MODE_INDIRECT:
		return mc.read(operand)

	case MODE_INDEXED:
		return operand + mc.read(REG_X)

	case MODE_INDIRECT_INDEXED:
		return mc.read(operand) + mc.read(REG_X)
	}

	return operand
}

// resolveOperand returns the effective value of an operand.
func (mc *Machine) resolveOperand(mode Mode, operand uint8) uint8 {
	if mode == MODE_IMMEDIATE {
		return operand
	}

	return mc.read(mc.resolveAddress(mode, operand))
}
