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
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

func (mem *Memory) Peek(addr int) (uint8, error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		return 0, fmt.Errorf("read %d: %w", addr, ErrAddressOutOfRange)
	}

	return mem[addr], nil
}

func (mem *Memory) Poke(addr int, value uint8) error {
	if addr < 0 || addr >= MEMORY_SIZE {
		return fmt.Errorf("write %d: %w", addr, ErrAddressOutOfRange)
	}

	mem[addr] = value
	return nil
}

// Read returns the cell at addr, or 0 when addr is outside the address space.
func (mc *Machine) Read(addr int) uint8 {
	value, err := mc.State.Memory.Peek(addr)

	if err != nil {
		mc.logger.Warn("Memory read ignored", log.Int("address", addr), log.Err(err))
	}

	return value
}

// Write stores value at addr. Writes outside the address space are dropped.
func (mc *Machine) Write(addr int, value uint8) {
	if err := mc.State.Memory.Poke(addr, value); err != nil {
		mc.logger.Warn("Memory write ignored", log.Int("address", addr), log.Err(err))
		return
	}

	if mc.written == nil {
		mc.written = set.New[uint8]()
	}

	mc.written.Add(uint8(addr))
}

func (mc *Machine) read(addr uint8) uint8 {
	return mc.Read(int(addr))
}

func (mc *Machine) write(addr uint8, value uint8) {
	mc.Write(int(addr), value)
}

func (mc *Machine) register(r Register) uint8 {
	return mc.read(r.Addr())
}

func (mc *Machine) setRegister(r Register, value uint8) {
	mc.write(r.Addr(), value)
}

func (mc *Machine) program() uint8 {
	return mc.read(REG_P)
}

func (mc *Machine) setProgram(value uint8) {
	mc.write(REG_P, value)
}

func (mc *Machine) setFlags(r Register, overflow, carry bool) {
	var value uint8

	if overflow {
		value |= FLAG_OVERFLOW
	}

	if carry {
		value |= FLAG_CARRY
	}

	mc.write(r.FlagAddr(), value)
}
