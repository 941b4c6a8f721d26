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

package main

import (
	"github.com/lassandro/gokenbak/pkg/machine"
)

const demoAddress = 0o004

// Counts up on the output lamps, one count every three instructions
var demoProgram = []uint8{
	0o003, 0o001, // ADD A,IMM 001
	0o034, 0o200, // STORE A,MEM 200
	0o344, 0o004, // JPD UNC,MEM 004
}

// deposit keys code into memory at addr through the console, the way an
// operator would at the front panel.
func deposit(mc *machine.Machine, addr uint8, code []uint8) error {
	mc.WriteInput(addr)

	if err := mc.SetAddress(); err != nil {
		return err
	}

	for _, b := range code {
		mc.WriteInput(b)

		if err := mc.StoreMemory(); err != nil {
			return err
		}
	}

	return nil
}

func depositDemo(mc *machine.Machine) error {
	if err := deposit(mc, demoAddress, demoProgram); err != nil {
		return err
	}

	if err := deposit(mc, machine.REG_P, []uint8{demoAddress}); err != nil {
		return err
	}

	mc.ClearInput()

	return nil
}
