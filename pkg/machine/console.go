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

// Console operations mirror the front-panel buttons. Operations that
// touch memory through the address register are refused while the
// machine is running.

func (mc *Machine) WriteInput(value uint8) {
	mc.State.Memory[REG_INPUT] = value
	mc.State.Display = DISPLAY_INPUT
}

func (mc *Machine) ToggleInput(bit uint8) error {
	if bit > 7 {
		return fmt.Errorf("toggle input bit %d: %w", bit, ErrBitOutOfRange)
	}

	mc.WriteInput(mc.State.Memory[REG_INPUT] ^ (1 << bit))
	return nil
}

func (mc *Machine) ClearInput() {
	mc.WriteInput(0)
}

func (mc *Machine) refuseWhileRunning(operation string) error {
	if !mc.State.Running {
		return nil
	}

	err := fmt.Errorf("%s: %w", operation, ErrIllegalConsoleOperation)
	mc.logger.Warn("Console operation refused", log.Err(err))

	return err
}

// SetAddress loads the address register from the input register.
func (mc *Machine) SetAddress() error {
	if err := mc.refuseWhileRunning("set address"); err != nil {
		return err
	}

	mc.State.Address = mc.State.Memory[REG_INPUT]
	mc.State.Display = DISPLAY_ADDRESS

	return nil
}

func (mc *Machine) DisplayAddress() {
	mc.State.Display = DISPLAY_ADDRESS
}

func (mc *Machine) Address() uint8 {
	return mc.State.Address
}

// ReadMemory returns the cell under the address register and advances
// the register.
func (mc *Machine) ReadMemory() (uint8, error) {
	if err := mc.refuseWhileRunning("read memory"); err != nil {
		return 0, err
	}

	value := mc.State.Memory[mc.State.Address]

	mc.State.LastRead = value
	mc.State.Address++
	mc.State.Display = DISPLAY_MEMORY

	return value, nil
}

// StoreMemory deposits the input register at the address register and
// advances the register.
func (mc *Machine) StoreMemory() error {
	if err := mc.refuseWhileRunning("store memory"); err != nil {
		return err
	}

	value := mc.State.Memory[REG_INPUT]

	mc.written = set.New[uint8]()
	mc.write(mc.State.Address, value)

	mc.State.LastRead = value
	mc.State.Address++
	mc.State.Display = DISPLAY_MEMORY

	return nil
}

func (mc *Machine) Start() {
	if !mc.State.Running {
		mc.logger.Info("Machine started", log.Hex("pc", mc.program()))
	}

	mc.State.Running = true
	mc.State.Display = DISPLAY_OUTPUT
}

func (mc *Machine) Stop() {
	if mc.State.Running {
		mc.logger.Info("Machine stopped", log.Hex("pc", mc.program()))
	}

	mc.State.Running = false
	mc.State.Display = DISPLAY_OUTPUT
}

// Snapshot returns a copy of the state for rendering.
func (mc *Machine) Snapshot() Snapshot {
	written := set.New[uint8]()
	for addr := range mc.written {
		written.Add(addr)
	}

	return Snapshot{
		Memory:   mc.State.Memory,
		Running:  mc.State.Running,
		Address:  mc.State.Address,
		Display:  mc.State.Display,
		LastRead: mc.State.LastRead,
		Written:  written,
		Decoder:  mc.Decoder,
	}
}

// DisplayValue returns the byte shown on the data lamps.
func (mc *Machine) DisplayValue() uint8 {
	state := &mc.State
	return displayValue(&state.Memory, state.Display, state.Address, state.LastRead)
}

// Value returns the byte shown on the data lamps for this snapshot.
func (snap *Snapshot) Value() uint8 {
	return displayValue(&snap.Memory, snap.Display, snap.Address, snap.LastRead)
}

func displayValue(memory *Memory, display DisplayMode, address, lastRead uint8) uint8 {
	switch display {
	case DISPLAY_INPUT:
		return memory[REG_INPUT]
	case DISPLAY_ADDRESS:
		return address
	case DISPLAY_MEMORY:
		return lastRead
	}

	return memory[REG_OUTPUT]
}

// Instruction decodes the instruction under P with the machine's
// decoder. ok is false when the bytes do not decode.
func (snap *Snapshot) Instruction() (inst Instruction, ok bool) {
	pc := snap.Memory[REG_P]

	inst, err := snap.Decoder.Decode(snap.Memory[pc], snap.Memory[pc+1])
	return inst, err == nil
}
