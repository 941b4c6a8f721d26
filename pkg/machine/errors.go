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

var (
	ErrAddressOutOfRange       = errors.New("address out of range")
	ErrIllegalConsoleOperation = errors.New("illegal console operation while running")
	ErrBitOutOfRange           = errors.New("bit position out of range")
)

// DecodeError reports a byte pattern that matches no instruction.
type DecodeError struct {
	PC    uint8
	Byte1 uint8
	Byte2 uint8
}

func (err *DecodeError) Error() string {
	if Width(err.Byte1) == 1 {
		return fmt.Sprintf("%03o: invalid instruction %03o", err.PC, err.Byte1)
	}

	return fmt.Sprintf(
		"%03o: invalid instruction %03o %03o", err.PC, err.Byte1, err.Byte2,
	)
}
