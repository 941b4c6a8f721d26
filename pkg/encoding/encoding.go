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

package encoding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidByte = errors.New("invalid byte value")

func parseByte(s string, base int) (uint8, error) {
	if s == "" {
		return 0, fmt.Errorf("empty string: %w", ErrInvalidByte)
	}

	result, err := strconv.ParseUint(s, base, 8)

	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidByte)
	}

	return uint8(result), nil
}

// Decodes an octal string in the formats: 0o377, o377, 0377, 377
func DecodeOctal(s string) (uint8, error) {
	switch {
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		s = s[2:]
	case strings.HasPrefix(s, "o"), strings.HasPrefix(s, "O"):
		s = s[1:]
	}

	return parseByte(s, 8)
}

// Decodes a hexidecimal string in the formats: 0xFF, xFF
func DecodeHex(s string) (uint8, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = s[1:]
	} else if i == 1 && s[0] == '0' {
		s = s[2:]
	} else {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidByte)
	}

	return parseByte(s, 16)
}

// Decodes a base-10 string in the formats: #123, 123
func DecodeInt(s string) (uint8, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	return parseByte(s, 10)
}

// DecodeByte picks the base from the prefix. Octal is the default, as
// on the front panel.
func DecodeByte(s string) (uint8, error) {
	switch {
	case strings.HasPrefix(s, "#"):
		return DecodeInt(s)
	case strings.HasPrefix(s, "x"), strings.HasPrefix(s, "X"),
		strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return DecodeHex(s)
	}

	return DecodeOctal(s)
}

func FormatOctal(value uint8) string {
	return fmt.Sprintf("%03o", value)
}

func FormatBinary(value uint8) string {
	return fmt.Sprintf("%08b", value)
}
