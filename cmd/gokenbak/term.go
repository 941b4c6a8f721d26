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
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

var termRestore unix.Termios

// enterRawTerm turns off line buffering and echo on stdin so single key
// presses reach the console.
func enterRawTerm() error {
	if err := termios.Tcgetattr(os.Stdin.Fd(), &termRestore); err != nil {
		return err
	}

	termstate := termRestore

	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	return termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &termstate)
}

func exitRawTerm() error {
	return termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &termRestore)
}
