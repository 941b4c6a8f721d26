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

package clock

import (
	"context"
	"errors"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/lassandro/gokenbak/pkg/machine"
)

const DefaultInterval = 250 * time.Millisecond

// ErrQuit ends Run when returned by an Action.
var ErrQuit = errors.New("quit")

// Action is a console operation queued for the clock goroutine.
type Action func(mc *machine.Machine) error

// Redraw receives a fresh snapshot after every step or action.
type Redraw func(snap machine.Snapshot)

// Clock steps a machine at a fixed interval. Run is the only code that
// touches the machine while it is active; everything else sends Actions.
type Clock struct {
	Interval time.Duration

	logger *log.Logger
}

func New(interval time.Duration, logger *log.Logger) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Clock{Interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, the action channel is closed or an
// action returns ErrQuit. Step and action errors are logged and the
// machine keeps running.
func (c *Clock) Run(
	ctx context.Context,
	mc *machine.Machine,
	actions <-chan Action,
	redraw Redraw,
) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	if redraw == nil {
		redraw = func(machine.Snapshot) {}
	}

	redraw(mc.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case action, ok := <-actions:
			if !ok {
				return nil
			}

			if err := action(mc); errors.Is(err, ErrQuit) {
				return nil
			} else if err != nil {
				c.logger.Warn("Console operation failed", log.Err(err))
			}

			redraw(mc.Snapshot())

		case <-ticker.C:
			if !c.Tick(mc) {
				continue
			}

			redraw(mc.Snapshot())
		}
	}
}

// Tick executes one instruction if the machine is running and reports
// whether it did.
func (c *Clock) Tick(mc *machine.Machine) bool {
	if !mc.Running() {
		return false
	}

	if err := mc.Step(); err != nil {
		c.logger.Warn("Step failed", log.Err(err))
	}

	return true
}
