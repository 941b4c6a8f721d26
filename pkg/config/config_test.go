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

package config_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"

	"github.com/lassandro/gokenbak/pkg/clock"
	"github.com/lassandro/gokenbak/pkg/config"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want config.Options
	}{
		{
			name: "defaults",
			want: config.Options{Interval: clock.DefaultInterval},
		},
		{
			name: "all flags",
			args: []string{"-interval", "10ms", "-strict", "-extended", "-headless", "-demo", "-debug"},
			want: config.Options{
				Interval: 10 * time.Millisecond,
				Strict:   true,
				Extended: true,
				Headless: true,
				Demo:     true,
				Debug:    true,
			},
		},
		{
			name: "quiet",
			args: []string{"-quiet"},
			want: config.Options{Interval: clock.DefaultInterval, Quiet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			have, err := config.ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, have)
		})
	}
}

func TestParseFlagsUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-fast"}},
		{"positional argument", []string{"program.bin"}},
		{"zero interval", []string{"-interval", "0s"}},
		{"bad interval", []string{"-interval", "soon"}},
		{"help", []string{"-help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseFlags(tt.args)

			var usageErr *config.UsageError
			assert.True(t, errors.As(err, &usageErr))

			var buf bytes.Buffer
			usageErr.ShowUsage(&buf)
			assert.Contains(t, buf.String(), "-interval")
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, config.CreateLogger(true, false))
	assert.NotNil(t, config.CreateLogger(false, true))
}
