//----------------------------------------------------------------------
// This file is part of the Weird Odd Engine.
// Copyright (C) 2011-present, Bernd Fix  >Y<
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package ckpt

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/fwjmath/weird-odd-engine/errors"
	"github.com/fwjmath/weird-odd-engine/logger"
)

// ResultLog is the append-only event log (res.txt). Every line is one
// of the three events the search can report for a candidate; entries
// are buffered and committed with Flush, which the progress broadcaster
// calls on every checkpoint tick so a crash loses at most one interval
// of events instead of leaving the file unsynced indefinitely.
type ResultLog struct {
	mu  sync.Mutex
	f   *os.File
	buf *bufio.Writer
}

// OpenResultLog opens (creating if necessary) the result log for
// appending.
func OpenResultLog(path string) (*ResultLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.New(err, "opening %s", path)
	}
	return &ResultLog{f: f, buf: bufio.NewWriter(f)}, nil
}

func (r *ResultLog) line(level int, format string, n uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := fmt.Sprintf(format, n)
	logger.Println(level, msg)
	_, err := r.buf.WriteString(msg + "\n")
	return err
}

// WeirdFound records a confirmed odd weird number.
func (r *ResultLog) WeirdFound(n uint64) error {
	return r.line(logger.INFO, "%d is WEIRD ODD!!!", n)
}

// ExcessOverflow records a candidate whose abundance excess didn't fit
// a machine word.
func (r *ResultLog) ExcessOverflow(n uint64) error {
	return r.line(logger.ERROR, "Error on %d!!!", n)
}

// TooManyDivisors records a candidate whose divisor count exceeded the
// bound generate_divisors enforces.
func (r *ResultLog) TooManyDivisors(n uint64) error {
	return r.line(logger.ERROR, "%d: too many divisors", n)
}

// Flush commits buffered lines to disk.
func (r *ResultLog) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Flush()
}

// Close flushes and closes the underlying file.
func (r *ResultLog) Close() error {
	if err := r.Flush(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
