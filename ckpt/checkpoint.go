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

// Package ckpt handles the on-disk side of a search run: the
// checkpoint file that lets a run resume where it left off, the
// append-only result log, and the progress fan-out that keeps both (and
// stdout) in sync as workers report in.
package ckpt

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fwjmath/weird-odd-engine/errors"
)

// ErrCheckpointFormat is returned when ckpt.txt exists but doesn't
// parse. The original C source's equivalent read (a malformed fscanf
// call reading into the wrong argument types) silently failed instead
// of detecting this, so a run with a corrupted checkpoint would quietly
// restart from lb. This implementation surfaces the condition instead.
var ErrCheckpointFormat = fmt.Errorf("malformed checkpoint file")

// WorkerState is one worker's last confirmed position: every candidate
// up to and including N has been swept, and Checksum is the running
// subset-sum witness total up to that point.
type WorkerState struct {
	N        uint64
	Checksum uint64
}

// Load reads a checkpoint file holding exactly numWorkers WorkerState
// records, one per line, in worker order. With numWorkers == 1 the file
// is the bare "N checksum" pair the original wrote; with more than one
// worker each line is "worker N checksum". A missing file is not an
// error -- it reports a fresh start (every WorkerState zero).
func Load(path string, numWorkers int) ([]WorkerState, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make([]WorkerState, numWorkers), nil
		}
		return nil, errors.New(err, "opening %s", path)
	}
	defer f.Close()

	states := make([]WorkerState, numWorkers)
	seen := make([]bool, numWorkers)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		var worker int
		var st WorkerState
		if numWorkers == 1 {
			worker = 0
			if _, err := fmt.Sscanf(line, "%d %d", &st.N, &st.Checksum); err != nil {
				return nil, errors.New(ErrCheckpointFormat, "%s: %q", path, line)
			}
		} else {
			if _, err := fmt.Sscanf(line, "%d %d %d", &worker, &st.N, &st.Checksum); err != nil {
				return nil, errors.New(ErrCheckpointFormat, "%s: %q", path, line)
			}
			if worker < 0 || worker >= numWorkers {
				return nil, errors.New(ErrCheckpointFormat, "%s: worker index %d out of range", path, worker)
			}
		}
		states[worker] = st
		seen[worker] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(err, "reading %s", path)
	}
	for _, ok := range seen {
		if !ok {
			return nil, errors.New(ErrCheckpointFormat, "%s: missing entries for all %d workers", path, numWorkers)
		}
	}
	return states, nil
}

// Save rewrites the checkpoint file with the current state of every
// worker, restoring the original's bare "N checksum" format when there
// is exactly one.
func Save(path string, states []WorkerState) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(err, "creating %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if len(states) == 1 {
		if _, err := fmt.Fprintf(w, "%d %d", states[0].N, states[0].Checksum); err != nil {
			return errors.New(err, "writing %s", path)
		}
	} else {
		for i, st := range states {
			if _, err := fmt.Fprintf(w, "%d %d %d\n", i, st.N, st.Checksum); err != nil {
				return errors.New(err, "writing %s", path)
			}
		}
	}
	return w.Flush()
}
