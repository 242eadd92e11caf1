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
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestBroadcasterWritesCheckpointAndFlushesLog sends progress ticks for
// two workers and confirms both the rewritten checkpoint file and the
// flushed result log reflect them, without the caller doing either
// write itself.
func TestBroadcasterWritesCheckpointAndFlushesLog(t *testing.T) {
	dir := t.TempDir()
	ckptPath := filepath.Join(dir, "ckpt.txt")
	resPath := filepath.Join(dir, "res.txt")

	rl, err := OpenResultLog(resPath)
	if err != nil {
		t.Fatalf("OpenResultLog: %v", err)
	}
	defer rl.Close()
	if err := rl.WeirdFound(1); err != nil {
		t.Fatalf("WeirdFound: %v", err)
	}

	b := NewBroadcaster(ckptPath, rl, make([]WorkerState, 2))
	defer b.Close()

	if err := b.Report(ProgressEvent{Worker: 0, N: 1000, Checksum: 5}); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if err := b.Report(ProgressEvent{Worker: 1, N: 2000, Checksum: 9}); err != nil {
		t.Fatalf("Report: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		states, err := Load(ckptPath, 2)
		if err == nil && states[0].N == 1000 && states[1].N == 2000 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("checkpoint never reflected both workers (err=%v, states=%+v)", err, states)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline = time.Now().Add(2 * time.Second)
	for {
		raw, err := os.ReadFile(resPath)
		if err == nil && string(raw) == "1 is WEIRD ODD!!!\n" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("result log was never flushed to disk (raw=%q, err=%v)", raw, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
