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
	"sync"

	"github.com/fwjmath/weird-odd-engine/concurrent"
	"github.com/fwjmath/weird-odd-engine/logger"
)

// ProgressEvent is what a search worker reports every checkpoint
// interval: it has fully swept every candidate up to N.
type ProgressEvent struct {
	Worker   int
	N        uint64
	Checksum uint64
}

// Broadcaster fans one worker's progress tick out to three independent
// listeners -- a stdout line, a checkpoint-file rewrite, and a
// result-log flush -- on an adaptation of the teacher's "communicate,
// don't share memory" signal dispatcher, instead of having the worker
// that detected progress do all three jobs itself (and block the sweep
// on whichever is slowest).
type Broadcaster struct {
	sig       *concurrent.Signaller
	ckptPath  string
	resultLog *ResultLog

	mu    sync.Mutex
	state []WorkerState
}

// NewBroadcaster starts the fan-out for a run with the given initial
// per-worker state (as restored by Load, or all-zero for a fresh run).
func NewBroadcaster(ckptPath string, resultLog *ResultLog, initial []WorkerState) *Broadcaster {
	b := &Broadcaster{
		sig:       concurrent.NewSignaller(),
		ckptPath:  ckptPath,
		resultLog: resultLog,
		state:     append([]WorkerState(nil), initial...),
	}
	b.run()
	return b
}

func (b *Broadcaster) run() {
	stdoutL, err := b.sig.Listener()
	if err != nil {
		return
	}
	go func() {
		for sig := range stdoutL.Signal() {
			ev, ok := sig.(ProgressEvent)
			if !ok {
				continue
			}
			logger.Printf(logger.INFO, "Checked to %d", ev.N)
		}
	}()

	ckptL, err := b.sig.Listener()
	if err != nil {
		return
	}
	go func() {
		for sig := range ckptL.Signal() {
			ev, ok := sig.(ProgressEvent)
			if !ok {
				continue
			}
			snapshot := b.update(ev)
			if err := Save(b.ckptPath, snapshot); err != nil {
				logger.Printf(logger.SEVERE, "checkpoint write failed: %v", err)
			}
		}
	}()

	flushL, err := b.sig.Listener()
	if err != nil {
		return
	}
	go func() {
		for range flushL.Signal() {
			if err := b.resultLog.Flush(); err != nil {
				logger.Printf(logger.SEVERE, "result log flush failed: %v", err)
			}
		}
	}()
}

// update records a worker's latest position and returns a snapshot of
// every worker's state, safe to pass to Save without racing a
// concurrent update from another worker's tick.
func (b *Broadcaster) update(ev ProgressEvent) []WorkerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state[ev.Worker] = WorkerState{N: ev.N, Checksum: ev.Checksum}
	return append([]WorkerState(nil), b.state...)
}

// Report broadcasts a progress tick to every listener.
func (b *Broadcaster) Report(ev ProgressEvent) error {
	return b.sig.Send(ev)
}

// Close retires the signaller; no further Report calls are valid.
func (b *Broadcaster) Close() {
	b.sig.Retire()
}
