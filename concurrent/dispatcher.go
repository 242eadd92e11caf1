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

package concurrent

import (
	"context"
	"sync"
)

// Dispatchable is implemented by callers who want a pool of workers
// pulling tasks T off one channel and pushing results R onto another --
// e.g. a candidate-range sweep where T is a sub-range and R is a
// found-weird-number (or progress) report.
type Dispatchable[T, R any] interface {

	// Worker using channels to read task and write results.
	Worker(ctx context.Context, n int, taskCh chan T, resCh chan R)

	// Eval receives results from workers. Returning true stops the
	// dispatcher, e.g. once a caller-supplied result quota is reached.
	Eval(result R) bool
}

// Dispatcher managing worker go-routines
type Dispatcher[T, R any] struct {
	taskCh  chan T
	resCh   chan R
	ctrl    chan int
	stopped chan struct{} // closed once the dispatch loop has returned
}

// NewDispatcher runs a new dispatcher with given number of workers and
// a Dispatchable implementation. The context workers see is derived
// from ctx, not ctx itself: an Eval that returns true must stop every
// worker immediately, not just the dispatch loop, so the derived
// context (and its cancel) is created before any worker starts, and
// workers select on it rather than on ctx directly.
func NewDispatcher[T, R any](ctx context.Context, numWorker int, disp Dispatchable[T, R]) *Dispatcher[T, R] {
	d := new(Dispatcher[T, R])
	d.taskCh = make(chan T)
	d.resCh = make(chan R)
	d.ctrl = make(chan int)
	d.stopped = make(chan struct{})

	ctxD, cancel := context.WithCancel(ctx)

	// start worker go-routines
	wg := new(sync.WaitGroup)
	for n := 0; n < numWorker; n++ {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			disp.Worker(ctxD, num, d.taskCh, d.resCh)
		}(n)
	}

	// run dispatcher loop
	go func() {
		// clean-up on exit: workers have already seen ctxD cancelled
		// by the time we get here, so wg.Wait() can't hang on a
		// worker that never learned to stop. taskCh/resCh are
		// deliberately left open rather than closed: nothing ranges
		// over them, and closing either here would race a concurrent
		// Process/Quit call into sending on (or reading a zero value
		// from) a closed channel -- stopped is the only signal a
		// caller needs.
		defer func() {
			cancel()
			wg.Wait()
			close(d.stopped)
		}()

		for {
			select {
			// handle termination
			case <-ctxD.Done():
				return
			case <-d.ctrl:
				return

			// handle result
			case x := <-d.resCh:
				if disp.Eval(x) {
					return
				}
			}
		}
	}()
	return d
}

// Process a task. Returns false if the dispatcher has stopped (or is in
// the process of stopping) rather than blocking forever on a taskCh no
// worker is left to drain.
func (d *Dispatcher[T, R]) Process(task T) bool {
	select {
	case d.taskCh <- task:
		return true
	case <-d.stopped:
		return false
	}
}

// Quit dispatcher run. Safe to call after the dispatcher has already
// stopped on its own (e.g. Eval returned true): the stopped channel
// makes this a no-op instead of a blocked send with no receiver.
func (d *Dispatcher[T, R]) Quit() {
	select {
	case d.ctrl <- 0:
	case <-d.stopped:
	}
}
