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

// Package search implements the candidate sweep over [lb, ub): the
// residue-to-known-factor dispatch, the factoring-pipeline/divisor/
// subset-sum data flow per candidate, progress reporting, and the
// multi-worker partition of the interval across goroutines.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwjmath/weird-odd-engine/ckpt"
	"github.com/fwjmath/weird-odd-engine/concurrent"
	"github.com/fwjmath/weird-odd-engine/factor"
	"github.com/fwjmath/weird-odd-engine/logger"
	"github.com/fwjmath/weird-odd-engine/primes"
	"github.com/fwjmath/weird-odd-engine/residue"
)

// ErrExcessOverflow is reported when a candidate's abundance excess
// (sigma(N) - 2N) does not fit in a uint64 -- so rare (N would have to
// be enormous relative to 2^63) that it is treated as a skip, not a
// fatal abort, mirroring the original's "Error on N!!!" log line.
var ErrExcessOverflow = errors.New("abundance excess overflows a machine word")

// Driver holds everything shared across every worker of one search run:
// the prime table and tracked primes feeding the residue wheel, plus
// where Eval sends the side effects a Result demands. Log and Progress
// may be left nil for tests that only care about the sweep itself.
type Driver struct {
	Table        *primes.Table
	Tracked      []uint64
	CkptInterval uint64
	Log          *ckpt.ResultLog
	Progress     *ckpt.Broadcaster

	// DebugFactors logs the full factorization of every abundant
	// survivor at logger.DBG, commented out in the original
	// (print_factors) and left off by default since it dwarfs normal
	// log volume on a long run.
	DebugFactors bool

	// doneCount, wantDone, done and fatalErr are Run/Eval's private
	// completion bookkeeping. Eval is only ever invoked from the
	// dispatcher's single result-reading goroutine, so these need no
	// synchronization of their own.
	doneCount int64
	wantDone  int64
	done      chan struct{}
	fatalErr  error
}

// NewDriver builds a Driver from a loaded prime table. Log and Progress
// can be set afterward, before Run is called.
func NewDriver(tbl *primes.Table, ckptInterval uint64) *Driver {
	return &Driver{
		Table:        tbl,
		Tracked:      tbl.Primes[3 : 3+residue.NumPrimes],
		CkptInterval: ckptInterval,
	}
}

// Run partitions [lb, ub) into at most workers sub-ranges via Partition
// (one per task, not necessarily one per goroutine -- see Task), resumes
// each from the matching entry of resume if given (a non-empty resume
// must hold exactly one entry per task, or Run returns an error), and
// drives the
// sweep to completion through an adapted concurrent.Dispatcher. It
// blocks until every task reports ResultDone, a ResultFatal result
// stops everything early, or ctx is cancelled.
func (d *Driver) Run(ctx context.Context, lb, ub uint64, workers int, resume []ckpt.WorkerState) error {
	tasks := Partition(lb, ub, workers)
	if len(resume) > 0 {
		if len(resume) != len(tasks) {
			return fmt.Errorf("search: %d checkpoint entries for %d tasks", len(resume), len(tasks))
		}
		for i := range tasks {
			tasks[i].ResumeN = resume[i].N
			tasks[i].ResumeChecksum = resume[i].Checksum
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	d.doneCount = 0
	d.wantDone = int64(len(tasks))
	d.done = make(chan struct{})
	d.fatalErr = nil

	disp := concurrent.NewDispatcher[Task, Result](ctx, workers, d)
	for _, task := range tasks {
		if !disp.Process(task) {
			return fmt.Errorf("search: dispatcher closed before all tasks were submitted")
		}
	}

	select {
	case <-d.done:
	case <-ctx.Done():
	}
	disp.Quit()
	if d.fatalErr != nil {
		return d.fatalErr
	}
	return ctx.Err()
}

// Task is one sub-range of the sweep: [Lb, Ub) and where to resume
// within it. ResumeN == 0 means "fresh start at Lb"; otherwise it is
// the last candidate a checkpoint confirmed fully swept (always
// residue 27 of some completed block), and the sweep picks up at the
// block immediately after it. No real candidate is ever 0 (the
// smallest is residue 3 of block 0), so the sentinel is unambiguous.
//
// Idx identifies the sub-range itself, independent of which dispatcher
// goroutine ends up sweeping it -- the dispatcher hands tasks to
// whichever worker goroutine is free, so goroutine identity isn't
// stable across a resumed run, but Idx (assigned once by Partition,
// fixed for the lifetime of the search) is. Checkpoint state is keyed
// on Idx for exactly this reason.
type Task struct {
	Idx            int
	Lb, Ub         uint64
	ResumeN        uint64
	ResumeChecksum uint64
}

// ResultKind classifies a Result.
type ResultKind int

const (
	// ResultWeird reports a confirmed odd weird number.
	ResultWeird ResultKind = iota
	// ResultError reports a non-fatal skip (divisor or excess overflow).
	ResultError
	// ResultProgress reports that at least CkptInterval candidates (every
	// residue position of the walk counts) have been swept since the last
	// progress report; it is sent at the end of a block of 30.
	ResultProgress
	// ResultDone reports that a worker finished its assigned Task.
	ResultDone
	// ResultFatal reports an unrecoverable error (Lucas D overflow,
	// Pollard-Rho retry exhaustion); the driver stops on this.
	ResultFatal
)

// Result is what a worker reports back through the dispatcher. Task is
// the sub-range's Idx (see Task), not the reporting goroutine's number.
type Result struct {
	Kind     ResultKind
	Task     int
	N        uint64
	Checksum uint64
	Err      error
}

// Partition splits [lb, ub) into disjoint, 30-aligned sub-intervals, at
// most one per worker (fewer when the blocks run out first), each sized
// ceil(blockCount/workers) blocks of 30 except possibly the last, so no
// candidate is visited twice or skipped at a boundary. Tasks are returned in Idx order, Idx 0 first.
func Partition(lb, ub uint64, workers int) []Task {
	if workers < 1 {
		workers = 1
	}
	lb -= lb % residue.Span
	ub -= ub % residue.Span
	if ub <= lb {
		return nil
	}
	blocks := (ub - lb) / residue.Span
	perWorker := (blocks + uint64(workers) - 1) / uint64(workers)
	step := perWorker * residue.Span
	if step == 0 {
		step = residue.Span
	}

	var tasks []Task
	for start := lb; start < ub; start += step {
		end := start + step
		if end > ub {
			end = ub
		}
		tasks = append(tasks, Task{Idx: len(tasks), Lb: start, Ub: end})
	}
	return tasks
}

// Worker implements concurrent.Dispatchable[Task, Result]: it pulls one
// sub-range Task at a time and streams every Result the sweep produces
// back through resCh, running until ctx is cancelled (taskCh is never
// closed, so an idle worker waits for the next task).
func (d *Driver) Worker(ctx context.Context, n int, taskCh chan Task, resCh chan Result) {
	w := residue.New(d.Tracked)
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-taskCh:
			d.sweep(ctx, n, task, w, resCh)
		}
	}
}

// Eval is the dispatcher's only observer of worker results, so it is
// where every side effect a Result demands actually happens: logging a
// find or a skip to the result log, forwarding a progress tick to the
// checkpoint broadcaster, and counting finished tasks so Run knows when
// the whole sweep is done. It stops the dispatcher only on a fatal,
// unrecoverable error.
func (d *Driver) Eval(result Result) bool {
	switch result.Kind {
	case ResultWeird:
		if d.Log != nil {
			d.Log.WeirdFound(result.N)
		}
	case ResultError:
		if d.Log != nil {
			switch {
			case errors.Is(result.Err, factor.ErrDivisorOverflow):
				d.Log.TooManyDivisors(result.N)
			case errors.Is(result.Err, ErrExcessOverflow):
				d.Log.ExcessOverflow(result.N)
			}
		}
	case ResultProgress:
		if d.Progress != nil {
			d.Progress.Report(ckpt.ProgressEvent{Worker: result.Task, N: result.N, Checksum: result.Checksum})
		}
	case ResultDone:
		d.doneCount++
		if d.doneCount == d.wantDone && d.done != nil {
			close(d.done)
		}
	case ResultFatal:
		d.fatalErr = result.Err
		if d.done != nil {
			close(d.done)
		}
		return true
	}
	return false
}

// sweep runs the residue walk over task's sub-range, reusing one
// factor.State and one residue.Wheel across every candidate the way the
// original's file-scope globals did, instead of allocating per
// candidate -- a sweep over tens of millions of candidates can't afford
// per-candidate allocation.
//
// The walk is laid out block-first, residue-second: the very first
// candidate of the task (residue 3 of its first block) is seeded
// directly, and every later candidate is reached by advancing the
// wheel by residue.Deltas[idx] before testing it, idx cycling 0..6 and
// wrapping from residue 27 of one block to residue 3 of the next via
// Deltas[0]. This avoids ever stepping "one before the first candidate"
// (which, computed as a plain subtraction on an unsigned start near the
// bottom of the range, could wrap around), while staying numerically
// identical to the original's pre-increment loop everywhere else.
func (d *Driver) sweep(ctx context.Context, workerNum int, task Task, w *residue.Wheel, resCh chan<- Result) {
	lb := task.Lb
	if task.ResumeN != 0 {
		lb = task.ResumeN + 3
	}
	if lb >= task.Ub {
		resCh <- Result{Kind: ResultDone, Task: task.Idx, N: lb, Checksum: task.ResumeChecksum}
		return
	}

	n := lb + residue.Residues[0]
	checksum := task.ResumeChecksum
	w.Init(n)
	st := factor.NewState(n)

	numBlocks := (task.Ub - lb) / residue.Span
	var count uint64
	for block := uint64(0); block < numBlocks; block++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		for idx := range residueSteps {
			if block != 0 || idx != 0 {
				n += residue.Deltas[idx]
				w.Advance(int64(residue.Deltas[idx]))
			}

			step := residueSteps[idx]
			if step.gated && !w.DividesBySeven() {
				continue
			}

			st.Reset(n)
			for _, p := range step.factors {
				st.ExtractKnownFactor(p)
			}

			abundant, err := factor.FullFactor(st, w, d.Tracked, d.Table)
			if err != nil {
				resCh <- Result{Kind: ResultFatal, Task: task.Idx, N: n, Err: err}
				return
			}
			if !abundant {
				continue
			}
			if d.DebugFactors {
				logger.Printf(logger.DBG, "%d factors: %v cofactor=%d", n, st.Factors, st.Cofactor)
			}

			excess, ok := st.Excess()
			if !ok {
				resCh <- Result{Kind: ResultError, Task: task.Idx, N: n, Err: ErrExcessOverflow}
				continue
			}
			divs, err := factor.Divisors(st.Factors, n, excess)
			if err != nil {
				resCh <- Result{Kind: ResultError, Task: task.Idx, N: n, Err: err}
				continue
			}
			found, cs := factor.HasSubsetSum(divs, excess)
			checksum += cs
			if !found {
				resCh <- Result{Kind: ResultWeird, Task: task.Idx, N: n, Checksum: checksum}
			}
		}

		count += uint64(len(residueSteps))
		if count >= d.CkptInterval {
			count = 0
			resCh <- Result{Kind: ResultProgress, Task: task.Idx, N: n, Checksum: checksum}
		}
	}
	resCh <- Result{Kind: ResultDone, Task: task.Idx, N: n, Checksum: checksum}
}

// step describes what a residue already proves about N, matching the
// original's per-residue dispatch table in main() exactly: residues
// divisible by 3 always yield a known factor of 3; residue 15 (div by
// both 3 and 5) yields both; residues 5 and 25 (div by 5, not 3) are
// only tested when 7 | N, per OEIS A114809 -- gated, not unconditional.
type step struct {
	factors []uint64
	gated   bool
}

// residueSteps[i] describes residue.Residues[i]: {3, 5, 9, 15, 21, 25, 27}.
var residueSteps = [7]step{
	{factors: []uint64{3}},             // 3
	{factors: []uint64{5}, gated: true}, // 5
	{factors: []uint64{3}},             // 9
	{factors: []uint64{3, 5}},          // 15
	{factors: []uint64{3}},             // 21
	{factors: []uint64{5}, gated: true}, // 25
	{factors: []uint64{3}},             // 27
}
