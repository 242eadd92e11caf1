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

// Package primes holds the static table of small primes the trial-factor
// stages sieve against, and the batch products derived from it.
package primes

import (
	"bufio"
	"fmt"
	"io"
	"os"

	goerrors "github.com/fwjmath/weird-odd-engine/errors"

	"github.com/fwjmath/weird-odd-engine/bigint"
)

// Count is the number of primes the table carries: enough trial-factor
// headroom that anything surviving trial factoring and landing below
// Barrier is certifiably prime.
const Count = 2064

// InitialSeg is the number of smallest primes (2, 3, 5, 7, 11, ...)
// handled one at a time rather than batched; 3, 5 and 7 of these get
// dedicated residue-driven extraction in the search driver.
const InitialSeg = 16

// BatchLen is the number of primes folded into one batch product.
const BatchLen = 32

// Table is the immutable set of small primes plus their derived batch
// products, loaded once at startup and shared read-only across workers.
type Table struct {
	// Primes holds the first Count primes in ascending order.
	Primes []uint64
	// Batches holds one *bigint.Int product per BatchLen-sized group
	// of primes at index >= InitialSeg.
	Batches []*bigint.Int
	// Barrier is Primes[Count-1]^2: any cofactor below it that survives
	// trial factoring by every table prime has no factor <= its own
	// square root and so is prime.
	Barrier uint64
}

// ErrWrongCount is returned when the table file does not contain exactly
// Count primes.
var ErrWrongCount = fmt.Errorf("prime table must contain exactly %d primes", Count)

// ErrNotAscending is returned when the table file's primes are not
// strictly increasing, a precondition Barrier and the batch sieve both
// depend on.
var ErrNotAscending = fmt.Errorf("prime table entries must be strictly ascending")

// Load reads a whitespace-separated list of primes from path and builds
// the derived batch products and barrier.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerrors.New(err, "opening prime table %q", path)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024)
	sc.Split(bufio.ScanWords)

	ps := make([]uint64, 0, Count)
	for sc.Scan() {
		var v uint64
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return nil, goerrors.New(err, "parsing prime table entry %q", sc.Text())
		}
		ps = append(ps, v)
	}
	if err := sc.Err(); err != nil {
		return nil, goerrors.New(err, "reading prime table")
	}
	if len(ps) != Count {
		return nil, goerrors.New(ErrWrongCount, "read %d entries", len(ps))
	}
	for i := 1; i < len(ps); i++ {
		if ps[i] <= ps[i-1] {
			return nil, goerrors.New(ErrNotAscending, "entries %d and %d", i-1, i)
		}
	}

	nBatches := (Count - InitialSeg) / BatchLen
	batches := make([]*bigint.Int, nBatches)
	for i := 0; i < nBatches; i++ {
		prod := bigint.ONE
		for j := 0; j < BatchLen; j++ {
			prod = prod.MulU64(ps[InitialSeg+i*BatchLen+j])
		}
		batches[i] = prod
	}

	last := ps[Count-1]
	barrier, ok := bigint.CheckedMulU64(last, last)
	if !ok {
		barrier = 0 // table's last prime is far too small for this to ever trigger
	}

	return &Table{Primes: ps, Batches: batches, Barrier: barrier}, nil
}

// BatchBounds returns the inclusive lower/upper prime-table index range
// covered by batch b, i.e. the first and last index into Primes that
// batch b's product was built from.
func (t *Table) BatchBounds(b int) (lo, hi int) {
	lo = InitialSeg + b*BatchLen
	hi = lo + BatchLen - 1
	return
}

// NumBatches returns the number of batch products in the table.
func (t *Table) NumBatches() int {
	return len(t.Batches)
}
