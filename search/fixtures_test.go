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

package search

import (
	"testing"

	"github.com/fwjmath/weird-odd-engine/bigint"
	"github.com/fwjmath/weird-odd-engine/primes"
	"github.com/fwjmath/weird-odd-engine/residue"
)

// sievePrimes lists the first n primes via trial division, for building
// a real (not synthetic) fixture table.
func sievePrimes(n int) []uint64 {
	out := make([]uint64, 0, n)
	candidate := uint64(2)
	for len(out) < n {
		isPrime := true
		for _, p := range out {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			out = append(out, candidate)
		}
		candidate++
	}
	return out
}

// fixtureTable builds a real primes.Table (Count genuine primes, full
// batch structure) without touching the filesystem, replicating the
// derivation primes.Load performs.
func fixtureTable(t *testing.T) *primes.Table {
	t.Helper()
	ps := sievePrimes(primes.Count)

	nBatches := (primes.Count - primes.InitialSeg) / primes.BatchLen
	batches := make([]*bigint.Int, nBatches)
	for i := 0; i < nBatches; i++ {
		prod := bigint.ONE
		for j := 0; j < primes.BatchLen; j++ {
			prod = prod.MulU64(ps[primes.InitialSeg+i*primes.BatchLen+j])
		}
		batches[i] = prod
	}
	last := ps[primes.Count-1]
	barrier, ok := bigint.CheckedMulU64(last, last)
	if !ok {
		t.Fatalf("fixture barrier overflowed, adjust fixture")
	}
	return &primes.Table{Primes: ps, Batches: batches, Barrier: barrier}
}

// fixtureTracked returns the NumPrimes table entries starting at 7, the
// slice a Wheel expects.
func fixtureTracked(tbl *primes.Table) []uint64 {
	return tbl.Primes[3 : 3+residue.NumPrimes]
}

// fixtureDriver builds a Driver around a fixture table.
func fixtureDriver(t *testing.T, ckptInterval uint64) *Driver {
	t.Helper()
	tbl := fixtureTable(t)
	return NewDriver(tbl, ckptInterval)
}
