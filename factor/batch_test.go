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

package factor

import (
	"testing"

	"github.com/fwjmath/weird-odd-engine/bigint"
)

func TestFermatFactorTwoDistinctPrimes(t *testing.T) {
	const p, q = 101, 103
	a, b := fermatFactor(p * q)
	if a > b {
		a, b = b, a
	}
	if a != p || b != q {
		t.Fatalf("fermatFactor(%d) = (%d, %d), want (%d, %d)", p*q, a, b, p, q)
	}
}

func TestFermatFactorPerfectSquare(t *testing.T) {
	const p = 101
	a, b := fermatFactor(p * p)
	if a != p || b != 0 {
		t.Fatalf("fermatFactor(%d) = (%d, %d), want (%d, 0)", p*p, a, b, p)
	}
}

func TestAbundanceImpossibleTrueWhenHopeless(t *testing.T) {
	// Cofactor 101 (prime), already-extracted Presum/Factored reflect a
	// deficient number (sigma far below 2n); no prime p >= 50 dividing
	// the remaining 101 could ever push this over the abundance line.
	presum := bigint.FromUint64(10)
	if !abundanceImpossible(101, 20, presum, 1000, 50) {
		t.Fatal("expected abundance to be ruled out")
	}
}

func TestAbundanceImpossibleFalseForUnitCofactor(t *testing.T) {
	// A cofactor of 1 means nothing further can be extracted, so the
	// question of whether abundance is still reachable doesn't apply;
	// abundanceImpossible always treats that as "not impossible".
	if abundanceImpossible(1, 2, bigint.ONE, 10, 7) {
		t.Fatal("a cofactor of 1 is never impossible to handle")
	}
}

// probableState builds a State whose Presum already looks comfortably
// abundant, so TrialFactorBatch's abundance-impossible prune never
// fires and only the gcd/extraction logic under test runs. A bare
// cofactor of two or three mid-sized primes is never itself abundant,
// so exercising the batch-sieve dispatch branches in isolation needs
// this stand-in for a Presum that earlier pipeline stages would have
// already built up from N's smaller factors.
func probableState(n uint64) *State {
	st := NewState(n)
	st.Presum = bigint.FromUint64(^uint64(0)).Mul(bigint.FromUint64(^uint64(0)))
	return st
}

func TestTrialFactorBatchSinglePrimeInBatch(t *testing.T) {
	tbl := fixtureTable(t)
	lo, _ := tbl.BatchBounds(0)
	n := tbl.Primes[lo+4]
	st := probableState(n)
	if !st.TrialFactorBatch(tbl) {
		t.Fatal("expected TrialFactorBatch to succeed")
	}
	if st.Cofactor != 1 {
		t.Fatalf("cofactor = %d, want 1", st.Cofactor)
	}
}

func TestTrialFactorBatchFermatTwoPrimes(t *testing.T) {
	tbl := fixtureTable(t)
	lo, _ := tbl.BatchBounds(0)
	p, q := tbl.Primes[lo+4], tbl.Primes[lo+5]
	st := probableState(p * q)
	if !st.TrialFactorBatch(tbl) {
		t.Fatal("expected TrialFactorBatch to succeed")
	}
	if st.Cofactor != 1 {
		t.Fatalf("cofactor = %d, want 1", st.Cofactor)
	}
	if len(st.Factors) != 2 {
		t.Fatalf("factors = %+v, want 2 entries", st.Factors)
	}
}

func TestTrialFactorBatchUnluckyThreePrimes(t *testing.T) {
	tbl := fixtureTable(t)
	lo, _ := tbl.BatchBounds(0)
	p, q, r := tbl.Primes[lo+1], tbl.Primes[lo+2], tbl.Primes[lo+3]
	st := probableState(p * q * r)
	if !st.TrialFactorBatch(tbl) {
		t.Fatal("expected TrialFactorBatch to succeed")
	}
	if st.Cofactor != 1 {
		t.Fatalf("cofactor = %d, want 1", st.Cofactor)
	}
	if len(st.Factors) != 3 {
		t.Fatalf("factors = %+v, want 3 entries", st.Factors)
	}
}

func TestTrialFactorBatchLeavesLargeResidual(t *testing.T) {
	tbl := fixtureTable(t)
	// A product of two primes from well beyond the table can't be
	// cleared by any batch or the tail sieve. Presum is set to look
	// already-abundant (as it would be by the time earlier pipeline
	// stages reach this point for a real candidate) so the assertion
	// isolates the sieve's behavior on an uncleared residual rather than
	// the abundance-impossible prune, which a bare two-huge-primes
	// cofactor with nothing extracted yet would otherwise trip on its
	// own.
	const p, q = 1000003, 1000033
	st := probableState(p * q)
	ok := st.TrialFactorBatch(tbl)
	if !ok {
		t.Fatal("an already-abundant-looking candidate isn't provably non-abundant yet")
	}
	if st.Cofactor != p*q {
		t.Fatalf("cofactor = %d, want untouched %d", st.Cofactor, p*q)
	}
}
