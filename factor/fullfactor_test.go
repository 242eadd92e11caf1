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

	"github.com/fwjmath/weird-odd-engine/residue"
)

// TestFullFactor945IsAbundantButNotWeird runs the whole pipeline on 945,
// the smallest odd abundant number (3^3*5*7, sigma=1920, excess=30), and
// confirms the abundance result the subset-sum stage would then use to
// rule it out as weird: divisors 3 and 27 sum to the 30-unit excess.
func TestFullFactor945IsAbundantButNotWeird(t *testing.T) {
	tbl := fixtureTable(t)
	tracked := fixtureTracked(tbl)
	w := residue.New(tracked)

	const n = 945
	w.Init(n)
	st := NewState(n)
	st.ExtractKnownFactor(3)
	st.ExtractKnownFactor(5)

	abundant, err := FullFactor(st, w, tracked, tbl)
	if err != nil {
		t.Fatalf("FullFactor(%d): %v", n, err)
	}
	if !abundant {
		t.Fatalf("945 is the smallest odd abundant number, want abundant=true")
	}
	if st.Cofactor != 1 {
		t.Fatalf("cofactor = %d, want fully factored", st.Cofactor)
	}

	excess, ok := st.Excess()
	if !ok || excess != 30 {
		t.Fatalf("excess = %d, ok=%v, want 30", excess, ok)
	}

	ds, err := Divisors(st.Factors, n, excess)
	if err != nil {
		t.Fatalf("Divisors: %v", err)
	}
	found, _ := HasSubsetSum(ds, excess)
	if !found {
		t.Fatal("945 is semi-perfect (3+27=30); expected a subset-sum witness")
	}
}

// TestFullFactorPrimeIsNotAbundant runs a bare prime through the
// pipeline with no known small factor extracted first; the batch
// stage's abundance bound rejects it before the cofactor<barrier fast
// path is reached.
func TestFullFactorPrimeIsNotAbundant(t *testing.T) {
	tbl := fixtureTable(t)
	tracked := fixtureTracked(tbl)
	w := residue.New(tracked)

	const n = 104729 // a prime well above the tracked small primes
	w.Init(n)
	st := NewState(n)

	abundant, err := FullFactor(st, w, tracked, tbl)
	if err != nil {
		t.Fatalf("FullFactor(%d): %v", n, err)
	}
	if abundant {
		t.Fatalf("a bare prime can never be abundant")
	}
}

// TestFullFactorLargeSemiprimeIsNotAbundant checks that a bare product
// of two primes both well beyond the table -- never abundant on its own,
// regardless of whether the batch stage's sound-but-early prune catches
// it before any splitting, or it falls through to Pollard-Rho and gets
// recognized as non-abundant only once fully factored -- is correctly
// rejected either way.
func TestFullFactorLargeSemiprimeIsNotAbundant(t *testing.T) {
	tbl := fixtureTable(t)
	tracked := fixtureTracked(tbl)
	w := residue.New(tracked)

	const p, q = 1000003, 1000033
	n := uint64(p) * uint64(q)
	w.Init(n)
	st := NewState(n)

	abundant, err := FullFactor(st, w, tracked, tbl)
	if err != nil {
		t.Fatalf("FullFactor(%d): %v", n, err)
	}
	if abundant {
		t.Fatalf("a product of two large primes is never abundant")
	}
}

// TestFullFactorAbundantWithLargePrimeResidual gives the candidate
// enough small-factor structure (945 = 3^3*5*7, already just past the
// abundance line on its own) combined with a large prime factor beyond
// the table, so FullFactor must carry the large residual through to
// certification -- whether via the cofactor<barrier direct-fold path or
// BPSW, depending on where bigPrime falls relative to the fixture
// table's barrier -- and still report the candidate abundant.
func TestFullFactorAbundantWithLargePrimeResidual(t *testing.T) {
	tbl := fixtureTable(t)
	tracked := fixtureTracked(tbl)
	w := residue.New(tracked)

	const bigPrime = 1000003
	const n = 945 * bigPrime
	w.Init(n)
	st := NewState(n)
	st.ExtractKnownFactor(3)
	st.ExtractKnownFactor(5)

	abundant, err := FullFactor(st, w, tracked, tbl)
	if err != nil {
		t.Fatalf("FullFactor(%d): %v", n, err)
	}
	if !abundant {
		t.Fatalf("945 * %d should still be abundant", bigPrime)
	}
	if st.Cofactor != 1 {
		t.Fatalf("cofactor = %d, want 1", st.Cofactor)
	}
	if len(st.Factors) != 4 {
		t.Fatalf("factors = %+v, want 4 entries (3,5,7,%d)", st.Factors, bigPrime)
	}
}
