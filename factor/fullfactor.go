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
	"github.com/fwjmath/weird-odd-engine/bigint"
	"github.com/fwjmath/weird-odd-engine/primes"
	"github.com/fwjmath/weird-odd-engine/prp"
	"github.com/fwjmath/weird-odd-engine/residue"
)

// FullFactor runs the ordered trial-factoring pipeline (stages B
// through E; stage A is applied beforehand by the caller via
// ExtractKnownFactor, stage B runs here via TrialFactorSmall) to
// completion and reports whether N is
// abundant. When it returns (true, nil), st.Factors holds N's complete
// factorization and st.Presum holds sigma(N) exactly.
//
// The only non-nil error this returns is a fatal one: either the strong
// Lucas-Selfridge D-search overflow or Pollard-Rho's bounded retry
// exhausting itself. Both indicate the search has run into a number
// well outside anything the algorithm was designed for.
func FullFactor(st *State, w *residue.Wheel, tracked []uint64, tbl *primes.Table) (bool, error) {
	if !st.TrialFactorSmall(w, tracked) {
		return false, nil
	}
	if !st.TrialFactorBatch(tbl) {
		return false, nil
	}
	if st.Cofactor == 1 {
		return st.IsAbundant(), nil
	}
	if st.Cofactor < tbl.Barrier {
		st.foldPrime(st.Cofactor, 1)
		if !st.IsAbundant() {
			return false, nil
		}
		st.Cofactor = 1
		return true, nil
	}

	// A large residual survived every sieve; keep splitting it with
	// Pollard-Rho, certifying each split prime with BPSW, until nothing
	// is left or abundance becomes provably out of reach.
	c := uint64(1)
	for st.Cofactor != 1 {
		isPrime, err := prp.BPSW(bigint.FromUint64(st.Cofactor))
		if err != nil {
			return false, err
		}
		if isPrime {
			st.foldPrime(st.Cofactor, 1)
			if !st.IsAbundant() {
				return false, nil
			}
			st.Cofactor = 1
			return true, nil
		}

		factorVal, err := PollardRhoBrent(st.Cofactor)
		if err != nil {
			return false, err
		}
		residual := factorVal
		for residual > tbl.Barrier {
			isPrimeResidual, err := prp.BPSW(bigint.FromUint64(residual))
			if err != nil {
				return false, err
			}
			if isPrimeResidual {
				break
			}
			c++
			residual, err = PollardRhoBrent(residual)
			if err != nil {
				return false, err
			}
		}
		c++

		mult := 0
		for {
			st.Cofactor /= residual
			mult++
			if st.Cofactor%residual != 0 {
				break
			}
		}
		st.foldPrime(residual, mult)

		if st.Cofactor == 1 {
			return st.IsAbundant(), nil
		}
		st.resyncFactored()
		if st.abundantSoFar() {
			return false, nil
		}
	}
	return st.IsAbundant(), nil
}

// foldPrime records a certified prime factor (raised to mult, already
// known to divide st.Cofactor that many times -- the caller does the
// dividing) into Presum and Factors without re-deriving the geometric
// sum from scratch, since the caller already has the exact power.
func (st *State) foldPrime(p uint64, mult int) {
	pk := bigint.FromUint64(p).Pow(mult + 1)
	geoSum := pk.SubU64(1).DivExact(bigint.FromUint64(p - 1))
	st.Presum = st.Presum.Mul(geoSum)
	st.Factors = append(st.Factors, PrimePower{Prime: p, Mult: mult})
}
