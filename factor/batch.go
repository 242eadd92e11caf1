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
)

// abundanceImpossible tests whether N can possibly turn out abundant
// given that every factor still hiding in cofactor is at least p: in the
// best case (every remaining prime equal to p, to the smallest power
// that could still reach cofactor) the sigma/N ratio still can't clear
// 2. If even that best case falls short, no further factoring can
// rescue abundance and the caller should give up on N immediately.
//
// This folds together the two arithmetic paths the 64-bit reference
// took depending on whether an intermediate product overflowed a native
// word; going through bigint throughout sidesteps the overflow question
// entirely and computes the exact same inequality either way.
func abundanceImpossible(cofactor, factored uint64, presum *bigint.Int, n uint64, p uint64) bool {
	if cofactor <= 1 {
		return false
	}
	pw := bigint.FromUint64(p)
	cof := bigint.FromUint64(cofactor)
	pk := pw
	k := 1
	for pk.Cmp(cof) < 0 {
		pk = pk.Mul(pw)
		k++
	}
	pm1k := bigint.FromUint64(p - 1).Pow(k)
	lhs := presum.MulU64(cofactor).Mul(pk)
	rhs := pm1k.MulU64(2).MulU64(n)
	return lhs.Cmp(rhs) <= 0
}

// fermatFactor splits a composite m, known to be a product of exactly
// two primes (possibly equal), via Fermat's method: m = x^2 - y^2 =
// (x-y)(x+y) for the x nearest sqrt(m) that makes x^2-m a perfect
// square. Returns (p, q) for distinct primes p<q, or (p, 0) when
// m = p^2.
func fermatFactor(m uint64) (p, q uint64) {
	x := bigint.FromUint64(m - 1).Sqrt().MustUint64() + 1
	if m%4 == 1 {
		if x%2 == 0 {
			x++
		}
	} else {
		if x%2 != 0 {
			x++
		}
	}
	y2 := x*x - m
	for !bigint.FromUint64(y2).IsPerfectSquare() {
		y2 += (x + 1) * 4
		x += 2
	}
	y := bigint.FromUint64(y2).Sqrt().MustUint64()
	p = x - y
	if y == 0 {
		return p, 0
	}
	return p, x + y
}

// resyncFactored recomputes Factored from the exact integer relation
// N = Cofactor * (extracted part), rather than trusting only the
// incremental products accumulated by extract().
func (st *State) resyncFactored() {
	extracted := st.N / st.Cofactor
	st.Factored = extracted * 2
}

// TrialFactorBatch sieves the cofactor against every batch product in
// the table, extracting whatever small-to-medium primes it finds and
// pruning as soon as abundance becomes provably impossible. Stage C of
// the pipeline.
func (st *State) TrialFactorBatch(tbl *primes.Table) bool {
	if st.Cofactor == 1 {
		return true
	}
	for i := 0; i < tbl.NumBatches(); i++ {
		lo, hi := tbl.BatchBounds(i)
		lowerBound := tbl.Primes[lo-1]
		if abundanceImpossible(st.Cofactor, st.Factored, st.Presum, st.N, lowerBound) {
			return false
		}

		g := tbl.Batches[i].GCDU64(st.Cofactor)
		if g != 1 {
			upperPrime := tbl.Primes[hi]
			switch {
			case g <= upperPrime:
				st.extract(g)
			case g <= upperPrime*upperPrime:
				p, q := fermatFactor(g)
				st.extract(p)
				if q != 0 {
					st.extract(q)
				}
			default:
				for j := lo; j <= hi; j++ {
					pj := tbl.Primes[j]
					if g%pj != 0 {
						continue
					}
					st.extract(pj)
					g /= pj
					if g <= upperPrime && g > 1 {
						st.extract(g)
						break
					}
				}
			}

			if st.Cofactor == 1 {
				return true
			}
			st.resyncFactored()
			if st.abundantSoFar() {
				return false
			}
		}
	}

	return !abundanceImpossible(st.Cofactor, st.Factored, st.Presum, st.N, tbl.Primes[primes.Count-1])
}
