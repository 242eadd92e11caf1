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

// Package factor implements the candidate's factoring lifecycle: the
// ordered trial-factoring pipeline, Pollard-Rho for whatever residual
// trial factoring can't clear, divisor enumeration, and the subset-sum
// witness search that decides semi-perfection.
package factor

import "github.com/fwjmath/weird-odd-engine/bigint"

// PrimePower is one entry of a candidate's factorization.
type PrimePower struct {
	Prime uint64
	Mult  int
}

// State carries one candidate's factoring progress. N never changes
// once set; Cofactor is whatever of N remains unextracted; Factored is
// always exactly 2 * (N / Cofactor) -- twice the portion of N already
// pulled out -- so the "does the extracted part already look abundant"
// prune is a single uint64 comparison against Presum. Presum is the
// running product of the geometric sums (sigma of each extracted prime
// power); it can exceed 64 bits even though every individual factor and
// N itself fit in one, which is why it alone is a bigint.
type State struct {
	N        uint64
	Cofactor uint64
	Factored uint64
	Presum   *bigint.Int
	Factors  []PrimePower
}

// NewState resets factoring state for a fresh candidate n.
func NewState(n uint64) *State {
	return &State{
		N:        n,
		Cofactor: n,
		Factored: 2,
		Presum:   bigint.ONE,
		Factors:  nil,
	}
}

// Reset reinitializes st in place for a new candidate n, reusing the
// Factors backing array -- the driver calls this once per residue
// instead of allocating a fresh State, since a long sweep visits tens
// of millions of candidates.
func (st *State) Reset(n uint64) {
	st.N = n
	st.Cofactor = n
	st.Factored = 2
	st.Presum = bigint.ONE
	st.Factors = st.Factors[:0]
}

// extract pulls every power of the prime p out of the cofactor, folding
// the result into Presum/Factored/Factors. p must divide Cofactor at
// least once.
func (st *State) extract(p uint64) {
	mult := 0
	pk := uint64(1)
	geoSum := bigint.ONE
	for {
		st.Cofactor /= p
		st.Factored *= p
		pk *= p
		geoSum = geoSum.Add(bigint.FromUint64(pk))
		mult++
		if st.Cofactor%p != 0 {
			break
		}
	}
	st.Factors = append(st.Factors, PrimePower{Prime: p, Mult: mult})
	st.Presum = st.Presum.Mul(geoSum)
}

// abundantSoFar reports whether the portion of N already extracted is
// itself abundant or perfect (Presum, its sigma, already reaches twice
// its value). N can have no abundant proper divisor and still be the
// smallest odd weird number in its range, so this is a valid early
// rejection, not just a performance shortcut.
func (st *State) abundantSoFar() bool {
	return st.Presum.Cmp(bigint.FromUint64(st.Factored)) >= 0
}

// Excess returns Presum - 2N as a uint64, and false if it overflows,
// mirroring a fits-in-a-machine-word guard on the abundance excess.
func (st *State) Excess() (uint64, bool) {
	twoN, ok := bigint.CheckedMulU64(st.N, 2)
	var twoNBig *bigint.Int
	if ok {
		twoNBig = bigint.FromUint64(twoN)
	} else {
		twoNBig = bigint.FromUint64(st.N).MulU64(2)
	}
	diff := st.Presum.Sub(twoNBig)
	return diff.Uint64()
}

// IsAbundant reports whether Presum (sigma(N), once fully factored)
// exceeds 2N.
func (st *State) IsAbundant() bool {
	twoN := bigint.FromUint64(st.N).MulU64(2)
	return st.Presum.Cmp(twoN) > 0
}
