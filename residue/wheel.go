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

// Package residue implements the mod-30 wheel that the search driver
// walks instead of testing every integer. An odd weird number must be
// abundant, and every odd abundant number below the search bound is
// divisible by 3 or by 5 (with the 5-but-not-3 case additionally
// requiring divisibility by 7, per OEIS A114809) -- so the driver only
// ever needs to visit the 7 residues mod 30 divisible by 3 or 5, each
// carrying an incrementally-updated congruence array so the cheap
// small-prime divisibility checks never recompute a modulus from
// scratch.
package residue

// Span is the wheel's modulus: skip straight from one multiple of 30 to
// the next, visiting only the residues divisible by 3 or 5.
const Span = 30

// Residues holds the 7 residues mod 30 divisible by 3 or 5, in the
// order the driver visits them within one 30-block: 3, 5, 9, 15, 21,
// 25, 27.
var Residues = [7]uint64{3, 5, 9, 15, 21, 25, 27}

// Deltas[i] is the step to reach Residues[i] from Residues[(i+6)%7]
// (the previous residue, wrapping from 27 of one block to 3 of the
// next), i.e. the gap walked to advance the wheel by one position.
var Deltas = [7]uint64{6, 2, 4, 6, 6, 4, 2}

// NumPrimes is the size of the congruence array: one slot per prime
// tracked for cheap incremental divisibility tests (as many primes as
// the table's InitialSeg, but taken from the table entries starting at
// 7 -- candidates are odd, and 3 and 5 are handled directly by the
// driver's dedicated extraction steps).
const NumPrimes = 16

// Wheel tracks, for the current candidate N, congruence[i] = (-N) mod
// primes[i] for each of the first NumPrimes tracked primes. A zero entry
// means primes[i] divides N. Advancing the wheel by a delta subtracts
// that delta from every entry, wrapping mod primes[i] -- equivalent to
// recomputing N mod primes[i] from scratch, but O(NumPrimes) instead of
// O(NumPrimes) divisions of a growing N.
type Wheel struct {
	primes     []uint64
	congruence []int64
}

// New creates a Wheel tracking the given primes (normally the NumPrimes
// table entries starting at 7, i.e. primes.Table.Primes[3:3+NumPrimes] --
// 2, 3 and 5 are excluded since the driver always already knows whether
// 3 and/or 5 divide the candidate from which residue selected it, and
// extracts them directly rather than tracking them in the congruence
// array). The congruences start at zero; Init seeds them for a
// candidate.
func New(primes []uint64) *Wheel {
	w := &Wheel{
		primes:     primes,
		congruence: make([]int64, len(primes)),
	}
	return w
}

// Init (re)seeds the congruence array for a fresh candidate n.
func (w *Wheel) Init(n uint64) {
	for i, p := range w.primes {
		c := int64(n % p)
		if c != 0 {
			c = int64(p) - c
		}
		w.congruence[i] = c
	}
}

// advance subtracts delta from every tracked congruence, wrapping into
// [0, p) -- the incremental form of recomputing (-N) mod p after N has
// grown by delta.
func (w *Wheel) advance(delta int64) {
	for i, p := range w.primes {
		c := w.congruence[i] - delta
		if c < 0 {
			c += int64(p)
		}
		w.congruence[i] = c
	}
}

// Add2 advances the wheel by 2.
func (w *Wheel) Add2() { w.advance(2) }

// Add4 advances the wheel by 4.
func (w *Wheel) Add4() { w.advance(4) }

// Add6 advances the wheel by 6.
func (w *Wheel) Add6() { w.advance(6) }

// Advance moves the wheel by an arbitrary (small) delta, for callers
// that don't know ahead of time it is 2, 4 or 6.
func (w *Wheel) Advance(delta int64) { w.advance(delta) }

// DividesAt reports whether the i-th tracked prime divides the current
// candidate.
func (w *Wheel) DividesAt(i int) bool {
	return w.congruence[i] == 0
}

// DividesBySeven reports whether 7 divides the current candidate. Valid
// only when the wheel was built from a primes slice whose first entry
// is 7, which is how the driver always constructs it; this is the
// OEIS A114809 gate that lets the driver skip residues 5 and 25 outright
// unless 7 | N (a candidate divisible by 5 but not 3 can only be
// abundant if it is also divisible by 7).
func (w *Wheel) DividesBySeven() bool {
	return w.DividesAt(0)
}
