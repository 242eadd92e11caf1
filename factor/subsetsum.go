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

// HasSubsetSum reports whether some subset of ds.Values sums exactly to
// target. An N is semi-perfect (and so not weird, regardless of
// abundance) exactly when this holds for target = N, but every caller in
// this search exploits the complement trick instead: a subset of N's
// proper divisors sums to N iff the complementary subset sums to
// (sigma(N) - 2N), the abundance excess -- so callers pass the excess
// as target, which is usually far smaller than N and prunes hard.
//
// Checksum accumulates a simple sum-of-visited-divisors rolling value
// across the search; it has no effect on the result, but gives
// independent runs over the same divisor set a cheap cross-check value.
func HasSubsetSum(ds *DivisorSet, target uint64) (found bool, checksum uint64) {
	if len(ds.Values) == 0 {
		return target == 0, 0
	}
	avail := ds.Sum()
	ok, sum := subsetSum(ds.Values, len(ds.Values)-1, target, avail, 0)
	return ok, sum
}

// subsetSum searches divs[0..ptr] for a subset summing to aim, given
// that divs[0..ptr] sums to avail, via complement-pivot recursion: walk
// down from the largest divisor not exceeding aim, then recurse on
// whichever of (aim, avail-aim) is smaller after pivoting that divisor
// in or out.
func subsetSum(divs []uint64, ptr int, aim, avail, checksum uint64) (bool, uint64) {
	if avail < aim {
		return false, checksum
	}
	if aim <= 1 {
		return true, checksum
	}
	checksum += divs[ptr]

	myPtr := ptr
	remaining := avail
	for divs[myPtr] > aim {
		remaining -= divs[myPtr]
		if myPtr == 0 {
			break
		}
		myPtr--
	}
	if remaining < aim {
		return false, checksum
	}
	if remaining == aim {
		return true, checksum
	}
	if divs[myPtr] == aim {
		return true, checksum
	}
	if myPtr == 0 {
		return false, checksum
	}

	complement := remaining - aim
	if divs[myPtr] == complement {
		return true, checksum
	}

	if complement > aim {
		if ok, cs := subsetSum(divs, myPtr-1, aim-divs[myPtr], remaining-divs[myPtr], checksum); ok {
			return true, cs
		}
		if ok, cs := subsetSum(divs, myPtr-1, aim, remaining-divs[myPtr], checksum); ok {
			return true, cs
		}
	} else {
		if ok, cs := subsetSum(divs, myPtr-1, complement-divs[myPtr], remaining-divs[myPtr], checksum); ok {
			return true, cs
		}
		if ok, cs := subsetSum(divs, myPtr-1, complement, remaining-divs[myPtr], checksum); ok {
			return true, cs
		}
	}
	return false, checksum
}
