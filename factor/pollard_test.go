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

import "testing"

func checkFactor(t *testing.T, n, f uint64) {
	t.Helper()
	if f <= 1 || f >= n {
		t.Fatalf("PollardRhoBrent(%d) = %d, want a nontrivial factor", n, f)
	}
	if n%f != 0 {
		t.Fatalf("PollardRhoBrent(%d) = %d, does not divide %d", n, f, n)
	}
}

func TestPollardRhoBrentSmallComposite(t *testing.T) {
	const n = 8051 // 83 * 97
	f, err := PollardRhoBrent(n)
	if err != nil {
		t.Fatalf("PollardRhoBrent(%d): %v", n, err)
	}
	checkFactor(t, n, f)
}

func TestPollardRhoBrentPerfectSquareOfPrime(t *testing.T) {
	const p = 9973
	n := uint64(p * p)
	f, err := PollardRhoBrent(n)
	if err != nil {
		t.Fatalf("PollardRhoBrent(%d): %v", n, err)
	}
	checkFactor(t, n, f)
}

func TestPollardRhoBrentMediumSemiprime(t *testing.T) {
	const p, q = 100003, 100019
	n := uint64(p) * uint64(q)
	f, err := PollardRhoBrent(n)
	if err != nil {
		t.Fatalf("PollardRhoBrent(%d): %v", n, err)
	}
	checkFactor(t, n, f)
}

func TestDiffModNeverUnderflows(t *testing.T) {
	// (x-y) mod nn, computed without ever underflowing a uint64
	// subtraction: (3-10) mod 13 = -7 mod 13 = 6.
	if got := diffMod(3, 10, 13); got != 6 {
		t.Fatalf("diffMod(3, 10, 13) = %d, want 6", got)
	}
	if got := diffMod(10, 3, 13); got != 7 {
		t.Fatalf("diffMod(10, 3, 13) = %d, want 7", got)
	}
}
