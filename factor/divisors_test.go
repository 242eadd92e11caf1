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

func TestDivisorsOf945BoundedByExcess(t *testing.T) {
	// 945 = 3^3 * 5 * 7, sigma(945) = 40*6*8 = 1920, excess = 1920-1890 = 30.
	factors := []PrimePower{{Prime: 3, Mult: 3}, {Prime: 5, Mult: 1}, {Prime: 7, Mult: 1}}
	ds, err := Divisors(factors, 945, 30)
	if err != nil {
		t.Fatalf("Divisors: %v", err)
	}
	want := []uint64{1, 3, 5, 7, 9, 15, 21, 27}
	if len(ds.Values) != len(want) {
		t.Fatalf("got %v, want %v", ds.Values, want)
	}
	for i, v := range want {
		if ds.Values[i] != v {
			t.Fatalf("got %v, want %v", ds.Values, want)
		}
	}
}

func TestDivisorsExcludesNItself(t *testing.T) {
	// 6 = 2*3, sigma(6) = 12, target set high enough that 6 itself would
	// be generated as a divisor of itself; it must not appear.
	factors := []PrimePower{{Prime: 2, Mult: 1}, {Prime: 3, Mult: 1}}
	ds, err := Divisors(factors, 6, 6)
	if err != nil {
		t.Fatalf("Divisors: %v", err)
	}
	for _, v := range ds.Values {
		if v == 6 {
			t.Fatalf("divisor set should exclude n itself: %v", ds.Values)
		}
	}
}

func TestDivisorsSum(t *testing.T) {
	factors := []PrimePower{{Prime: 2, Mult: 2}} // divisors of 4: 1, 2, 4
	ds, err := Divisors(factors, 4, 4)
	if err != nil {
		t.Fatalf("Divisors: %v", err)
	}
	if got := ds.Sum(); got != 3 {
		t.Fatalf("sum = %d, want 3 (1+2, excluding n=4)", got)
	}
}

func TestDivisorsOverflow(t *testing.T) {
	// 2^21 has 22 divisors, far below the bound; construct factors whose
	// divisor count (product of mult+1) exceeds DivisorBound instead.
	factors := make([]PrimePower, 0, 21)
	for i := 0; i < 21; i++ {
		factors = append(factors, PrimePower{Prime: uint64(2 + i), Mult: 1})
	}
	if _, err := Divisors(factors, 0, ^uint64(0)); err != ErrDivisorOverflow {
		t.Fatalf("err = %v, want ErrDivisorOverflow", err)
	}
}
