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

func TestHasSubsetSum945Excess(t *testing.T) {
	factors := []PrimePower{{Prime: 3, Mult: 3}, {Prime: 5, Mult: 1}, {Prime: 7, Mult: 1}}
	ds, err := Divisors(factors, 945, 30)
	if err != nil {
		t.Fatalf("Divisors: %v", err)
	}
	found, _ := HasSubsetSum(ds, 30)
	if !found {
		t.Fatal("945's excess of 30 should be reachable (e.g. 3+27 or 9+21)")
	}
}

func TestHasSubsetSumNoWitness(t *testing.T) {
	ds := &DivisorSet{Values: []uint64{1, 2, 4}}
	found, _ := HasSubsetSum(ds, 100)
	if found {
		t.Fatal("100 exceeds the total available (7), should be unreachable")
	}
}

func TestHasSubsetSumExactSingleton(t *testing.T) {
	ds := &DivisorSet{Values: []uint64{1, 2, 4, 8}}
	found, _ := HasSubsetSum(ds, 8)
	if !found {
		t.Fatal("8 is itself one of the divisors")
	}
}

func TestHasSubsetSumEmptySet(t *testing.T) {
	ds := &DivisorSet{Values: nil}
	if found, _ := HasSubsetSum(ds, 0); !found {
		t.Fatal("target 0 is vacuously reachable from the empty subset")
	}
	if found, _ := HasSubsetSum(ds, 5); found {
		t.Fatal("nonzero target unreachable from an empty divisor set")
	}
}
