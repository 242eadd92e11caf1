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
	"fmt"
	"sort"
)

// DivisorBound is the largest divisor count generate_divisors will
// tolerate before giving up; a number with more divisors than this
// overflows the bounded buffer used to enumerate them.
const DivisorBound = 1 << 20

// ErrDivisorOverflow is returned when a candidate's divisor count
// exceeds DivisorBound.
var ErrDivisorOverflow = fmt.Errorf("divisor count exceeds bound of %d", DivisorBound)

// DivisorSet is the bounded, ascending set of a number's divisors that
// do not exceed some target, used as the search space for the
// subset-sum witness search.
type DivisorSet struct {
	Values []uint64
}

// Divisors enumerates every divisor of the number whose factorization is
// factors that does not exceed target, excluding the number itself if it
// appears. A prior off-by-one in the index checked for this removal made
// it dead code; this removes it correctly whenever target reaches as
// high as n, which full factoring of an abundant N never actually allows
// for N > 6, but the removal is still performed.
func Divisors(factors []PrimePower, n, target uint64) (*DivisorSet, error) {
	count := 1
	for _, f := range factors {
		count *= f.Mult + 1
		if count > DivisorBound {
			return nil, ErrDivisorOverflow
		}
	}

	divs := make([]uint64, 1, count)
	divs[0] = 1
	for _, f := range factors {
		start := len(divs)
		pk := f.Prime
		for j := 0; j < f.Mult; j++ {
			for k := 0; k < start; k++ {
				v := pk * divs[k]
				if v <= target {
					divs = append(divs, v)
				}
			}
			pk *= f.Prime
		}
	}

	if len(divs) > 0 && divs[len(divs)-1] == n {
		divs = divs[:len(divs)-1]
	}

	sort.Slice(divs, func(i, j int) bool { return divs[i] < divs[j] })
	return &DivisorSet{Values: divs}, nil
}

// Sum returns the sum of every divisor in the set.
func (d *DivisorSet) Sum() uint64 {
	var s uint64
	for _, v := range d.Values {
		s += v
	}
	return s
}
