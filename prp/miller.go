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

// Package prp implements the probable-prime tests the factoring
// pipeline uses to certify a large residual once trial factoring has
// run out of small primes to try: Miller's strong test, the strong
// Lucas-Selfridge test, and their BPSW composition.
package prp

import "github.com/fwjmath/weird-odd-engine/bigint"

// Miller tests n for primality using Miller's strong probable-prime
// test with base b. Returns true if n is prime or a base-b strong
// probable prime, false if n is definitely composite or less than 2.
//
// Deviations from a "pure" Miller's test: b < 2 is replaced by 2, and
// if n divides b exactly, b is bumped by 1. Both avoid a third
// "indeterminate" return value at the cost of technically deviating
// from the textbook test; neither changes the result for any b a
// caller would plausibly supply.
func Miller(n *bigint.Int, b int64) bool {
	if n.Cmp(bigint.TWO) < 0 {
		return false
	}
	if n.Equals(bigint.TWO) {
		return true
	}
	if n.Parity() == 0 {
		return false
	}

	if b < 2 {
		b = 2
	}
	base := bigint.NewInt(b)
	if base.Mod(n).Sign() == 0 {
		base = base.AddU64(1)
	}

	nm1 := n.SubU64(1)
	s := nm1.ScanLowestSetBit()
	d := nm1.Rsh(uint(s))

	rem := base.PowMod(d, n)
	if rem.Equals(bigint.ONE) {
		return true
	}
	if s == 0 {
		return false
	}
	if rem.Equals(nm1) {
		return true
	}
	for j := 1; j < s; j++ {
		rem = rem.Mul(rem).Mod(n)
		if rem.Equals(nm1) {
			return true
		}
	}
	return false
}
