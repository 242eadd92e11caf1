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

package prp

import (
	"fmt"

	"github.com/fwjmath/weird-odd-engine/bigint"
)

// dAbsMax is the largest |D| the Selfridge search will accept before
// giving up: past this point the search has almost certainly hit a bug
// or a pathological input, not a slow-converging legitimate case.
const dAbsMax = (1 << 31) - 2

// ErrLucasDOverflow is returned when the Selfridge D-search for the
// strong Lucas-Selfridge test exceeds dAbsMax without finding a D with
// Jacobi(D,n) = -1. In practice this never triggers for n below 2^63;
// it exists as a hard backstop rather than a silent infinite loop.
var ErrLucasDOverflow = fmt.Errorf("lucas-selfridge: |D| exceeded %d without finding Jacobi symbol -1", dAbsMax)

// StrongLucasSelfridge tests n for primality using the strong Lucas
// test with Selfridge's parameter choice. Returns (true, nil) if n is
// prime or a strong Lucas-Selfridge pseudoprime, (false, nil) if n is
// definitely composite, and a non-nil error only on the D-search
// overflow backstop above.
func StrongLucasSelfridge(n *bigint.Int) (bool, error) {
	if n.Cmp(bigint.TWO) < 0 {
		return false, nil
	}
	if n.Equals(bigint.TWO) {
		return true, nil
	}
	if n.Parity() == 0 {
		return false, nil
	}
	// A perfect square n admits no D with Jacobi(D,n) = -1; the search
	// below would spin for roughly sqrt(n)/2 iterations before ever
	// reaching the overflow backstop, so reject it up front.
	if n.IsPerfectSquare() {
		return false, nil
	}

	// Selfridge's algorithm: find the first D in {5, -7, 9, -11, 13, ...}
	// with Jacobi(D,n) = -1.
	dAbs := int64(5)
	sign := int64(1)
	var d int64
	for {
		d = sign * dAbs
		sign = -sign
		g := n.GCDU64(uint64(dAbs))
		if g > 1 && n.Cmp(bigint.NewInt(int64(g))) > 0 {
			// n has a small factor g < n: composite, and Jacobi(D,n) is
			// not meaningfully defined here.
			return false, nil
		}
		j := n.Jacobi(d)
		if j == -1 {
			break
		}
		dAbs += 2
		if dAbs > dAbsMax {
			return false, ErrLucasDOverflow
		}
	}

	p := int64(1) // Selfridge's choice
	q := (1 - d) / 4

	nPlus1 := n.AddU64(1)
	s := nPlus1.ScanLowestSetBit()
	dIdx := nPlus1.Rsh(uint(s))

	u := bigint.ONE
	v := bigint.NewInt(p)
	u2m := bigint.ONE
	v2m := bigint.NewInt(p)
	qm := bigint.NewInt(q)
	q2m := bigint.NewInt(2 * q)
	qkd := bigint.NewInt(q)

	bits := dIdx.BitLen()
	for ul := 1; ul < bits; ul++ {
		// Doubling of indices: U_2m = U_m*V_m, V_2m = V_m^2 - 2*Q^m.
		u2m = u2m.Mul(v2m).Mod(n)
		v2m = v2m.Mul(v2m).Sub(q2m).Mod(n)
		qm = qm.Mul(qm).Mod(n)
		q2m = qm.MulU64(2)

		if dIdx.Bit(ul) == 1 {
			// Addition of indices: U_(m+n) = (U_m*V_n+U_n*V_m)/2,
			// V_(m+n) = (V_m*V_n+D*U_m*U_n)/2.
			t1 := u2m.Mul(v)
			t2 := u.Mul(v2m)
			t3 := v2m.Mul(v)
			t4 := u2m.Mul(u).Mul(bigint.NewInt(d))

			un := t1.Add(t2)
			if un.Parity() == 1 {
				un = un.Add(n)
			}
			u = un.Rsh(1).Mod(n)

			vn := t3.Add(t4)
			if vn.Parity() == 1 {
				vn = vn.Add(n)
			}
			v = vn.Rsh(1).Mod(n)

			qkd = qkd.Mul(qm).Mod(n)
		}
	}

	if u.Sign() == 0 || v.Sign() == 0 {
		return true, nil
	}

	// V_d and U_d both nonzero: climb the doubling ladder
	// V_2d, V_4d, ..., V_{2^(s-1)*d}. The V_d check above is mandatory,
	// not an optimization: omitting it produces false negatives (e.g.
	// on 29 and 2000029).
	q2kd := qkd.MulU64(2)
	for r := 1; r < s; r++ {
		v = v.Mul(v).Sub(q2kd).Mod(n)
		if v.Sign() == 0 {
			return true, nil
		}
		if r < s-1 {
			qkd = qkd.Mul(qkd).Mod(n)
			q2kd = qkd.MulU64(2)
		}
	}
	return false, nil
}
