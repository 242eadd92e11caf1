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

// Package bigint is the arbitrary-precision facade used by the rest of
// the search: every place that needs more than 64 bits of headroom (the
// strong probable-prime tests, the batched-gcd sieve, Pollard-Rho's
// running product) goes through an Int here instead of touching
// math/big directly.
package bigint

import (
	"math/big"
)

// Int is an integer of arbitrary size.
type Int struct {
	v *big.Int
}

// NewInt returns a new Int from an intrinsic int64.
func NewInt(v int64) *Int {
	return &Int{v: big.NewInt(v)}
}

// FromUint64 returns a new Int from a u64. N and every quantity derived
// from it (cofactor, presum candidates) start life this way.
func FromUint64(v uint64) *Int {
	return &Int{v: new(big.Int).SetUint64(v)}
}

// FromBytes converts a big-endian binary array into an unsigned Int.
func FromBytes(buf []byte) *Int {
	return &Int{v: new(big.Int).SetBytes(buf)}
}

// String converts an Int to a string representation.
func (i *Int) String() string {
	return i.v.String()
}

// Uint64 returns the value of i as a u64, and false if i is negative or
// too large to fit. Every candidate N in this search is < 2^63, so any
// quantity derived from it that legitimately needs this conversion
// (the abundance excess, a Pollard-Rho factor, a folded-in prime) fits;
// a false return means the caller hit a real overflow condition that the
// spec requires surfacing, not a programming mistake.
func (i *Int) Uint64() (uint64, bool) {
	if !i.v.IsUint64() {
		return 0, false
	}
	return i.v.Uint64(), true
}

// MustUint64 is Uint64 for call sites where the value is known by
// construction to fit (e.g. a factor that was shown to divide a u64
// cofactor). Panics otherwise -- a broken invariant, not a user error.
func (i *Int) MustUint64() uint64 {
	v, ok := i.Uint64()
	if !ok {
		panic("bigint: value does not fit in a uint64")
	}
	return v
}

// ProbablyPrime reports whether i passes n rounds of a generic
// probabilistic test (used only outside the hot path, e.g. in tests).
func (i *Int) ProbablyPrime(n int) bool {
	return i.v.ProbablyPrime(n)
}

// Add two Ints.
func (i *Int) Add(j *Int) *Int {
	return &Int{v: new(big.Int).Add(i.v, j.v)}
}

// AddU64 adds a u64 scalar to an Int.
func (i *Int) AddU64(u uint64) *Int {
	return &Int{v: new(big.Int).Add(i.v, new(big.Int).SetUint64(u))}
}

// Sub subtracts two Ints.
func (i *Int) Sub(j *Int) *Int {
	return &Int{v: new(big.Int).Sub(i.v, j.v)}
}

// SubU64 subtracts a u64 scalar from an Int.
func (i *Int) SubU64(u uint64) *Int {
	return &Int{v: new(big.Int).Sub(i.v, new(big.Int).SetUint64(u))}
}

// Mul multiplies two Ints.
func (i *Int) Mul(j *Int) *Int {
	return &Int{v: new(big.Int).Mul(i.v, j.v)}
}

// MulU64 multiplies an Int by a u64 scalar.
func (i *Int) MulU64(u uint64) *Int {
	return &Int{v: new(big.Int).Mul(i.v, new(big.Int).SetUint64(u))}
}

// Div divides two Ints, truncating toward zero.
func (i *Int) Div(j *Int) *Int {
	return &Int{v: new(big.Int).Quo(i.v, j.v)}
}

// DivExact divides i by j where j is known to divide i exactly, e.g.
// (p^(k+1)-1)/(p-1) when folding a fully-extracted prime power into
// presum. Behaves like Div but documents the caller's invariant.
func (i *Int) DivExact(j *Int) *Int {
	return &Int{v: new(big.Int).Quo(i.v, j.v)}
}

// DivU64 divides an Int by a u64 scalar, truncating toward zero.
func (i *Int) DivU64(u uint64) *Int {
	return &Int{v: new(big.Int).Quo(i.v, new(big.Int).SetUint64(u))}
}

// Mod returns the (Euclidean, non-negative) modulus of two Ints.
func (i *Int) Mod(j *Int) *Int {
	return &Int{v: new(big.Int).Mod(i.v, j.v)}
}

// ModU64 returns i mod m, for a u64 modulus m. The result always fits
// in a u64 since it is strictly smaller than m.
func (i *Int) ModU64(m uint64) uint64 {
	r := new(big.Int).Mod(i.v, new(big.Int).SetUint64(m))
	return r.Uint64()
}

// GCDU64 returns gcd(i, m) for a u64 modulus m. The result always fits
// in a u64 since any common divisor of i and m cannot exceed m. This is
// the batched-product gcd step of the factoring sieve and the
// running-product gcd of Pollard-Rho's Brent variant.
func (i *Int) GCDU64(m uint64) uint64 {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(i.v), new(big.Int).SetUint64(m))
	return g.Uint64()
}

// BitLen returns the number of bits in an Int.
func (i *Int) BitLen() int {
	return i.v.BitLen()
}

// Sign returns the sign of an Int: -1, 0 or 1.
func (i *Int) Sign() int {
	return i.v.Sign()
}

// Cmp compares two Ints.
func (i *Int) Cmp(j *Int) int {
	return i.v.Cmp(j.v)
}

// Equals checks if two Ints are equal.
func (i *Int) Equals(j *Int) bool {
	return i.v.Cmp(j.v) == 0
}

// Pow raises an Int to a (small, non-negative) power n.
func (i *Int) Pow(n int) *Int {
	return &Int{v: new(big.Int).Exp(i.v, big.NewInt(int64(n)), nil)}
}

// PowMod returns the modular exponentiation i^n mod m.
func (i *Int) PowMod(n, m *Int) *Int {
	return &Int{v: new(big.Int).Exp(i.v, n.v, m.v)}
}

// Bit returns the bit value of an Int at a given position.
func (i *Int) Bit(n int) uint {
	return i.v.Bit(n)
}

// Parity returns 0 if i is even, 1 if i is odd.
func (i *Int) Parity() uint {
	return i.v.Bit(0)
}

// Rsh returns the right-shifted value of an Int.
func (i *Int) Rsh(n uint) *Int {
	return &Int{v: new(big.Int).Rsh(i.v, n)}
}

// Lsh returns the left-shifted value of an Int.
func (i *Int) Lsh(n uint) *Int {
	return &Int{v: new(big.Int).Lsh(i.v, n)}
}

// ScanLowestSetBit returns the index of the lowest set bit of i, i.e.
// the s such that i = 2^s * d with d odd. Used to split N-1 and N+1 into
// their odd parts for the Miller and Lucas tests.
func (i *Int) ScanLowestSetBit() int {
	if i.v.Sign() == 0 {
		return 0
	}
	s := 0
	for i.v.Bit(s) == 0 {
		s++
	}
	return s
}

// Sqrt returns the floor of the square root of i (i must be >= 0).
func (i *Int) Sqrt() *Int {
	return &Int{v: new(big.Int).Sqrt(i.v)}
}

// IsPerfectSquare reports whether i is the square of an integer.
func (i *Int) IsPerfectSquare() bool {
	if i.v.Sign() < 0 {
		return false
	}
	r := new(big.Int).Sqrt(i.v)
	r.Mul(r, r)
	return r.Cmp(i.v) == 0
}

// Jacobi returns the Jacobi symbol (d/i) for an odd, positive i.
func (i *Int) Jacobi(d int64) int {
	return big.Jacobi(big.NewInt(d), i.v)
}

// Abs returns the unsigned value of an Int.
func (i *Int) Abs() *Int {
	return &Int{v: new(big.Int).Abs(i.v)}
}

// Neg flips the sign of an Int.
func (i *Int) Neg() *Int {
	return &Int{v: new(big.Int).Neg(i.v)}
}
