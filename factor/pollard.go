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

	"github.com/fwjmath/weird-odd-engine/bigint"
)

// brentPeriod is the number of Floyd/Brent steps batched into one
// product-of-differences before a gcd is taken against it, trading a
// handful of wasted steps (when the batch collapses to the modulus
// itself) for far fewer gcd computations overall.
const brentPeriod = 16

// maxPollardOffset bounds how many times PollardRhoBrent will escalate
// its polynomial offset c before giving up, instead of recursing on c
// indefinitely: a bounded retry loop turns "this would spin forever on
// a bug" into a diagnosable error instead.
const maxPollardOffset = 128

// ErrPollardExhausted is returned when PollardRhoBrent escalates c past
// maxPollardOffset without splitting nn.
var ErrPollardExhausted = fmt.Errorf("pollard-rho: exhausted %d polynomial offsets", maxPollardOffset)

// PollardRhoBrent finds one (not necessarily prime) nontrivial factor
// of nn using Brent's variant of Pollard's rho algorithm: f(x) = x^2+c,
// with the usual Floyd/Brent cycle detection, but the gcd against the
// modulus is taken against a running product of differences every
// brentPeriod steps instead of every step. If a batch's product
// collapses to nn itself (rather than a proper factor), the run rewinds
// to the last good checkpoint and retries one step at a time; if even
// that fails, c is bumped and the whole search restarts.
func PollardRhoBrent(nn uint64) (uint64, error) {
	for c := uint64(1); c <= maxPollardOffset; c++ {
		if f, ok := pollardAttempt(c, nn); ok {
			return f, nil
		}
	}
	return 0, ErrPollardExhausted
}

func pollardStep(x, c, nn uint64) uint64 {
	return bigint.FromUint64(x).Mul(bigint.FromUint64(x)).AddU64(c).ModU64(nn)
}

func pollardAttempt(c, nn uint64) (uint64, bool) {
	x := uint64(2)
	y := uint64(2)
	gcd := uint64(1)
	iter := uint64(1)
	aim := uint64(2)

	// Phase 1: Floyd/Brent ramp-up to the first power-of-two checkpoint,
	// one unbatched gcd per step (cheap: this phase is only a handful of
	// iterations).
	for gcd == 1 && aim < brentPeriod {
		x = pollardStep(x, c, nn)
		gcd = bigint.FromUint64(diffMod(x, y, nn)).GCDU64(nn)
		iter++
		if iter == aim {
			aim <<= 1
			y = x
		}
	}

	// Phase 2: batch brentPeriod steps' worth of differences into one
	// product before taking a gcd.
	ssx, ssy := x, y
	batch := bigint.ONE
	cnt := 0

	for gcd == 1 {
		x = pollardStep(x, c, nn)
		batch = batch.MulU64(diffMod(x, y, nn))
		iter++
		if iter == aim {
			aim <<= 1
			y = x
		}
		cnt++
		if cnt == brentPeriod {
			gcd = batch.GCDU64(nn)
			if gcd != 1 {
				break
			}
			batch = bigint.ONE
			cnt = 0
			ssx, ssy = x, y
		}
	}

	if gcd != nn {
		return gcd, true
	}

	// Batch collapsed to nn: rewind to the last checkpoint and replay
	// one step at a time.
	x, y = ssx, ssy
	gcd = diffMod(x, y, nn)
	gcd = bigint.FromUint64(gcd).GCDU64(nn)
	if gcd != 1 && gcd != nn {
		return gcd, true
	}

	for i := 0; i <= brentPeriod; i++ {
		x = pollardStep(x, c, nn)
		d := diffMod(x, y, nn)
		gcd = bigint.FromUint64(d).GCDU64(nn)
		if gcd != 1 {
			break
		}
	}
	if gcd != 1 && gcd != nn {
		return gcd, true
	}
	return 0, false
}

// diffMod returns (x-y) mod nn, reduced into [0, nn), as an unsigned
// value suitable for a gcd against nn (the sign of x-y doesn't matter to
// gcd, but uint64 subtraction underflows if computed naively).
func diffMod(x, y, nn uint64) uint64 {
	if x >= y {
		return (x - y) % nn
	}
	return (nn - (y-x)%nn) % nn
}
