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

import "github.com/fwjmath/weird-odd-engine/bigint"

// BPSW reports whether n is a probable prime under the Baillie-PSW
// test: a base-2 Miller test composed with the strong Lucas-Selfridge
// test, short-circuiting on the first failure. No counterexample to
// this composition is known for any n below 2^64, which comfortably
// covers every candidate this search ever certifies. The only error
// this can return is the Lucas D-search overflow backstop, which is
// fatal for the caller -- it signals a broken invariant, not a
// recoverable per-candidate condition.
func BPSW(n *bigint.Int) (bool, error) {
	if !Miller(n, 2) {
		return false, nil
	}
	return StrongLucasSelfridge(n)
}
