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

import "github.com/fwjmath/weird-odd-engine/residue"

// ExtractKnownFactor pulls the driver-supplied prime (3 or 5, the only
// two the residue-to-stage dispatch ever hands it directly) out of the
// cofactor. Stage A of the pipeline.
func (st *State) ExtractKnownFactor(p uint64) {
	st.extract(p)
}

// TrialFactorSmall walks the wheel's tracked primes (table entries
// starting at 7) and extracts any that divide the cofactor, stopping as
// soon as the cofactor is fully consumed or the extracted-so-far portion
// already looks abundant. Stage B of the pipeline.
func (st *State) TrialFactorSmall(w *residue.Wheel, tracked []uint64) bool {
	if st.Cofactor == 1 {
		return true
	}
	if st.abundantSoFar() {
		return false
	}
	for i, p := range tracked {
		if !w.DividesAt(i) {
			continue
		}
		st.extract(p)
		if st.Cofactor == 1 {
			return true
		}
		if st.abundantSoFar() {
			return false
		}
	}
	return true
}
