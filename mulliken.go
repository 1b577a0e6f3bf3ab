/*
 * mulliken.go, part of godftb.
 *
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package dftb

import "gonum.org/v1/gonum/mat"

// MullikenOrbital returns the Mulliken population of each orbital,
// q_i = sum_j rho_ij * S_ij, given the density and overlap matrices.
func MullikenOrbital(rho *mat.Dense, S *mat.SymDense) []float64 {
	n, _ := rho.Dims()
	q := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			q[i] += rho.At(i, j) * S.At(i, j)
		}
	}
	return q
}

// Mulliken returns the Mulliken populations of system sys aggregated at
// the given resolution. Orbital resolution needs no basis information,
// so orbs may be nil in that case; any coarser resolution requires it.
func Mulliken(rho *mat.Dense, S *mat.SymDense, orbs *OrbitalInfo, sys int, res Resolution) ([]float64, error) {
	q := MullikenOrbital(rho, S)
	if res == ResOrbital {
		return q, nil
	}
	if orbs == nil {
		return nil, &ConfigError{Message: "godftb/Mulliken: aggregation beyond orbital resolution requires basis information"}
	}
	out := make([]float64, orbs.NRes(sys, res))
	for o, r := range orbs.OnRes(sys, res) {
		out[r] += q[o]
	}
	return out, nil
}
