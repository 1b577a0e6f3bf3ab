/*
 * feeds.go, part of godftb.
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

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//A MatrixFeed builds an operator matrix (Hamiltonian or overlap) in the
//orbital basis of one system of a batch.
type MatrixFeed interface {
	Matrix(geom *Geometry, orbs *OrbitalInfo, sys int) (*mat.SymDense, error)
}

//An OccupationFeed supplies the reference (neutral atom) populations of
//one system, one value per orbital.
type OccupationFeed interface {
	Occupations(orbs *OrbitalInfo, sys int) ([]float64, error)
}

//A HubbardFeed supplies Hubbard-U values for one system, one value per
//basis entity at the calculator's working resolution.
type HubbardFeed interface {
	HubbardUs(orbs *OrbitalInfo, sys int, res Resolution) ([]float64, error)
}

//A RepulsiveFeed supplies the repulsive (core-core) energy of one
//system.
type RepulsiveFeed interface {
	RepulsiveEnergy(geom *Geometry, sys int) (float64, error)
}

//StaticFeed is a MatrixFeed over precomputed per-system matrices, for
//when the operators come from an external program or a test.
type StaticFeed struct {
	Matrices []*mat.SymDense
}

func (S *StaticFeed) Matrix(geom *Geometry, orbs *OrbitalInfo, sys int) (*mat.SymDense, error) {
	if sys < 0 || sys >= len(S.Matrices) {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/StaticFeed: no matrix stored for system %d", sys)}
	}
	m := S.Matrices[sys]
	if n, _ := m.Dims(); n != orbs.NOrbitals(sys) {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/StaticFeed: system %d needs a %d-orbital matrix, have %d", sys, orbs.NOrbitals(sys), n)}
	}
	return m, nil
}

//GroundStateFeed supplies reference occupations and Hubbard-U values
//from the built-in neutral-atom tables. It is the default source for
//both when a calculator is built without explicit feeds.
type GroundStateFeed struct{}

// Occupations distributes the ground-state electron count of each shell
// evenly over the shell's orbitals.
func (GroundStateFeed) Occupations(orbs *OrbitalInfo, sys int) ([]float64, error) {
	q := make([]float64, orbs.NOrbitals(sys))
	shellAtoms := orbs.ShellAtoms(sys)
	shellLs := orbs.ShellLs(sys)
	nums := orbs.Numbers(sys)
	perAtomShell := make([]int, len(nums)) //shells seen so far on each atom
	shellOcc := make([]float64, orbs.NShells(sys))
	for s := range shellLs {
		a := shellAtoms[s]
		occs := ShellOccupations(nums[a])
		if occs == nil {
			return nil, &ConfigError{Message: fmt.Sprintf("godftb/GroundStateFeed: no occupations tabulated for element %d", nums[a])}
		}
		if perAtomShell[a] >= len(occs) {
			return nil, &ConfigError{Message: fmt.Sprintf("godftb/GroundStateFeed: atom %d has more shells than tabulated occupations", a)}
		}
		shellOcc[s] = occs[perAtomShell[a]] / float64(2*shellLs[s]+1)
		perAtomShell[a]++
	}
	for o, s := range orbs.OnShells(sys) {
		q[o] = shellOcc[s]
	}
	return q, nil
}

// HubbardUs returns the tabulated atomic Hubbard-U values at the given
// resolution. The tables are not shell-resolved, so at shell resolution
// every shell inherits its atom's value.
func (GroundStateFeed) HubbardUs(orbs *OrbitalInfo, sys int, res Resolution) ([]float64, error) {
	nums := orbs.Numbers(sys)
	atomU := make([]float64, len(nums))
	for a, z := range nums {
		u := HubbardU(z)
		if u == 0 {
			return nil, &ConfigError{Message: fmt.Sprintf("godftb/GroundStateFeed: no Hubbard U tabulated for element %d", z)}
		}
		atomU[a] = u
	}
	switch res {
	case ResAtom:
		return atomU, nil
	case ResShell:
		us := make([]float64, orbs.NShells(sys))
		for s, a := range orbs.ShellAtoms(sys) {
			us[s] = atomU[a]
		}
		return us, nil
	}
	return nil, &ConfigError{Message: fmt.Sprintf("godftb/GroundStateFeed: unsupported Hubbard resolution %v", res)}
}
