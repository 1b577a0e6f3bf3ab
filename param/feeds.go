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

package param

import (
	"fmt"
	"math"

	dftb "github.com/rmera/godftb"
	"gonum.org/v1/gonum/mat"
)

// ShellDict returns the shell table of the set in the form the basis
// bookkeeping consumes: atomic numbers mapped to the angular momenta of
// the element's shells.
func (S *Set) ShellDict() map[int][]int {
	d := make(map[int][]int, len(S.Elements))
	for sym, el := range S.Elements {
		if z := dftb.AtomicNumber(sym); z != 0 {
			d[z] = el.Shells
		}
	}
	return d
}

// element fetches the parameters of atomic number z.
func (S *Set) element(z int) (Element, error) {
	el, ok := S.Elements[dftb.Symbol(z)]
	if !ok {
		return Element{}, &Error{message: fmt.Sprintf("param: set %q has no parameters for element %d (%s)", S.Name, z, dftb.Symbol(z))}
	}
	return el, nil
}

// onSiteOrb returns the on-site energy of each orbital of system sys.
func (S *Set) onSiteOrb(orbs *dftb.OrbitalInfo, sys int) ([]float64, error) {
	nums := orbs.Numbers(sys)
	shellAtoms := orbs.ShellAtoms(sys)
	perAtomShell := make([]int, len(nums))
	shellE := make([]float64, orbs.NShells(sys))
	for s := range shellE {
		a := shellAtoms[s]
		el, err := S.element(nums[a])
		if err != nil {
			return nil, err
		}
		if perAtomShell[a] >= len(el.OnSite) {
			return nil, &Error{message: fmt.Sprintf("param: atom %d carries more shells than element %s defines", a, dftb.Symbol(nums[a]))}
		}
		shellE[s] = el.OnSite[perAtomShell[a]]
		perAtomShell[a]++
	}
	e := make([]float64, orbs.NOrbitals(sys))
	for o, s := range orbs.OnShells(sys) {
		e[o] = shellE[s]
	}
	return e, nil
}

//OverlapFeed builds overlap matrices from the distance-only model:
//unity on the diagonal, zero between shells of the same atom, and
//Prefactor*exp(-R/Decay) between orbitals on different atoms within the
//pair cutoff.
type OverlapFeed struct {
	Set *Set
}

func (F *OverlapFeed) Matrix(geom *dftb.Geometry, orbs *dftb.OrbitalInfo, sys int) (*mat.SymDense, error) {
	n := orbs.NOrbitals(sys)
	onAtoms := orbs.OnAtoms(sys)
	nums := orbs.Numbers(sys)
	d := geom.Distances(sys)
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		s.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			ai, aj := onAtoms[i], onAtoms[j]
			if ai == aj {
				continue
			}
			p, ok := F.Set.pair(dftb.Symbol(nums[ai]), dftb.Symbol(nums[aj]))
			if !ok {
				return nil, &Error{message: fmt.Sprintf("param: set %q has no pair %s-%s", F.Set.Name, dftb.Symbol(nums[ai]), dftb.Symbol(nums[aj]))}
			}
			r := d.At(ai, aj)
			if r < p.Cutoff {
				s.SetSym(i, j, p.Prefactor*math.Exp(-r/p.Decay))
			}
		}
	}
	return s, nil
}

//HamiltonianFeed builds reference Hamiltonians in the Wolfsberg-
//Helmholz approximation: on-site energies on the diagonal and
//H_ij = 0.5*K*(e_i+e_j)*S_ij off it, with S from the set's overlap
//model.
type HamiltonianFeed struct {
	Set *Set
}

func (F *HamiltonianFeed) Matrix(geom *dftb.Geometry, orbs *dftb.OrbitalInfo, sys int) (*mat.SymDense, error) {
	over := &OverlapFeed{Set: F.Set}
	s, err := over.Matrix(geom, orbs, sys)
	if err != nil {
		return nil, err
	}
	e, err := F.Set.onSiteOrb(orbs, sys)
	if err != nil {
		err.(*Error).Decorate("HamiltonianFeed.Matrix")
		return nil, err
	}
	n := orbs.NOrbitals(sys)
	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, e[i])
		for j := i + 1; j < n; j++ {
			h.SetSym(i, j, 0.5*F.Set.WHK*(e[i]+e[j])*s.At(i, j))
		}
	}
	return h, nil
}

// Occupations implements the reference-occupation feed from the set's
// shell occupations, spread evenly over each shell's orbitals.
func (S *Set) Occupations(orbs *dftb.OrbitalInfo, sys int) ([]float64, error) {
	nums := orbs.Numbers(sys)
	shellAtoms := orbs.ShellAtoms(sys)
	shellLs := orbs.ShellLs(sys)
	perAtomShell := make([]int, len(nums))
	shellQ := make([]float64, orbs.NShells(sys))
	for s := range shellQ {
		a := shellAtoms[s]
		el, err := S.element(nums[a])
		if err != nil {
			return nil, err
		}
		if perAtomShell[a] >= len(el.Occupations) {
			return nil, &Error{message: fmt.Sprintf("param: atom %d carries more shells than element %s defines", a, dftb.Symbol(nums[a]))}
		}
		shellQ[s] = el.Occupations[perAtomShell[a]] / float64(2*shellLs[s]+1)
		perAtomShell[a]++
	}
	q := make([]float64, orbs.NOrbitals(sys))
	for o, s := range orbs.OnShells(sys) {
		q[o] = shellQ[s]
	}
	return q, nil
}

// HubbardUs implements the Hubbard feed from the set's per-element
// values; at shell resolution every shell inherits its atom's U.
func (S *Set) HubbardUs(orbs *dftb.OrbitalInfo, sys int, res dftb.Resolution) ([]float64, error) {
	nums := orbs.Numbers(sys)
	atomU := make([]float64, len(nums))
	for a, z := range nums {
		el, err := S.element(z)
		if err != nil {
			return nil, err
		}
		atomU[a] = el.Hubbard
	}
	switch res {
	case dftb.ResAtom:
		return atomU, nil
	case dftb.ResShell:
		us := make([]float64, orbs.NShells(sys))
		for s, a := range orbs.ShellAtoms(sys) {
			us[s] = atomU[a]
		}
		return us, nil
	}
	return nil, &Error{message: fmt.Sprintf("param: unsupported Hubbard resolution %v", res)}
}

// RepulsiveEnergy implements the repulsive feed: a sum of pairwise
// exponentials truncated at each pair's cutoff.
func (S *Set) RepulsiveEnergy(geom *dftb.Geometry, sys int) (float64, error) {
	nums := geom.Numbers(sys)
	d := geom.Distances(sys)
	e := 0.0
	for a := 0; a < len(nums); a++ {
		for b := a + 1; b < len(nums); b++ {
			p, ok := S.pair(dftb.Symbol(nums[a]), dftb.Symbol(nums[b]))
			if !ok {
				return 0, &Error{message: fmt.Sprintf("param: set %q has no pair %s-%s", S.Name, dftb.Symbol(nums[a]), dftb.Symbol(nums[b]))}
			}
			if r := d.At(a, b); r < p.Cutoff {
				e += p.RepPrefactor * math.Exp(-r/p.RepDecay)
			}
		}
	}
	return e, nil
}
