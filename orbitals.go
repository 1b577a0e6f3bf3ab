/*
 * orbitals.go, part of godftb.
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

import "fmt"

//Resolution selects the granularity at which per-orbital quantities are
//aggregated: whole atoms, shells, or individual orbitals.
type Resolution int

const (
	ResAtom Resolution = iota
	ResShell
	ResOrbital
)

func (r Resolution) String() string {
	switch r {
	case ResAtom:
		return "atom"
	case ResShell:
		return "shell"
	case ResOrbital:
		return "orbital"
	}
	return "unknown"
}

//OrbitalInfo holds the basis bookkeeping of a batch of systems: which
//shells each element contributes, and the atom and shell each orbital
//belongs to. A shell with angular momentum l contributes 2l+1 orbitals.
type OrbitalInfo struct {
	numbers    [][]int
	shellDict  map[int][]int
	shellAtoms [][]int //atom index of each shell, per system
	shellLs    [][]int //angular momentum of each shell, per system
	orbAtoms   [][]int //atom index of each orbital, per system
	orbShells  [][]int //shell index of each orbital, per system
}

// NewOrbitalInfo builds the basis bookkeeping for the given per-system
// atomic numbers. If shellDict is nil the default valence shells of
// each element are used; otherwise it maps atomic numbers to the
// angular momenta of the shells on that element.
func NewOrbitalInfo(numbers [][]int, shellDict map[int][]int) (*OrbitalInfo, error) {
	if shellDict == nil {
		shellDict = valenceShells
	}
	o := &OrbitalInfo{
		numbers:    numbers,
		shellDict:  shellDict,
		shellAtoms: make([][]int, len(numbers)),
		shellLs:    make([][]int, len(numbers)),
		orbAtoms:   make([][]int, len(numbers)),
		orbShells:  make([][]int, len(numbers)),
	}
	for i, nums := range numbers {
		for a, z := range nums {
			ls, ok := shellDict[z]
			if !ok {
				return nil, &ConfigError{Message: fmt.Sprintf("godftb/NewOrbitalInfo: no shells defined for element %d (%s)", z, Symbol(z))}
			}
			for _, l := range ls {
				shell := len(o.shellLs[i])
				o.shellAtoms[i] = append(o.shellAtoms[i], a)
				o.shellLs[i] = append(o.shellLs[i], l)
				for m := 0; m < 2*l+1; m++ {
					o.orbAtoms[i] = append(o.orbAtoms[i], a)
					o.orbShells[i] = append(o.orbShells[i], shell)
				}
			}
		}
	}
	return o, nil
}

// NSystems returns the number of systems covered.
func (O *OrbitalInfo) NSystems() int {
	return len(O.numbers)
}

// NAtoms returns the number of atoms in system i.
func (O *OrbitalInfo) NAtoms(i int) int {
	return len(O.numbers[i])
}

// NShells returns the number of shells in system i.
func (O *OrbitalInfo) NShells(i int) int {
	return len(O.shellLs[i])
}

// NOrbitals returns the number of orbitals in system i.
func (O *OrbitalInfo) NOrbitals(i int) int {
	return len(O.orbAtoms[i])
}

// Numbers returns the atomic numbers of system i.
func (O *OrbitalInfo) Numbers(i int) []int {
	return O.numbers[i]
}

// OnAtoms returns, for each orbital of system i, the index of the atom
// it sits on. The returned slice is not a copy.
func (O *OrbitalInfo) OnAtoms(i int) []int {
	return O.orbAtoms[i]
}

// OnShells returns, for each orbital of system i, the index of the
// shell it belongs to. The returned slice is not a copy.
func (O *OrbitalInfo) OnShells(i int) []int {
	return O.orbShells[i]
}

// ShellAtoms returns, for each shell of system i, the index of the atom
// it sits on.
func (O *OrbitalInfo) ShellAtoms(i int) []int {
	return O.shellAtoms[i]
}

// ShellLs returns the angular momentum of each shell of system i.
func (O *OrbitalInfo) ShellLs(i int) []int {
	return O.shellLs[i]
}

// OnRes returns, for each orbital of system i, the index of the basis
// entity it belongs to at the given resolution.
func (O *OrbitalInfo) OnRes(i int, res Resolution) []int {
	switch res {
	case ResAtom:
		return O.orbAtoms[i]
	case ResShell:
		return O.orbShells[i]
	default:
		ids := make([]int, O.NOrbitals(i))
		for j := range ids {
			ids[j] = j
		}
		return ids
	}
}

// NRes returns the number of basis entities of system i at the given
// resolution.
func (O *OrbitalInfo) NRes(i int, res Resolution) int {
	switch res {
	case ResAtom:
		return O.NAtoms(i)
	case ResShell:
		return O.NShells(i)
	default:
		return O.NOrbitals(i)
	}
}

// Subset returns an OrbitalInfo covering only the systems whose indices
// appear in keep, in that order. The underlying slices are shared with
// the receiver.
func (O *OrbitalInfo) Subset(keep []int) *OrbitalInfo {
	s := &OrbitalInfo{
		numbers:    make([][]int, len(keep)),
		shellDict:  O.shellDict,
		shellAtoms: make([][]int, len(keep)),
		shellLs:    make([][]int, len(keep)),
		orbAtoms:   make([][]int, len(keep)),
		orbShells:  make([][]int, len(keep)),
	}
	for j, i := range keep {
		s.numbers[j] = O.numbers[i]
		s.shellAtoms[j] = O.shellAtoms[i]
		s.shellLs[j] = O.shellLs[i]
		s.orbAtoms[j] = O.orbAtoms[i]
		s.orbShells[j] = O.orbShells[i]
	}
	return s
}
