/*
 * atomicdata.go, part of godftb.
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

//A map from atomic numbers to element symbols.
//Note that just the light "bio-elements" are present
var symbolFromZ = map[int]string{
	1:  "H",
	2:  "He",
	3:  "Li",
	4:  "Be",
	5:  "B",
	6:  "C",
	7:  "N",
	8:  "O",
	9:  "F",
	10: "Ne",
	14: "Si",
	15: "P",
	16: "S",
	17: "Cl",
	35: "Br",
	53: "I",
}

var zFromSymbol = map[string]int{}

func init() {
	for z, s := range symbolFromZ {
		zFromSymbol[s] = z
	}
}

//Valence shells considered for each element, as angular momenta
//(0=s, 1=p). Only the valence shells enter a tight-binding basis.
var valenceShells = map[int][]int{
	1:  {0},
	2:  {0},
	3:  {0, 1},
	4:  {0, 1},
	5:  {0, 1},
	6:  {0, 1},
	7:  {0, 1},
	8:  {0, 1},
	9:  {0, 1},
	10: {0, 1},
}

//Neutral ground-state occupations of the valence shells, in electrons,
//one value per shell in valenceShells.
var shellOccupations = map[int][]float64{
	1:  {1},
	2:  {2},
	3:  {1, 0},
	4:  {2, 0},
	5:  {2, 1},
	6:  {2, 2},
	7:  {2, 3},
	8:  {2, 4},
	9:  {2, 5},
	10: {2, 6},
}

//Hubbard-U values in hartree, from the mio-1-1 parameter set
//(Elstner et al., 1998, DOI:10.1103/PhysRevB.58.7260).
var hubbardU = map[int]float64{
	1: 0.4196,
	6: 0.3647,
	7: 0.4309,
	8: 0.4954,
	9: 0.5605,
}

//On-site (free atom) energies of the valence shells in hartree,
//one value per shell in valenceShells. Also mio-1-1 values.
var onSiteEnergies = map[int][]float64{
	1: {-0.238600},
	6: {-0.504890, -0.194350},
	7: {-0.640195, -0.260544},
	8: {-0.878663, -0.332152},
	9: {-1.086859, -0.415606},
}

// Symbol returns the element symbol for an atomic number, or an empty
// string if the element is not tabulated.
func Symbol(z int) string {
	return symbolFromZ[z]
}

// AtomicNumber returns the atomic number for an element symbol, or 0 if
// the symbol is not tabulated.
func AtomicNumber(symbol string) int {
	return zFromSymbol[symbol]
}

// ValenceShells returns the angular momenta of the valence shells of
// element z, or nil if the element is not tabulated.
func ValenceShells(z int) []int {
	return valenceShells[z]
}

// ShellOccupations returns the neutral ground-state electron count of
// each valence shell of element z, or nil if not tabulated.
func ShellOccupations(z int) []float64 {
	return shellOccupations[z]
}

// HubbardU returns the Hubbard-U value of element z in hartree, or 0 if
// not tabulated.
func HubbardU(z int) float64 {
	return hubbardU[z]
}

// OnSiteEnergies returns the on-site energy of each valence shell of
// element z in hartree, or nil if not tabulated.
func OnSiteEnergies(z int) []float64 {
	return onSiteEnergies[z]
}
