/*
 * geometry.go, part of godftb.
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
	"math"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

//Geometry holds a batch of molecular systems: the atomic numbers and
//Cartesian coordinates of each. Coordinates are in bohr, one *mat.Dense
//of shape NAtoms x 3 per system.
type Geometry struct {
	numbers   [][]int
	positions []*mat.Dense
}

// NewGeometry builds a Geometry from per-system atomic numbers and
// coordinates in bohr. It returns an error if the slices disagree in
// length or any coordinate matrix doesn't match its system's atom count.
func NewGeometry(numbers [][]int, positions []*mat.Dense) (*Geometry, error) {
	if len(numbers) != len(positions) {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/NewGeometry: %d systems given with %d coordinate sets", len(numbers), len(positions))}
	}
	for i, p := range positions {
		r, c := p.Dims()
		if c != 3 || r != len(numbers[i]) {
			return nil, &ConfigError{Message: fmt.Sprintf("godftb/NewGeometry: system %d has %d atoms but a %dx%d coordinate matrix", i, len(numbers[i]), r, c)}
		}
	}
	return &Geometry{numbers: numbers, positions: positions}, nil
}

// NSystems returns the number of systems in the batch.
func (G *Geometry) NSystems() int {
	return len(G.numbers)
}

// NAtoms returns the number of atoms in system i.
func (G *Geometry) NAtoms(i int) int {
	return len(G.numbers[i])
}

// Numbers returns the atomic numbers of system i. The returned slice is
// not a copy.
func (G *Geometry) Numbers(i int) []int {
	return G.numbers[i]
}

// Positions returns the coordinates of system i, in bohr. The returned
// matrix is not a copy.
func (G *Geometry) Positions(i int) *mat.Dense {
	return G.positions[i]
}

// Distances returns the interatomic distance matrix of system i, in
// bohr. The diagonal is zero.
func (G *Geometry) Distances(i int) *mat.SymDense {
	n := G.NAtoms(i)
	p := G.positions[i]
	d := mat.NewSymDense(n, nil)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			dx := p.At(a, 0) - p.At(b, 0)
			dy := p.At(a, 1) - p.At(b, 1)
			dz := p.At(a, 2) - p.At(b, 2)
			d.SetSym(a, b, math.Sqrt(dx*dx+dy*dy+dz*dz))
		}
	}
	return d
}

// InvDistances returns the matrix of reciprocal interatomic distances of
// system i, in 1/bohr, with zeros on the diagonal.
func (G *Geometry) InvDistances(i int) *mat.SymDense {
	d := G.Distances(i)
	n := G.NAtoms(i)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			d.SetSym(a, b, 1.0/d.At(a, b))
		}
	}
	return d
}

// Formula returns the chemical formula of system i, with element symbols
// in alphabetical order, e.g. "H2O" or "C2H6".
func (G *Geometry) Formula(i int) string {
	counts := map[string]int{}
	for _, z := range G.numbers[i] {
		counts[Symbol(z)]++
	}
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}
