/*
 * param.go, part of godftb.
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

//Package param reads tight-binding parameter sets from YAML files and
//turns them into the operator feeds a calculator consumes. The model
//behind the feeds is deliberately simple: on-site energies on the
//diagonal, distance-only exponential overlaps between atoms, and
//Wolfsberg-Helmholz off-diagonal Hamiltonian elements. It is meant for
//small molecules and for testing, not as a replacement for a full
//Slater-Koster table.
package param

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//Element holds the per-element parameters: which shells the element
//carries, in angular momentum, and the on-site energy, ground-state
//occupation (in electrons) and Hubbard U of each, all in atomic units.
type Element struct {
	Shells      []int     `yaml:"shells"`
	OnSite      []float64 `yaml:"onsite"`
	Occupations []float64 `yaml:"occupations"`
	Hubbard     float64   `yaml:"hubbard"`
}

//Pair holds the pairwise parameters of the distance-only model: the
//inter-atomic overlap s(R) = Prefactor*exp(-R/Decay) and the repulsive
//energy RepPrefactor*exp(-R/RepDecay), truncated at Cutoff bohr.
type Pair struct {
	Prefactor    float64 `yaml:"prefactor"`
	Decay        float64 `yaml:"decay"`
	RepPrefactor float64 `yaml:"rep_prefactor"`
	RepDecay     float64 `yaml:"rep_decay"`
	Cutoff       float64 `yaml:"cutoff"`
}

//Set is a complete parameter set: elements keyed by symbol and pairs
//keyed by hyphenated symbols ("H-O"). WHK is the Wolfsberg-Helmholz
//constant of the Hamiltonian model.
type Set struct {
	Name     string             `yaml:"name"`
	WHK      float64            `yaml:"wh_k"`
	Elements map[string]Element `yaml:"elements"`
	Pairs    map[string]Pair    `yaml:"pairs"`
}

//Error is the error type for the param package.
type Error struct {
	message string
	deco    []string
}

func (e *Error) Error() string {
	return e.message
}

// Decorate adds details to the error and returns the decoration stack.
func (e *Error) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// FromBytes parses a parameter set from YAML text and validates it.
func FromBytes(b []byte) (*Set, error) {
	s := &Set{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, &Error{message: fmt.Sprintf("param: malformed YAML: %v", err)}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads and validates a parameter set from the YAML file at path.
func Load(path string) (*Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := FromBytes(b)
	if err != nil {
		err.(*Error).Decorate(fmt.Sprintf("Load: %s", path))
		return nil, err
	}
	return s, nil
}

// Validate checks the internal consistency of the set: every element
// needs one on-site energy and one occupation per shell, a positive
// Hubbard U, and every pair positive decay lengths.
func (S *Set) Validate() error {
	if S.WHK <= 0 {
		return &Error{message: fmt.Sprintf("param: non-positive Wolfsberg-Helmholz constant %g", S.WHK)}
	}
	if len(S.Elements) == 0 {
		return &Error{message: "param: set defines no elements"}
	}
	for sym, el := range S.Elements {
		if len(el.Shells) == 0 {
			return &Error{message: fmt.Sprintf("param: element %s has no shells", sym)}
		}
		if len(el.OnSite) != len(el.Shells) || len(el.Occupations) != len(el.Shells) {
			return &Error{message: fmt.Sprintf("param: element %s has %d shells but %d on-site energies and %d occupations",
				sym, len(el.Shells), len(el.OnSite), len(el.Occupations))}
		}
		if el.Hubbard <= 0 {
			return &Error{message: fmt.Sprintf("param: element %s has non-positive Hubbard U %g", sym, el.Hubbard)}
		}
	}
	for key, p := range S.Pairs {
		if p.Decay <= 0 || p.RepDecay <= 0 {
			return &Error{message: fmt.Sprintf("param: pair %s has non-positive decay lengths", key)}
		}
	}
	return nil
}

// pair looks a pair up under both symbol orders.
func (S *Set) pair(a, b string) (Pair, bool) {
	if p, ok := S.Pairs[a+"-"+b]; ok {
		return p, true
	}
	p, ok := S.Pairs[b+"-"+a]
	return p, ok
}

// Dump serializes the set back to YAML.
func (S *Set) Dump() ([]byte, error) {
	return yaml.Marshal(S)
}

// Default returns a built-in minimal parameter set covering H, C, N and
// O with mio-1-1 on-site energies and Hubbard values; the pairwise
// overlap and repulsion parameters are rough fits meant for tests and
// demonstrations.
func Default() *Set {
	return &Set{
		Name: "builtin-hcno",
		WHK:  1.75,
		Elements: map[string]Element{
			"H": {Shells: []int{0}, OnSite: []float64{-0.238600}, Occupations: []float64{1}, Hubbard: 0.4196},
			"C": {Shells: []int{0, 1}, OnSite: []float64{-0.504890, -0.194350}, Occupations: []float64{2, 2}, Hubbard: 0.3647},
			"N": {Shells: []int{0, 1}, OnSite: []float64{-0.640195, -0.260544}, Occupations: []float64{2, 3}, Hubbard: 0.4309},
			"O": {Shells: []int{0, 1}, OnSite: []float64{-0.878663, -0.332152}, Occupations: []float64{2, 4}, Hubbard: 0.4954},
		},
		Pairs: map[string]Pair{
			"H-H": {Prefactor: 0.65, Decay: 1.45, RepPrefactor: 0.95, RepDecay: 0.62, Cutoff: 6.0},
			"H-C": {Prefactor: 0.58, Decay: 1.60, RepPrefactor: 2.10, RepDecay: 0.55, Cutoff: 7.0},
			"H-N": {Prefactor: 0.56, Decay: 1.55, RepPrefactor: 2.35, RepDecay: 0.53, Cutoff: 7.0},
			"H-O": {Prefactor: 0.54, Decay: 1.50, RepPrefactor: 2.60, RepDecay: 0.51, Cutoff: 7.0},
			"C-C": {Prefactor: 0.50, Decay: 1.85, RepPrefactor: 5.20, RepDecay: 0.48, Cutoff: 8.0},
			"C-N": {Prefactor: 0.49, Decay: 1.80, RepPrefactor: 5.60, RepDecay: 0.47, Cutoff: 8.0},
			"C-O": {Prefactor: 0.48, Decay: 1.75, RepPrefactor: 6.00, RepDecay: 0.46, Cutoff: 8.0},
			"N-N": {Prefactor: 0.48, Decay: 1.75, RepPrefactor: 6.10, RepDecay: 0.46, Cutoff: 8.0},
			"N-O": {Prefactor: 0.47, Decay: 1.70, RepPrefactor: 6.50, RepDecay: 0.45, Cutoff: 8.0},
			"O-O": {Prefactor: 0.46, Decay: 1.65, RepPrefactor: 7.00, RepDecay: 0.44, Cutoff: 8.0},
		},
	}
}
