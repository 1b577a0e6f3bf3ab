/*
 * filling.go, part of godftb.
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

//Package filling assigns electrons to single-particle levels, either by
//strict energy ordering or with a finite-temperature broadening of the
//occupation edge. All energies are in hartree and all systems are
//closed shell, so levels take between 0 and 2 electrons.
package filling

import (
	"fmt"
	"math"
)

//Scheme selects how the occupation edge is broadened.
type Scheme int

const (
	//Aufbau fills levels strictly in order of energy.
	Aufbau Scheme = iota
	//Fermi broadens occupations with the Fermi-Dirac distribution.
	Fermi
	//Gaussian broadens occupations with the complementary error
	//function, i.e. Gaussian-smeared level energies.
	Gaussian
)

func (s Scheme) String() string {
	switch s {
	case Aufbau:
		return "aufbau"
	case Fermi:
		return "fermi"
	case Gaussian:
		return "gaussian"
	}
	return "unknown"
}

// SchemeFromString parses a filling scheme name.
func SchemeFromString(s string) (Scheme, error) {
	switch s {
	case "aufbau", "":
		return Aufbau, nil
	case "fermi":
		return Fermi, nil
	case "gaussian":
		return Gaussian, nil
	}
	return 0, &Error{message: fmt.Sprintf("filling: unknown scheme %q", s)}
}

//Error is the error type for the filling package.
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

// FermiSmearing returns the Fermi-Dirac occupation of each level in
// eps, between 0 and 1, for Fermi level ef and electronic temperature
// kT (both hartree). kT must be positive.
func FermiSmearing(eps []float64, ef, kT float64) []float64 {
	f := make([]float64, len(eps))
	for i, e := range eps {
		x := (e - ef) / kT
		//guard the exponential; at |x|>500 the occupation is exactly
		//0 or 1 in double precision anyway
		switch {
		case x > 500:
			f[i] = 0
		case x < -500:
			f[i] = 1
		default:
			f[i] = 1 / (1 + math.Exp(x))
		}
	}
	return f
}

// GaussianSmearing returns Gaussian-broadened occupations, between 0
// and 1, for Fermi level ef and broadening width kT (both hartree).
func GaussianSmearing(eps []float64, ef, kT float64) []float64 {
	f := make([]float64, len(eps))
	for i, e := range eps {
		f[i] = 0.5 * math.Erfc((e-ef)/kT)
	}
	return f
}

// aufbau fills n electron pairs into the levels in order, allowing a
// fractional pair in the frontier level. It returns the occupations
// (0..1) and the index of the highest level touched, or -1 if n is 0.
func aufbau(eps []float64, n float64) ([]float64, int) {
	f := make([]float64, len(eps))
	frontier := -1
	for i := range eps {
		if n <= 0 {
			break
		}
		fill := math.Min(n, 1)
		f[i] = fill
		n -= fill
		frontier = i
	}
	return f, frontier
}

// FermiSearch locates the Fermi level at which the given smearing
// scheme places n electron pairs in the levels eps, by bisection. The
// scheme must be Fermi or Gaussian and kT positive.
func FermiSearch(eps []float64, n, kT float64, scheme Scheme) (float64, error) {
	smear := FermiSmearing
	if scheme == Gaussian {
		smear = GaussianSmearing
	} else if scheme != Fermi {
		return 0, &Error{message: fmt.Sprintf("filling/FermiSearch: scheme %v has no Fermi level to search", scheme)}
	}
	count := func(ef float64) float64 {
		tot := 0.0
		for _, f := range smear(eps, ef, kT) {
			tot += f
		}
		return tot - n
	}
	lo := eps[0] - 100*kT
	hi := eps[len(eps)-1] + 100*kT
	if count(lo) > 0 || count(hi) < 0 {
		return 0, &Error{message: "filling/FermiSearch: electron count cannot be bracketed"}
	}
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		c := count(mid)
		if math.Abs(c) < 1e-12 {
			return mid, nil
		}
		if c > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

// Entropy returns the electronic entropy term T*S of the occupations
// implied by ef and kT, per spin channel. Aufbau filling has no
// entropy.
func Entropy(eps []float64, ef, kT float64, scheme Scheme) float64 {
	if kT <= 0 {
		return 0
	}
	ts := 0.0
	switch scheme {
	case Fermi:
		for _, f := range FermiSmearing(eps, ef, kT) {
			if f > 0 && f < 1 {
				ts -= kT * (f*math.Log(f) + (1-f)*math.Log(1-f))
			}
		}
	case Gaussian:
		for _, e := range eps {
			x := (e - ef) / kT
			ts += kT * math.Exp(-x*x) / (2 * math.Sqrt(math.Pi))
		}
	}
	return ts
}

// Occupations distributes nel electrons over the levels eps with the
// given scheme and electronic temperature kT (hartree). A kT of zero
// always means aufbau filling. It returns the occupation of each level
// (0..2), the Fermi level, and the entropy term T*S including the spin
// factor of two.
func Occupations(eps []float64, nel float64, scheme Scheme, kT float64) ([]float64, float64, float64, error) {
	if nel < 0 || nel > 2*float64(len(eps)) {
		return nil, 0, 0, &Error{message: fmt.Sprintf("filling/Occupations: cannot place %g electrons in %d levels", nel, len(eps))}
	}
	if len(eps) == 0 {
		return nil, 0, 0, &Error{message: "filling/Occupations: no levels given"}
	}
	n := nel / 2 //electron pairs
	if kT <= 0 || scheme == Aufbau {
		f, frontier := aufbau(eps, n)
		ef := eps[0]
		if frontier >= 0 {
			if f[frontier] < 1 || frontier == len(eps)-1 {
				ef = eps[frontier]
			} else {
				ef = 0.5 * (eps[frontier] + eps[frontier+1])
			}
		}
		occ := make([]float64, len(f))
		for i, v := range f {
			occ[i] = 2 * v
		}
		return occ, ef, 0, nil
	}
	ef, err := FermiSearch(eps, n, kT, scheme)
	if err != nil {
		err.(*Error).Decorate("Occupations")
		return nil, 0, 0, err
	}
	var f []float64
	if scheme == Gaussian {
		f = GaussianSmearing(eps, ef, kT)
	} else {
		f = FermiSmearing(eps, ef, kT)
	}
	occ := make([]float64, len(f))
	for i, v := range f {
		occ[i] = 2 * v
	}
	ts := 2 * Entropy(eps, ef, kT, scheme)
	return occ, ef, ts, nil
}
