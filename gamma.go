/*
 * gamma.go, part of godftb.
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

	"gonum.org/v1/gonum/mat"
)

//GammaScheme selects the functional form of the second-order
//electrostatic kernel.
type GammaScheme int

const (
	//GammaExponential uses the Slater-type charge distribution kernel
	//of Elstner et al. (1998, DOI:10.1103/PhysRevB.58.7260).
	GammaExponential GammaScheme = iota
	//GammaGaussian uses Gaussian charge distributions, so the kernel is
	//erf(C*R)/R as in Koskinen and Maekinen (2009).
	GammaGaussian
)

// GammaSchemeFromString parses a gamma scheme name.
func GammaSchemeFromString(s string) (GammaScheme, error) {
	switch s {
	case "exponential":
		return GammaExponential, nil
	case "gaussian":
		return GammaGaussian, nil
	}
	return 0, &ConfigError{Message: fmt.Sprintf("godftb: unknown gamma scheme %q", s)}
}

// GammaMatrix builds the second-order electrostatic kernel of system
// sys at the given resolution (atom or shell). us holds the Hubbard-U
// values, one per basis entity at that resolution. Diagonal and
// intra-atom entries use the R->0 limit of the kernel, which reduces to
// the Hubbard U itself when both entities share the same U.
func GammaMatrix(geom *Geometry, orbs *OrbitalInfo, sys int, us []float64, scheme GammaScheme, res Resolution) (*mat.SymDense, error) {
	if res != ResAtom && res != ResShell {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/GammaMatrix: unsupported resolution %v", res)}
	}
	n := orbs.NRes(sys, res)
	if len(us) != n {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/GammaMatrix: %d Hubbard values for %d basis entities", len(us), n)}
	}
	var entityAtom []int
	if res == ResAtom {
		entityAtom = make([]int, n)
		for i := range entityAtom {
			entityAtom[i] = i
		}
	} else {
		entityAtom = orbs.ShellAtoms(sys)
	}
	d := geom.Distances(sys)
	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := d.At(entityAtom[i], entityAtom[j])
			var v float64
			switch scheme {
			case GammaExponential:
				v = gammaExp(us[i], us[j], r)
			case GammaGaussian:
				v = gammaGauss(us[i], us[j], r)
			default:
				return nil, &ConfigError{Message: fmt.Sprintf("godftb/GammaMatrix: unknown scheme %d", scheme)}
			}
			g.SetSym(i, j, v)
		}
	}
	return g, nil
}

// gammaExp evaluates the exponential-scheme kernel between two sites
// with Hubbard values ua, ub at distance r (bohr).
func gammaExp(ua, ub, r float64) float64 {
	ta := 3.2 * ua //tau = 16 U / 5
	tb := 3.2 * ub
	if r == 0 {
		sum := ta + tb
		return ta * tb * (ta*ta + 3*ta*tb + tb*tb) / (2 * sum * sum * sum)
	}
	if math.Abs(ta-tb) < 1e-8 {
		t := 0.5 * (ta + tb)
		tr := t * r
		return 1/r - math.Exp(-tr)*(48+33*tr+9*tr*tr+tr*tr*tr)/(48*r)
	}
	return 1/r - math.Exp(-ta*r)*gammaExpCross(ta, tb, r) - math.Exp(-tb*r)*gammaExpCross(tb, ta, r)
}

// gammaExpCross is the short-range term of the heteronuclear
// exponential kernel; the full kernel sums it over both orderings of
// the decay constants.
func gammaExpCross(a, b, r float64) float64 {
	d := a*a - b*b
	return a*b*b*b*b/(2*d*d) - (b*b*b*b*b*b-3*a*a*b*b*b*b)/(d*d*d*r)
}

// gammaGauss evaluates the Gaussian-scheme kernel. Each site's charge
// width follows from its Hubbard value, C = U*sqrt(pi/2), and the pair
// constant combines them as 1/Cab^2 = 1/Ca^2 + 1/Cb^2.
func gammaGauss(ua, ub, r float64) float64 {
	ca := ua * math.Sqrt(math.Pi/2)
	cb := ub * math.Sqrt(math.Pi/2)
	cab := 1 / math.Sqrt(1/(ca*ca)+1/(cb*cb))
	if r == 0 {
		return 2 * cab / math.Sqrt(math.Pi)
	}
	return math.Erf(cab*r) / r
}
