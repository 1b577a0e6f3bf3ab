/*
 * properties.go, part of godftb.
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
	"math"

	"github.com/rmera/godftb/filling"
	"gonum.org/v1/gonum/mat"
)

//Result holds the converged state of a whole batch and derives physical
//properties from it on demand. All energies are in hartree, charges in
//electrons and dipoles in e*bohr. Methods take the index of a system
//within the batch.
type Result struct {
	geom *Geometry
	orbs *OrbitalInfo
	res  Resolution
	scc  bool

	scheme filling.Scheme
	kT     float64

	hcore      []*mat.SymDense
	s          []*mat.SymDense
	gamma      []*mat.SymDense
	rho        []*mat.Dense
	eigvals    [][]float64
	eigvecs    []*mat.Dense
	occ        [][]float64
	ef         []float64
	ts         []float64
	qzeroOrb   [][]float64
	qfinalOrb  [][]float64 //lazily filled from rho and s
	qres       [][]float64 //final SCC populations at the working resolution
	nel        []float64
	erep       []float64
	converged  []bool
	iterations []int
}

func newResult(geom *Geometry, orbs *OrbitalInfo, res Resolution, scc bool) *Result {
	n := geom.NSystems()
	return &Result{
		geom: geom, orbs: orbs, res: res, scc: scc,
		hcore: make([]*mat.SymDense, n), s: make([]*mat.SymDense, n),
		gamma: make([]*mat.SymDense, n), rho: make([]*mat.Dense, n),
		eigvals: make([][]float64, n), eigvecs: make([]*mat.Dense, n),
		occ: make([][]float64, n), ef: make([]float64, n), ts: make([]float64, n),
		qzeroOrb: make([][]float64, n), qfinalOrb: make([][]float64, n),
		qres: make([][]float64, n), nel: make([]float64, n), erep: make([]float64, n),
		converged: make([]bool, n), iterations: make([]int, n),
	}
}

// NSystems returns the number of systems in the batch.
func (R *Result) NSystems() int {
	return R.geom.NSystems()
}

// Converged reports whether system i reached self-consistency. It is
// always true for non-self-consistent calculations.
func (R *Result) Converged(i int) bool {
	return R.converged[i]
}

// Iterations returns the number of SCC iterations system i took, or
// zero for non-self-consistent calculations.
func (R *Result) Iterations(i int) int {
	return R.iterations[i]
}

// NElectrons returns the number of electrons in system i.
func (R *Result) NElectrons(i int) float64 {
	return R.nel[i]
}

// Eigenvalues returns the orbital energies of system i in ascending
// order, in hartree.
func (R *Result) Eigenvalues(i int) []float64 {
	return R.eigvals[i]
}

// Occupancy returns the electron count of each level of system i,
// between 0 and 2.
func (R *Result) Occupancy(i int) []float64 {
	return R.occ[i]
}

// FermiEnergy returns the Fermi level of system i, in hartree.
func (R *Result) FermiEnergy(i int) float64 {
	return R.ef[i]
}

// DensityMatrix returns the one-particle density matrix of system i.
func (R *Result) DensityMatrix(i int) *mat.Dense {
	return R.rho[i]
}

// finalOrb returns (memoized) the final Mulliken population of each
// orbital of system i.
func (R *Result) finalOrb(i int) []float64 {
	if R.qfinalOrb[i] == nil {
		R.qfinalOrb[i] = MullikenOrbital(R.rho[i], R.s[i])
	}
	return R.qfinalOrb[i]
}

// QZero returns the reference (neutral atom) populations of system i at
// the given resolution.
func (R *Result) QZero(i int, res Resolution) []float64 {
	return aggregate(R.qzeroOrb[i], R.orbs, i, res)
}

// QFinal returns the final Mulliken populations of system i at the
// given resolution. At the working resolution of a self-consistent
// calculation these are the populations the SCC cycle converged on;
// anything else is aggregated from the orbital-resolved ones.
func (R *Result) QFinal(i int, res Resolution) []float64 {
	if R.scc && res == R.res {
		return R.qres[i]
	}
	return aggregate(R.finalOrb(i), R.orbs, i, res)
}

// QDelta returns the population changes QFinal-QZero of system i at the
// given resolution.
func (R *Result) QDelta(i int, res Resolution) []float64 {
	qf := R.QFinal(i, res)
	qz := R.QZero(i, res)
	d := make([]float64, len(qf))
	for j := range d {
		d[j] = qf[j] - qz[j]
	}
	return d
}

// Charges returns the net atomic charges of system i, i.e. the negated
// atomic population changes, in electrons.
func (R *Result) Charges(i int) []float64 {
	d := R.QDelta(i, ResAtom)
	for j := range d {
		d[j] = -d[j]
	}
	return d
}

// Dipole returns the electric dipole moment of system i in e*bohr,
// computed from the atomic population changes and positions.
func (R *Result) Dipole(i int) [3]float64 {
	d := R.QDelta(i, ResAtom)
	p := R.geom.Positions(i)
	var mu [3]float64
	for a, q := range d {
		for x := 0; x < 3; x++ {
			mu[x] += q * p.At(a, x)
		}
	}
	return mu
}

// BandEnergy returns the sum of occupied orbital energies of system i,
// in hartree.
func (R *Result) BandEnergy(i int) float64 {
	e := 0.0
	for k, eps := range R.eigvals[i] {
		e += eps * R.occ[i][k]
	}
	return e
}

// BandFreeEnergy returns the band energy minus the electronic entropy
// term T*S, in hartree.
func (R *Result) BandFreeEnergy(i int) float64 {
	return R.BandEnergy(i) - R.ts[i]
}

// CoreBandEnergy returns the trace of rho with the reference
// Hamiltonian, in hartree.
func (R *Result) CoreBandEnergy(i int) float64 {
	n, _ := R.rho[i].Dims()
	e := 0.0
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			e += R.rho[i].At(a, b) * R.hcore[i].At(a, b)
		}
	}
	return e
}

// SCCEnergy returns the second-order electrostatic energy
// 0.5*qd.Gamma.qd of system i, in hartree. It is zero for
// non-self-consistent calculations.
func (R *Result) SCCEnergy(i int) float64 {
	if !R.scc {
		return 0
	}
	qd := R.QDelta(i, R.res)
	e := 0.0
	for a := range qd {
		for b := range qd {
			e += qd[a] * R.gamma[i].At(a, b) * qd[b]
		}
	}
	return 0.5 * e
}

// RepulsiveEnergy returns the repulsive (core-core) energy of system i,
// in hartree, or zero if no repulsive feed was set.
func (R *Result) RepulsiveEnergy(i int) float64 {
	return R.erep[i]
}

// TotalEnergy returns the total energy of system i in hartree: core
// band plus second-order plus repulsive terms for self-consistent
// calculations, band plus repulsive otherwise.
func (R *Result) TotalEnergy(i int) float64 {
	if R.scc {
		return R.CoreBandEnergy(i) + R.SCCEnergy(i) + R.erep[i]
	}
	return R.BandEnergy(i) + R.erep[i]
}

// MerminEnergy returns the electronic free energy of system i, the
// total energy minus the entropy term T*S, in hartree.
func (R *Result) MerminEnergy(i int) float64 {
	return R.TotalEnergy(i) - R.ts[i]
}

// HomoLumo returns the energies of the frontier levels of system i, in
// hartree. It fails if every level is occupied, as the LUMO is then
// outside the basis.
func (R *Result) HomoLumo(i int) (homo, lumo float64, err error) {
	nocc := int(math.Ceil(R.nel[i]/2 - 1e-10))
	if nocc < 1 {
		return 0, 0, &ConfigError{Message: "HomoLumo: system has no electrons"}
	}
	if nocc >= len(R.eigvals[i]) {
		return 0, 0, &ConfigError{Message: HomoLumoUndef}
	}
	return R.eigvals[i][nocc-1], R.eigvals[i][nocc], nil
}

// dosSigma is the Gaussian broadening applied to the density of states,
// 0.1 eV in hartree.
const dosSigma = 0.1 * EV2H

// DOSEnergies returns a 1000-point energy grid spanning the eigenvalue
// spectrum of system i with a 1 eV margin on each side, in hartree.
func (R *Result) DOSEnergies(i int) []float64 {
	eps := R.eigvals[i]
	lo := eps[0] - 1*EV2H
	hi := eps[len(eps)-1] + 1*EV2H
	const npts = 1000
	grid := make([]float64, npts)
	for k := range grid {
		grid[k] = lo + (hi-lo)*float64(k)/float64(npts-1)
	}
	return grid
}

// DOS returns the Gaussian-broadened density of states of system i on
// the grid returned by DOSEnergies, in states per hartree, including
// the spin factor of two.
func (R *Result) DOS(i int) []float64 {
	grid := R.DOSEnergies(i)
	dos := make([]float64, len(grid))
	norm := 2.0 / (dosSigma * math.Sqrt(2*math.Pi))
	for k, e := range grid {
		for _, eps := range R.eigvals[i] {
			x := (e - eps) / dosSigma
			dos[k] += norm * math.Exp(-0.5*x*x)
		}
	}
	return dos
}
