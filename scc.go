/*
 * scc.go, part of godftb.
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
	"log"
	"math"

	"github.com/rmera/godftb/filling"
	"github.com/rmera/godftb/mix"
	"gonum.org/v1/gonum/mat"
)

//SCCParams collects the knobs of the self-consistent charge iteration.
type SCCParams struct {
	Mixer          mix.Mixer
	MaxIter        int
	Scheme         filling.Scheme
	KT             float64 //electronic temperature in hartree
	Res            Resolution
	QInitial       [][]float64 //warm-start populations, nil (whole or per system) means qzero
	SuppressErrors bool        //report unconverged systems instead of failing
}

//StepOut holds everything one self-consistent step produces for one
//system.
type StepOut struct {
	Q       []float64 //Mulliken populations at the working resolution
	H       *mat.SymDense
	EigVals []float64
	EigVecs *mat.Dense
	Rho     *mat.Dense
	Occ     []float64
	Ef      float64
	TS      float64
}

// SCCStep performs a single self-consistent charge step for system sys:
// it builds the charge-dependent Hamiltonian from the populations q,
// solves it, fills the levels and returns the resulting populations
// along with all intermediates. It is a pure function of its inputs; no
// state is kept between calls.
func SCCStep(hcore, s, gamma *mat.SymDense, q, qzero []float64, orbs *OrbitalInfo, sys int, nel float64, p *SCCParams) (*StepOut, error) {
	nres := orbs.NRes(sys, p.Res)
	if len(q) != nres || len(qzero) != nres {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/SCCStep: system %d has %d basis entities but %d/%d populations given", sys, nres, len(q), len(qzero))}
	}
	//shift_a = sum_b gamma_ab (q_b - q0_b)
	shift := make([]float64, nres)
	for a := 0; a < nres; a++ {
		for b := 0; b < nres; b++ {
			shift[a] += gamma.At(a, b) * (q[b] - qzero[b])
		}
	}
	onRes := orbs.OnRes(sys, p.Res)
	norb := orbs.NOrbitals(sys)
	h := mat.NewSymDense(norb, nil)
	for i := 0; i < norb; i++ {
		for j := i; j < norb; j++ {
			h.SetSym(i, j, hcore.At(i, j)+0.5*s.At(i, j)*(shift[onRes[i]]+shift[onRes[j]]))
		}
	}
	vals, vecs, err := Eighb(h, s)
	if err != nil {
		return nil, errDecorate(err, fmt.Sprintf("SCCStep: system %d", sys))
	}
	occ, ef, ts, err := filling.Occupations(vals, nel, p.Scheme, p.KT)
	if err != nil {
		return nil, errDecorate(err, fmt.Sprintf("SCCStep: system %d", sys))
	}
	rho := densityMatrix(vecs, occ)
	qnew, err := Mulliken(rho, s, orbs, sys, p.Res)
	if err != nil {
		return nil, errDecorate(err, fmt.Sprintf("SCCStep: system %d", sys))
	}
	return &StepOut{Q: qnew, H: h, EigVals: vals, EigVecs: vecs, Rho: rho, Occ: occ, Ef: ef, TS: ts}, nil
}

// densityMatrix builds rho = C diag(occ) C^T by scaling each
// eigenvector column with the square root of its occupation.
func densityMatrix(vecs *mat.Dense, occ []float64) *mat.Dense {
	n, _ := vecs.Dims()
	scaled := mat.NewDense(n, n, nil)
	for j, w := range occ {
		// occupations are never negative so the square root is safe
		for i := 0; i < n; i++ {
			scaled.Set(i, j, vecs.At(i, j)*sqrtNonNeg(w))
		}
	}
	rho := mat.NewDense(n, n, nil)
	rho.Mul(scaled, scaled.T())
	return rho
}

func sqrtNonNeg(w float64) float64 {
	if w <= 0 {
		return 0
	}
	return math.Sqrt(w)
}

//CycleOut is the arena filled by SCCCycle: one entry per system of the
//batch, indexed like the inputs, holding the converged (or best-effort)
//state of each system.
type CycleOut struct {
	Q          [][]float64
	H          []*mat.SymDense
	EigVals    [][]float64
	EigVecs    []*mat.Dense
	Rho        []*mat.Dense
	Occ        [][]float64
	Ef         []float64
	TS         []float64
	Converged  []bool
	Iterations []int
}

// SCCCycle drives SCCStep to self-consistency over a whole batch. Each
// system iterates only until its own populations stop changing by more
// than the mixer's tolerance; converged systems leave the active set so
// later iterations only pay for the stragglers. The initial guess is
// the reference populations qzero, or p.QInitial for the systems it
// supplies populations for, so a cycle can resume from an earlier run.
//
// If any system fails to converge within p.MaxIter steps the cycle
// returns a ConvergenceError naming the offenders, unless
// p.SuppressErrors is set in which case their last-step state is
// recorded with Converged set to false and only a warning is logged.
func SCCCycle(hcore, s, gammas []*mat.SymDense, qzero [][]float64, nel []float64, orbs *OrbitalInfo, p *SCCParams) (*CycleOut, error) {
	nsys := len(hcore)
	if len(s) != nsys || len(gammas) != nsys || len(qzero) != nsys || len(nel) != nsys {
		return nil, &ConfigError{Message: "godftb/SCCCycle: input slices disagree on the number of systems"}
	}
	if p.QInitial != nil && len(p.QInitial) != nsys {
		return nil, &ConfigError{Message: fmt.Sprintf("godftb/SCCCycle: %d systems but %d warm-start entries", nsys, len(p.QInitial))}
	}
	out := &CycleOut{
		Q:          make([][]float64, nsys),
		H:          make([]*mat.SymDense, nsys),
		EigVals:    make([][]float64, nsys),
		EigVecs:    make([]*mat.Dense, nsys),
		Rho:        make([]*mat.Dense, nsys),
		Occ:        make([][]float64, nsys),
		Ef:         make([]float64, nsys),
		TS:         make([]float64, nsys),
		Converged:  make([]bool, nsys),
		Iterations: make([]int, nsys),
	}
	p.Mixer.Reset()
	tol := p.Mixer.Tolerance()
	aorbs := orbs               //narrowed along with the active set
	active := make([]int, nsys) //original index of each still-iterating system
	qcur := make([][]float64, nsys)
	for i := 0; i < nsys; i++ {
		active[i] = i
		guess := qzero[i]
		if p.QInitial != nil && p.QInitial[i] != nil {
			if len(p.QInitial[i]) != len(qzero[i]) {
				return nil, &ConfigError{Message: fmt.Sprintf("godftb/SCCCycle: system %d has %d populations but a %d-entry warm start", i, len(qzero[i]), len(p.QInitial[i]))}
			}
			guess = p.QInitial[i]
		}
		qcur[i] = append([]float64(nil), guess...)
	}
	for step := 1; len(active) > 0 && step <= p.MaxIter; step++ {
		steps := make([]*StepOut, len(active))
		done := make([]bool, len(active))
		anyDone := false
		for k, i := range active {
			st, err := SCCStep(hcore[i], s[i], gammas[i], qcur[k], qzero[i], aorbs, k, nel[i], p)
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("SCCCycle: step %d, system %d", step, i))
			}
			steps[k] = st
			//convergence is judged on the raw step output, before
			//mixing touches it
			if mix.Converged(st.Q, qcur[k], tol) {
				done[k] = true
				anyDone = true
			}
		}
		last := step == p.MaxIter
		for k, i := range active {
			if done[k] || last {
				st := steps[k]
				out.Q[i] = st.Q
				out.H[i] = st.H
				out.EigVals[i] = st.EigVals
				out.EigVecs[i] = st.EigVecs
				out.Rho[i] = st.Rho
				out.Occ[i] = st.Occ
				out.Ef[i] = st.Ef
				out.TS[i] = st.TS
				out.Converged[i] = done[k]
				out.Iterations[i] = step
			}
		}
		if last {
			var stuck []int
			for k, i := range active {
				if !done[k] {
					stuck = append(stuck, i)
				}
			}
			if len(stuck) > 0 {
				if !p.SuppressErrors {
					return nil, &ConvergenceError{Message: SCCNotConverged, Systems: stuck}
				}
				log.Printf("godftb/SCCCycle: %s (systems %v), continuing with unconverged populations", SCCNotConverged, stuck)
			}
			break
		}
		if anyDone {
			//the mixer holds no history before its first Mix call
			if step != 1 {
				keep := make([]bool, len(done))
				for k := range done {
					keep[k] = !done[k]
				}
				if err := p.Mixer.Cull(keep); err != nil {
					return nil, errDecorate(err, "SCCCycle")
				}
			}
			kept := make([]int, 0, len(done))
			nextActive := active[:0]
			nextQ := qcur[:0]
			nextSteps := steps[:0]
			for k := range done {
				if !done[k] {
					kept = append(kept, k)
					nextActive = append(nextActive, active[k])
					nextQ = append(nextQ, qcur[k])
					nextSteps = append(nextSteps, steps[k])
				}
			}
			active = nextActive
			qcur = nextQ
			steps = nextSteps
			aorbs = aorbs.Subset(kept)
		}
		if len(active) == 0 {
			break
		}
		qnew := make([][]float64, len(active))
		for k := range steps {
			qnew[k] = steps[k].Q
		}
		mixed, err := p.Mixer.Mix(qnew, qcur)
		if err != nil {
			return nil, errDecorate(err, "SCCCycle")
		}
		qcur = mixed
	}
	return out, nil
}
