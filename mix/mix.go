/*
 * mix.go, part of godftb.
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

//Package mix provides charge mixers for accelerating self-consistent
//fixed-point iterations. A mixer combines the input and output charges
//of an iteration into the next guess, keeping whatever per-system
//history it needs across calls. Mixers work on a batch: one charge
//slice per still-iterating system, and Cull lets the driver drop the
//state of systems that have converged.
package mix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//A Mixer produces the next fixed-point guess from the current iterate
//qCur and the bare fixed-point output qNew. Both arguments hold one
//slice per active system; slices for the same system must keep the same
//length across calls, until Cull or Reset.
type Mixer interface {
	//Mix returns the next guess for each active system.
	Mix(qNew, qCur [][]float64) ([][]float64, error)
	//Cull drops the internal state of systems whose keep entry is
	//false. keep is indexed like the batches passed to Mix.
	Cull(keep []bool) error
	//Reset discards all internal state so the mixer can drive a new
	//iteration.
	Reset()
	//Tolerance returns the convergence tolerance the mixer was built
	//with.
	Tolerance() float64
}

//Error is the error type for the mix package.
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

// Converged reports whether the largest absolute difference between
// qNew and qCur is within tol. The boundary counts as converged.
func Converged(qNew, qCur []float64, tol float64) bool {
	for i := range qNew {
		if math.Abs(qNew[i]-qCur[i]) > tol {
			return false
		}
	}
	return true
}

//Simple performs linear mixing, q = qCur + Alpha*(qNew-qCur). It keeps
//no history, so Cull and Reset are trivial.
type Simple struct {
	Alpha float64
	tol   float64
}

// NewSimple returns a linear mixer with the given mixing fraction and
// convergence tolerance.
func NewSimple(alpha, tol float64) *Simple {
	return &Simple{Alpha: alpha, tol: tol}
}

func (S *Simple) Mix(qNew, qCur [][]float64) ([][]float64, error) {
	if len(qNew) != len(qCur) {
		return nil, &Error{message: fmt.Sprintf("mix/Simple: %d new against %d current systems", len(qNew), len(qCur))}
	}
	out := make([][]float64, len(qNew))
	for i := range qNew {
		if len(qNew[i]) != len(qCur[i]) {
			return nil, &Error{message: fmt.Sprintf("mix/Simple: system %d changed size mid-iteration", i)}
		}
		out[i] = make([]float64, len(qNew[i]))
		for j := range qNew[i] {
			out[i][j] = qCur[i][j] + S.Alpha*(qNew[i][j]-qCur[i][j])
		}
	}
	return out, nil
}

func (S *Simple) Cull(keep []bool) error {
	return nil
}

func (S *Simple) Reset() {}

func (S *Simple) Tolerance() float64 {
	return S.tol
}

//Anderson accelerates the iteration by extrapolating over a bounded
//history of previous iterates and their residuals (Eyert 1996,
//DOI:10.1006/jcph.1996.0059). Until enough history accumulates it
//falls back to linear mixing with InitAlpha.
type Anderson struct {
	Generations int     //history depth
	Alpha       float64 //mixing fraction applied to the extrapolated residual
	InitAlpha   float64 //linear fraction for the first, history-less steps
	Offset      float64 //relative diagonal offset guarding the normal equations
	tol         float64
	hist        []*andersonHist
}

type andersonHist struct {
	x [][]float64 //previous iterates, most recent last
	f [][]float64 //their residuals
}

// NewAnderson returns an Anderson mixer with the given history depth,
// mixing fraction and convergence tolerance.
func NewAnderson(generations int, alpha, tol float64) *Anderson {
	return &Anderson{
		Generations: generations,
		Alpha:       alpha,
		InitAlpha:   0.01,
		Offset:      0.01,
		tol:         tol,
	}
}

func (A *Anderson) Mix(qNew, qCur [][]float64) ([][]float64, error) {
	if len(qNew) != len(qCur) {
		return nil, &Error{message: fmt.Sprintf("mix/Anderson: %d new against %d current systems", len(qNew), len(qCur))}
	}
	if A.hist == nil {
		A.hist = make([]*andersonHist, len(qNew))
		for i := range A.hist {
			A.hist[i] = &andersonHist{}
		}
	}
	if len(A.hist) != len(qNew) {
		return nil, &Error{message: fmt.Sprintf("mix/Anderson: %d systems given but history holds %d; missing Cull or Reset?", len(qNew), len(A.hist))}
	}
	out := make([][]float64, len(qNew))
	for i := range qNew {
		if len(qNew[i]) != len(qCur[i]) {
			return nil, &Error{message: fmt.Sprintf("mix/Anderson: system %d changed size mid-iteration", i)}
		}
		out[i] = A.mixOne(qNew[i], qCur[i], A.hist[i])
	}
	return out, nil
}

// mixOne advances a single system and pushes the current pair into its
// history.
func (A *Anderson) mixOne(qNew, qCur []float64, h *andersonHist) []float64 {
	n := len(qCur)
	f0 := make([]float64, n)
	for j := range f0 {
		f0[j] = qNew[j] - qCur[j]
	}
	var out []float64
	if len(h.x) == 0 {
		out = make([]float64, n)
		for j := range out {
			out[j] = qCur[j] + A.InitAlpha*f0[j]
		}
	} else {
		out = A.extrapolate(qCur, f0, h)
	}
	h.x = append(h.x, append([]float64(nil), qCur...))
	h.f = append(h.f, f0)
	if len(h.x) > A.Generations {
		h.x = h.x[1:]
		h.f = h.f[1:]
	}
	return out
}

// extrapolate solves the Anderson normal equations over the available
// history and mixes the optimal iterate with its optimal residual. A
// singular system falls back to linear mixing.
func (A *Anderson) extrapolate(qCur, f0 []float64, h *andersonHist) []float64 {
	n := len(qCur)
	m := len(h.x)
	df := make([][]float64, m) //f0 - f_k
	for k := 0; k < m; k++ {
		df[k] = make([]float64, n)
		for j := 0; j < n; j++ {
			df[k][j] = f0[j] - h.f[k][j]
		}
	}
	amat := mat.NewDense(m, m, nil)
	b := mat.NewVecDense(m, nil)
	for k := 0; k < m; k++ {
		for l := 0; l < m; l++ {
			dot := 0.0
			for j := 0; j < n; j++ {
				dot += df[k][j] * df[l][j]
			}
			if k == l {
				dot *= 1 + A.Offset
			}
			amat.Set(k, l, dot)
		}
		dot := 0.0
		for j := 0; j < n; j++ {
			dot += df[k][j] * f0[j]
		}
		b.SetVec(k, dot)
	}
	var lu mat.LU
	lu.Factorize(amat)
	theta := mat.NewVecDense(m, nil)
	if err := lu.SolveVecTo(theta, false, b); err != nil {
		out := make([]float64, n)
		for j := range out {
			out[j] = qCur[j] + A.InitAlpha*f0[j]
		}
		return out
	}
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		xbar := qCur[j]
		fbar := f0[j]
		for k := 0; k < m; k++ {
			t := theta.AtVec(k)
			xbar += t * (h.x[k][j] - qCur[j])
			fbar += t * (h.f[k][j] - f0[j])
		}
		out[j] = xbar + A.Alpha*fbar
	}
	return out
}

func (A *Anderson) Cull(keep []bool) error {
	if A.hist == nil {
		return nil
	}
	if len(keep) != len(A.hist) {
		return &Error{message: fmt.Sprintf("mix/Anderson: Cull over %d systems but history holds %d", len(keep), len(A.hist))}
	}
	kept := A.hist[:0]
	for i, k := range keep {
		if k {
			kept = append(kept, A.hist[i])
		}
	}
	A.hist = kept
	return nil
}

func (A *Anderson) Reset() {
	A.hist = nil
}

func (A *Anderson) Tolerance() float64 {
	return A.tol
}
