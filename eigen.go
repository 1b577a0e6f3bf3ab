/*
 * eigen.go, part of godftb.
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

	"gonum.org/v1/gonum/mat"
)

// sqrtInverse returns S^(-1/2) by diagonalizing S and taking the
// inverse square root of its eigenvalues. It fails if S is not
// positive definite.
func sqrtInverse(S *mat.SymDense) (*mat.Dense, error) {
	n, _ := S.Dims()
	var eig mat.EigenSym
	if ok := eig.Factorize(S, true); !ok {
		return nil, &ConfigError{Message: OverlapNotPosDef}
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	d := mat.NewDense(n, n, nil)
	for i, v := range vals {
		if v <= 0 {
			return nil, &ConfigError{Message: OverlapNotPosDef}
		}
		d.Set(i, i, 1.0/math.Sqrt(v))
	}
	ret := mat.NewDense(n, n, nil)
	ret.Product(&vecs, d, vecs.T())
	return ret, nil
}

// Eighb solves the generalized symmetric eigenproblem H C = S C E by
// the Loewdin transformation: H' = S^(-1/2) H S^(-1/2) is diagonalized
// and the eigenvectors are back-transformed as C = S^(-1/2) C'.
// Eigenvalues come out in ascending order; eigenvectors are the columns
// of the returned matrix, S-orthonormal.
func Eighb(H, S *mat.SymDense) ([]float64, *mat.Dense, error) {
	n, _ := H.Dims()
	if m, _ := S.Dims(); m != n {
		return nil, nil, &ConfigError{Message: "godftb/Eighb: Hamiltonian and overlap dimensions disagree"}
	}
	x, err := sqrtInverse(S)
	if err != nil {
		return nil, nil, errDecorate(err, "Eighb")
	}
	hp := mat.NewDense(n, n, nil)
	hp.Product(x, H, x)
	//symmetrize against roundoff before factorizing
	hsym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			hsym.SetSym(i, j, 0.5*(hp.At(i, j)+hp.At(j, i)))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(hsym, true); !ok {
		return nil, nil, &ConfigError{Message: "godftb/Eighb: eigendecomposition failed"}
	}
	vals := eig.Values(nil)
	var cp mat.Dense
	eig.VectorsTo(&cp)
	c := mat.NewDense(n, n, nil)
	c.Mul(x, &cp)
	return vals, c, nil
}
