/*
 * srf_test.go, part of godftb.
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

package srf

import (
	"io"
	"math"
	"testing"

	dftb "github.com/rmera/godftb"
	"gonum.org/v1/gonum/mat"
)

func sampleRecords() []*Record {
	return []*Record{
		{
			Formula: "H2", Converged: true, Iterations: 1,
			FermiEnergy: -0.21, TotalEnergy: -0.637, MerminEnergy: -0.637,
			Charges:     []float64{0, 0},
			Eigenvalues: []float64{-0.3185, -0.1077},
			Occupancy:   []float64{2, 0},
		},
		{
			Formula: "HO", Converged: false, Iterations: 200,
			FermiEnergy: -0.45, TotalEnergy: -1.93, MerminEnergy: -1.94,
			Charges:     []float64{-0.21, 0.21},
			Eigenvalues: []float64{-0.91, -0.22},
			Occupancy:   []float64{2, 1},
		},
	}
}

func roundtrip(Te *testing.T, name string) {
	recs := sampleRecords()
	w, err := NewWriter(name, map[string]string{"set": "builtin-hcno", "scheme": "exponential"})
	if err != nil {
		Te.Fatal(err)
	}
	for _, r := range recs {
		if err := w.WNext(r); err != nil {
			Te.Fatal(err)
		}
	}
	w.Close()
	//writes after Close must fail
	if err := w.WNext(recs[0]); err == nil {
		Te.Error("a write on a closed archive got accepted")
	}
	r, err := NewReader(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if r.Header()["set"] != "builtin-hcno" {
		Te.Errorf("header came back wrong: %v", r.Header())
	}
	for i := 0; ; i++ {
		rec, err := r.Next()
		if err == io.EOF {
			if i != len(recs) {
				Te.Fatalf("got %d records back, expected %d", i, len(recs))
			}
			break
		}
		if err != nil {
			Te.Fatal(err)
		}
		want := recs[i]
		if rec.Formula != want.Formula || rec.Converged != want.Converged || rec.Iterations != want.Iterations {
			Te.Errorf("record %d metadata broke: %+v", i, rec)
		}
		if math.Abs(rec.TotalEnergy-want.TotalEnergy) > 1e-12 {
			Te.Errorf("record %d energy %f, expected %f", i, rec.TotalEnergy, want.TotalEnergy)
		}
		for j := range want.Charges {
			if math.Abs(rec.Charges[j]-want.Charges[j]) > 1e-12 {
				Te.Errorf("record %d charge %d broke", i, j)
			}
		}
		if len(rec.Eigenvalues) != len(want.Eigenvalues) || len(rec.Occupancy) != len(want.Occupancy) {
			Te.Errorf("record %d slice lengths broke", i)
		}
	}
}

func TestRoundtripZstd(Te *testing.T) {
	roundtrip(Te, "../test/results.srs")
}

func TestRoundtripGzip(Te *testing.T) {
	roundtrip(Te, "../test/results.srz")
}

func TestRoundtripFlate(Te *testing.T) {
	roundtrip(Te, "../test/results.srr")
}

func TestFromResult(Te *testing.T) {
	pos := mat.NewDense(2, 3, []float64{0, 0, 0, 1.4, 0, 0})
	geo, err := dftb.NewGeometry([][]int{{1, 1}}, []*mat.Dense{pos})
	if err != nil {
		Te.Fatal(err)
	}
	orbs, err := dftb.NewOrbitalInfo([][]int{{1, 1}}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	hf := &dftb.StaticFeed{Matrices: []*mat.SymDense{mat.NewSymDense(2, []float64{-0.25, -0.18, -0.18, -0.25})}}
	sf := &dftb.StaticFeed{Matrices: []*mat.SymDense{mat.NewSymDense(2, []float64{1, 0.35, 0.35, 1})}}
	calc, err := dftb.NewDftb2(hf, sf, nil)
	if err != nil {
		Te.Fatal(err)
	}
	res, err := calc.Compute(geo, orbs)
	if err != nil {
		Te.Fatal(err)
	}
	rec := FromResult(res, geo, 0)
	if rec.Formula != "H2" || !rec.Converged {
		Te.Errorf("record %+v", rec)
	}
	if len(rec.Eigenvalues) != 2 || len(rec.Charges) != 2 {
		Te.Errorf("record slices wrong: %+v", rec)
	}
	if rec.TotalEnergy != res.TotalEnergy(0) {
		Te.Error("energy got lost on the way to the record")
	}
}
