/*
 * filling_test.go, part of godftb.
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

package filling

import (
	"fmt"
	"math"
	"testing"
)

func TestAufbau(Te *testing.T) {
	eps := []float64{-1.0, -0.5, 0.3, 0.8}
	occ, ef, ts, err := Occupations(eps, 4, Aufbau, 0)
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{2, 2, 0, 0}
	for i := range want {
		if occ[i] != want[i] {
			Te.Errorf("level %d occupation %f, expected %f", i, occ[i], want[i])
		}
	}
	if ts != 0 {
		Te.Errorf("aufbau filling has no entropy, got %f", ts)
	}
	//the Fermi level lands mid-gap
	if math.Abs(ef-(-0.5+0.3)/2) > 1e-12 {
		Te.Errorf("Fermi level %f, expected mid-gap %f", ef, (-0.5+0.3)/2)
	}
}

func TestAufbauFractional(Te *testing.T) {
	eps := []float64{-1.0, -0.5, 0.3}
	occ, ef, _, err := Occupations(eps, 3, Aufbau, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if occ[0] != 2 || occ[1] != 1 || occ[2] != 0 {
		Te.Errorf("fractional filling wrong: %v", occ)
	}
	if ef != -0.5 {
		Te.Errorf("the partially filled level sets the Fermi energy, got %f", ef)
	}
}

// finite temperature with a symmetric two-level spectrum: the Fermi
// level sits at zero and the occupations are mirror images.
func TestFermiSymmetric(Te *testing.T) {
	eps := []float64{-1.0, 1.0}
	for _, scheme := range []Scheme{Fermi, Gaussian} {
		occ, ef, ts, err := Occupations(eps, 2, scheme, 0.1)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(ef) > 1e-6 {
			Te.Errorf("scheme %v: Fermi level %e, expected 0", scheme, ef)
		}
		if math.Abs(occ[0]+occ[1]-2) > 1e-8 {
			Te.Errorf("scheme %v: occupations %v don't sum to 2", scheme, occ)
		}
		if math.Abs(occ[0]-(2-occ[1])) > 1e-8 {
			Te.Errorf("scheme %v: occupations %v aren't mirror images", scheme, occ)
		}
		if occ[0] <= occ[1] {
			Te.Errorf("scheme %v: the lower level must hold more electrons: %v", scheme, occ)
		}
		if ts < 0 {
			Te.Errorf("scheme %v: negative entropy term %e", scheme, ts)
		}
		fmt.Printf("scheme %v: occ %v, TS %e\n", scheme, occ, ts)
	}
}

// at a tiny temperature the smeared occupations collapse onto the
// aufbau ones
func TestFermiColdLimit(Te *testing.T) {
	eps := []float64{-1.0, -0.5, 0.3, 0.8}
	occ, _, ts, err := Occupations(eps, 4, Fermi, 1e-4)
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{2, 2, 0, 0}
	for i := range want {
		if math.Abs(occ[i]-want[i]) > 1e-6 {
			Te.Errorf("cold occupations %v, expected %v", occ, want)
		}
	}
	if ts > 1e-6 {
		Te.Errorf("cold entropy term should vanish, got %e", ts)
	}
}

func TestZeroTemperatureMeansAufbau(Te *testing.T) {
	eps := []float64{-1.0, 1.0}
	occF, efF, _, err := Occupations(eps, 2, Fermi, 0)
	if err != nil {
		Te.Fatal(err)
	}
	occA, efA, _, err := Occupations(eps, 2, Aufbau, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if occF[0] != occA[0] || occF[1] != occA[1] || efF != efA {
		Te.Error("a zero temperature must reduce any scheme to aufbau")
	}
}

func TestOccupationsErrors(Te *testing.T) {
	if _, _, _, err := Occupations([]float64{-1}, 4, Aufbau, 0); err == nil {
		Te.Error("4 electrons cannot fit in one level")
	}
	if _, _, _, err := Occupations([]float64{-1}, -1, Aufbau, 0); err == nil {
		Te.Error("negative electron counts must get rejected")
	}
	if _, _, _, err := Occupations(nil, 0, Aufbau, 0); err == nil {
		Te.Error("an empty spectrum must get rejected")
	}
}

func TestSchemeFromString(Te *testing.T) {
	for name, want := range map[string]Scheme{"aufbau": Aufbau, "fermi": Fermi, "gaussian": Gaussian} {
		got, err := SchemeFromString(name)
		if err != nil || got != want {
			Te.Errorf("parsing %q: got %v, err %v", name, got, err)
		}
	}
	if _, err := SchemeFromString("methfessel"); err == nil {
		Te.Error("expected a rejection of the unknown scheme name")
	}
}

func TestEntropyFermi(Te *testing.T) {
	//a single level pinned at the Fermi energy has f=1/2, the maximum
	//of the Fermi-Dirac entropy: TS = kT*ln(2)
	kT := 0.05
	ts := Entropy([]float64{0}, 0, kT, Fermi)
	if math.Abs(ts-kT*math.Log(2)) > 1e-12 {
		Te.Errorf("entropy term %e, expected %e", ts, kT*math.Log(2))
	}
	//and the Gaussian one gives kT/(2 sqrt(pi))
	ts = Entropy([]float64{0}, 0, kT, Gaussian)
	if math.Abs(ts-kT/(2*math.Sqrt(math.Pi))) > 1e-12 {
		Te.Errorf("gaussian entropy term %e, expected %e", ts, kT/(2*math.Sqrt(math.Pi)))
	}
}
