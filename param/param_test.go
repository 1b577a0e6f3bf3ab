/*
 * param_test.go, part of godftb.
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

package param

import (
	"fmt"
	"math"
	"testing"

	dftb "github.com/rmera/godftb"
)

func TestDefaultSet(Te *testing.T) {
	set := Default()
	if err := set.Validate(); err != nil {
		Te.Fatal(err)
	}
	d := set.ShellDict()
	if len(d[8]) != 2 || len(d[1]) != 1 {
		Te.Errorf("shell dictionary broken: %v", d)
	}
}

func TestYAMLRoundtrip(Te *testing.T) {
	set := Default()
	b, err := set.Dump()
	if err != nil {
		Te.Fatal(err)
	}
	set2, err := FromBytes(b)
	if err != nil {
		Te.Fatal(err)
	}
	if set2.WHK != set.WHK || len(set2.Elements) != len(set.Elements) || len(set2.Pairs) != len(set.Pairs) {
		Te.Error("the set changed across a YAML roundtrip")
	}
	if set2.Elements["O"].Hubbard != set.Elements["O"].Hubbard {
		Te.Error("element parameters changed across a YAML roundtrip")
	}
}

func TestFromBytesRejectsBrokenSets(Te *testing.T) {
	cases := []string{
		"wh_k: 1.75\n", //no elements
		"wh_k: 0\nelements:\n  H: {shells: [0], onsite: [-0.23], occupations: [1], hubbard: 0.42}\n",
		"wh_k: 1.75\nelements:\n  H: {shells: [0, 1], onsite: [-0.23], occupations: [1], hubbard: 0.42}\n",
		"wh_k: 1.75\nelements:\n  H: {shells: [0], onsite: [-0.23], occupations: [1], hubbard: 0}\n",
		"wh_k: [not, a, number]\n",
	}
	for i, c := range cases {
		if _, err := FromBytes([]byte(c)); err == nil {
			Te.Errorf("broken set %d got accepted", i)
		}
	}
}

func TestLoadMissingFile(Te *testing.T) {
	if _, err := Load("no/such/file.yaml"); err == nil {
		Te.Error("expected an error for a missing file")
	}
}

func waterSetup(Te *testing.T) (*dftb.Geometry, *dftb.OrbitalInfo, *Set) {
	geo, err := dftb.XYZFileRead("../test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	set := Default()
	orbs, err := dftb.NewOrbitalInfo([][]int{geo.Numbers(0)}, set.ShellDict())
	if err != nil {
		Te.Fatal(err)
	}
	return geo, orbs, set
}

func TestModelFeeds(Te *testing.T) {
	geo, orbs, set := waterSetup(Te)
	over := &OverlapFeed{Set: set}
	s, err := over.Matrix(geo, orbs, 0)
	if err != nil {
		Te.Fatal(err)
	}
	n, _ := s.Dims()
	if n != 6 {
		Te.Fatalf("water overlap should be 6x6, got %dx%d", n, n)
	}
	for i := 0; i < n; i++ {
		if s.At(i, i) != 1 {
			Te.Error("overlap diagonal must be unity")
		}
	}
	//shells of the same atom stay orthogonal in this model
	if s.At(0, 1) != 0 {
		Te.Errorf("intra-atom overlap %f, expected 0", s.At(0, 1))
	}
	//O s against the first H s
	if s.At(0, 4) <= 0 || s.At(0, 4) >= 1 {
		Te.Errorf("inter-atom overlap %f out of range", s.At(0, 4))
	}
	ham := &HamiltonianFeed{Set: set}
	h, err := ham.Matrix(geo, orbs, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(h.At(0, 0)-(-0.878663)) > 1e-12 {
		Te.Errorf("O s on-site energy %f", h.At(0, 0))
	}
	want := 0.5 * set.WHK * (-0.878663 + -0.238600) * s.At(0, 4)
	if math.Abs(h.At(0, 4)-want) > 1e-12 {
		Te.Errorf("off-site element %f, expected %f", h.At(0, 4), want)
	}
	erep, err := set.RepulsiveEnergy(geo, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if erep <= 0 {
		Te.Errorf("repulsive energy %f, expected positive", erep)
	}
}

func TestMissingElement(Te *testing.T) {
	set := Default()
	geo, err := dftb.XYZFileRead("../test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	delete(set.Elements, "O")
	orbs, err := dftb.NewOrbitalInfo([][]int{geo.Numbers(0)}, Default().ShellDict())
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := (&HamiltonianFeed{Set: set}).Matrix(geo, orbs, 0); err == nil {
		Te.Error("expected an error for a system with an unparameterized element")
	}
	if _, err := set.HubbardUs(orbs, 0, dftb.ResAtom); err == nil {
		Te.Error("expected an error for a system with an unparameterized element")
	}
}

func TestWaterSCC(Te *testing.T) {
	geo, orbs, set := waterSetup(Te)
	o := dftb.DefaultOptions()
	o.MaxSCCIter = 500
	calc, err := dftb.NewDftb2(&HamiltonianFeed{Set: set}, &OverlapFeed{Set: set}, o)
	if err != nil {
		Te.Fatal(err)
	}
	calc.SetOccupationFeed(set)
	calc.SetHubbardFeed(set)
	calc.SetRepulsiveFeed(set)
	res, err := calc.Compute(geo, orbs)
	if err != nil {
		Te.Fatal(err)
	}
	if !res.Converged(0) {
		Te.Fatal("water did not converge")
	}
	if res.NElectrons(0) != 8 {
		Te.Errorf("water has 8 valence electrons, got %f", res.NElectrons(0))
	}
	ch := res.Charges(0)
	tot := 0.0
	for _, c := range ch {
		tot += c
	}
	if math.Abs(tot) > 1e-8 {
		Te.Errorf("net charge %e on neutral water", tot)
	}
	//oxygen pulls electrons off the hydrogens
	if ch[0] >= 0 || ch[1] <= 0 || ch[2] <= 0 {
		Te.Errorf("charges %v, expected O negative and both H positive", ch)
	}
	if res.TotalEnergy(0) >= 0 {
		Te.Errorf("total energy %f, expected negative", res.TotalEnergy(0))
	}
	homo, lumo, err := res.HomoLumo(0)
	if err != nil {
		Te.Fatal(err)
	}
	if homo >= lumo {
		Te.Errorf("frontier levels %f %f out of order", homo, lumo)
	}
	fmt.Printf("water: E = %.6f Ha, %d iterations, charges %v\n",
		res.TotalEnergy(0), res.Iterations(0), ch)
}
