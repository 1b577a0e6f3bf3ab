/*
 * basis_test.go, part of godftb.
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
	"bytes"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestXYZReadAndGeometry(Te *testing.T) {
	geo, err := XYZFileRead("test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if geo.NSystems() != 1 || geo.NAtoms(0) != 3 {
		Te.Errorf("expected 1 system with 3 atoms, got %d systems, %d atoms", geo.NSystems(), geo.NAtoms(0))
	}
	if f := geo.Formula(0); f != "H2O" {
		Te.Errorf("wrong formula %s", f)
	}
	d := geo.Distances(0)
	//both OH bonds in water.xyz measure 0.9572 A
	want := 0.9572 * A2Bohr
	if math.Abs(d.At(0, 1)-want) > 1e-6 || math.Abs(d.At(0, 2)-want) > 1e-6 {
		Te.Errorf("OH distances %f %f, expected %f bohr", d.At(0, 1), d.At(0, 2), want)
	}
	inv := geo.InvDistances(0)
	if math.Abs(inv.At(0, 1)-1/want) > 1e-6 {
		Te.Errorf("inverse distance %f, expected %f", inv.At(0, 1), 1/want)
	}
	if inv.At(0, 0) != 0 {
		Te.Errorf("diagonal of the inverse distance matrix should stay zero")
	}
	var buf bytes.Buffer
	if err := XYZWrite(&buf, geo); err != nil {
		Te.Fatal(err)
	}
	geo2, err := XYZRead(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	p1, p2 := geo.Positions(0), geo2.Positions(0)
	for a := 0; a < 3; a++ {
		for x := 0; x < 3; x++ {
			if math.Abs(p1.At(a, x)-p2.At(a, x)) > 1e-5 {
				Te.Errorf("roundtrip moved atom %d axis %d: %f vs %f", a, x, p1.At(a, x), p2.At(a, x))
			}
		}
	}
}

func TestOrbitalInfo(Te *testing.T) {
	//water: O carries s+p (4 orbitals), each H an s
	orbs, err := NewOrbitalInfo([][]int{{8, 1, 1}}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if n := orbs.NOrbitals(0); n != 6 {
		Te.Errorf("water should span 6 orbitals, got %d", n)
	}
	if n := orbs.NShells(0); n != 4 {
		Te.Errorf("water should span 4 shells, got %d", n)
	}
	onAtoms := orbs.OnAtoms(0)
	expected := []int{0, 0, 0, 0, 1, 2}
	for i, a := range expected {
		if onAtoms[i] != a {
			Te.Errorf("orbital %d sits on atom %d, expected %d", i, onAtoms[i], a)
		}
	}
	onShells := orbs.OnShells(0)
	expectedSh := []int{0, 1, 1, 1, 2, 3}
	for i, s := range expectedSh {
		if onShells[i] != s {
			Te.Errorf("orbital %d belongs to shell %d, expected %d", i, onShells[i], s)
		}
	}
	if n := orbs.NRes(0, ResAtom); n != 3 {
		Te.Errorf("3 atoms expected at atom resolution, got %d", n)
	}
	if n := orbs.NRes(0, ResShell); n != 4 {
		Te.Errorf("4 shells expected at shell resolution, got %d", n)
	}
	fmt.Println("water basis:", orbs.NOrbitals(0), "orbitals in", orbs.NShells(0), "shells")
}

func TestOrbitalInfoSubset(Te *testing.T) {
	orbs, err := NewOrbitalInfo([][]int{{1, 1}, {8, 1, 1}, {6, 1}}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	sub := orbs.Subset([]int{2, 0})
	if sub.NSystems() != 2 {
		Te.Fatalf("subset should hold 2 systems, got %d", sub.NSystems())
	}
	if sub.NOrbitals(0) != orbs.NOrbitals(2) || sub.NOrbitals(1) != orbs.NOrbitals(0) {
		Te.Errorf("subset reordered orbital counts wrong: %d %d", sub.NOrbitals(0), sub.NOrbitals(1))
	}
}

func TestOrbitalInfoUnknownElement(Te *testing.T) {
	_, err := NewOrbitalInfo([][]int{{1, 26}}, nil) //no parameters for Fe
	if err == nil {
		Te.Error("expected an error for an element with no shell table")
	}
}

func TestGroundStateFeed(Te *testing.T) {
	orbs, err := NewOrbitalInfo([][]int{{8, 1, 1}}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	q, err := GroundStateFeed{}.Occupations(orbs, 0)
	if err != nil {
		Te.Fatal(err)
	}
	tot := 0.0
	for _, v := range q {
		tot += v
	}
	if math.Abs(tot-8) > 1e-12 {
		Te.Errorf("water carries 8 valence electrons, feed gives %f", tot)
	}
	//the p shell of O spreads 4 electrons over 3 orbitals
	if math.Abs(q[1]-4.0/3.0) > 1e-12 {
		Te.Errorf("O p orbital reference occupation %f, expected %f", q[1], 4.0/3.0)
	}
	us, err := GroundStateFeed{}.HubbardUs(orbs, 0, ResAtom)
	if err != nil {
		Te.Fatal(err)
	}
	if us[0] != 0.4954 || us[1] != 0.4196 {
		Te.Errorf("wrong Hubbard values %v", us)
	}
	uss, err := GroundStateFeed{}.HubbardUs(orbs, 0, ResShell)
	if err != nil {
		Te.Fatal(err)
	}
	if len(uss) != 4 || uss[0] != uss[1] {
		Te.Errorf("shell-resolved Hubbard values should repeat the atomic ones, got %v", uss)
	}
}

func TestStaticFeedDimensionCheck(Te *testing.T) {
	orbs, err := NewOrbitalInfo([][]int{{1, 1}}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	feed := &StaticFeed{Matrices: []*mat.SymDense{mat.NewSymDense(3, nil)}}
	if _, err := feed.Matrix(nil, orbs, 0); err == nil {
		Te.Error("a 3x3 matrix should get rejected for a 2-orbital system")
	}
}
