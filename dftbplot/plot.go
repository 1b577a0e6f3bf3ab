/*
 * plot.go, part of godftb.
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

//Package dftbplot plots the electronic structure a calculation
//produces: broadened densities of states and level diagrams. Energies
//are plotted in eV.
package dftbplot

import (
	"fmt"
	"image/color"

	dftb "github.com/rmera/godftb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Error is the error type for the dftbplot package.
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

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// DOSPlot writes a PNG with the Gaussian-broadened density of states of
// system i, a vertical marker at the Fermi level included. The ".png"
// extension is appended to plotname.
func DOSPlot(res *dftb.Result, i int, title, plotname string) error {
	grid := res.DOSEnergies(i)
	dos := res.DOS(i)
	pts := make(plotter.XYs, len(grid))
	maxdos := 0.0
	for k := range grid {
		pts[k].X = grid[k] * dftb.H2eV
		pts[k].Y = dos[k]
		if dos[k] > maxdos {
			maxdos = dos[k]
		}
	}
	p := basicPlot(title, "E (eV)", "DOS (states/Ha)")
	line, err := plotter.NewLine(pts)
	if err != nil {
		return &Error{message: fmt.Sprintf("dftbplot/DOSPlot: %v", err)}
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)
	fermi := plotter.XYs{
		{X: res.FermiEnergy(i) * dftb.H2eV, Y: 0},
		{X: res.FermiEnergy(i) * dftb.H2eV, Y: maxdos},
	}
	fline, err := plotter.NewLine(fermi)
	if err != nil {
		return &Error{message: fmt.Sprintf("dftbplot/DOSPlot: %v", err)}
	}
	fline.LineStyle.Width = vg.Points(1)
	fline.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	fline.LineStyle.Color = color.RGBA{R: 200, A: 255}
	p.Add(fline)
	p.Legend.Add("DOS", line)
	p.Legend.Add("Fermi level", fline)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname)); err != nil {
		return &Error{message: fmt.Sprintf("dftbplot/DOSPlot: %v", err)}
	}
	return nil
}

// LevelsPlot writes a PNG diagram of the orbital energies of system i,
// occupied levels in blue and virtual ones in gray. The ".png"
// extension is appended to plotname.
func LevelsPlot(res *dftb.Result, i int, title, plotname string) error {
	eps := res.Eigenvalues(i)
	occ := res.Occupancy(i)
	p := basicPlot(title, "", "E (eV)")
	p.X.Min = 0
	p.X.Max = 1
	for k, e := range eps {
		seg := plotter.XYs{{X: 0.25, Y: e * dftb.H2eV}, {X: 0.75, Y: e * dftb.H2eV}}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return &Error{message: fmt.Sprintf("dftbplot/LevelsPlot: %v", err)}
		}
		line.LineStyle.Width = vg.Points(2)
		if occ[k] > 1e-6 {
			line.LineStyle.Color = color.RGBA{B: 200, A: 255}
		} else {
			line.LineStyle.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
		}
		p.Add(line)
	}
	if err := p.Save(3*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname)); err != nil {
		return &Error{message: fmt.Sprintf("dftbplot/LevelsPlot: %v", err)}
	}
	return nil
}
