/*
 * xyz.go, part of godftb.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// XYZRead reads one or more concatenated XYZ-format structures from in
// and returns them as a Geometry batch. XYZ coordinates are assumed to
// be in angstroms and are converted to bohr.
func XYZRead(in io.Reader) (*Geometry, error) {
	scan := bufio.NewScanner(in)
	var numbers [][]int
	var positions []*mat.Dense
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		natoms, err := strconv.Atoi(line)
		if err != nil {
			return nil, &ConfigError{Message: fmt.Sprintf("godftb/XYZRead: malformed atom-count line %q", line)}
		}
		if !scan.Scan() {
			return nil, &ConfigError{Message: "godftb/XYZRead: file truncated at comment line"}
		}
		nums := make([]int, natoms)
		coords := mat.NewDense(natoms, 3, nil)
		for a := 0; a < natoms; a++ {
			if !scan.Scan() {
				return nil, &ConfigError{Message: fmt.Sprintf("godftb/XYZRead: file truncated at atom %d of %d", a+1, natoms)}
			}
			fields := strings.Fields(scan.Text())
			if len(fields) < 4 {
				return nil, &ConfigError{Message: fmt.Sprintf("godftb/XYZRead: malformed atom line %q", scan.Text())}
			}
			z := AtomicNumber(fields[0])
			if z == 0 {
				return nil, &ConfigError{Message: fmt.Sprintf("godftb/XYZRead: unknown element %q", fields[0])}
			}
			nums[a] = z
			for j := 0; j < 3; j++ {
				v, err := strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, &ConfigError{Message: fmt.Sprintf("godftb/XYZRead: bad coordinate %q", fields[j+1])}
				}
				coords.Set(a, j, v*A2Bohr)
			}
		}
		numbers = append(numbers, nums)
		positions = append(positions, coords)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, &ConfigError{Message: "godftb/XYZRead: no structures found"}
	}
	return NewGeometry(numbers, positions)
}

// XYZFileRead reads a Geometry batch from the XYZ file named by path.
func XYZFileRead(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return XYZRead(f)
}

// XYZWrite writes every system in G to out in XYZ format, coordinates
// converted back to angstroms. The comment line of each frame carries
// the system's formula.
func XYZWrite(out io.Writer, G *Geometry) error {
	for i := 0; i < G.NSystems(); i++ {
		n := G.NAtoms(i)
		if _, err := fmt.Fprintf(out, "%d\n%s\n", n, G.Formula(i)); err != nil {
			return err
		}
		p := G.Positions(i)
		for a := 0; a < n; a++ {
			_, err := fmt.Fprintf(out, "%-3s %12.6f %12.6f %12.6f\n",
				Symbol(G.Numbers(i)[a]), p.At(a, 0)*Bohr2A, p.At(a, 1)*Bohr2A, p.At(a, 2)*Bohr2A)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
