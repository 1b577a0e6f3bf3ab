/*
 * doc.go, part of godftb.
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
 */

/*Package dftb implements self-consistent-charge density-functional
tight-binding (DFTB) calculations over batches of molecular systems.

The package provides two calculators: Dftb1, which performs a single,
non-self-consistent eigensolve, and Dftb2, which iterates the
second-order (charge self-consistent) Hamiltonian to a fixed point of
the Mulliken charges. Both operate on batches of systems of different
sizes; within a Dftb2 batch each system converges independently and is
retired from the working set as soon as it does, so a hard system never
holds back an easy one.

	**godftb Capabilities**

    Builds charge-dependent second order Hamiltonians from core
	Hamiltonian, overlap and gamma matrices.

    Solves the generalized symmetric eigenproblem through a Loewdin
	orthogonalization.

    Mulliken population analysis at orbital, shell and atom resolution.

    Fermi-Dirac and Gaussian finite temperature occupation filling with
	a Fermi level search, plus zero temperature Aufbau filling (package
	filling).

    Simple damped and Anderson (multi-history) charge mixing (package
	mix).

    Electrostatic gamma matrices under the exponential and gaussian
	schemes.

    Derived properties: band, total and Mermin free energies, charges at
	all resolutions, dipole moments, HOMO-LUMO gaps and densities of
	states.

    Reads and writes XYZ files.

    Writes and reads compressed batch result archives (package srf) and
	plots densities of states (package dftbplot). Element parameter sets
	can be read from YAML files (package param).

The Hamiltonian, overlap, occupation and Hubbard-U providers are
consumed through small interfaces (see feeds.go), so Slater-Koster
tables or learned models can be plugged in without touching the solver.
All quantities are in atomic units (hartree, bohr) unless noted.*/
package dftb
