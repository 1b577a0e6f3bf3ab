/*
 * conversion.go, part of godftb.
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

//This provides useful conversion factors and other constants.
//Internally everything is in atomic units: hartree and bohr.

//Conversions
const (
	A2Bohr  = 1.889725989
	Bohr2A  = 1 / 1.889725989
	H2eV    = 27.211386246
	EV2H    = 1 / 27.211386246
	H2Kcal  = 627.509 //Hartree 2 Kcal/mol
	Kcal2H  = 1 / 627.509
	K2AU    = 3.166811563e-6 //Kelvin 2 hartree (Boltzmann constant in au)
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
)
