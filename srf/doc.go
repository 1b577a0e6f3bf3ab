/*
 * doc.go, part of godftb.
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

//Package srf implements the "simple results format", a compressed,
//line-oriented archive for the per-system output of a tight-binding
//batch: charges, level energies, occupancies and energy totals. The
//compression backend is chosen from the last letter of the file name:
//"s" (or anything unrecognized) selects zstd, "z" gzip and "r" flate.
//A file starts with free-form key=value header lines, then one record
//per system.
package srf
