/*
 * errors.go, part of godftb.
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

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each element of the returned slice should be a function in the calling
// stack, optionally followed by extra information as in
// "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// ConfigError signals an invalid calculator or feed configuration: an
// unknown scheme string, a missing element parameter, a non-positive
// iteration limit, and the like. Configuration errors are always raised
// eagerly, at construction, never silently defaulted.
type ConfigError struct {
	Message string
	deco    []string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("godftb configuration error: %s", err.Message)
}

// Decorate adds new information to the error
func (err *ConfigError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// ConvergenceError signals that one or more systems failed to converge
// within the permitted number of SCC iterations. Systems holds the
// original batch indices of the offenders.
type ConvergenceError struct {
	Message string
	Systems []int
	deco    []string
}

func (err *ConvergenceError) Error() string {
	return fmt.Sprintf("godftb: %s (systems %v)", err.Message, err.Systems)
}

// Decorate adds new information to the error
func (err *ConvergenceError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. It panics on any other error type.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

const (
	SCCNotConverged  = "SCC cycle failed to converge; iteration limit reached"
	OverlapNotPosDef = "overlap matrix is not positive definite"
	HomoLumoUndef    = "HOMO/LUMO not defined: all states are occupied"
)
