/*
 * srf.go, part of godftb.
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
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	dftb "github.com/rmera/godftb"
)

//Record is one system's worth of archived results.
type Record struct {
	Formula      string
	Converged    bool
	Iterations   int
	FermiEnergy  float64
	TotalEnergy  float64
	MerminEnergy float64
	Charges      []float64
	Eigenvalues  []float64
	Occupancy    []float64
}

// FromResult extracts the archived subset of system i from a computed
// Result.
func FromResult(r *dftb.Result, geom *dftb.Geometry, i int) *Record {
	return &Record{
		Formula:      geom.Formula(i),
		Converged:    r.Converged(i),
		Iterations:   r.Iterations(i),
		FermiEnergy:  r.FermiEnergy(i),
		TotalEnergy:  r.TotalEnergy(i),
		MerminEnergy: r.MerminEnergy(i),
		Charges:      r.Charges(i),
		Eigenvalues:  r.Eigenvalues(i),
		Occupancy:    r.Occupancy(i),
	}
}

//Error is the error type for the srf package.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("srf file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//E.deco is a slice, so appending through the value receiver works.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file associated to the error
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Write!
type SrfW struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
}

// NewWriter creates a results archive at name, writing the given
// key=value header first. The compressor follows from the file name as
// described in the package documentation. Only the first
// compressionLevel is read; it applies to gzip and flate.
func NewWriter(name string, header map[string]string, compressionLevel ...int) (*SrfW, error) {
	level := 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	S := new(SrfW)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(name)[len(name)-1]
	var anyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch format {
	case 'z':
		anyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	case 'r':
		anyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	default:
		anyNewWriter = func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		}
	}
	S.h, err = anyNewWriter(S.f)
	if err != nil {
		return nil, Error{"can't open compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	for k, v := range header {
		fmt.Fprintf(S.h, "%s=%v\n", k, v)
	}
	S.h.Write([]byte("**\n"))
	S.filename = name
	S.writeable = true
	return S, nil
}

// WNext appends one record to the archive.
func (S *SrfW) WNext(rec *Record) error {
	if !S.writeable {
		return Error{"write on a closed archive", S.filename, []string{"WNext"}, true}
	}
	if rec == nil {
		return Error{"nil record", S.filename, []string{"WNext"}, true}
	}
	conv := 0
	if rec.Converged {
		conv = 1
	}
	fmt.Fprintf(S.h, "> %s %d %d %.10e %.10e %.10e\n", rec.Formula, conv, rec.Iterations,
		rec.FermiEnergy, rec.TotalEnergy, rec.MerminEnergy)
	writeFloats(S.h, "q", rec.Charges)
	writeFloats(S.h, "e", rec.Eigenvalues)
	writeFloats(S.h, "o", rec.Occupancy)
	return nil
}

func writeFloats(w io.Writer, tag string, vals []float64) {
	fmt.Fprintf(w, "%s", tag)
	for _, v := range vals {
		fmt.Fprintf(w, " %.10e", v)
	}
	fmt.Fprint(w, "\n")
}

func (S *SrfW) Close() {
	if S == nil {
		return
	}
	if S.writeable {
		S.h.Close()
		S.f.Close()
	}
	S.writeable = false
}

//Read!
type SrfR struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	filename string
	header   map[string]string
	readable bool
}

//zstd.Decoder does not implement io.ReadCloser, its Close returns
//nothing, so it gets a small adapter.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

// NewReader opens a results archive and consumes its header, which
// becomes available through Header.
func NewReader(name string) (*SrfR, error) {
	S := new(SrfR)
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(name)[len(name)-1]
	switch format {
	case 'z':
		S.z, err = gzip.NewReader(S.f)
	case 'r':
		S.z = flate.NewReader(S.f)
	default:
		var d *zstd.Decoder
		d, err = zstd.NewReader(S.f)
		if err == nil {
			S.z = zstdql{closeql: d.Close, Decoder: d}
		}
	}
	if err != nil {
		return nil, Error{"can't open decompressor: " + err.Error(), name, []string{"NewReader"}, true}
	}
	S.h = bufio.NewReader(S.z)
	S.filename = name
	S.header = map[string]string{}
	for {
		line, err := S.h.ReadString('\n')
		if err != nil {
			return nil, Error{"truncated header", name, []string{"NewReader"}, true}
		}
		line = strings.TrimSpace(line)
		if line == "**" {
			break
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			S.header[k] = v
		}
	}
	S.readable = true
	return S, nil
}

// Header returns the key=value header of the archive.
func (S *SrfR) Header() map[string]string {
	return S.header
}

// Next returns the next record, or io.EOF after the last one.
func (S *SrfR) Next() (*Record, error) {
	if !S.readable {
		return nil, Error{"read on a closed archive", S.filename, []string{"Next"}, true}
	}
	line, err := S.h.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) == "" {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != 7 || fields[0] != ">" {
		return nil, Error{fmt.Sprintf("malformed record line %q", strings.TrimSpace(line)), S.filename, []string{"Next"}, true}
	}
	rec := &Record{Formula: fields[1]}
	rec.Converged = fields[2] == "1"
	if rec.Iterations, err = strconv.Atoi(fields[3]); err != nil {
		return nil, Error{"bad iteration count: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	for k, dst := range map[int]*float64{4: &rec.FermiEnergy, 5: &rec.TotalEnergy, 6: &rec.MerminEnergy} {
		if *dst, err = strconv.ParseFloat(fields[k], 64); err != nil {
			return nil, Error{"bad energy: " + err.Error(), S.filename, []string{"Next"}, true}
		}
	}
	if rec.Charges, err = S.readFloats("q"); err != nil {
		return nil, err
	}
	if rec.Eigenvalues, err = S.readFloats("e"); err != nil {
		return nil, err
	}
	if rec.Occupancy, err = S.readFloats("o"); err != nil {
		return nil, err
	}
	return rec, nil
}

func (S *SrfR) readFloats(tag string) ([]float64, error) {
	line, err := S.h.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) < 1 || fields[0] != tag {
		return nil, Error{fmt.Sprintf("expected a %q line, got %q", tag, strings.TrimSpace(line)), S.filename, []string{"readFloats"}, true}
	}
	vals := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, Error{"bad value: " + err.Error(), S.filename, []string{"readFloats"}, true}
		}
	}
	return vals, nil
}

func (S *SrfR) Close() {
	if S == nil {
		return
	}
	if S.readable {
		S.z.Close()
		S.f.Close()
	}
	S.readable = false
}
