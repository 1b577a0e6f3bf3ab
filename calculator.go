/*
 * calculator.go, part of godftb.
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
	"fmt"

	"github.com/rmera/godftb/filling"
	"github.com/rmera/godftb/mix"
	"gonum.org/v1/gonum/mat"
)

//Options holds the user-settable knobs of a calculator. Zero values are
//not filled in behind the user's back: build Options with
//DefaultOptions and change what you need, or set every field yourself.
//Invalid combinations are rejected when the calculator is built, never
//at Compute time.
type Options struct {
	Mixer            string  //"anderson" or "simple"
	MixParam         float64 //mixing fraction
	Generations      int     //Anderson history depth
	Tolerance        float64 //SCC convergence tolerance, in electrons
	MaxSCCIter       int     //iteration ceiling
	Filling          string  //"fermi", "gaussian" or "aufbau"
	FillingTemp      float64 //electronic temperature kT, in hartree
	ShellResolved    bool    //iterate shell populations instead of atomic ones
	Gamma            string  //"exponential" or "gaussian"
	Coulomb          string  //"none" or "search"; only periodic systems consult it
	GradMode         string  //"direct" or "last_step"
	SuppressSCCError bool    //record unconverged systems instead of failing
}

// DefaultOptions returns the settings a plain DFTB2 run would use.
func DefaultOptions() *Options {
	return &Options{
		Mixer:       "anderson",
		MixParam:    0.05,
		Generations: 3,
		Tolerance:   1e-6,
		MaxSCCIter:  200,
		Filling:     "fermi",
		FillingTemp: 0.0,
		Gamma:       "exponential",
		Coulomb:     "none",
		GradMode:    "direct",
	}
}

// validate checks the option set and resolves the string-typed choices,
// returning the filling scheme, gamma scheme and working resolution.
func (O *Options) validate() (filling.Scheme, GammaScheme, Resolution, error) {
	if O.Mixer != "anderson" && O.Mixer != "simple" {
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("unknown mixer %q", O.Mixer)}
	}
	if O.MixParam <= 0 || O.MixParam > 1 {
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("mixing fraction %g outside (0,1]", O.MixParam)}
	}
	if O.Mixer == "anderson" && O.Generations < 1 {
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("Anderson mixing needs at least one generation, got %d", O.Generations)}
	}
	if O.Tolerance <= 0 {
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("non-positive convergence tolerance %g", O.Tolerance)}
	}
	if O.MaxSCCIter < 1 {
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("non-positive iteration limit %d", O.MaxSCCIter)}
	}
	if O.FillingTemp < 0 {
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("negative electronic temperature %g", O.FillingTemp)}
	}
	fs, err := filling.SchemeFromString(O.Filling)
	if err != nil {
		return 0, 0, 0, &ConfigError{Message: err.Error()}
	}
	gs, err := GammaSchemeFromString(O.Gamma)
	if err != nil {
		return 0, 0, 0, errDecorate(err, "Options.validate")
	}
	switch O.Coulomb {
	case "", "none", "search":
		//only periodic systems consult the Ewald branch; the name is
		//still validated so typos don't pass silently
	default:
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("unknown coulomb scheme %q", O.Coulomb)}
	}
	switch O.GradMode {
	case "direct", "last_step":
	case "implicit":
		return 0, 0, 0, &ConfigError{Message: "gradient mode \"implicit\" is reserved and not yet available"}
	default:
		return 0, 0, 0, &ConfigError{Message: fmt.Sprintf("unknown gradient mode %q", O.GradMode)}
	}
	res := ResAtom
	if O.ShellResolved {
		res = ResShell
	}
	return fs, gs, res, nil
}

// newMixer builds the mixer the options ask for.
func (O *Options) newMixer() mix.Mixer {
	if O.Mixer == "simple" {
		return mix.NewSimple(O.MixParam, O.Tolerance)
	}
	return mix.NewAnderson(O.Generations, O.MixParam, O.Tolerance)
}

//Dftb1 is a non-self-consistent tight-binding calculator: it solves the
//reference Hamiltonian once per system and stops there.
type Dftb1 struct {
	hfeed, sfeed MatrixFeed
	ofeed        OccupationFeed
	rfeed        RepulsiveFeed
	opts         *Options
	scheme       filling.Scheme
	res          Resolution
}

// NewDftb1 builds a first-order calculator from Hamiltonian and overlap
// feeds. A nil opts means DefaultOptions. Reference occupations come
// from the built-in neutral-atom tables unless SetOccupationFeed is
// called.
func NewDftb1(hfeed, sfeed MatrixFeed, opts *Options) (*Dftb1, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	fs, _, res, err := opts.validate()
	if err != nil {
		return nil, errDecorate(err, "NewDftb1")
	}
	if hfeed == nil || sfeed == nil {
		return nil, &ConfigError{Message: "NewDftb1: Hamiltonian and overlap feeds are both required"}
	}
	return &Dftb1{hfeed: hfeed, sfeed: sfeed, ofeed: GroundStateFeed{}, opts: opts, scheme: fs, res: res}, nil
}

// SetOccupationFeed replaces the source of reference occupations.
func (D *Dftb1) SetOccupationFeed(f OccupationFeed) {
	D.ofeed = f
}

// SetRepulsiveFeed sets the source of repulsive energies. Without one
// the repulsive energy is zero and total energies are electronic only.
func (D *Dftb1) SetRepulsiveFeed(f RepulsiveFeed) {
	D.rfeed = f
}

// Compute runs the calculator over every system in the batch and
// returns the collected results.
func (D *Dftb1) Compute(geom *Geometry, orbs *OrbitalInfo) (*Result, error) {
	nsys := geom.NSystems()
	if orbs.NSystems() != nsys {
		return nil, &ConfigError{Message: fmt.Sprintf("Dftb1.Compute: geometry has %d systems, basis %d", nsys, orbs.NSystems())}
	}
	r := newResult(geom, orbs, D.res, false)
	r.scheme, r.kT = D.scheme, D.opts.FillingTemp
	for i := 0; i < nsys; i++ {
		h, s, qzeroOrb, nel, err := gatherSystem(D.hfeed, D.sfeed, D.ofeed, geom, orbs, i)
		if err != nil {
			return nil, errDecorate(err, "Dftb1.Compute")
		}
		vals, vecs, err := Eighb(h, s)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Dftb1.Compute: system %d", i))
		}
		occ, ef, ts, err := filling.Occupations(vals, nel, D.scheme, D.opts.FillingTemp)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Dftb1.Compute: system %d", i))
		}
		rho := densityMatrix(vecs, occ)
		r.hcore[i], r.s[i], r.qzeroOrb[i], r.nel[i] = h, s, qzeroOrb, nel
		r.eigvals[i], r.eigvecs[i], r.rho[i] = vals, vecs, rho
		r.occ[i], r.ef[i], r.ts[i] = occ, ef, ts
		r.converged[i] = true
		if D.rfeed != nil {
			r.erep[i], err = D.rfeed.RepulsiveEnergy(geom, i)
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("Dftb1.Compute: system %d", i))
			}
		}
	}
	return r, nil
}

//Dftb2 is a second-order, self-consistent charge calculator. On top of
//the reference Hamiltonian it iterates the Mulliken populations to
//self-consistency under the second-order electrostatic kernel.
type Dftb2 struct {
	hfeed, sfeed MatrixFeed
	ofeed        OccupationFeed
	ufeed        HubbardFeed
	rfeed        RepulsiveFeed
	opts         *Options
	scheme       filling.Scheme
	gscheme      GammaScheme
	res          Resolution
	qinit        [][]float64
}

// NewDftb2 builds a self-consistent second-order calculator from
// Hamiltonian and overlap feeds. A nil opts means DefaultOptions.
// Reference occupations and Hubbard values come from the built-in
// tables unless replaced with SetOccupationFeed or SetHubbardFeed.
func NewDftb2(hfeed, sfeed MatrixFeed, opts *Options) (*Dftb2, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	fs, gs, res, err := opts.validate()
	if err != nil {
		return nil, errDecorate(err, "NewDftb2")
	}
	if hfeed == nil || sfeed == nil {
		return nil, &ConfigError{Message: "NewDftb2: Hamiltonian and overlap feeds are both required"}
	}
	return &Dftb2{hfeed: hfeed, sfeed: sfeed, ofeed: GroundStateFeed{}, ufeed: GroundStateFeed{},
		opts: opts, scheme: fs, gscheme: gs, res: res}, nil
}

// SetOccupationFeed replaces the source of reference occupations.
func (D *Dftb2) SetOccupationFeed(f OccupationFeed) {
	D.ofeed = f
}

// SetHubbardFeed replaces the source of Hubbard-U values.
func (D *Dftb2) SetHubbardFeed(f HubbardFeed) {
	D.ufeed = f
}

// SetRepulsiveFeed sets the source of repulsive energies.
func (D *Dftb2) SetRepulsiveFeed(f RepulsiveFeed) {
	D.rfeed = f
}

// SetInitialCharges warm-starts the next Compute call: the SCC cycle
// begins from the given populations instead of the neutral reference
// ones. One slice per system, at the calculator's working resolution;
// QFinal of a previous Result at that resolution is the natural source.
// A nil entry (or a nil q) falls back to the reference populations.
func (D *Dftb2) SetInitialCharges(q [][]float64) {
	D.qinit = q
}

// Compute runs the SCC cycle over the whole batch and returns the
// collected results. Unless the options suppress it, an unconverged
// system aborts the whole batch with a ConvergenceError.
func (D *Dftb2) Compute(geom *Geometry, orbs *OrbitalInfo) (*Result, error) {
	nsys := geom.NSystems()
	if orbs.NSystems() != nsys {
		return nil, &ConfigError{Message: fmt.Sprintf("Dftb2.Compute: geometry has %d systems, basis %d", nsys, orbs.NSystems())}
	}
	hcore := make([]*mat.SymDense, nsys)
	s := make([]*mat.SymDense, nsys)
	gammas := make([]*mat.SymDense, nsys)
	qzero := make([][]float64, nsys)
	qzeroOrb := make([][]float64, nsys)
	nel := make([]float64, nsys)
	for i := 0; i < nsys; i++ {
		var err error
		hcore[i], s[i], qzeroOrb[i], nel[i], err = gatherSystem(D.hfeed, D.sfeed, D.ofeed, geom, orbs, i)
		if err != nil {
			return nil, errDecorate(err, "Dftb2.Compute")
		}
		qzero[i] = aggregate(qzeroOrb[i], orbs, i, D.res)
		us, err := D.ufeed.HubbardUs(orbs, i, D.res)
		if err != nil {
			return nil, errDecorate(err, "Dftb2.Compute")
		}
		gammas[i], err = GammaMatrix(geom, orbs, i, us, D.gscheme, D.res)
		if err != nil {
			return nil, errDecorate(err, "Dftb2.Compute")
		}
	}
	params := &SCCParams{
		Mixer:          D.opts.newMixer(),
		MaxIter:        D.opts.MaxSCCIter,
		Scheme:         D.scheme,
		KT:             D.opts.FillingTemp,
		Res:            D.res,
		QInitial:       D.qinit,
		SuppressErrors: D.opts.SuppressSCCError,
	}
	cyc, err := SCCCycle(hcore, s, gammas, qzero, nel, orbs, params)
	if err != nil {
		return nil, errDecorate(err, "Dftb2.Compute")
	}
	if D.opts.GradMode == "last_step" {
		//redo the final step from the converged populations so every
		//stored quantity descends from a single plain evaluation
		for i := 0; i < nsys; i++ {
			st, err := SCCStep(hcore[i], s[i], gammas[i], cyc.Q[i], qzero[i], orbs, i, nel[i], params)
			if err != nil {
				return nil, errDecorate(err, "Dftb2.Compute")
			}
			cyc.Q[i] = st.Q
			cyc.H[i] = st.H
			cyc.EigVals[i] = st.EigVals
			cyc.EigVecs[i] = st.EigVecs
			cyc.Rho[i] = st.Rho
			cyc.Occ[i] = st.Occ
			cyc.Ef[i] = st.Ef
			cyc.TS[i] = st.TS
		}
	}
	r := newResult(geom, orbs, D.res, true)
	r.scheme, r.kT = D.scheme, D.opts.FillingTemp
	for i := 0; i < nsys; i++ {
		r.hcore[i], r.s[i], r.qzeroOrb[i], r.nel[i] = hcore[i], s[i], qzeroOrb[i], nel[i]
		r.gamma[i], r.qres[i] = gammas[i], cyc.Q[i]
		r.eigvals[i], r.eigvecs[i], r.rho[i] = cyc.EigVals[i], cyc.EigVecs[i], cyc.Rho[i]
		r.occ[i], r.ef[i], r.ts[i] = cyc.Occ[i], cyc.Ef[i], cyc.TS[i]
		r.converged[i], r.iterations[i] = cyc.Converged[i], cyc.Iterations[i]
		if D.rfeed != nil {
			r.erep[i], err = D.rfeed.RepulsiveEnergy(geom, i)
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("Dftb2.Compute: system %d", i))
			}
		}
	}
	return r, nil
}

// gatherSystem pulls the per-system operator matrices and reference
// occupations from the feeds and checks their dimensions.
func gatherSystem(hfeed, sfeed MatrixFeed, ofeed OccupationFeed, geom *Geometry, orbs *OrbitalInfo, sys int) (*mat.SymDense, *mat.SymDense, []float64, float64, error) {
	h, err := hfeed.Matrix(geom, orbs, sys)
	if err != nil {
		return nil, nil, nil, 0, errDecorate(err, "gatherSystem: Hamiltonian")
	}
	s, err := sfeed.Matrix(geom, orbs, sys)
	if err != nil {
		return nil, nil, nil, 0, errDecorate(err, "gatherSystem: overlap")
	}
	norb := orbs.NOrbitals(sys)
	if n, _ := h.Dims(); n != norb {
		return nil, nil, nil, 0, &ConfigError{Message: fmt.Sprintf("system %d: %d-orbital basis but %dx%d Hamiltonian", sys, norb, n, n)}
	}
	if n, _ := s.Dims(); n != norb {
		return nil, nil, nil, 0, &ConfigError{Message: fmt.Sprintf("system %d: %d-orbital basis but %dx%d overlap", sys, norb, n, n)}
	}
	qzeroOrb, err := ofeed.Occupations(orbs, sys)
	if err != nil {
		return nil, nil, nil, 0, errDecorate(err, "gatherSystem: occupations")
	}
	nel := 0.0
	for _, q := range qzeroOrb {
		nel += q
	}
	return h, s, qzeroOrb, nel, nil
}

// aggregate sums an orbital-resolved quantity onto the basis entities
// of the given resolution.
func aggregate(qOrb []float64, orbs *OrbitalInfo, sys int, res Resolution) []float64 {
	if res == ResOrbital {
		return qOrb
	}
	out := make([]float64, orbs.NRes(sys, res))
	for o, r := range orbs.OnRes(sys, res) {
		out[r] += qOrb[o]
	}
	return out
}
