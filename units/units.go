// Package units converts between physical (cgs) quantities and the code unit
// system defined by a code length, mass and time.
package units

import (
	"fmt"

	"github.com/ctessum/unit"

	"github.com/notargets/movingcloud/InputParameters"
)

// Physical constants, stored in SI as the unit package requires.
var (
	centimeter = unit.New(1.e-2, unit.Meter)
	gram       = unit.New(1.e-3, unit.Kilogram)
	second     = unit.New(1., unit.Second)
	kmPerS     = unit.New(1.e3, unit.MeterPerSecond)
	kpc        = unit.New(3.0856775809623245e19, unit.Meter)
	msun       = unit.New(1.98841586e30, unit.Kilogram)
	myr        = unit.New(3.15576e13, unit.Second)
	erg        = unit.New(1.e-7, unit.Joule)
	dyneCm2    = unit.New(1.e-1, unit.Pascal)
	mh         = unit.New(1.6735327e-27, unit.Kilogram)
	amu        = unit.New(1.660538921e-27, unit.Kilogram)
	kBoltzmann = unit.New(1.3806488e-23, unit.Dimensions{
		unit.MassDim:        1,
		unit.LengthDim:      2,
		unit.TimeDim:        -2,
		unit.TemperatureDim: -1,
	})
	kelvin = unit.New(1., unit.Kelvin)
)

type Units struct {
	codeLengthCGS, codeMassCGS, codeTimeCGS float64
	codeLength, codeMass, codeTime          *unit.Unit

	// Conversion factors: one physical unit expressed in code units
	cm, g, s, kmS, kpc, msun, myr, erg, dyneCm2, mh, amu, kb float64
}

// NewUnits reads code_length_cgs, code_mass_cgs and code_time_cgs from the
// "units" section, each defaulting to 1.
func NewUnits(pin *InputParameters.ParameterInput) (u *Units, err error) {
	var (
		lengthCGS, massCGS, timeCGS float64
	)
	if lengthCGS, err = pin.GetOrAddReal("units", "code_length_cgs", 1); err != nil {
		return
	}
	if massCGS, err = pin.GetOrAddReal("units", "code_mass_cgs", 1); err != nil {
		return
	}
	if timeCGS, err = pin.GetOrAddReal("units", "code_time_cgs", 1); err != nil {
		return
	}
	return New(lengthCGS, massCGS, timeCGS)
}

func New(codeLengthCGS, codeMassCGS, codeTimeCGS float64) (u *Units, err error) {
	if !(codeLengthCGS > 0 && codeMassCGS > 0 && codeTimeCGS > 0) {
		err = fmt.Errorf("code units must be positive: length %g cm, mass %g g, time %g s",
			codeLengthCGS, codeMassCGS, codeTimeCGS)
		return
	}
	u = &Units{
		codeLengthCGS: codeLengthCGS,
		codeMassCGS:   codeMassCGS,
		codeTimeCGS:   codeTimeCGS,
		codeLength:    unit.New(codeLengthCGS*centimeter.Value(), unit.Meter),
		codeMass:      unit.New(codeMassCGS*gram.Value(), unit.Kilogram),
		codeTime:      unit.New(codeTimeCGS*second.Value(), unit.Second),
	}
	factors := []struct {
		f *float64
		q *unit.Unit
	}{
		{&u.cm, centimeter}, {&u.g, gram}, {&u.s, second}, {&u.kmS, kmPerS},
		{&u.kpc, kpc}, {&u.msun, msun}, {&u.myr, myr}, {&u.erg, erg},
		{&u.dyneCm2, dyneCm2}, {&u.mh, mh}, {&u.amu, amu}, {&u.kb, kBoltzmann},
	}
	for _, fq := range factors {
		if *fq.f, err = u.ToCode(fq.q); err != nil {
			return nil, err
		}
	}
	return
}

// CodeUnit returns the code unit having dimensions d, e.g. the code unit of
// density for unit.KilogramPerMeter3.
func (u *Units) CodeUnit(d unit.Dimensions) (cu *unit.Unit, err error) {
	cu = unit.New(1., unit.Dimless)
	for dim, pow := range d {
		var base *unit.Unit
		switch dim {
		case unit.LengthDim:
			base = u.codeLength
		case unit.MassDim:
			base = u.codeMass
		case unit.TimeDim:
			base = u.codeTime
		case unit.TemperatureDim:
			base = kelvin
		default:
			err = fmt.Errorf("no code unit for dimension %s", dim)
			return
		}
		for p := 0; p < pow; p++ {
			cu = unit.Mul(cu, base)
		}
		for p := 0; p > pow; p-- {
			cu = unit.Div(cu, base)
		}
	}
	return
}

// ToCode expresses the physical quantity q in code units.
func (u *Units) ToCode(q *unit.Unit) (v float64, err error) {
	var (
		cu *unit.Unit
	)
	if cu, err = u.CodeUnit(q.Dimensions()); err != nil {
		return
	}
	ratio := unit.Div(q, cu)
	if err = ratio.Check(unit.Dimless); err != nil {
		return
	}
	v = ratio.Value()
	return
}

// FromCode converts a code unit value with dimensions d to a physical quantity.
func (u *Units) FromCode(v float64, d unit.Dimensions) (q *unit.Unit, err error) {
	var (
		cu *unit.Unit
	)
	if cu, err = u.CodeUnit(d); err != nil {
		return
	}
	q = unit.Mul(unit.New(v, unit.Dimless), cu)
	return
}

func (u *Units) CodeLengthCGS() float64 { return u.codeLengthCGS }
func (u *Units) CodeMassCGS() float64   { return u.codeMassCGS }
func (u *Units) CodeTimeCGS() float64   { return u.codeTimeCGS }

func (u *Units) Cm() float64             { return u.cm }
func (u *Units) G() float64              { return u.g }
func (u *Units) S() float64              { return u.s }
func (u *Units) KmPerS() float64         { return u.kmS }
func (u *Units) Kpc() float64            { return u.kpc }
func (u *Units) Msun() float64           { return u.msun }
func (u *Units) Myr() float64            { return u.myr }
func (u *Units) Erg() float64            { return u.erg }
func (u *Units) DyneCm2() float64        { return u.dyneCm2 }
func (u *Units) Mh() float64             { return u.mh }
func (u *Units) AtomicMassUnit() float64 { return u.amu }
func (u *Units) KBoltzmann() float64     { return u.kb }
