package hydro

import (
	"fmt"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/params"
	"github.com/notargets/movingcloud/units"
)

const (
	Label = "Hydro"
	// Mean molecular weight of a fully ionized primordial plasma
	DefaultMu = 0.6
)

// Package carries the hydrodynamics settings shared by every block, and owns
// the parameter store problem generators publish into.
type Package struct {
	Gamma      float64 // Adiabatic index
	Mu         float64 // Mean molecular weight
	MbarOverKb float64 // mu * m_u / k_B in code units
	Units      *units.Units
	Params     *params.Dictionary
}

// Initialize reads the "hydro" section of the input deck. The mean molecular
// weight comes from hydro/mu, or from hydro/He_mass_fraction assuming a fully
// ionized H/He mixture, or defaults to DefaultMu.
func Initialize(pin *InputParameters.ParameterInput, u *units.Units) (pkg *Package, err error) {
	var (
		gamma, mu, Y float64
	)
	if gamma, err = pin.GetOrAddReal("hydro", "gamma", 5./3.); err != nil {
		return
	}
	if !(gamma > 1) {
		err = fmt.Errorf("hydro/gamma must be greater than 1, have %g", gamma)
		return
	}
	switch {
	case pin.DoesParameterExist("hydro", "mu"):
		if mu, err = pin.GetReal("hydro", "mu"); err != nil {
			return
		}
	case pin.DoesParameterExist("hydro", "He_mass_fraction"):
		if Y, err = pin.GetReal("hydro", "He_mass_fraction"); err != nil {
			return
		}
		if Y < 0 || Y > 1 {
			err = fmt.Errorf("hydro/He_mass_fraction must be in [0,1], have %g", Y)
			return
		}
		mu = MuFromHeliumFraction(Y)
	default:
		mu = DefaultMu
	}
	if !(mu > 0) {
		err = fmt.Errorf("mean molecular weight must be positive, have %g", mu)
		return
	}
	pkg = &Package{
		Gamma:      gamma,
		Mu:         mu,
		MbarOverKb: mu * u.AtomicMassUnit() / u.KBoltzmann(),
		Units:      u,
		Params:     params.NewDictionary(Label),
	}
	for _, p := range []struct {
		name string
		val  interface{}
	}{
		{"AdiabaticIndex", pkg.Gamma},
		{"mu", pkg.Mu},
		{"mbar_over_kb", pkg.MbarOverKb},
		{"units", pkg.Units},
	} {
		if err = params.Add(pkg.Params, p.name, p.val); err != nil {
			return nil, err
		}
	}
	return
}

// MuFromHeliumFraction is the mean molecular weight of fully ionized
// hydrogen and helium with helium mass fraction Y.
func MuFromHeliumFraction(Y float64) float64 {
	return 1. / (2.*(1.-Y) + 0.75*Y)
}

func (pkg *Package) EOS() *EOS {
	return &EOS{Gamma: pkg.Gamma, MbarOverKb: pkg.MbarOverKb}
}
