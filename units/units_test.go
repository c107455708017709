package units

import (
	"testing"

	"github.com/ctessum/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/movingcloud/InputParameters"
)

func TestUnits(t *testing.T) {
	{ // cgs code units
		u, err := New(1, 1, 1)
		require.NoError(t, err)
		assert.InDelta(t, 1., u.Cm(), 1.e-14)
		assert.InDelta(t, 1., u.G(), 1.e-14)
		assert.InDelta(t, 1., u.S(), 1.e-14)
		assert.InEpsilon(t, 1.e5, u.KmPerS(), 1.e-14)
		assert.InEpsilon(t, 1., u.Erg(), 1.e-14)
		assert.InEpsilon(t, 1., u.DyneCm2(), 1.e-14)
		assert.InEpsilon(t, 3.0856775809623245e21, u.Kpc(), 1.e-14)
		assert.InEpsilon(t, 1.98841586e33, u.Msun(), 1.e-14)
		assert.InEpsilon(t, 3.15576e13, u.Myr(), 1.e-14)
		assert.InEpsilon(t, 1.6735327e-24, u.Mh(), 1.e-14)
		assert.InEpsilon(t, 1.660538921e-24, u.AtomicMassUnit(), 1.e-14)
		assert.InEpsilon(t, 1.3806488e-16, u.KBoltzmann(), 1.e-14)
	}
	{ // kpc, Msun, Myr code units
		var (
			kpcCGS  = 3.0856775809623245e21
			msunCGS = 1.98841586e33
			myrCGS  = 3.15576e13
		)
		u, err := New(kpcCGS, msunCGS, myrCGS)
		require.NoError(t, err)
		assert.InEpsilon(t, 1., u.Kpc(), 1.e-14)
		assert.InEpsilon(t, 1., u.Msun(), 1.e-14)
		assert.InEpsilon(t, 1., u.Myr(), 1.e-14)
		assert.InEpsilon(t, 1./kpcCGS, u.Cm(), 1.e-14)
		assert.InEpsilon(t, 1.e5*myrCGS/kpcCGS, u.KmPerS(), 1.e-14)
		assert.InEpsilon(t, myrCGS*myrCGS/(msunCGS*kpcCGS*kpcCGS), u.Erg(), 1.e-14)
		assert.Equal(t, kpcCGS, u.CodeLengthCGS())
		assert.Equal(t, msunCGS, u.CodeMassCGS())
		assert.Equal(t, myrCGS, u.CodeTimeCGS())

		// A density of 1 Msun/kpc^3 is unity
		rho := unit.New(1.98841586e30/(3.0856775809623245e19*3.0856775809623245e19*3.0856775809623245e19),
			unit.KilogramPerMeter3)
		v, err := u.ToCode(rho)
		require.NoError(t, err)
		assert.InEpsilon(t, 1., v, 1.e-12)

		q, err := u.FromCode(2, unit.MeterPerSecond)
		require.NoError(t, err)
		assert.NoError(t, q.Check(unit.MeterPerSecond))
		assert.InEpsilon(t, 2*kpcCGS*1.e-2/myrCGS, q.Value(), 1.e-14)
	}
	{ // Unsupported dimensions and bad code units
		u, err := New(1, 1, 1)
		require.NoError(t, err)
		_, err = u.ToCode(unit.New(1, unit.Dimensions{unit.CurrentDim: 1}))
		assert.Error(t, err)
		_, err = New(0, 1, 1)
		assert.Error(t, err)
		_, err = New(1, -1, 1)
		assert.Error(t, err)
	}
	{ // Construction from the input deck
		pin := InputParameters.NewParameterInput()
		require.NoError(t, pin.Parse([]byte(`
units:
  code_length_cgs: 3.0856775809623245e21
`)))
		u, err := NewUnits(pin)
		require.NoError(t, err)
		assert.InEpsilon(t, 1., u.Kpc(), 1.e-14)
		assert.Equal(t, 1., u.CodeMassCGS())
		assert.True(t, pin.DoesParameterExist("units", "code_time_cgs"))
	}
}
