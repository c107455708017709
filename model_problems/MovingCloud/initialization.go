package MovingCloud

import (
	"fmt"
	"io"
	"math"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/hydro"
	"github.com/notargets/movingcloud/units"
	"github.com/notargets/movingcloud/utils"
)

// Setup is the physical input of the problem together with the derived
// profile.
type Setup struct {
	RhoAmbientMhCm3  float64 // Input ambient density [m_H/cm^3]
	TAmbient, TCloud float64 // [K]
	VelocityCloudKmS float64
	MhPerCm3         float64 // One m_H/cm^3 in code units
	Profile
}

// Derive reads <problem/moving_cloud>, converts to code units and checks that
// the ambient density is unity in code units, the normalisation the rest of
// the setup relies on.
func Derive(pin *InputParameters.ParameterInput, u *units.Units, mbarOverKb float64) (s *Setup, err error) {
	var (
		axisLabel   string
		iRhoAmbient float64
	)
	s = &Setup{}
	for _, in := range []struct {
		name string
		val  *float64
	}{
		{"rho_ambient_mh_cm3", &s.RhoAmbientMhCm3},
		{"T_ambient_K", &s.TAmbient},
		{"T_cloud_K", &s.TCloud},
		{"velocity_cloud_km_s", &s.VelocityCloudKmS},
	} {
		if *in.val, err = pin.GetReal(Section, in.name); err != nil {
			return nil, err
		}
	}
	// Code length per cloud radius
	if s.CloudRadiusFactor, err = pin.GetOrAddReal(Section, "cloud_radius_factor",
		DefaultCloudRadiusFactor); err != nil {
		return nil, err
	}
	for dir, name := range []string{"center_x1", "center_x2", "center_x3"} {
		if s.Center[dir], err = pin.GetOrAddReal(Section, name, 0); err != nil {
			return nil, err
		}
	}
	if axisLabel, err = pin.GetOrAddString(Section, "motion_axis", "x1"); err != nil {
		return nil, err
	}
	if s.MotionAxis, err = ParseAxis(axisLabel); err != nil {
		return nil, err
	}
	for _, T := range []struct {
		name string
		val  float64
	}{{"T_ambient_K", s.TAmbient}, {"T_cloud_K", s.TCloud}} {
		if !(T.val > 0) || math.IsInf(T.val, 0) {
			return nil, fmt.Errorf("%w: %s/%s must be positive and finite, have %g",
				ErrInconsistentInput, Section, T.name, T.val)
		}
	}
	if !(s.CloudRadiusFactor > 0) {
		return nil, fmt.Errorf("%w: %s/cloud_radius_factor must be positive, have %g",
			ErrInconsistentInput, Section, s.CloudRadiusFactor)
	}

	s.MhPerCm3 = u.Mh() / utils.POW(u.Cm(), 3)
	iRhoAmbient = s.RhoAmbientMhCm3 * s.MhPerCm3

	s.RhoAmbient = 1.0 // By definition
	s.RhoCloud = s.RhoAmbient * s.TAmbient / s.TCloud
	s.Pressure = s.RhoAmbient * s.TAmbient / mbarOverKb
	s.VelocityCloud = s.VelocityCloudKmS * u.KmPerS()

	if math.Abs(iRhoAmbient-s.RhoAmbient) > AmbientDensityTol || math.IsNaN(iRhoAmbient) {
		return nil, fmt.Errorf("%w: rho_ambient_mh_cm3 must be set such that rho_ambient == 1.0 "+
			"in code units (input: %g, rho_ambient: %g)", ErrInconsistentInput, iRhoAmbient, s.RhoAmbient)
	}
	return
}

// InitUserMeshData derives the cloud setup, publishes it in the hydro package
// parameters, and writes a summary to w when isReporter is set.
func InitUserMeshData(pin *InputParameters.ParameterInput, pkg *hydro.Package,
	isReporter bool, w io.Writer) (err error) {
	var (
		s *Setup
	)
	if s, err = Derive(pin, pkg.Units, pkg.MbarOverKb); err != nil {
		return
	}
	if err = s.Profile.Publish(pkg.Params); err != nil {
		return
	}
	if isReporter && w != nil {
		s.Report(w, pkg.Units)
	}
	return
}
