// Package MovingCloud sets up a cold cloud moving through a hot ambient medium
// in pressure equilibrium. The cloud edge is a tanh smoothed step in density
// and velocity.
package MovingCloud

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notargets/movingcloud/mesh"
	"github.com/notargets/movingcloud/params"
	"github.com/notargets/movingcloud/utils"
)

const (
	Section = "problem/moving_cloud"

	ParVelocityCloud     = "moving_cloud/velocity_cloud"
	ParRhoAmbient        = "moving_cloud/rho_ambient"
	ParRhoCloud          = "moving_cloud/rho_cloud"
	ParPressure          = "moving_cloud/pressure"
	ParCloudRadiusFactor = "moving_cloud/cloud_radius_factor"
	ParCenter            = "moving_cloud/center"
	ParMotionAxis        = "moving_cloud/motion_axis"

	DefaultCloudRadiusFactor = 1.1
	// Width of the cloud edge, in units of 1/cloud radius
	Steepness = 10.
	// Allowed deviation of the input ambient density from unity in code units
	AmbientDensityTol = 1.e-8
)

var ErrInconsistentInput = errors.New("inconsistent moving cloud input")

// BlendWeight is 1 deep inside the cloud, 0 far outside and 1/2 at radCl == 1.
func BlendWeight(radCl float64) float64 {
	return 0.5 * (1.0 - math.Tanh(Steepness*(radCl-1.0)))
}

// Profile is the derived cloud setup in code units, everything a block fill
// needs.
type Profile struct {
	VelocityCloud     float64
	RhoAmbient        float64
	RhoCloud          float64
	Pressure          float64
	CloudRadiusFactor float64
	Center            [3]float64
	MotionAxis        int
}

// State returns density and speed along the motion axis at X.
func (p *Profile) State(X [3]float64) (rho, velocity float64) {
	var (
		dx, dy, dz = X[0] - p.Center[0], X[1] - p.Center[1], X[2] - p.Center[2]
		rad        = math.Sqrt(utils.SQR(dx) + utils.SQR(dy) + utils.SQR(dz))
		radCl      = rad * p.CloudRadiusFactor
		w          = BlendWeight(radCl)
	)
	rho = p.RhoAmbient + w*(p.RhoCloud-p.RhoAmbient)
	velocity = w * p.VelocityCloud
	return
}

// Conserved returns [rho, m1, m2, m3, E] at X for adiabatic index gamma.
func (p *Profile) Conserved(X [3]float64, gamma float64) (Q [5]float64) {
	rho, velocity := p.State(X)
	Q[mesh.IDN] = rho
	Q[mesh.IM1+p.MotionAxis] = rho * velocity
	Q[mesh.IEN] = p.Pressure/(gamma-1) +
		(utils.SQR(Q[mesh.IM1])+utils.SQR(Q[mesh.IM2])+utils.SQR(Q[mesh.IM3]))/(2.0*Q[mesh.IDN])
	return
}

// Publish stores the profile in the package parameter store.
func (p *Profile) Publish(d *params.Dictionary) (err error) {
	for _, par := range []struct {
		name string
		val  float64
	}{
		{ParVelocityCloud, p.VelocityCloud},
		{ParRhoAmbient, p.RhoAmbient},
		{ParRhoCloud, p.RhoCloud},
		{ParPressure, p.Pressure},
		{ParCloudRadiusFactor, p.CloudRadiusFactor},
	} {
		if err = params.Add(d, par.name, par.val); err != nil {
			return
		}
	}
	if err = params.Add(d, ParCenter, p.Center); err != nil {
		return
	}
	return params.Add(d, ParMotionAxis, p.MotionAxis)
}

// LoadProfile retrieves a profile stored by Publish.
func LoadProfile(r params.Reader) (p *Profile, err error) {
	p = &Profile{}
	for _, par := range []struct {
		name string
		val  *float64
	}{
		{ParVelocityCloud, &p.VelocityCloud},
		{ParRhoAmbient, &p.RhoAmbient},
		{ParRhoCloud, &p.RhoCloud},
		{ParPressure, &p.Pressure},
		{ParCloudRadiusFactor, &p.CloudRadiusFactor},
	} {
		if *par.val, err = params.Get[float64](r, par.name); err != nil {
			return nil, err
		}
	}
	if p.Center, err = params.Get[[3]float64](r, ParCenter); err != nil {
		return nil, err
	}
	if p.MotionAxis, err = params.Get[int](r, ParMotionAxis); err != nil {
		return nil, err
	}
	return
}

// ParseAxis maps a motion axis label (x1, x, 1, ...) to its direction index.
func ParseAxis(label string) (axis int, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "x1", "x", "1":
		axis = mesh.X1DIR
	case "x2", "y", "2":
		axis = mesh.X2DIR
	case "x3", "z", "3":
		axis = mesh.X3DIR
	default:
		err = fmt.Errorf("%w: %s/motion_axis must be one of x1, x2, x3, have %q",
			ErrInconsistentInput, Section, label)
	}
	return
}
