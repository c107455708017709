package hydro

import (
	"math"
)

type FlowFunction uint8

func (pm FlowFunction) String() string {
	strings := []string{
		"Density",
		"XMomentum",
		"YMomentum",
		"ZMomentum",
		"Energy",
		"Mach",
		"Static Pressure",
		"Kinetic Energy",
		"Sound Speed",
		"Velocity",
		"XVelocity",
		"YVelocity",
		"ZVelocity",
		"Enthalpy",
		"Temperature",
	}
	return strings[int(pm)]
}

const (
	Density FlowFunction = iota
	XMomentum
	YMomentum
	ZMomentum
	Energy
	Mach           // 5
	StaticPressure // 6
	KineticEnergy  // 7
	SoundSpeed     // 8
	Velocity       // 9
	XVelocity      // 10
	YVelocity      // 11
	ZVelocity      // 12
	Enthalpy       // 13
	Temperature    // 14
)

// EOS is the ideal gas closure for the conserved state [rho, m1, m2, m3, E].
type EOS struct {
	Gamma      float64
	MbarOverKb float64
}

// ConservedFromPrimitive builds the conserved state for density rho,
// velocity V and pressure p.
func (eos *EOS) ConservedFromPrimitive(rho float64, V [3]float64, p float64) (Q [5]float64) {
	var (
		ooGM1 = 1. / (eos.Gamma - 1.)
	)
	Q[0] = rho
	Q[1], Q[2], Q[3] = rho*V[0], rho*V[1], rho*V[2]
	Q[4] = p*ooGM1 + 0.5*(Q[1]*Q[1]+Q[2]*Q[2]+Q[3]*Q[3])/rho
	return
}

func (eos *EOS) GetFlowFunctionQQ(Q [5]float64, pf FlowFunction) (f float64) {
	return eos.GetFlowFunctionBase(Q[0], Q[1], Q[2], Q[3], Q[4], pf)
}

func (eos *EOS) GetFlowFunctionBase(rho, m1, m2, m3, E float64, pf FlowFunction) (f float64) {
	var (
		Gamma = eos.Gamma
		GM1   = Gamma - 1.
		oorho = 1. / rho
		mm    = m1*m1 + m2*m2 + m3*m3
		q, p  float64
	)
	// Calculate q if needed
	switch pf {
	case StaticPressure, KineticEnergy, SoundSpeed, Enthalpy, Mach, Temperature:
		q = 0.5 * mm * oorho
	}
	// Calculate p if needed
	switch pf {
	case StaticPressure, SoundSpeed, Enthalpy, Mach, Temperature:
		p = GM1 * (E - q)
	}

	switch pf {
	case Density:
		f = rho
	case XMomentum:
		f = m1
	case YMomentum:
		f = m2
	case ZMomentum:
		f = m3
	case Energy:
		f = E
	case StaticPressure:
		f = p
	case KineticEnergy:
		f = q
	case SoundSpeed:
		f = math.Sqrt(math.Abs(Gamma * p * oorho))
	case Velocity:
		f = math.Sqrt(mm) * oorho
	case XVelocity:
		f = m1 * oorho
	case YVelocity:
		f = m2 * oorho
	case ZVelocity:
		f = m3 * oorho
	case Mach:
		C := math.Sqrt(math.Abs(Gamma * p * oorho))
		f = math.Sqrt(mm) * oorho / C
	case Enthalpy:
		f = (E + p) * oorho
	case Temperature:
		f = p * oorho * eos.MbarOverKb
	}
	return
}
