package driver

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/movingcloud/hydro"
	"github.com/notargets/movingcloud/mesh"
	"github.com/notargets/movingcloud/utils"
)

// Diagnostics are mesh wide reductions over interior cells.
type Diagnostics struct {
	Cells          int
	Volume         float64
	Mass           float64
	Momentum       [3]float64
	Energy         float64
	MinDensity     float64
	MaxDensity     float64
	MinTemperature float64 // [K]
	MaxTemperature float64
	Finite         bool // No NaN or Inf in any conserved variable
}

// Diagnostics reads back every block's storage and reduces it.
func (d *Driver) Diagnostics() (diag *Diagnostics) {
	var (
		rho, E, T, dV []float64
		m             [3][]float64
	)
	for _, rank := range d.Ranks {
		var (
			eos = rank.Hydro.EOS()
		)
		for _, pmb := range rank.Blocks {
			var (
				ib  = pmb.Cellbounds.GetBoundsI(mesh.Interior)
				jb  = pmb.Cellbounds.GetBoundsJ(mesh.Interior)
				kb  = pmb.Cellbounds.GetBoundsK(mesh.Interior)
				u   = pmb.Cons.GetHostMirrorAndCopy()
				vol = pmb.Coords.CellVolume()
			)
			for k := kb.S; k <= kb.E; k++ {
				for j := jb.S; j <= jb.E; j++ {
					for i := ib.S; i <= ib.E; i++ {
						Q := [5]float64{
							u.At(mesh.IDN, k, j, i), u.At(mesh.IM1, k, j, i), u.At(mesh.IM2, k, j, i),
							u.At(mesh.IM3, k, j, i), u.At(mesh.IEN, k, j, i),
						}
						rho = append(rho, Q[0])
						for dir := 0; dir < 3; dir++ {
							m[dir] = append(m[dir], Q[1+dir])
						}
						E = append(E, Q[4])
						T = append(T, eos.GetFlowFunctionQQ(Q, hydro.Temperature))
						dV = append(dV, vol)
					}
				}
			}
		}
	}
	diag = &Diagnostics{
		Cells:  len(rho),
		Finite: utils.IsFinite(rho) && utils.IsFinite(E) && utils.IsFinite(m[0]) && utils.IsFinite(m[1]) && utils.IsFinite(m[2]),
	}
	if diag.Cells == 0 {
		return
	}
	diag.Volume = floats.Sum(dV)
	diag.Mass = floats.Dot(rho, dV)
	for dir := 0; dir < 3; dir++ {
		diag.Momentum[dir] = floats.Dot(m[dir], dV)
	}
	diag.Energy = floats.Dot(E, dV)
	diag.MinDensity, diag.MaxDensity = floats.Min(rho), floats.Max(rho)
	diag.MinTemperature, diag.MaxTemperature = floats.Min(T), floats.Max(T)
	return
}

func (diag *Diagnostics) Log(log logrus.FieldLogger) {
	log.WithFields(logrus.Fields{
		"cells":    diag.Cells,
		"volume":   diag.Volume,
		"mass":     diag.Mass,
		"momentum": diag.Momentum,
		"energy":   diag.Energy,
		"rho_min":  diag.MinDensity,
		"rho_max":  diag.MaxDensity,
		"T_min":    diag.MinTemperature,
		"T_max":    diag.MaxTemperature,
	}).Info("initial state")
}
