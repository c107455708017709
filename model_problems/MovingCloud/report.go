package MovingCloud

import (
	"fmt"
	"io"

	"github.com/notargets/movingcloud/units"
	"github.com/notargets/movingcloud/utils"
)

var axisNames = []string{"x1", "x2", "x3"}

// Report writes the input and derived parameters in physical and code units.
func (s *Setup) Report(w io.Writer, u *units.Units) {
	var (
		cm3   = utils.POW(u.Cm(), 3)
		rule  = "######################################"
		lines []string
	)
	add := func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	}
	add(rule)
	add("###### Moving cloud problem generator")
	add("#### Input parameters")
	add("## Ambient density:     %.2g mh/cm^3", s.RhoAmbient/s.MhPerCm3)
	add("## Ambient temperature: %.2g K", s.TAmbient)
	add("## Cloud temperature:   %.2g K", s.TCloud)
	add("## Cloud velocity:      %.2g km/s = %.2g code units", s.VelocityCloud/u.KmPerS(), s.VelocityCloud)
	add("## Cloud center:        (%.2g, %.2g, %.2g), moving along %s",
		s.Center[0], s.Center[1], s.Center[2], axisNames[s.MotionAxis])
	add("#### Derived parameters")
	add("## Cloud density: %.2g mh/cm^3 = %.2g code units", s.RhoCloud/s.MhPerCm3, s.RhoCloud)
	add("## Uniform pressure: %.2g erg/cm^3 = %.2g code units", s.Pressure/(u.Erg()/cm3), s.Pressure)
	add("## Cloud to ambient density ratio: %.2g", s.RhoCloud/s.RhoAmbient)
	add(rule)
	add("")
	add(rule)
	add("#### Problem units")
	add("## Length unit: %.2g x cloud radius", s.CloudRadiusFactor)
	add("##              %.2g cm = %.2g kpc", u.CodeLengthCGS(), 1/u.Kpc())
	add("## Mass unit:   %.2g g = %.2g M_sol", u.CodeMassCGS(), 1/u.Msun())
	add("## Time unit:   %.2g s = %.2g Myr", u.CodeTimeCGS(), 1/u.Myr())
	add(rule)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
