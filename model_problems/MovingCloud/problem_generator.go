package MovingCloud

import (
	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/mesh"
	"github.com/notargets/movingcloud/params"
)

// ProblemGenerator fills the interior cells of pmb with the cloud profile
// published by InitUserMeshData. Ghost cells are left alone. It only writes
// to pmb, so blocks can be generated concurrently.
func ProblemGenerator(pmb *mesh.MeshBlock, pin *InputParameters.ParameterInput, pars params.Reader) (err error) {
	var (
		ib     = pmb.Cellbounds.GetBoundsI(mesh.Interior)
		jb     = pmb.Cellbounds.GetBoundsJ(mesh.Interior)
		kb     = pmb.Cellbounds.GetBoundsK(mesh.Interior)
		coords = pmb.Coords
		gamma  float64
		p      *Profile
	)
	if gamma, err = pin.GetReal("hydro", "gamma"); err != nil {
		return
	}
	if p, err = LoadProfile(pars); err != nil {
		return
	}
	// initializing on host
	u := pmb.Cons.GetHostMirrorAndCopy()
	for k := kb.S; k <= kb.E; k++ {
		z := coords.Xc3(k)
		for j := jb.S; j <= jb.E; j++ {
			y := coords.Xc2(j)
			for i := ib.S; i <= ib.E; i++ {
				Q := p.Conserved([3]float64{coords.Xc1(i), y, z}, gamma)
				for v := mesh.IDN; v < mesh.NHYDRO; v++ {
					u.Set(v, k, j, i, Q[v])
				}
			}
		}
	}
	// copy initialized vars to device
	return pmb.Cons.DeepCopy(u)
}
