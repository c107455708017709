package mesh

type IndexDomain uint8

const (
	Interior IndexDomain = iota
	Entire
)

const (
	X1DIR = iota
	X2DIR
	X3DIR
)

// IndexRange is an inclusive range of cell indices.
type IndexRange struct {
	S, E int
}

func (ir IndexRange) NCells() int { return ir.E - ir.S + 1 }

// IndexShape describes a block's cells per direction. Directions below the
// mesh dimensionality carry ghost cells, even where the block is one cell
// thick.
type IndexShape struct {
	Nx     [3]int
	Nghost int
	Ndim   int
}

func NewIndexShape(nx1, nx2, nx3, nghost, ndim int) IndexShape {
	return IndexShape{Nx: [3]int{nx1, nx2, nx3}, Nghost: nghost, Ndim: ndim}
}

func (is IndexShape) ghosts(dir int) int {
	if dir < is.Ndim {
		return is.Nghost
	}
	return 0
}

// NCellsTotal is the interior plus ghost cell count along dir.
func (is IndexShape) NCellsTotal(dir int) int {
	return is.Nx[dir] + 2*is.ghosts(dir)
}

func (is IndexShape) bounds(dir int, domain IndexDomain) (ir IndexRange) {
	ng := is.ghosts(dir)
	switch domain {
	case Entire:
		ir = IndexRange{S: 0, E: is.Nx[dir] + 2*ng - 1}
	default:
		ir = IndexRange{S: ng, E: ng + is.Nx[dir] - 1}
	}
	return
}

func (is IndexShape) GetBoundsI(domain IndexDomain) IndexRange { return is.bounds(X1DIR, domain) }
func (is IndexShape) GetBoundsJ(domain IndexDomain) IndexRange { return is.bounds(X2DIR, domain) }
func (is IndexShape) GetBoundsK(domain IndexDomain) IndexRange { return is.bounds(X3DIR, domain) }
