package mesh

import (
	"fmt"
)

// Conserved variable indices
const (
	IDN = iota
	IM1
	IM2
	IM3
	IEN
	NHYDRO
)

// ParArray4D is a (v, k, j, i) array with i fastest. A block's "device"
// storage and its host mirror are both ParArray4Ds; DeepCopy moves data
// between them.
type ParArray4D struct {
	Label          string
	Nv, Nk, Nj, Ni int
	Data           []float64
}

func NewParArray4D(label string, nv, nk, nj, ni int) *ParArray4D {
	return &ParArray4D{
		Label: label,
		Nv:    nv, Nk: nk, Nj: nj, Ni: ni,
		Data: make([]float64, nv*nk*nj*ni),
	}
}

func (a *ParArray4D) Index(v, k, j, i int) int {
	if v < 0 || v >= a.Nv || k < 0 || k >= a.Nk || j < 0 || j >= a.Nj || i < 0 || i >= a.Ni {
		panic(fmt.Sprintf("%s: index (%d,%d,%d,%d) out of bounds (%d,%d,%d,%d)",
			a.Label, v, k, j, i, a.Nv, a.Nk, a.Nj, a.Ni))
	}
	return i + a.Ni*(j+a.Nj*(k+a.Nk*v))
}

func (a *ParArray4D) At(v, k, j, i int) float64 { return a.Data[a.Index(v, k, j, i)] }

func (a *ParArray4D) Set(v, k, j, i int, val float64) { a.Data[a.Index(v, k, j, i)] = val }

// Var returns the contiguous slice holding variable v.
func (a *ParArray4D) Var(v int) []float64 {
	n := a.Nk * a.Nj * a.Ni
	return a.Data[v*n : (v+1)*n]
}

func (a *ParArray4D) GetHostMirror() *ParArray4D {
	return NewParArray4D(a.Label+"_host", a.Nv, a.Nk, a.Nj, a.Ni)
}

func (a *ParArray4D) GetHostMirrorAndCopy() (h *ParArray4D) {
	h = a.GetHostMirror()
	copy(h.Data, a.Data)
	return
}

// DeepCopy overwrites a with the contents of src, which must have the same shape.
func (a *ParArray4D) DeepCopy(src *ParArray4D) (err error) {
	if a.Nv != src.Nv || a.Nk != src.Nk || a.Nj != src.Nj || a.Ni != src.Ni {
		return fmt.Errorf("deep copy from %s (%d,%d,%d,%d) to %s (%d,%d,%d,%d): shape mismatch",
			src.Label, src.Nv, src.Nk, src.Nj, src.Ni, a.Label, a.Nv, a.Nk, a.Nj, a.Ni)
	}
	copy(a.Data, src.Data)
	return
}
