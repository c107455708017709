package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/movingcloud/InputParameters"
)

func TestIndexShape(t *testing.T) {
	{ // 3D block, ghosts in every direction
		is := NewIndexShape(8, 4, 2, 2, 3)
		assert.Equal(t, IndexRange{2, 9}, is.GetBoundsI(Interior))
		assert.Equal(t, IndexRange{2, 5}, is.GetBoundsJ(Interior))
		assert.Equal(t, IndexRange{2, 3}, is.GetBoundsK(Interior))
		assert.Equal(t, IndexRange{0, 11}, is.GetBoundsI(Entire))
		assert.Equal(t, IndexRange{0, 5}, is.GetBoundsK(Entire))
		assert.Equal(t, 8, is.GetBoundsI(Interior).NCells())
		assert.Equal(t, 12, is.NCellsTotal(X1DIR))
	}
	{ // 1D block, no ghosts in the inactive directions
		is := NewIndexShape(16, 1, 1, 3, 1)
		assert.Equal(t, IndexRange{3, 18}, is.GetBoundsI(Interior))
		assert.Equal(t, IndexRange{0, 0}, is.GetBoundsJ(Interior))
		assert.Equal(t, IndexRange{0, 0}, is.GetBoundsK(Entire))
		assert.Equal(t, 1, is.NCellsTotal(X3DIR))
	}
	{ // One cell thick block of a 3D mesh keeps its ghosts
		is := NewIndexShape(8, 1, 4, 2, 3)
		assert.Equal(t, IndexRange{2, 2}, is.GetBoundsJ(Interior))
		assert.Equal(t, IndexRange{0, 4}, is.GetBoundsJ(Entire))
		assert.Equal(t, 5, is.NCellsTotal(X2DIR))
	}
}

func TestCoordinates(t *testing.T) {
	is := NewIndexShape(4, 2, 1, 2, 2)
	c := NewUniformCartesian(is, [3]float64{-1, 0, -0.5}, [3]float64{1, 1, 0.5})
	assert.Equal(t, [3]float64{0.5, 0.5, 1}, c.Dx)
	assert.InDelta(t, -0.75, c.Xc1(2), 1.e-15)
	assert.InDelta(t, 0.75, c.Xc1(5), 1.e-15)
	assert.InDelta(t, -1.25, c.Xc1(1), 1.e-15) // ghost
	assert.InDelta(t, 0.25, c.Xc2(2), 1.e-15)
	assert.InDelta(t, 0., c.Xc3(0), 1.e-15)
	assert.InDelta(t, 0.25, c.CellVolume(), 1.e-15)
}

func TestParArray4D(t *testing.T) {
	a := NewParArray4D("cons", NHYDRO, 2, 3, 4)
	a.Set(IEN, 1, 2, 3, 7)
	assert.Equal(t, 7., a.At(IEN, 1, 2, 3))
	assert.Equal(t, len(a.Data)-1, a.Index(IEN, 1, 2, 3))
	assert.Equal(t, 7., a.Var(IEN)[23])
	assert.Len(t, a.Var(IDN), 24)
	assert.Panics(t, func() { a.At(NHYDRO, 0, 0, 0) })
	assert.Panics(t, func() { a.Set(IDN, 0, 3, 0, 1) })

	h := a.GetHostMirrorAndCopy()
	assert.Equal(t, a.Data, h.Data)
	h.Set(IDN, 0, 0, 0, 1)
	assert.Equal(t, 0., a.At(IDN, 0, 0, 0))
	require.NoError(t, a.DeepCopy(h))
	assert.Equal(t, 1., a.At(IDN, 0, 0, 0))
	assert.Error(t, a.DeepCopy(NewParArray4D("other", NHYDRO, 1, 1, 1)))
	assert.Equal(t, make([]float64, len(a.Data)), a.GetHostMirror().Data)
}

func newPin(t *testing.T, deck string) *InputParameters.ParameterInput {
	pin := InputParameters.NewParameterInput()
	require.NoError(t, pin.Parse([]byte(deck)))
	return pin
}

func TestMesh(t *testing.T) {
	{ // 3D mesh of 2x2x2 blocks over 3 ranks
		pin := newPin(t, `
parthenon/mesh:
  nx1: 16
  x1min: -1
  x1max: 1
  nx2: 8
  x2min: -0.5
  x2max: 0.5
  nx3: 8
  x3min: -0.5
  x3max: 0.5
parthenon/meshblock:
  nx1: 8
  nx2: 4
  nx3: 4
`)
		m, err := NewMesh(pin, 3)
		require.NoError(t, err)
		assert.Equal(t, [3]int{2, 2, 2}, m.NBlocks)
		assert.Equal(t, 3, m.Ndim())
		require.Len(t, m.Blocks, 8)
		var (
			count  int
			cells  int
			volume float64
		)
		for rank := 0; rank < 3; rank++ {
			for _, pmb := range m.RankBlocks(rank) {
				assert.Equal(t, rank, pmb.Rank)
				assert.Equal(t, count, pmb.GID)
				count++
				cells += pmb.NumInteriorCells()
				volume += float64(pmb.NumInteriorCells()) * pmb.Coords.CellVolume()
			}
		}
		assert.Equal(t, 8, count)
		assert.Equal(t, 16*8*8, cells)
		assert.InDelta(t, 2., volume, 1.e-12)
		// Morton order: first block is the lower corner, second its x1 neighbour
		assert.Equal(t, [3]int{0, 0, 0}, m.Blocks[0].LogicalLoc)
		assert.Equal(t, [3]int{1, 0, 0}, m.Blocks[1].LogicalLoc)
		assert.Equal(t, [3]int{0, 1, 0}, m.Blocks[2].LogicalLoc)
		assert.Equal(t, [3]int{1, 1, 1}, m.Blocks[7].LogicalLoc)
		// Block coordinates tile the domain
		pmb := m.Blocks[7]
		ib := pmb.Cellbounds.GetBoundsI(Interior)
		assert.InDelta(t, 0.0625, pmb.Coords.Xc1(ib.S), 1.e-14)
		assert.InDelta(t, 0.9375, pmb.Coords.Xc1(ib.E), 1.e-14)
		assert.Equal(t, 2, pin.Blocks["parthenon/mesh"]["nghost"])
	}
	{ // 1D mesh, defaults for the inactive directions
		pin := newPin(t, `
parthenon/mesh:
  nx1: 32
  x1min: 0
  x1max: 4
`)
		m, err := NewMesh(pin, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Ndim())
		require.Len(t, m.Blocks, 1)
		assert.Equal(t, 1, len(m.RankBlocks(0)))
		assert.Equal(t, 0, len(m.RankBlocks(3)))
		assert.InDelta(t, 0., m.Blocks[0].Coords.Xc2(0), 1.e-15)
	}
	{ // One cell thick blocks of a 3D mesh keep ghosts in every direction
		pin := newPin(t, `
parthenon/mesh: {nx1: 8, x1min: 0, x1max: 1, nx2: 4, x2min: 0, x2max: 1, nx3: 4, x3min: 0, x3max: 1}
parthenon/meshblock: {nx1: 8, nx2: 1, nx3: 4}
`)
		m, err := NewMesh(pin, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, m.Ndim())
		require.Len(t, m.Blocks, 4)
		pmb := m.Blocks[1]
		jb := pmb.Cellbounds.GetBoundsJ(Interior)
		assert.Equal(t, IndexRange{2, 2}, jb)
		assert.Equal(t, IndexRange{0, 4}, pmb.Cellbounds.GetBoundsJ(Entire))
		assert.Equal(t, 1, jb.NCells())
		assert.InDelta(t, 0.375, pmb.Coords.Xc2(jb.S), 1.e-15)
		assert.Equal(t, 8*1*4, pmb.NumInteriorCells())
	}
	{ // Bad decompositions
		_, err := NewMesh(newPin(t, `
parthenon/mesh: {nx1: 10, x1min: 0, x1max: 1}
parthenon/meshblock: {nx1: 4}
`), 1)
		assert.True(t, errors.Is(err, ErrBlockDecomposition))
		_, err = NewMesh(newPin(t, `
parthenon/mesh: {nx1: 10, x1min: 1, x1max: 1}
`), 1)
		assert.True(t, errors.Is(err, ErrBlockDecomposition))
		_, err = NewMesh(newPin(t, `
parthenon/mesh: {x1min: 0, x1max: 1}
`), 1)
		assert.True(t, errors.Is(err, InputParameters.ErrMissingParameter))
		_, err = NewMesh(newPin(t, `
parthenon/mesh: {nx1: 10, x1min: 0, x1max: 1}
`), 0)
		assert.Error(t, err)
	}
}

func TestMortonKey(t *testing.T) {
	assert.Equal(t, uint64(0), MortonKey([3]int{0, 0, 0}))
	assert.Equal(t, uint64(1), MortonKey([3]int{1, 0, 0}))
	assert.Equal(t, uint64(2), MortonKey([3]int{0, 1, 0}))
	assert.Equal(t, uint64(4), MortonKey([3]int{0, 0, 1}))
	assert.Equal(t, uint64(8), MortonKey([3]int{2, 0, 0}))
	assert.Equal(t, uint64(63), MortonKey([3]int{3, 3, 3}))
}
