package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/utils"
)

var ErrBlockDecomposition = errors.New("mesh cannot be decomposed into blocks")

type MeshBlock struct {
	GID        int    // Global block ID, Morton ordered
	Rank       int    // Owning rank
	LogicalLoc [3]int // Block position in the root grid of blocks
	Cellbounds IndexShape
	Coords     *UniformCartesian
	Cons       *ParArray4D // Conserved variables, "device" storage
}

func NewMeshBlock(gid int, loc [3]int, shape IndexShape, xmin, xmax [3]float64) (pmb *MeshBlock) {
	pmb = &MeshBlock{
		GID:        gid,
		LogicalLoc: loc,
		Cellbounds: shape,
		Coords:     NewUniformCartesian(shape, xmin, xmax),
		Cons: NewParArray4D("cons", NHYDRO,
			shape.NCellsTotal(X3DIR), shape.NCellsTotal(X2DIR), shape.NCellsTotal(X1DIR)),
	}
	return
}

// NumInteriorCells is the number of cells a problem generator must fill.
func (pmb *MeshBlock) NumInteriorCells() int {
	return pmb.Cellbounds.GetBoundsI(Interior).NCells() *
		pmb.Cellbounds.GetBoundsJ(Interior).NCells() *
		pmb.Cellbounds.GetBoundsK(Interior).NCells()
}

// Mesh is a uniform root grid split into equally sized blocks, with no
// refinement.
type Mesh struct {
	Nx         [3]int
	Xmin, Xmax [3]float64
	BlockNx    [3]int
	NBlocks    [3]int
	Nghost     int
	NRanks     int
	Blocks     []*MeshBlock
	Partitions *utils.PartitionMap
}

// NewMesh reads <parthenon/mesh> and <parthenon/meshblock> and distributes
// the blocks over nRanks ranks.
func NewMesh(pin *InputParameters.ParameterInput, nRanks int) (m *Mesh, err error) {
	const (
		meshBlock  = "parthenon/mesh"
		blockBlock = "parthenon/meshblock"
	)
	if nRanks < 1 {
		return nil, fmt.Errorf("number of ranks must be at least 1, have %d", nRanks)
	}
	m = &Mesh{NRanks: nRanks}
	if m.Nx[0], err = pin.GetInteger(meshBlock, "nx1"); err != nil {
		return nil, err
	}
	if m.Nx[1], err = pin.GetOrAddInteger(meshBlock, "nx2", 1); err != nil {
		return nil, err
	}
	if m.Nx[2], err = pin.GetOrAddInteger(meshBlock, "nx3", 1); err != nil {
		return nil, err
	}
	if m.Nghost, err = pin.GetOrAddInteger(meshBlock, "nghost", 2); err != nil {
		return nil, err
	}
	for dir := 0; dir < 3; dir++ {
		var (
			minName = fmt.Sprintf("x%dmin", dir+1)
			maxName = fmt.Sprintf("x%dmax", dir+1)
			nxName  = fmt.Sprintf("nx%d", dir+1)
		)
		if dir == X1DIR {
			if m.Xmin[dir], err = pin.GetReal(meshBlock, minName); err != nil {
				return nil, err
			}
			if m.Xmax[dir], err = pin.GetReal(meshBlock, maxName); err != nil {
				return nil, err
			}
		} else {
			if m.Xmin[dir], err = pin.GetOrAddReal(meshBlock, minName, -0.5); err != nil {
				return nil, err
			}
			if m.Xmax[dir], err = pin.GetOrAddReal(meshBlock, maxName, 0.5); err != nil {
				return nil, err
			}
		}
		if m.Nx[dir] < 1 {
			return nil, fmt.Errorf("%w: %s/%s = %d", ErrBlockDecomposition, meshBlock, nxName, m.Nx[dir])
		}
		if !(m.Xmax[dir] > m.Xmin[dir]) {
			return nil, fmt.Errorf("%w: %s/%s must exceed %s", ErrBlockDecomposition, meshBlock, maxName, minName)
		}
		if m.BlockNx[dir], err = pin.GetOrAddInteger(blockBlock, nxName, m.Nx[dir]); err != nil {
			return nil, err
		}
		if m.BlockNx[dir] < 1 || m.Nx[dir]%m.BlockNx[dir] != 0 {
			return nil, fmt.Errorf("%w: %s/%s = %d does not divide %s/%s = %d",
				ErrBlockDecomposition, blockBlock, nxName, m.BlockNx[dir], meshBlock, nxName, m.Nx[dir])
		}
		m.NBlocks[dir] = m.Nx[dir] / m.BlockNx[dir]
	}
	if m.Nghost < 1 {
		return nil, fmt.Errorf("%s/nghost must be at least 1, have %d", meshBlock, m.Nghost)
	}
	m.buildBlocks()
	return
}

func (m *Mesh) buildBlocks() {
	var (
		shape = NewIndexShape(m.BlockNx[0], m.BlockNx[1], m.BlockNx[2], m.Nghost, m.Ndim())
		locs  [][3]int
	)
	for lk := 0; lk < m.NBlocks[2]; lk++ {
		for lj := 0; lj < m.NBlocks[1]; lj++ {
			for li := 0; li < m.NBlocks[0]; li++ {
				locs = append(locs, [3]int{li, lj, lk})
			}
		}
	}
	sort.Slice(locs, func(a, b int) bool {
		return MortonKey(locs[a]) < MortonKey(locs[b])
	})
	m.Partitions = utils.NewPartitionMap(m.NRanks, len(locs))
	m.Blocks = make([]*MeshBlock, len(locs))
	for gid, loc := range locs {
		var xmin, xmax [3]float64
		for dir := 0; dir < 3; dir++ {
			dx := (m.Xmax[dir] - m.Xmin[dir]) / float64(m.NBlocks[dir])
			xmin[dir] = m.Xmin[dir] + float64(loc[dir])*dx
			xmax[dir] = m.Xmin[dir] + float64(loc[dir]+1)*dx
		}
		m.Blocks[gid] = NewMeshBlock(gid, loc, shape, xmin, xmax)
		m.Blocks[gid].Rank, _, _ = m.Partitions.GetBucket(gid)
	}
}

// RankBlocks returns the blocks owned by rank.
func (m *Mesh) RankBlocks(rank int) []*MeshBlock {
	kMin, kMax := m.Partitions.GetBucketRange(rank)
	return m.Blocks[kMin:kMax]
}

func (m *Mesh) Ndim() (ndim int) {
	ndim = 1
	for dir := 1; dir < 3; dir++ {
		if m.Nx[dir] > 1 {
			ndim++
		}
	}
	return
}

// MortonKey interleaves the bits of a logical location, x1 fastest.
func MortonKey(loc [3]int) (key uint64) {
	for bit := 0; bit < 21; bit++ {
		for dir := 0; dir < 3; dir++ {
			key |= uint64((loc[dir]>>bit)&1) << (3*bit + dir)
		}
	}
	return
}
