// Package driver plays the part of the host framework for a problem
// generator: it builds the mesh, runs mesh initialization on every rank, then
// generates all blocks concurrently.
//
// Ranks are simulated within one process. Each rank owns its own hydro
// package and parameter store, as separate processes would, and rank 0 is the
// only one that reports.
package driver

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/hydro"
	"github.com/notargets/movingcloud/mesh"
	"github.com/notargets/movingcloud/units"
	"github.com/notargets/movingcloud/utils"
)

type Config struct {
	NRanks   int
	NThreads int                // Worker goroutines per rank, defaults to GOMAXPROCS/NRanks
	Report   io.Writer          // Destination of the reporting rank's summary
	Logger   logrus.FieldLogger // Defaults to the logrus standard logger
	// Count CPU instructions spent in each block fill (Linux perf events)
	CountInstructions bool
}

type Rank struct {
	ID     int
	Hydro  *hydro.Package
	Blocks []*mesh.MeshBlock
}

type Driver struct {
	Config
	Pin       *InputParameters.ParameterInput
	Mesh      *mesh.Mesh
	Ranks     []*Rank
	Generator *Generator

	initialized  bool
	instructions uint64
	log          logrus.FieldLogger
}

// NewDriver selects the problem generator named by <problem/generator>
// (default moving_cloud) and builds the mesh.
func NewDriver(pin *InputParameters.ParameterInput, cfg Config) (d *Driver, err error) {
	var (
		name string
	)
	if cfg.NRanks < 1 {
		cfg.NRanks = 1
	}
	if cfg.NThreads < 1 {
		if cfg.NThreads = runtime.GOMAXPROCS(0) / cfg.NRanks; cfg.NThreads < 1 {
			cfg.NThreads = 1
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	d = &Driver{
		Config: cfg,
		Pin:    pin,
		log:    cfg.Logger,
	}
	if name, err = pin.GetOrAddString("problem", "generator", "moving_cloud"); err != nil {
		return nil, err
	}
	if d.Generator, err = NewGenerator(name); err != nil {
		return nil, err
	}
	if d.Mesh, err = mesh.NewMesh(pin, cfg.NRanks); err != nil {
		return nil, err
	}
	d.Ranks = make([]*Rank, cfg.NRanks)
	for r := range d.Ranks {
		d.Ranks[r] = &Rank{ID: r, Blocks: d.Mesh.RankBlocks(r)}
	}
	d.log.WithFields(logrus.Fields{
		"generator": d.Generator.Name,
		"blocks":    len(d.Mesh.Blocks),
		"ranks":     cfg.NRanks,
		"threads":   cfg.NThreads,
		"ndim":      d.Mesh.Ndim(),
	}).Info("mesh constructed")
	return
}

// Initialize runs mesh initialization on every rank and freezes each rank's
// parameter store. It must complete before GenerateProblem.
func (d *Driver) Initialize(ctx context.Context) (err error) {
	var (
		wg   sync.WaitGroup
		errs = make([]error, len(d.Ranks))
	)
	for _, rank := range d.Ranks {
		wg.Add(1)
		go func(rank *Rank) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[rank.ID] = err
				return
			}
			errs[rank.ID] = d.initializeRank(rank)
		}(rank)
	}
	wg.Wait()
	for _, err = range errs {
		if err != nil {
			return
		}
	}
	d.initialized = true
	return
}

func (d *Driver) initializeRank(rank *Rank) (err error) {
	var (
		u *units.Units
	)
	if u, err = units.NewUnits(d.Pin); err != nil {
		return
	}
	if rank.Hydro, err = hydro.Initialize(d.Pin, u); err != nil {
		return
	}
	if err = d.Generator.InitUserMeshData(d.Pin, rank.Hydro, rank.ID == 0, d.Report); err != nil {
		return fmt.Errorf("rank %d: %w", rank.ID, err)
	}
	rank.Hydro.Params.Freeze()
	d.log.WithFields(logrus.Fields{
		"rank":   rank.ID,
		"params": len(rank.Hydro.Params.Keys()),
	}).Debug("mesh data initialized")
	return
}

// GenerateProblem fills every block, NThreads workers per rank. The first
// failure cancels the blocks not yet started.
func (d *Driver) GenerateProblem(ctx context.Context) (err error) {
	if !d.initialized {
		return fmt.Errorf("problem generation requested before mesh initialization")
	}
	var (
		wg     sync.WaitGroup
		start  = time.Now()
		errs   = make([][]error, len(d.Ranks))
		cancel context.CancelFunc
	)
	ctx, cancel = context.WithCancel(ctx)
	defer cancel()
	for _, rank := range d.Ranks {
		pm := utils.NewPartitionMap(d.NThreads, len(rank.Blocks))
		errs[rank.ID] = make([]error, pm.ParallelDegree)
		for np := 0; np < pm.ParallelDegree; np++ {
			// More workers than blocks leaves some buckets empty
			if pm.GetBucketDimension(np) == 0 {
				continue
			}
			wg.Add(1)
			go func(rank *Rank, np int) {
				defer wg.Done()
				kMin, kMax := pm.GetBucketRange(np)
				for _, pmb := range rank.Blocks[kMin:kMax] {
					if err := ctx.Err(); err != nil {
						return
					}
					if err := d.generateBlock(rank, pmb); err != nil {
						errs[rank.ID][np] = err
						cancel()
						return
					}
				}
			}(rank, np)
		}
	}
	wg.Wait()
	for _, rankErrs := range errs {
		for _, err = range rankErrs {
			if err != nil {
				return
			}
		}
	}
	if err = ctx.Err(); err != nil {
		return
	}
	alloc, sys, numGC := utils.MemUsageMiB()
	fields := logrus.Fields{
		"blocks":    len(d.Mesh.Blocks),
		"elapsed":   time.Since(start),
		"alloc_MiB": alloc,
		"sys_MiB":   sys,
		"num_gc":    numGC,
	}
	if d.CountInstructions {
		fields["instructions"] = atomic.LoadUint64(&d.instructions)
	}
	d.log.WithFields(fields).Info("problem generated")
	return
}

func (d *Driver) generateBlock(rank *Rank, pmb *mesh.MeshBlock) (err error) {
	var (
		count uint64
		fill  = func() error {
			return d.Generator.ProblemGenerator(pmb, d.Pin, rank.Hydro.Params)
		}
	)
	if d.CountInstructions {
		count, err = countInstructions(fill)
		atomic.AddUint64(&d.instructions, count)
	} else {
		err = fill()
	}
	if err != nil {
		return fmt.Errorf("rank %d, block %d: %w", rank.ID, pmb.GID, err)
	}
	d.log.WithFields(logrus.Fields{
		"rank":  rank.ID,
		"block": pmb.GID,
		"cells": pmb.NumInteriorCells(),
	}).Debug("block generated")
	return
}

// Instructions is the CPU instruction count of all block fills, when counted.
func (d *Driver) Instructions() uint64 {
	return atomic.LoadUint64(&d.instructions)
}

// Run initializes and generates the problem, then reports diagnostics.
func (d *Driver) Run(ctx context.Context) (diag *Diagnostics, err error) {
	if err = d.Initialize(ctx); err != nil {
		return
	}
	if err = d.GenerateProblem(ctx); err != nil {
		return
	}
	diag = d.Diagnostics()
	diag.Log(d.log)
	if !diag.Finite {
		err = fmt.Errorf("generated state contains non-finite values")
	}
	return
}
