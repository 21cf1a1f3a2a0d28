// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command patchymc drives independent replicas of the VMMC core over an
// MPI rank set, running this rank's share of replicas concurrently with
// golang.org/x/sync/errgroup.
package main

import (
	"context"
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/patchymc/cells"
	"github.com/cpmech/patchymc/config"
	"github.com/cpmech/patchymc/oracle"
	"github.com/cpmech/patchymc/particle"
	"github.com/cpmech/patchymc/restart"
	"github.com/cpmech/patchymc/vmmc"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configPath  string
	steps       int
	replicas    int
	seed        int64
	restartPath string
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	root := &cobra.Command{
		Use:   "patchymc",
		Short: "run independent VMMC replicas of a patchy-particle system",
		RunE:  run,
	}
	root.Flags().StringVar(&configPath, "config", "", "YAML system/vmmc configuration (required)")
	root.Flags().IntVar(&steps, "steps", 1000, "VMMC moves per replica")
	root.Flags().IntVar(&replicas, "replicas", 1, "independent replicas run by this rank")
	root.Flags().Int64Var(&seed, "seed", 1, "base RNG seed; replica i on rank r uses seed+r*replicas+i")
	root.Flags().StringVar(&restartPath, "restart-dir", "", "directory for per-replica checkpoints (optional)")
	root.MarkFlagRequired("config")

	if err := root.Execute(); err != nil {
		chk.Panic("%v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	doc, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if mpi.Rank() == 0 {
		io.Pf("patchymc: rank 0 of %d, %d replica(s)/rank, %d steps\n", mpi.Size(), replicas, steps)
	}

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < replicas; i++ {
		replicaIdx := i
		g.Go(func() error {
			return runReplica(doc, replicaIdx, seed+int64(mpi.Rank()*replicas+replicaIdx))
		})
	}
	return g.Wait()
}

// runReplica builds one independent System+Engine from doc and advances it
// steps times, writing a checkpoint at the end if restartPath is set.
func runReplica(doc config.Doc, replicaIdx int, rngSeed int64) error {
	sd := doc.System
	box := mgl64.Vec3{sd.Box[0], sd.Box[1], sd.Box[2]}
	k := mgl64.Vec3{sd.K[0], sd.K[1], sd.K[2]}
	e := mgl64.Vec3{sd.E[0], sd.E[1], sd.E[2]}

	sys := particle.New(box, sd.Rcut, sd.T, k, e, sd.NMax, sd.NPatches)
	idx := cells.Init(box, sd.Rcut, sd.NMax)
	for _, p := range sd.Particles {
		r := mgl64.Vec3{p.R[0], p.R[1], p.R[2]}
		patches := make([]mgl64.Vec3, len(p.Patches))
		for i, pt := range p.Patches {
			patches[i] = mgl64.Vec3{pt[0], pt[1], pt[2]}
		}
		sys.AddParticle(r, patches)
	}
	idx.Fill(sys.N(), sys, func(p, cl int) { sys.Particles[p].Cell = cl })

	cfg, err := vmmc.ConfigFromPrms(doc.Prms())
	if err != nil {
		return err
	}

	adapter := oracle.New(demoInteractor{sys: sys}, e)
	rng := vmmc.NewMathRandRng(rngSeed)
	engine := vmmc.New(cfg, idx, adapter, rng, sd.NMax)

	for step := 0; step < steps; step++ {
		engine.Move(sys)
	}

	if mpi.Rank() == 0 {
		io.Pf("replica %d: %d/%d accepted, energy=%g\n", replicaIdx, engine.Accepted, engine.Tries, sys.Energy)
	}

	if restartPath != "" {
		path := fmt.Sprintf("%s/replica-%d-%d.chk", restartPath, mpi.Rank(), replicaIdx)
		return restart.Save(path, sys)
	}
	return nil
}

const demoAlignTol = 0.95

// demoInteractor is a minimal square-well patch oracle so the driver is
// runnable standalone: two particles bond if, within rcut, one of p's
// patches points along the p->q center axis with cosine at least
// demoAlignTol; q's patches are not consulted. The
// real pair oracle is an external collaborator the core never implements
// itself — this exists only to make the binary runnable.
type demoInteractor struct {
	sys *particle.System
}

func (d demoInteractor) Interact(p, q int) (oracle.Outcome, mgl64.Vec3) {
	pp, qq := d.sys.Particles[p], d.sys.Particles[q]
	axis := qq.R.Sub(pp.R)
	dist2 := axis.Dot(axis)
	if dist2 > d.sys.SqrRcut {
		return oracle.None, mgl64.Vec3{}
	}
	if dist2 < 1e-6 {
		return oracle.Overlap, mgl64.Vec3{}
	}
	axisN := axis.Mul(1 / axis.Len())
	best := -1.0
	for _, pp0 := range pp.Patches {
		po := pp0.Sub(pp.R)
		if po.Len() < 1e-12 {
			continue
		}
		cos := po.Mul(1 / po.Len()).Dot(axisN)
		if cos > best {
			best = cos
		}
	}
	if best < demoAlignTol {
		return oracle.None, mgl64.Vec3{}
	}
	return oracle.Bond, mgl64.Vec3{1, 0, 0}
}
