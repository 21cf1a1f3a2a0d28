// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"flag"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/patchymc/cells"
	"github.com/cpmech/patchymc/oracle"
	"github.com/cpmech/patchymc/particle"
	"github.com/cpmech/patchymc/vmmc"
	"github.com/go-gl/mathgl/mgl64"
)

// squareWellInteractor bonds any pair within a fixed radius with a
// constant energy, regardless of patch orientation: enough to drive the
// energy distribution without a real patch model.
type squareWellInteractor struct {
	sys    *particle.System
	radius float64
}

func (s squareWellInteractor) Interact(p, q int) (oracle.Outcome, mgl64.Vec3) {
	d := s.sys.Particles[q].R.Sub(s.sys.Particles[p].R)
	if d.Dot(d) > s.radius*s.radius {
		return oracle.None, mgl64.Vec3{}
	}
	return oracle.Bond, mgl64.Vec3{1, 0, 0}
}

func main() {

	// input data
	n := 40
	boxSide := 12.0
	rcut := 1.5
	temperature := 1.0
	steps := 20000
	burnIn := 2000

	// parse flags
	flag.Parse()
	if len(flag.Args()) > 0 {
		steps = io.Atoi(flag.Arg(0))
	}
	if len(flag.Args()) > 1 {
		temperature = io.Atof(flag.Arg(1))
	}

	box := mgl64.Vec3{boxSide, boxSide, boxSide}
	sys := particle.New(box, rcut, temperature, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}, n, 1)
	idx := cells.Init(box, rcut, n)

	// scatter particles on a loose cubic lattice
	side := 1
	for side*side*side < n {
		side++
	}
	spacing := boxSide / float64(side)
	for i := 0; i < n; i++ {
		ix, iy, iz := i%side, (i/side)%side, i/(side*side)
		r := mgl64.Vec3{float64(ix) * spacing, float64(iy) * spacing, float64(iz) * spacing}
		sys.AddParticle(r, []mgl64.Vec3{r.Add(mgl64.Vec3{0.1, 0, 0})})
	}
	idx.Fill(sys.N(), sys, func(p, cl int) { sys.Particles[p].Cell = cl })

	adapter := oracle.New(squareWellInteractor{sys: sys, radius: rcut}, mgl64.Vec3{-1, 0, 0})
	rng := vmmc.NewMathRandRng(1)
	cfg := vmmc.Config{MaxMove: boxSide / 2, MaxCluster: n, DispMax: 0.3, ThetaMax: 0.3}
	engine := vmmc.New(cfg, idx, adapter, rng, n)

	energies := make([]float64, 0, steps-burnIn)
	for step := 0; step < steps; step++ {
		engine.Move(sys)
		if step >= burnIn {
			energies = append(energies, sys.Energy)
		}
	}

	io.Pf("accepted %d/%d moves\n", engine.Accepted, engine.Tries)

	plt.Hist([][]float64{energies}, []string{io.Sf("T=%g", temperature)}, "")
	plt.Gll("energy", "count", "")
	plt.Show()
}
