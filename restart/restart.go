// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restart checkpoints and restores a particle.System's state.
// This sits outside the VMMC core on purpose: trajectory I/O is an
// external collaborator the core never touches directly.
package restart

import (
	"os"

	"github.com/cpmech/patchymc/particle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/vmihailenco/msgpack/v5"
)

// vec3 is a msgpack-friendly mirror of mgl64.Vec3, which has no field
// tags of its own.
type vec3 [3]float64

// snapshot is the on-disk checkpoint format: everything particle.New plus
// AddParticle needs to rebuild a System, and the running energy.
type snapshot struct {
	Box      vec3     `msgpack:"box"`
	Rcut     float64  `msgpack:"rcut"`
	T        float64  `msgpack:"t"`
	K        vec3     `msgpack:"k"`
	E        vec3     `msgpack:"e"`
	NMax     int      `msgpack:"n_max"`
	NPatches int      `msgpack:"n_patches"`
	Energy   float64  `msgpack:"energy"`
	Particles []particleSnapshot `msgpack:"particles"`
}

type particleSnapshot struct {
	R       vec3   `msgpack:"r"`
	Patches []vec3 `msgpack:"patches"`
}

// Save serializes sys to path via msgpack.
func Save(path string, sys *particle.System) error {
	snap := snapshot{
		Box:      vec3(sys.Box),
		Rcut:     sys.Rcut,
		T:        sys.T,
		K:        vec3(sys.K),
		E:        vec3(sys.E),
		NMax:     sys.NMax,
		NPatches: sys.NPatches,
		Energy:   sys.Energy,
	}
	snap.Particles = make([]particleSnapshot, sys.N())
	for i, p := range sys.Particles {
		ps := particleSnapshot{R: vec3(p.R), Patches: make([]vec3, len(p.Patches))}
		for j, patch := range p.Patches {
			ps.Patches[j] = vec3(patch)
		}
		snap.Particles[i] = ps
	}

	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load rebuilds a System from a checkpoint written by Save. The caller
// still owns (re)building the cell index and engine: a checkpoint is pure
// state, not a running simulation.
func Load(path string) (*particle.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	sys := particle.New(mgl64.Vec3(snap.Box), snap.Rcut, snap.T, mgl64.Vec3(snap.K), mgl64.Vec3(snap.E), snap.NMax, snap.NPatches)
	sys.Energy = snap.Energy
	for _, ps := range snap.Particles {
		patches := make([]mgl64.Vec3, len(ps.Patches))
		for j, patch := range ps.Patches {
			patches[j] = mgl64.Vec3(patch)
		}
		sys.AddParticle(mgl64.Vec3(ps.R), patches)
	}
	return sys, nil
}
