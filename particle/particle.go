// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package particle holds the rigid-body data model (§3 of the design):
// a Particle carries a position and a rigid set of patch sites, and a
// System owns the ordered particle array, the box, the pair-oracle
// parameters, and the running energy.
package particle

import (
	"github.com/cpmech/gosl/chk"
	"github.com/go-gl/mathgl/mgl64"
)

// Particle is one rigid body: a center position plus ordered patch sites
// that translate with the center and rotate rigidly about it.
type Particle struct {
	Index   int
	R       mgl64.Vec3
	Patches []mgl64.Vec3

	// Snapshot, valid only between a paired Store/Restore.
	rOld       mgl64.Vec3
	patchesOld []mgl64.Vec3
	stored     bool

	Cell    int
	CellOld int
}

// NewParticle allocates a particle with nPatches patch sites, all
// initially coincident with the center (callers place them afterwards).
func NewParticle(index, nPatches int) *Particle {
	return &Particle{
		Index:      index,
		Patches:    make([]mgl64.Vec3, nPatches),
		patchesOld: make([]mgl64.Vec3, nPatches),
		Cell:       -1,
		CellOld:    -1,
	}
}

// Store snapshots R and Patches. Must be paired with exactly one Restore
// before the next Store on the same particle (snapshots do not nest).
func (p *Particle) Store() {
	if p.stored {
		chk.Panic("particle %d: Store called while a snapshot is already pending", p.Index)
	}
	p.rOld = p.R
	copy(p.patchesOld, p.Patches)
	p.stored = true
}

// Restore reverts R and Patches to the last Store.
func (p *Particle) Restore() {
	if !p.stored {
		chk.Panic("particle %d: Restore called without a matching Store", p.Index)
	}
	p.R = p.rOld
	copy(p.Patches, p.patchesOld)
	p.stored = false
}

// Drop clears a pending Store without reverting R or Patches, committing
// whatever trial move was applied since. Must be paired with a prior
// Store the same way Restore is.
func (p *Particle) Drop() {
	if !p.stored {
		chk.Panic("particle %d: Drop called without a matching Store", p.Index)
	}
	p.stored = false
}

// StoredR returns the position captured by the last Store, for link
// enumeration's image canonicalization, which anchors rewrites to the
// anchor particle's pre-trial-move position regardless of whether the
// current call happens before or after the trial move is applied.
func (p *Particle) StoredR() mgl64.Vec3 {
	if !p.stored {
		chk.Panic("particle %d: StoredR called without a pending snapshot", p.Index)
	}
	return p.rOld
}

// System is the simulation state the core borrows from the driver.
type System struct {
	Box      mgl64.Vec3
	Rcut     float64
	SqrRcut  float64
	T        float64
	K        mgl64.Vec3
	E        mgl64.Vec3
	Particles []*Particle
	NMax     int
	NPatches int
	Energy   float64

	// Overlap is not written by the core packages: the pair oracle
	// adapter keeps its own single-cycle flag (oracle.Adapter.Overlap).
	Overlap bool
}

// New allocates a System with capacity nMax and nPatches patch sites per
// particle; the particle slice starts empty, callers append up to nMax.
func New(box mgl64.Vec3, rcut, t float64, k, e mgl64.Vec3, nMax, nPatches int) *System {
	if rcut <= 0 {
		chk.Panic("particle.System: rcut must be positive, got %g", rcut)
	}
	if nMax <= 0 {
		chk.Panic("particle.System: N_max must be positive, got %d", nMax)
	}
	return &System{
		Box:      box,
		Rcut:     rcut,
		SqrRcut:  rcut * rcut,
		T:        t,
		K:        k,
		E:        e,
		NMax:     nMax,
		NPatches: nPatches,
	}
}

// N returns the current particle count.
func (s *System) N() int { return len(s.Particles) }

// AddParticle appends a new particle at the next stable index, panicking
// if capacity NMax is exceeded.
func (s *System) AddParticle(r mgl64.Vec3, patches []mgl64.Vec3) *Particle {
	if len(s.Particles) >= s.NMax {
		chk.Panic("particle.System: cannot add particle, N_max=%d reached", s.NMax)
	}
	p := NewParticle(len(s.Particles), s.NPatches)
	p.R = r
	copy(p.Patches, patches)
	s.Particles = append(s.Particles, p)
	return p
}

// Position implements cells.Positioner.
func (s *System) Position(p int) mgl64.Vec3 { return s.Particles[p].R }
