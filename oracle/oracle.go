// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oracle adapts an external pair-interaction routine to a scalar
// energy and carries the single-cycle overlap signal it can raise.
package oracle

import "github.com/go-gl/mathgl/mgl64"

// Outcome is the ternary result the pair oracle can return.
type Outcome int

const (
	None Outcome = iota
	Bond
	Overlap
)

// overlapEnergy is the sentinel energy returned on Overlap; callers must
// never consume it, they check the Overlap flag instead (§4.4).
const overlapEnergy = 1e8

// Interactor is the external pair-interaction collaborator (§6). O is the
// oracle's own bond vector, only meaningful when the outcome is Bond.
type Interactor interface {
	Interact(p, q int) (outcome Outcome, o mgl64.Vec3)
}

// Adapter wraps an Interactor and exposes the spec's (energy, overlap)
// result, tracking the single-cycle overlap flag.
type Adapter struct {
	interact Interactor
	e        mgl64.Vec3 // per-system vector dotted against the oracle's O on a bond
	Overlap  bool
}

// New builds an Adapter over the given Interactor and system vector e.
func New(interact Interactor, e mgl64.Vec3) *Adapter {
	return &Adapter{interact: interact, e: e}
}

// PairEnergy evaluates the pair interaction between p and q, returning a
// scalar energy. On Overlap it sets the Overlap flag and returns the
// sentinel; the caller is responsible for reading and clearing Overlap
// immediately afterwards.
func (a *Adapter) PairEnergy(p, q int) float64 {
	outcome, o := a.interact.Interact(p, q)
	switch outcome {
	case Bond:
		return a.e.Dot(o)
	case Overlap:
		a.Overlap = true
		return overlapEnergy
	default:
		return 0
	}
}

// ClearOverlap resets the single-cycle overlap signal.
func (a *Adapter) ClearOverlap() { a.Overlap = false }
