// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vmmc

import (
	"math/rand"

	"github.com/cpmech/patchymc/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Rng is the random-number collaborator this package needs from its
// caller: a uniform (0,1) source and a uniform-on-sphere sampler, plus
// the biased small-angle sampler built on top of them.
type Rng interface {
	Float64() float64        // uniform on (0, 1)
	IntN(n int) int          // uniform integer in [0, n)
	UnitVector() mgl64.Vec3  // uniform direction on the unit sphere
	BiasedAngle(max float64) float64
}

// MathRandRng is the default Rng built on math/rand, for callers that do
// not supply their own random-number infrastructure.
type MathRandRng struct {
	R *rand.Rand
}

// NewMathRandRng wraps a seeded math/rand source.
func NewMathRandRng(seed int64) MathRandRng {
	return MathRandRng{R: rand.New(rand.NewSource(seed))}
}

func (m MathRandRng) Float64() float64       { return m.R.Float64() }
func (m MathRandRng) IntN(n int) int         { return m.R.Intn(n) }
func (m MathRandRng) UnitVector() mgl64.Vec3 { return geom.RandomUnitVector(m.R) }
func (m MathRandRng) BiasedAngle(max float64) float64 {
	return geom.BiasedAngle(m.R, max)
}
