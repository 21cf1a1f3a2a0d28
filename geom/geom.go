// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom holds the small set of vector and rotation operations the
// VMMC move needs: minimum-image differences under a rectangular periodic
// box, a uniform sampler on the unit sphere, a biased small-angle sampler,
// and axis-angle rotation matrices.
package geom

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Box holds the three positive side lengths of a rectangular periodic box.
type Box = mgl64.Vec3

// MinImage returns the minimum-image vector from a to b: the unique
// translate of (b-a) with every component folded into [-box[d]/2, +box[d]/2].
//
// Ties (a component exactly half a box length) round to even via
// math.RoundToEven, matching libc's rint default; the original C source
// notes the tie-break choice is immaterial physically.
func MinImage(box, a, b mgl64.Vec3) mgl64.Vec3 {
	c := b.Sub(a)
	for d := 0; d < 3; d++ {
		c[d] -= box[d] * math.RoundToEven(c[d]/box[d])
	}
	return c
}

// RandomUnitVector draws a direction uniformly on the unit sphere via
// normalizing a standard-normal 3-vector.
func RandomUnitVector(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		n := v.Len()
		if n > 1e-12 {
			return v.Mul(1 / n)
		}
	}
}

// BiasedAngle samples an angle in [0, thetaMax] whose density is
// proportional to sin(theta)^2 (approximated, for small thetaMax, by
// theta^2), via acceptance-rejection against the uniform envelope on
// [0, thetaMax] scaled by the peak density at thetaMax.
//
// The target density is theta^2 for every thetaMax (sin(theta)^2 itself is
// not evaluated): a uniform candidate theta is accepted with probability
// (theta/thetaMax)^2.
func BiasedAngle(rng *rand.Rand, thetaMax float64) float64 {
	if thetaMax <= 0 {
		return 0
	}
	for {
		theta := rng.Float64() * thetaMax
		weight := (theta / thetaMax) * (theta / thetaMax)
		if rng.Float64() < weight {
			return theta
		}
	}
}

// Rotation is a rotation by some angle about some axis, built once per
// VMMC rotation move (§4.2) and applied to every cluster member (§4.6).
type Rotation = mgl64.Quat

// NewRotation builds the rotation for a right-handed turn by angle theta
// about the (assumed-normalized) axis, via the standard axis-angle formula.
func NewRotation(axis mgl64.Vec3, theta float64) Rotation {
	return mgl64.QuatRotate(theta, axis)
}

// Apply rotates v by r.
func Apply(r Rotation, v mgl64.Vec3) mgl64.Vec3 {
	return r.Rotate(v)
}
