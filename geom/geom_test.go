// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/num"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestMinImageAcrossWrap(t *testing.T) {
	box := mgl64.Vec3{10, 10, 10}
	a := mgl64.Vec3{0.1, 0, 0}
	b := mgl64.Vec3{9.9, 0, 0}
	d := MinImage(box, a, b)
	require.InDelta(t, 0.2, d.Len(), 1e-12)
}

func TestMinImageTieIsEven(t *testing.T) {
	box := mgl64.Vec3{10, 10, 10}
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{5, 0, 0}
	d := MinImage(box, a, b)
	// 5/10 = 0.5 rounds to even (0), so the component stays +5
	require.InDelta(t, 5.0, d[0], 1e-12)
}

func TestRandomUnitVectorIsNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(rng)
		require.InDelta(t, 1.0, v.Len(), 1e-9)
	}
}

func TestRotationPreservesLength(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	axis := RandomUnitVector(rng)
	r := NewRotation(axis, 0.7)
	v := mgl64.Vec3{1, 2, 3}
	rv := Apply(r, v)
	require.InDelta(t, v.Len(), rv.Len(), 1e-9)
}

// TestBiasedAngleMatchesSinSquared checks the histogram of BiasedAngle
// against the small-angle form theta^2 of the sin(theta)^2 density,
// normalized numerically with num.Trapz.
func TestBiasedAngleMatchesSinSquared(t *testing.T) {
	thetaMax := 0.3 // small angle regime: sin^2 ~= theta^2
	const nbins = 20
	const nsamples = 200000

	rng := rand.New(rand.NewSource(42))
	counts := make([]float64, nbins)
	for i := 0; i < nsamples; i++ {
		theta := BiasedAngle(rng, thetaMax)
		bin := int(theta / thetaMax * nbins)
		if bin >= nbins {
			bin = nbins - 1
		}
		counts[bin]++
	}

	// reference density on the same bin centers, normalized via Trapz
	xs := make([]float64, nbins)
	ys := make([]float64, nbins)
	for i := 0; i < nbins; i++ {
		xs[i] = (float64(i) + 0.5) * thetaMax / nbins
		ys[i] = xs[i] * xs[i]
	}
	norm := num.Trapz(xs, ys)
	require.Greater(t, norm, 0.0)

	for i := 0; i < nbins; i++ {
		expected := ys[i] / norm * nsamples * (thetaMax / nbins)
		if expected < 50 {
			continue // too few expected events for a stable ratio check
		}
		ratio := counts[i] / expected
		require.InDeltaf(t, 1.0, ratio, 0.15, "bin %d: got %v expected %v", i, counts[i], expected)
	}
}
