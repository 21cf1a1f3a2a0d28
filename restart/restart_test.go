// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restart

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/patchymc/particle"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrips(t *testing.T) {
	box := mgl64.Vec3{10, 10, 10}
	sys := particle.New(box, 1.5, 0.5, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}, 4, 2)
	sys.AddParticle(mgl64.Vec3{1, 2, 3}, []mgl64.Vec3{{1.1, 2, 3}, {0.9, 2, 3}})
	sys.AddParticle(mgl64.Vec3{4, 5, 6}, []mgl64.Vec3{{4.1, 5, 6}, {3.9, 5, 6}})
	sys.Energy = -12.5

	path := filepath.Join(t.TempDir(), "replica.chk")
	require.NoError(t, Save(path, sys))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, sys.Box, got.Box)
	require.Equal(t, sys.Rcut, got.Rcut)
	require.Equal(t, sys.T, got.T)
	require.Equal(t, sys.Energy, got.Energy)
	require.Equal(t, sys.N(), got.N())
	for i := range sys.Particles {
		require.Equal(t, sys.Particles[i].R, got.Particles[i].R)
		require.Equal(t, sys.Particles[i].Patches, got.Particles[i].Patches)
	}
}
