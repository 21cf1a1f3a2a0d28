// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/go-gl/mathgl/mgl64"
)

func TestStoreMoveRestoreRoundTrips(t *testing.T) {
	chk.PrintTitle("particle: store/move/restore round-trip")

	p := NewParticle(0, 2)
	p.R = mgl64.Vec3{1, 2, 3}
	p.Patches[0] = mgl64.Vec3{1.5, 2, 3}
	p.Patches[1] = mgl64.Vec3{1, 2.5, 3}

	p.Store()
	p.R = mgl64.Vec3{9, 9, 9}
	p.Patches[0] = mgl64.Vec3{9, 9, 9}
	p.Patches[1] = mgl64.Vec3{9, 9, 9}
	p.Restore()

	chk.Vector(t, "r", 1e-17, p.R[:], []float64{1, 2, 3})
	chk.Vector(t, "patch0", 1e-17, p.Patches[0][:], []float64{1.5, 2, 3})
	chk.Vector(t, "patch1", 1e-17, p.Patches[1][:], []float64{1, 2.5, 3})
}

func TestStoreWithoutRestorePanicsOnNextStore(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic on a nested Store")
		}
	}()
	p := NewParticle(0, 0)
	p.Store()
	p.Store()
}

func TestAddParticleRespectsCapacity(t *testing.T) {
	s := New(mgl64.Vec3{10, 10, 10}, 2.5, 1.0, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, 1, 1)
	s.AddParticle(mgl64.Vec3{0, 0, 0}, []mgl64.Vec3{{0, 0, 0}})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic when exceeding N_max")
		}
	}()
	s.AddParticle(mgl64.Vec3{1, 1, 1}, []mgl64.Vec3{{1, 1, 1}})
}
