// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cells

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/go-gl/mathgl/mgl64"
)

func TestClampsSmallBox(t *testing.T) {
	chk.PrintTitle("cells: clamp small box")
	c := Init(mgl64.Vec3{6, 6, 6}, 3, 10)
	chk.Ints(t, "N_side", []int{c.NSide[0], c.NSide[1], c.NSide[2]}, []int{3, 3, 3})
}

func TestLocateWrapsAroundBox(t *testing.T) {
	c := Init(mgl64.Vec3{10, 10, 10}, 3, 10)
	a := mgl64.Vec3{0.1, 0, 0}
	b := mgl64.Vec3{9.9, 0, 0}
	ia, _ := c.Locate(a)
	ib, _ := c.Locate(b)
	// both must be in the grid
	if int(ia) < 0 || int(ia) >= c.N || int(ib) < 0 || int(ib) >= c.N {
		t.Fatalf("locate out of range: %d %d (N=%d)", ia, ib, c.N)
	}
}

func TestLocateIsPeriodic(t *testing.T) {
	c := Init(mgl64.Vec3{9, 9, 9}, 3, 10)
	r := mgl64.Vec3{1.2345, 4.5, 7.9}
	i0, _ := c.Locate(r)
	shifted := mgl64.Vec3{r[0] + 2*9, r[1] - 3*9, r[2] + 9}
	i1, _ := c.Locate(shifted)
	if i0 != i1 {
		t.Fatalf("locate not invariant under box-periodic shift: %d != %d", i0, i1)
	}
}

type fixedPositions []mgl64.Vec3

func (f fixedPositions) Position(p int) mgl64.Vec3 { return f[p] }

func TestFillThenCheckMatchesCount(t *testing.T) {
	c := Init(mgl64.Vec3{9, 9, 9}, 3, 10)
	pos := fixedPositions{
		{0.5, 0.5, 0.5},
		{4.0, 4.0, 4.0},
		{8.9, 8.9, 8.9},
	}
	cell := make([]int, len(pos))
	c.Fill(len(pos), pos, func(p, cl int) { cell[p] = cl })
	if !c.Check(len(pos)) {
		t.Fatal("expected cell count to match particle count after Fill")
	}
	for p := range pos {
		idx, _ := c.Locate(pos[p])
		if int(idx) != cell[p] {
			t.Fatalf("particle %d: recorded cell %d, located cell %d", p, cell[p], idx)
		}
	}
}

func TestChangeCellRebindsChain(t *testing.T) {
	c := Init(mgl64.Vec3{9, 9, 9}, 3, 10)
	pos := fixedPositions{{0.5, 0.5, 0.5}, {4.0, 4.0, 4.0}}
	cell := make([]int, len(pos))
	c.Fill(len(pos), pos, func(p, cl int) { cell[p] = cl })

	moved := mgl64.Vec3{8.5, 8.5, 8.5}
	newCell, didMove := c.ChangeCell(0, cell[0], moved)
	if !didMove {
		t.Fatal("expected a cell change after a large displacement")
	}
	cell[0] = newCell
	if !c.Check(len(pos)) {
		t.Fatal("cell count mismatch after ChangeCell")
	}

	// a no-op move must not report a rebind
	_, didMove2 := c.ChangeCell(0, cell[0], moved)
	if didMove2 {
		t.Fatal("expected no rebind when the particle stays in the same cell")
	}
}
