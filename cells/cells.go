// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cells implements the linked-cell neighbor index: a uniform 3-D
// grid over the periodic box, with per-cell singly-linked chains of
// resident particle indices held in two flat arrays (heads, next), arena
// style, so the index never holds a raw pointer into particle storage.
package cells

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/go-gl/mathgl/mgl64"
)

const none = -1

// epsilon guards the fractional-coordinate computation against the edge
// case where f[d] rounds up to exactly 1.0; this must be a value that
// actually moves the product away from N_side[d] for realistic N_side,
// unlike the subnormal math.SmallestNonzeroFloat64.
const epsilon = 1e-15

// Index identifies a single grid cell.
type Index int

// Cells is the linked-cell neighbor index. It owns no references to
// particle storage: heads and next hold stable particle indices only.
type Cells struct {
	box    mgl64.Vec3
	rcut   float64
	NSide  [3]int
	N      int
	heads  []int // [N]:    first particle of each cell's chain, or none
	next   []int // [NMax]: next particle in the same chain, or none
	nMax   int
}

// Init builds the index for the given box and cutoff. N_side[d] is
// max(3, floor(box[d]/rcut)); a clamp to 3 is logged, not fatal.
func Init(box mgl64.Vec3, rcut float64, nMax int) *Cells {
	if rcut <= 0 {
		chk.Panic("cells: rcut must be positive, got %g", rcut)
	}
	if nMax <= 0 {
		chk.Panic("cells: N_max must be positive, got %d", nMax)
	}
	c := &Cells{box: box, rcut: rcut, nMax: nMax}
	for d := 0; d < 3; d++ {
		if box[d] <= 0 {
			chk.Panic("cells: box[%d] must be positive, got %g", d, box[d])
		}
		n := int(math.Floor(box[d] / rcut))
		if n < 3 {
			io.Pfcyan("cells: box side %d (%g) too small for rcut=%g; clamping N_side[%d] to 3\n", d, box[d], rcut, d)
			n = 3
		}
		c.NSide[d] = n
	}
	c.N = c.NSide[0] * c.NSide[1] * c.NSide[2]
	c.heads = make([]int, c.N)
	c.next = make([]int, nMax)
	for i := range c.heads {
		c.heads[i] = none
	}
	for i := range c.next {
		c.next[i] = none
	}
	return c
}

// NSideOf returns the per-axis cell counts.
func (c *Cells) NSideOf() [3]int { return c.NSide }

// Locate returns the flattened cell index owning position r together with
// the (i0,i1,i2) triple, via fractional coordinates wrapped into [0,1).
func (c *Cells) Locate(r mgl64.Vec3) (idx Index, triple [3]int) {
	for d := 0; d < 3; d++ {
		f := r[d]/c.box[d] - math.Floor(r[d]/c.box[d])
		triple[d] = int(f * (1 - epsilon) * float64(c.NSide[d]))
		if triple[d] >= c.NSide[d] {
			triple[d] = c.NSide[d] - 1
		}
		if triple[d] < 0 {
			triple[d] = 0
		}
	}
	idx = Index((triple[0]*c.NSide[1]+triple[1])*c.NSide[2] + triple[2])
	return
}

// FlattenTriple folds a (possibly out-of-range) triple into a valid cell
// index by wrapping each axis modulo N_side; used by the 27-neighborhood
// walk in link enumeration.
func (c *Cells) FlattenTriple(triple [3]int) Index {
	var t [3]int
	for d := 0; d < 3; d++ {
		t[d] = ((triple[d] % c.NSide[d]) + c.NSide[d]) % c.NSide[d]
	}
	return Index((t[0]*c.NSide[1]+t[1])*c.NSide[2] + t[2])
}

// Head returns the first particle index in cell idx's chain, or none (-1).
func (c *Cells) Head(idx Index) int { return c.heads[idx] }

// Next returns the next particle index after p in its cell's chain, or
// none (-1) if p is the chain's last entry.
func (c *Cells) Next(p int) int { return c.next[p] }

// Positioner supplies the current position of particle p, so Fill and
// ChangeCell can work from an opaque particle index.
type Positioner interface {
	Position(p int) mgl64.Vec3
}

// Fill clears every chain and reinserts all particles [0, n) by prepending
// each to the chain of its owning cell, recomputed from scratch.
func (c *Cells) Fill(n int, pos Positioner, setCell func(p, cell int)) {
	for i := range c.heads {
		c.heads[i] = none
	}
	for p := 0; p < n; p++ {
		idx, _ := c.Locate(pos.Position(p))
		c.next[p] = c.heads[idx]
		c.heads[idx] = p
		setCell(p, int(idx))
	}
}

// ChangeCell recomputes the owning cell of particle p (whose last known
// cell is oldCell) and rebinds its chain membership if it moved. It
// returns the new cell index and whether a rebind happened.
func (c *Cells) ChangeCell(p int, oldCell int, pos mgl64.Vec3) (newCell int, moved bool) {
	idx, _ := c.Locate(pos)
	newCell = int(idx)
	if newCell == oldCell {
		return newCell, false
	}
	// unlink p from oldCell's chain
	if c.heads[oldCell] == p {
		c.heads[oldCell] = c.next[p]
	} else {
		q := c.heads[oldCell]
		for q != none && c.next[q] != p {
			q = c.next[q]
		}
		if q != none {
			c.next[q] = c.next[p]
		}
	}
	// prepend p to newCell's chain
	c.next[p] = c.heads[newCell]
	c.heads[newCell] = p
	return newCell, true
}

// Check counts particles reachable through all chains and logs (does not
// panic) if the count differs from n.
func (c *Cells) Check(n int) (ok bool) {
	counter := 0
	for i := 0; i < c.N; i++ {
		p := c.heads[i]
		for p != none {
			counter++
			p = c.next[p]
		}
	}
	if counter != n {
		io.Pfred("cells: found %d particles in chains, expected %d\n", counter, n)
		return false
	}
	return true
}
