// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vmmc implements the Virtual-Move Monte Carlo cluster move:
// seed selection, link-enumeration-driven recruitment with
// detailed-balance-preserving acceptance tests, and atomic
// commit/rollback against the cell index and running energy.
package vmmc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchymc/cells"
	"github.com/cpmech/patchymc/geom"
	"github.com/cpmech/patchymc/oracle"
	"github.com/cpmech/patchymc/particle"
)

// Engine owns the VMMC working set and configuration; it is allocated
// once per simulation (Design Notes: "process-wide working state" becomes
// an explicit context object instead of package globals) and reused
// across every Move call.
type Engine struct {
	cfg      Config
	ws       *workingSet
	cellIdx  *cells.Cells
	adapter  *oracle.Adapter
	rng      Rng
	Tries    int
	Accepted int
}

// New allocates an Engine's working sets, sized once to O(N_max) /
// O(16*N_max) so Move never reallocates.
func New(cfg Config, cellIdx *cells.Cells, adapter *oracle.Adapter, rng Rng, nMax int) *Engine {
	return &Engine{
		cfg:    cfg,
		ws:     newWorkingSet(nMax),
		cellIdx: cellIdx,
		adapter: adapter,
		rng:    rng,
	}
}

func (e *Engine) assertNoOverlap(where string) {
	if e.adapter.Overlap {
		chk.Panic("vmmc: unexpected overlap %s", where)
	}
}

func changeCellFor(idx *cells.Cells, p *particle.Particle) {
	old := p.Cell
	newCell, _ := idx.ChangeCell(p.Index, old, p.R)
	p.CellOld = old
	p.Cell = newCell
}

// Move executes one cluster move end-to-end against sys and returns
// whether it was accepted. On return, is_in_cluster is identically zero
// and the cell index is consistent with the (possibly reverted) final
// positions.
func (e *Engine) Move(sys *particle.System) bool {
	e.Tries++
	ws := e.ws
	ws.reset()

	n := sys.N()
	seedIdx := e.rng.IntN(n)
	seed := sys.Particles[seedIdx]
	ws.clust = append(ws.clust, seedIdx)
	ws.isInCluster[seedIdx] = true

	// Step 1: propose a translation or a rotation.
	if e.rng.Float64() < 0.5 {
		ws.which = Translation
		ws.delta = randomTranslation(e.rng, e.cfg.DispMax)
	} else {
		ws.which = Rotation
		axis := e.rng.UnitVector()
		theta := e.rng.BiasedAngle(e.cfg.ThetaMax)
		ws.rotation = geom.NewRotation(axis, theta)
	}

	// Step 2: seed link enumeration, pre- and post-move.
	seed.Store()
	populateLinks(ws, sys, e.cellIdx, seedIdx)
	applyMove(ws, sys, seed, seed)
	populateLinks(ws, sys, e.cellIdx, seedIdx)
	seed.Restore()

	// Step 3: recruitment loop.
	for len(ws.possibleLinks) > 0 && len(ws.clust) < e.cfg.MaxCluster {
		li := e.rng.IntN(len(ws.possibleLinks))
		link := ws.possibleLinks[li]

		aIn := ws.isInCluster[link.Low]
		bIn := ws.isInCluster[link.High]
		if aIn && bIn {
			ws.removeLinkAt(li)
			continue
		}
		if !aIn && !bIn {
			chk.Panic("vmmc: link (%d,%d) has neither endpoint in the cluster", link.Low, link.High)
		}

		pIdx, qIdx := link.Low, link.High
		if !aIn {
			pIdx, qIdx = link.High, link.Low
		}
		p := sys.Particles[pIdx]
		q := sys.Particles[qIdx]

		eOld := e.adapter.PairEnergy(pIdx, qIdx)
		e.assertNoOverlap("evaluating an existing pair")
		e.adapter.ClearOverlap()

		p.Store()
		applyMove(ws, sys, seed, p)
		ePMoved := e.adapter.PairEnergy(pIdx, qIdx)
		p.Restore()
		forcePrelink := e.adapter.Overlap
		e.adapter.ClearOverlap()

		p1 := 1 - math.Exp((eOld-ePMoved)/sys.T)

		if forcePrelink || e.rng.Float64() < p1 {
			q.Store()
			applyMove(ws, sys, seed, q)
			eQMoved := e.adapter.PairEnergy(pIdx, qIdx)
			q.Restore()
			forceLink := e.adapter.Overlap
			e.adapter.ClearOverlap()

			p2 := 1 - math.Exp((eOld-eQMoved)/sys.T)
			if p2 > 1 {
				p2 = 1
			}

			if forceLink || e.rng.Float64() < p2/p1 {
				ws.clust = append(ws.clust, qIdx)
				ws.isInCluster[qIdx] = true

				q.Store()
				populateLinks(ws, sys, e.cellIdx, qIdx)
				applyMove(ws, sys, seed, q)
				populateLinks(ws, sys, e.cellIdx, qIdx)
				q.Restore()
			} else {
				ws.prelinked = append(ws.prelinked, qIdx)
			}
		}

		ws.removeLinkAt(li)
	}

	// Step 4: global constraints.
	forceReject := len(ws.clust) == e.cfg.MaxCluster
	if !forceReject {
		for _, pi := range ws.prelinked {
			if !ws.isInCluster[pi] {
				forceReject = true
				break
			}
		}
	}

	// Step 5: energy and distance check.
	var deltaE float64
	if !forceReject {
		deltaE -= e.clusterEnergy(sys, ws)
	}
	e.assertNoOverlap("summing pre-move cluster energy")

	movedCount := 0
	if !forceReject {
		for _, pi := range ws.clust {
			p := sys.Particles[pi]
			p.Store()
			applyMove(ws, sys, seed, p)
			changeCellFor(e.cellIdx, p)
			movedCount++
			dist := geom.MinImage(sys.Box, seed.R, p.R)
			if dist.Dot(dist) > e.cfg.MaxMove*e.cfg.MaxMove {
				forceReject = true
				break
			}
		}
	}

	if !forceReject {
		deltaE += e.clusterEnergy(sys, ws)
	}
	e.assertNoOverlap("summing post-move cluster energy")

	// Step 6: commit or revert.
	if forceReject {
		for _, pi := range ws.clust[:movedCount] {
			sys.Particles[pi].Restore()
		}
	} else {
		for _, pi := range ws.clust[:movedCount] {
			sys.Particles[pi].Drop()
		}
		e.Accepted++
		sys.Energy += deltaE
	}

	// Step 7: cleanup — reconcile cells, clear is_in_cluster.
	for _, pi := range ws.clust {
		changeCellFor(e.cellIdx, sys.Particles[pi])
		ws.isInCluster[pi] = false
	}

	return !forceReject
}

// clusterEnergy sums the pair energy between every cluster member and
// every out-of-cluster neighbor within its 27 cells. Internal cluster
// energy is rigid-motion invariant and is excluded, so this is exactly
// the boundary term that changes under the move.
func (e *Engine) clusterEnergy(sys *particle.System, ws *workingSet) float64 {
	var total float64
	for _, pi := range ws.clust {
		p := sys.Particles[pi]
		_, triple := e.cellIdx.Locate(p.R)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					cell := e.cellIdx.FlattenTriple([3]int{triple[0] + dx, triple[1] + dy, triple[2] + dz})
					q := e.cellIdx.Head(cell)
					for q != -1 {
						if !ws.isInCluster[q] {
							total += e.adapter.PairEnergy(pi, q)
							e.assertNoOverlap("summing cluster boundary energy")
							e.adapter.ClearOverlap()
						}
						q = e.cellIdx.Next(q)
					}
				}
			}
		}
	}
	return total
}

// randomTranslation draws each component independently in
// [-disp_max/2, +disp_max/2].
func randomTranslation(rng Rng, dispMax float64) translationOp {
	return translationOp{
		(rng.Float64() - 0.5) * dispMax,
		(rng.Float64() - 0.5) * dispMax,
		(rng.Float64() - 0.5) * dispMax,
	}
}
