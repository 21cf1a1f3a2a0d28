// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vmmc

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/patchymc/cells"
	"github.com/cpmech/patchymc/geom"
	"github.com/cpmech/patchymc/particle"
	"github.com/go-gl/mathgl/mgl64"
)

// populateLinks enumerates candidate recruitment links from anchor (which
// must already be in the cluster) to every other particle in the 27
// neighboring cells, recording deduplicated (low, high) pairs within
// sqr_rcut and canonicalizing the image of each partner found.
// anchor must have a pending Store snapshot: the rewrite always
// targets the image closest to the anchor's pre-trial-move position,
// whether this call happens before or after the trial move is applied.
func populateLinks(ws *workingSet, sys *particle.System, idx *cells.Cells, anchorIdx int) {
	if !ws.isInCluster[anchorIdx] {
		chk.Panic("vmmc: populateLinks called on particle %d which is not yet in the cluster", anchorIdx)
	}
	anchor := sys.Particles[anchorIdx]
	anchorOld := anchor.StoredR()
	_, triple := idx.Locate(anchor.R)
	n := sys.N()

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				cellIdx := idx.FlattenTriple([3]int{triple[0] + dx, triple[1] + dy, triple[2] + dz})
				q := idx.Head(cellIdx)
				for q != -1 {
					if q != anchorIdx {
						considerLink(ws, sys, anchor.R, anchorOld, anchorIdx, q, n)
					}
					q = idx.Next(q)
				}
			}
		}
	}
}

// considerLink handles one candidate partner q of the anchor: cutoff
// check, link insertion, image canonicalization of q, and dedup.
func considerLink(ws *workingSet, sys *particle.System, anchorR, anchorOld mgl64.Vec3, anchorIdx, q, n int) {
	partner := sys.Particles[q]
	d := geom.MinImage(sys.Box, anchorR, partner.R)
	if d.Dot(d) > sys.SqrRcut {
		return
	}

	if len(ws.possibleLinks) >= ws.maxLinks {
		chk.Panic("vmmc: possible-links capacity exhausted (%d); raise vmmc_max_cluster/N_max assumptions", ws.maxLinks)
	}
	low, high := anchorIdx, q
	if q < anchorIdx {
		low, high = q, anchorIdx
	}
	ws.possibleLinks = append(ws.possibleLinks, Link{Low: low, High: high})

	// image canonicalization: rewrite q to the image closest to the
	// anchor's pre-trial-move position. This rewrite is permanent: cell
	// lookup is via fractional coordinates, so it is physically harmless,
	// but it does mean absolute spectator coordinates are not restored on
	// a rejected move (see DESIGN.md).
	delta := geom.MinImage(sys.Box, anchorOld, partner.R)
	base := anchorOld.Add(delta)
	for i := range partner.Patches {
		offset := partner.Patches[i].Sub(partner.R)
		partner.Patches[i] = base.Add(offset)
	}
	partner.R = base

	// dedup: drop the just-added entry if an ordered pair with the same
	// key already exists.
	newKey := low*n + high
	last := len(ws.possibleLinks) - 1
	for m := 0; m < last; m++ {
		l := ws.possibleLinks[m]
		if l.Low*n+l.High == newKey {
			ws.possibleLinks = ws.possibleLinks[:last]
			return
		}
	}
}
