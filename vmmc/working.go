// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vmmc

// Link is a candidate cluster-recruitment link, stored as an unordered
// pair canonicalized to (Low, High) by particle index.
type Link struct {
	Low, High int
}

// Kind distinguishes the two trial-move families.
type Kind int

const (
	Translation Kind = iota
	Rotation
)

// workingSet is the transient per-move state. It is allocated once by
// New, sized to O(N_max) /
// O(16*N_max), and merely has its logical length reset between moves —
// no per-move allocation.
type workingSet struct {
	clust         []int
	isInCluster   []bool
	possibleLinks []Link
	prelinked     []int
	maxLinks      int

	which    Kind
	rotation rotationOp
	delta    translationOp
}

func newWorkingSet(nMax int) *workingSet {
	return &workingSet{
		clust:         make([]int, 0, nMax),
		isInCluster:   make([]bool, nMax),
		possibleLinks: make([]Link, 0, 16*nMax),
		prelinked:     make([]int, 0, nMax),
		maxLinks:      16 * nMax,
	}
}

// reset clears the logical size of every working-set slice; is_in_cluster
// flags are cleared individually by the caller as cluster members are
// processed in step 7, so no O(N_max) sweep is needed here.
func (ws *workingSet) reset() {
	ws.clust = ws.clust[:0]
	ws.possibleLinks = ws.possibleLinks[:0]
	ws.prelinked = ws.prelinked[:0]
}

// removeLinkAt drops the link at index i via swap-with-last removal:
// O(1), not order-preserving, and must stay that way.
func (ws *workingSet) removeLinkAt(i int) {
	last := len(ws.possibleLinks) - 1
	ws.possibleLinks[i] = ws.possibleLinks[last]
	ws.possibleLinks = ws.possibleLinks[:last]
}
