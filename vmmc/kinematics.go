// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vmmc

import (
	"github.com/cpmech/patchymc/geom"
	"github.com/cpmech/patchymc/particle"
	"github.com/go-gl/mathgl/mgl64"
)

type translationOp = mgl64.Vec3
type rotationOp = geom.Rotation

// applyMove applies the working set's current trial move to p in place.
// For a rotation, seed is the cluster pivot clust[0]; the offset order
// matters: patches use the pre-move p.R.
func applyMove(ws *workingSet, sys *particle.System, seed *particle.Particle, p *particle.Particle) {
	switch ws.which {
	case Translation:
		p.R = p.R.Add(ws.delta)
		for i := range p.Patches {
			p.Patches[i] = p.Patches[i].Add(ws.delta)
		}
	case Rotation:
		dr := geom.Apply(ws.rotation, p.R.Sub(seed.R))
		for i := range p.Patches {
			offset := geom.MinImage(sys.Box, p.R, p.Patches[i])
			dp := geom.Apply(ws.rotation, offset)
			p.Patches[i] = seed.R.Add(dr).Add(dp)
		}
		p.R = seed.R.Add(dr)
	}
}
