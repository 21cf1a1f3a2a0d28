// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vmmc

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Config holds the VMMC move's recognized options.
type Config struct {
	MaxMove    float64 // vmmc_max_move: reject a move leaving any cluster member farther than this from the seed
	MaxCluster int     // vmmc_max_cluster: hard cap on cluster size
	DispMax    float64 // disp_max: per-axis translation half-range
	ThetaMax   float64 // theta_max: maximum rotation angle
}

// ConfigFromPrms builds a Config the way a constitutive model builds its
// own parameter struct from gosl/fun.Prms: walk the slice once, switching
// on each parameter's name.
func ConfigFromPrms(prms fun.Prms) (cfg Config, err error) {
	var haveMaxMove, haveMaxCluster bool
	for _, p := range prms {
		switch p.N {
		case "vmmc_max_move":
			cfg.MaxMove = p.V
			haveMaxMove = true
		case "vmmc_max_cluster":
			cfg.MaxCluster = int(p.V)
			haveMaxCluster = true
		case "disp_max":
			cfg.DispMax = p.V
		case "theta_max":
			cfg.ThetaMax = p.V
		}
	}
	if !haveMaxMove {
		return cfg, chk.Err("vmmc: missing required parameter %q", "vmmc_max_move")
	}
	if !haveMaxCluster {
		return cfg, chk.Err("vmmc: missing required parameter %q", "vmmc_max_cluster")
	}
	if cfg.MaxCluster <= 0 {
		return cfg, chk.Err("vmmc: vmmc_max_cluster must be positive, got %d", cfg.MaxCluster)
	}
	if cfg.MaxMove <= 0 {
		return cfg, chk.Err("vmmc: vmmc_max_move must be positive, got %g", cfg.MaxMove)
	}
	return cfg, nil
}
