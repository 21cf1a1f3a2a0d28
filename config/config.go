// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads a simulation's YAML input file into the System and
// Engine parameters the core packages need. It follows the gosl/fun.Prms
// named-parameter convention for the VMMC-specific options and a plain
// struct for everything else, the way niceyeti-tabular's FromYaml loads a
// viper-read document through a second yaml.Marshal/Unmarshal pass.
package config

import (
	"path/filepath"

	"github.com/cpmech/gosl/fun"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// System describes the box, cutoff, and pair-oracle parameters (particle.System's
// constructor arguments) plus the initial particle placement.
type System struct {
	Box      [3]float64  `yaml:"box"`
	Rcut     float64     `yaml:"rcut"`
	T        float64     `yaml:"temperature"`
	K        [3]float64  `yaml:"k"`
	E        [3]float64  `yaml:"e"`
	NMax     int         `yaml:"n_max"`
	NPatches int         `yaml:"n_patches"`
	Particles []Particle `yaml:"particles"`
}

// Particle is one entry of the initial configuration.
type Particle struct {
	R       [3]float64   `yaml:"r"`
	Patches [][3]float64 `yaml:"patches"`
}

// Doc is the top-level YAML document: the plain system block plus the
// VMMC options as a named-parameter list, matching how a constitutive
// model is configured (msolid/ccm.go's CamClayMod.Init takes a fun.Prms
// built the same way from a material-data file).
type Doc struct {
	System System `yaml:"system"`
	VMMC   []struct {
		Name  string  `yaml:"name"`
		Value float64 `yaml:"value"`
	} `yaml:"vmmc"`
}

// Load reads the YAML file at path via viper and unmarshals it into a Doc.
func Load(path string) (doc Doc, err error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err = vp.ReadInConfig(); err != nil {
		return doc, err
	}

	raw := vp.AllSettings()
	spec, err := yaml.Marshal(raw)
	if err != nil {
		return doc, err
	}
	err = yaml.Unmarshal(spec, &doc)
	return doc, err
}

// Prms converts the document's vmmc block into the fun.Prms vmmc.ConfigFromPrms
// expects, so the driver never has to know the Config struct's field names.
func (d Doc) Prms() fun.Prms {
	prms := make(fun.Prms, len(d.VMMC))
	for i, p := range d.VMMC {
		prms[i] = &fun.Prm{N: p.Name, V: p.Value}
	}
	return prms
}
