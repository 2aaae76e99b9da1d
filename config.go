// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gocea

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

// ComponentSpec is one propellant component line of a CaseSpec: a
// PropellantDB entry name and its mole quantity.
type ComponentSpec struct {
	Reactant string  `json:"reactant" yaml:"reactant"`
	Moles    float64 `json:"moles" yaml:"moles"`
}

// CaseSpec is the declarative, file-backed description of a Case: which
// databases to load, the propellant composition, chamber pressure and
// problem type. It mirrors inp.MatDb's role in the teacher (a JSON/YAML
// document decoded into the in-memory structures a solver consumes, §A).
type CaseSpec struct {
	ThermoFile     string          `json:"thermoFile" yaml:"thermoFile"`
	PropellantFile string          `json:"propellantFile" yaml:"propellantFile"`
	Composition    []ComponentSpec `json:"composition" yaml:"composition"`
	Pressure       float64         `json:"pressure" yaml:"pressure"` // atm
	Temperature    float64         `json:"temperature" yaml:"temperature"` // K, TP only
	Problem        string          `json:"problem" yaml:"problem"`         // "TP", "HP" or "SP"
	TargetEntropy  float64         `json:"targetEntropy" yaml:"targetEntropy"` // kJ/(kg·K), SP only
}

// ParseProblem maps a CaseSpec's Problem string onto the equil.Problem
// constants, case-insensitively.
func ParseProblem(s string) (Problem, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TP":
		return TP, nil
	case "HP":
		return HP, nil
	case "SP":
		return SP, nil
	}
	return 0, chk.Err("gocea: unknown problem type %q (want TP, HP or SP)", s)
}

// LoadCaseSpec reads a CaseSpec from path, dispatching on its extension:
// ".yaml"/".yml" uses yaml.v3, anything else (including ".json") uses
// encoding/json (§A, grounded on san-kum-dynsim's config.Load and the
// teacher's inp.ReadMat JSON convention).
func LoadCaseSpec(path string) (*CaseSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("gocea: reading case file %q: %v", path, err)
	}
	spec := &CaseSpec{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, chk.Err("gocea: parsing yaml case %q: %v", path, err)
		}
	default:
		if err := json.Unmarshal(data, spec); err != nil {
			return nil, chk.Err("gocea: parsing json case %q: %v", path, err)
		}
	}
	return spec, nil
}

// Build resolves a CaseSpec against freshly loaded ThermoDB/PropellantDB
// files, returning a ready-to-solve Case. Composition entries that don't
// match a PropellantDB record are reported as an error rather than
// silently skipped.
func (spec *CaseSpec) Build() (*Case, *ThermoDB, *PropellantDB, error) {
	tdb := thermo.NewDB()
	tf, err := os.Open(spec.ThermoFile)
	if err != nil {
		return nil, nil, nil, chk.Err("gocea: opening thermo file %q: %v", spec.ThermoFile, err)
	}
	defer tf.Close()
	if err := tdb.Load(tf); err != nil {
		return nil, nil, nil, chk.Err("gocea: loading thermo file %q: %v", spec.ThermoFile, err)
	}

	pdb := propellant.NewDB()
	pf, err := os.Open(spec.PropellantFile)
	if err != nil {
		return nil, nil, nil, chk.Err("gocea: opening propellant file %q: %v", spec.PropellantFile, err)
	}
	defer pf.Close()
	if err := pdb.Load(pf); err != nil {
		return nil, nil, nil, chk.Err("gocea: loading propellant file %q: %v", spec.PropellantFile, err)
	}

	comp := make(product.Composition, 0, len(spec.Composition))
	for _, c := range spec.Composition {
		r, ok := pdb.ByName(c.Reactant)
		if !ok {
			return nil, nil, nil, chk.Err("gocea: unknown reactant %q in case composition", c.Reactant)
		}
		comp = append(comp, product.Component{Reactant: r, Moles: c.Moles})
	}

	c := NewCase(tdb, pdb, comp, spec.Pressure)
	if spec.Temperature != 0 {
		c.T = spec.Temperature
	}
	return c, tdb, pdb, nil
}
