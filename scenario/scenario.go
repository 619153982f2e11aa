// Package scenario reads batch files describing the cycles to evaluate.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"steamcycle/cycle"
	"steamcycle/model"
)

// Default is used when no scenario file is given: the textbook pair with identical
// pressures, once superheated and once saturated at the turbine inlet.
const Default = `# cycles evaluated by steamcycle
cycles:
  - name: Rankine Cycle - Superheated at turbine inlet
    p_low: 8
    p_high: 8000
    t_high: 500
    turbine_efficiency: 1.0
  - name: Rankine Cycle - Saturated at turbine inlet
    p_low: 8
    p_high: 8000
    turbine_efficiency: 1.0
`

// File models a scenario YAML document.
type File struct {
	Cycles []model.CycleReq `yaml:"cycles"`
	// Sweep expands one base cycle over several turbine inlet pressures.
	Sweep *Sweep `yaml:"sweep,omitempty"`
}

type Sweep struct {
	Base  model.CycleReq `yaml:"base"`
	PHigh []float64      `yaml:"p_high"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(f.Cycles) == 0 && f.Sweep == nil {
		return nil, errors.New("scenario defines no cycles")
	}
	for i := range f.Cycles {
		if f.Cycles[i].TurbineEfficiency == 0 {
			f.Cycles[i].TurbineEfficiency = 1
		}
	}
	if f.Sweep != nil && f.Sweep.Base.TurbineEfficiency == 0 {
		f.Sweep.Base.TurbineEfficiency = 1
	}
	return &f, nil
}

// Specs flattens the explicit cycles and the sweep into cycle specs.
func (f *File) Specs() []cycle.Spec {
	specs := make([]cycle.Spec, 0, len(f.Cycles))
	for _, c := range f.Cycles {
		specs = append(specs, cycle.SpecFromReq(c))
	}
	if f.Sweep != nil {
		specs = append(specs, cycle.PressureSweep(cycle.SpecFromReq(f.Sweep.Base), f.Sweep.PHigh)...)
	}
	return specs
}
