package model

import "fmt"

// Phase of a resolved state point.
type Phase int

const (
	SubcooledLiquid Phase = iota
	TwoPhase
	SuperheatedVapor
)

var phaseNames = [...]string{
	SubcooledLiquid:  "SUBCOOLED_LIQUID",
	TwoPhase:         "TWO_PHASE",
	SuperheatedVapor: "SUPERHEATED_VAPOR",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// SaturationRow is one row of the saturated water table, keyed by pressure.
type SaturationRow struct {
	T  float64 `json:"t"`  // °C
	P  float64 `json:"p"`  // kPa
	Hf float64 `json:"hf"` // kJ/kg
	Hg float64 `json:"hg"`
	Sf float64 `json:"sf"` // kJ/kg·K
	Sg float64 `json:"sg"`
	Vf float64 `json:"vf"` // m³/kg
	Vg float64 `json:"vg"`
}

// State is one thermodynamic point of water/steam.
type State struct {
	Pressure         float64  `json:"pressure"`          // kPa
	Temperature      float64  `json:"temperature"`       // °C
	SpecificVolume   float64  `json:"specific_volume"`   // m³/kg
	SpecificEnthalpy float64  `json:"specific_enthalpy"` // kJ/kg
	SpecificEntropy  float64  `json:"specific_entropy"`  // kJ/kg·K
	Quality          *float64 `json:"quality,omitempty"` // only on the saturation dome
	Phase            Phase    `json:"phase"`
	Label            string   `json:"label,omitempty"`
}

// X returns the quality and whether the state carries one.
func (s State) X() (float64, bool) {
	if s.Quality == nil {
		return 0, false
	}
	return *s.Quality, true
}

func (s State) String() string {
	x := "-"
	if q, ok := s.X(); ok {
		x = fmt.Sprintf("%.4f", q)
	}
	return fmt.Sprintf("%s: p=%.2f kPa T=%.2f °C h=%.2f kJ/kg s=%.4f kJ/kg·K v=%.6f m³/kg x=%s (%s)",
		s.Label, s.Pressure, s.Temperature, s.SpecificEnthalpy, s.SpecificEntropy, s.SpecificVolume, x, s.Phase)
}
