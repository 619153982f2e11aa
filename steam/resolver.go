package steam

import (
	"math"

	log "github.com/sirupsen/logrus"

	"steamcycle/model"
)

// Resolver determines complete water/steam states from a pressure and one auxiliary
// property. It only reads the shared tables, so one Resolver serves any number of
// goroutines.
type Resolver struct {
	sat    *SaturationTable
	sh     *SuperheatedEvaluator
	opts   Options
	logger *log.Entry
}

func NewResolver(tables *Tables, opts Options) *Resolver {
	opts = opts.withDefaults()
	return &Resolver{
		sat:    tables.Saturation,
		sh:     NewSuperheatedEvaluator(tables.Saturation, tables.Superheated, opts),
		opts:   opts,
		logger: log.WithField("component", "steam"),
	}
}

// DefaultResolver uses the embedded tables and default options.
func DefaultResolver() (*Resolver, error) {
	t, err := EmbeddedTables()
	if err != nil {
		return nil, err
	}
	return NewResolver(t, DefaultOptions()), nil
}

func (r *Resolver) Saturation() *SaturationTable { return r.sat }

func (r *Resolver) Superheated() *SuperheatedEvaluator { return r.sh }

// Resolve returns the state at pressure p (kPa) fixed by exactly one of quality,
// temperature, entropy or enthalpy.
func (r *Resolver) Resolve(p float64, label string, given ...Given) (model.State, error) {
	if len(given) != 1 {
		props := make([]Property, len(given))
		for i, g := range given {
			props[i] = g.Property
		}
		return model.State{}, &InvalidSpecificationError{Pressure: p, Given: props, Reason: "exactly one of quality, temperature, entropy or enthalpy is required"}
	}
	g := given[0]
	if math.IsNaN(g.Value) || math.IsInf(g.Value, 0) {
		return model.State{}, &InvalidSpecificationError{Pressure: p, Given: []Property{g.Property}, Reason: "value is not finite"}
	}
	row, err := r.sat.LookupByPressure(p)
	if err != nil {
		return model.State{}, err
	}

	var st model.State
	switch g.Property {
	case Quality:
		st, err = r.byQuality(row, g.Value, label)
	case Temperature:
		st, err = r.byTemperature(row, g.Value, label)
	case Entropy:
		st, err = r.byDomeProperty(row, Entropy, g.Value, row.Sf, row.Sg, label)
	case Enthalpy:
		st, err = r.byDomeProperty(row, Enthalpy, g.Value, row.Hf, row.Hg, label)
	default:
		err = &InvalidSpecificationError{Pressure: p, Given: []Property{g.Property}, Reason: "unsupported property"}
	}
	if err != nil {
		return model.State{}, err
	}
	if label != "" {
		st.Label = label
	}
	r.logger.WithFields(log.Fields{
		"label": st.Label,
		"p":     st.Pressure,
		"given": g.Property.String(),
		"value": g.Value,
		"T":     st.Temperature,
		"phase": st.Phase.String(),
	}).Debug("state resolved")
	return st, nil
}

func (r *Resolver) byQuality(row model.SaturationRow, x float64, label string) (model.State, error) {
	switch {
	case x < 0 || x > 1:
		return model.State{}, &InvalidSpecificationError{Pressure: row.P, Given: []Property{Quality}, Reason: "quality must lie in [0, 1]"}
	case x == 0:
		return saturatedLiquid(row, label), nil
	case x == 1:
		return saturatedVapor(row, label), nil
	}
	return mixture(row, x, label), nil
}

// byTemperature: T == Tsat is saturated vapour, T < Tsat is approximated by the
// saturated liquid at p as long as T stays inside the table.
func (r *Resolver) byTemperature(row model.SaturationRow, t float64, label string) (model.State, error) {
	dT := t - row.T
	switch {
	case math.Abs(dT) <= r.opts.SaturationTolerance*math.Max(1, math.Abs(row.T)):
		return saturatedVapor(row, label), nil
	case dT > 0:
		return r.sh.Evaluate(row.P, Temperature, t)
	}
	if lo, _ := r.sat.TemperatureRange(); t < lo {
		return model.State{}, &OutOfRangeError{Property: Temperature, Value: t, Min: lo, Max: row.T, Pressure: row.P}
	}
	r.logger.WithFields(log.Fields{"p": row.P, "T": t, "Tsat": row.T}).Debug("sub-cooled liquid approximated by saturated liquid")
	st := saturatedLiquid(row, label)
	st.Temperature = t
	st.Quality = nil
	return st, nil
}

// byDomeProperty handles entropy and enthalpy, which both increase across the dome.
func (r *Resolver) byDomeProperty(row model.SaturationRow, prop Property, v, f, g float64, label string) (model.State, error) {
	switch {
	case v == f:
		return saturatedLiquid(row, label), nil
	case v < f:
		r.logger.WithFields(log.Fields{"p": row.P, prop.String(): v, "limit": f}).Debug("clamped to saturated liquid")
		st := saturatedLiquid(row, label)
		st.Quality = nil
		return st, nil
	case v < g:
		return mixture(row, (v-f)/(g-f), label), nil
	}
	return r.sh.Evaluate(row.P, prop, v)
}

func quality(x float64) *float64 {
	return &x
}

func saturatedLiquid(row model.SaturationRow, label string) model.State {
	if label == "" {
		label = "saturated liquid"
	}
	return model.State{
		Pressure:         row.P,
		Temperature:      row.T,
		SpecificVolume:   row.Vf,
		SpecificEnthalpy: row.Hf,
		SpecificEntropy:  row.Sf,
		Quality:          quality(0),
		Phase:            model.SubcooledLiquid,
		Label:            label,
	}
}

func saturatedVapor(row model.SaturationRow, label string) model.State {
	if label == "" {
		label = "saturated vapor"
	}
	return model.State{
		Pressure:         row.P,
		Temperature:      row.T,
		SpecificVolume:   row.Vg,
		SpecificEnthalpy: row.Hg,
		SpecificEntropy:  row.Sg,
		Quality:          quality(1),
		Phase:            model.SuperheatedVapor,
		Label:            label,
	}
}

// mixture interpolates every property linearly in x between the liquid and vapour lines.
func mixture(row model.SaturationRow, x float64, label string) model.State {
	return model.State{
		Pressure:         row.P,
		Temperature:      row.T,
		SpecificVolume:   row.Vf + x*(row.Vg-row.Vf),
		SpecificEnthalpy: row.Hf + x*(row.Hg-row.Hf),
		SpecificEntropy:  row.Sf + x*(row.Sg-row.Sf),
		Quality:          quality(x),
		Phase:            model.TwoPhase,
		Label:            label,
	}
}
