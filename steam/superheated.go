package steam

import (
	"fmt"
	"math"
	"sort"

	"steamcycle/model"
)

// GridPoint is one tabulated superheated-vapour point.
type GridPoint struct {
	P, T, H, S, V float64
}

// isobar keeps one pressure line of the grid; index 0 is the saturated-vapour node.
type isobar struct {
	p          float64
	t, h, s, v []float64
}

func (b *isobar) tMax() float64 {
	return b.t[len(b.t)-1]
}

// SuperheatedTable is the (P, T) grid of superheated-vapour properties.
type SuperheatedTable struct {
	isobars []isobar
}

// NewSuperheatedTable groups points by pressure. Points must come isobar by isobar with
// increasing pressure, each isobar starting at its saturated-vapour state.
func NewSuperheatedTable(points []GridPoint) (*SuperheatedTable, error) {
	var isobars []isobar
	for i, pt := range points {
		n := len(isobars)
		if n == 0 || pt.P != isobars[n-1].p {
			if n > 0 && pt.P < isobars[n-1].p {
				return nil, fmt.Errorf("superheated point %d: pressure %g after %g", i, pt.P, isobars[n-1].p)
			}
			isobars = append(isobars, isobar{p: pt.P})
			n++
		}
		b := &isobars[n-1]
		if k := len(b.t); k > 0 {
			if pt.T <= b.t[k-1] || pt.H <= b.h[k-1] || pt.S <= b.s[k-1] {
				return nil, fmt.Errorf("superheated point %d (p=%g, T=%g): T, h and s must increase along the isobar", i, pt.P, pt.T)
			}
		}
		b.t = append(b.t, pt.T)
		b.h = append(b.h, pt.H)
		b.s = append(b.s, pt.S)
		b.v = append(b.v, pt.V)
	}
	if len(isobars) < 2 {
		return nil, fmt.Errorf("superheated table needs at least 2 isobars, got %d", len(isobars))
	}
	for _, b := range isobars {
		if len(b.t) < 2 {
			return nil, fmt.Errorf("isobar p=%g needs at least 2 points", b.p)
		}
	}
	return &SuperheatedTable{isobars: isobars}, nil
}

func (g *SuperheatedTable) PressureRange() (min, max float64) {
	return g.isobars[0].p, g.isobars[len(g.isobars)-1].p
}

// Pressures lists the tabulated isobars.
func (g *SuperheatedTable) Pressures() []float64 {
	ps := make([]float64, len(g.isobars))
	for i, b := range g.isobars {
		ps[i] = b.p
	}
	return ps
}

// bracket returns the isobars around p and the weight of the upper one.
func (g *SuperheatedTable) bracket(p float64) (a, b *isobar, w float64, err error) {
	lo, hi := g.PressureRange()
	if math.IsNaN(p) || p < lo || p > hi {
		return nil, nil, 0, &OutOfRangeError{Property: Pressure, Value: p, Min: lo, Max: hi, Pressure: p}
	}
	i := sort.Search(len(g.isobars), func(i int) bool { return g.isobars[i].p >= p })
	if g.isobars[i].p == p {
		return &g.isobars[i], &g.isobars[i], 0, nil
	}
	a, b = &g.isobars[i-1], &g.isobars[i]
	return a, b, (p - a.p) / (b.p - a.p), nil
}

// SuperheatedEvaluator interpolates the superheated grid. Evaluation works in superheat
// ΔT = T - Tsat(p): each bracketing isobar contributes its departure from its own
// saturated-vapour node, and the blended departure is added to the saturation table's
// vapour properties at p, so ΔT = 0 reproduces the saturation table exactly. The
// domain at p reaches the grid's top temperature; the upper isobar starts from a hotter
// saturation node, so near the top its last segment is extended linearly.
type SuperheatedEvaluator struct {
	sat  *SaturationTable
	grid *SuperheatedTable
	opts Options
}

func NewSuperheatedEvaluator(sat *SaturationTable, grid *SuperheatedTable, opts Options) *SuperheatedEvaluator {
	return &SuperheatedEvaluator{sat: sat, grid: grid, opts: opts.withDefaults()}
}

type departure struct {
	h, s, v float64
}

func (e *SuperheatedEvaluator) departureAt(b *isobar, dT float64) departure {
	t := b.t[0] + dT
	n := len(b.t)
	i := sort.SearchFloat64s(b.t, t)
	switch {
	case i == 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	w := (t - b.t[i-1]) / (b.t[i] - b.t[i-1])
	return departure{
		h: lerp(b.h[i-1], b.h[i], w) - b.h[0],
		s: lerp(b.s[i-1], b.s[i], w) - b.s[0],
		v: lerp(b.v[i-1], b.v[i], w) - b.v[0],
	}
}

// superheat context for one pressure
type isobarPair struct {
	p    float64
	row  model.SaturationRow
	a, b *isobar
	w    float64
	max  float64 // ΔT of the lower of the two top nodes
}

func (e *SuperheatedEvaluator) pair(p float64) (*isobarPair, error) {
	row, err := e.sat.LookupByPressure(p)
	if err != nil {
		return nil, err
	}
	a, b, w, err := e.grid.bracket(p)
	if err != nil {
		return nil, err
	}
	return &isobarPair{p: p, row: row, a: a, b: b, w: w, max: math.Min(a.tMax(), b.tMax()) - row.T}, nil
}

func (ip *isobarPair) property(e *SuperheatedEvaluator, prop Property, dT float64) float64 {
	da, db := e.departureAt(ip.a, dT), e.departureAt(ip.b, dT)
	switch prop {
	case Entropy:
		return ip.row.Sg + lerp(da.s, db.s, ip.w)
	case Enthalpy:
		return ip.row.Hg + lerp(da.h, db.h, ip.w)
	}
	return ip.row.T + dT
}

func (ip *isobarPair) state(e *SuperheatedEvaluator, dT float64) model.State {
	da, db := e.departureAt(ip.a, dT), e.departureAt(ip.b, dT)
	return model.State{
		Pressure:         ip.p,
		Temperature:      ip.row.T + dT,
		SpecificEnthalpy: ip.row.Hg + lerp(da.h, db.h, ip.w),
		SpecificEntropy:  ip.row.Sg + lerp(da.s, db.s, ip.w),
		SpecificVolume:   ip.row.Vg + lerp(da.v, db.v, ip.w),
		Phase:            model.SuperheatedVapor,
	}
}

// Evaluate returns the superheated state at pressure p where the known property
// (Temperature, Entropy or Enthalpy) equals value.
func (e *SuperheatedEvaluator) Evaluate(p float64, known Property, value float64) (model.State, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return model.State{}, &InvalidSpecificationError{Pressure: p, Given: []Property{known}, Reason: "value is not finite"}
	}
	ip, err := e.pair(p)
	if err != nil {
		return model.State{}, err
	}
	switch known {
	case Temperature:
		dT := value - ip.row.T
		if math.Abs(dT) <= e.opts.SaturationTolerance*math.Max(1, math.Abs(ip.row.T)) {
			return saturatedVapor(ip.row, ""), nil
		}
		if dT < 0 || dT > ip.max {
			return model.State{}, &OutOfRangeError{Property: Temperature, Value: value, Min: ip.row.T, Max: ip.row.T + ip.max, Pressure: p}
		}
		st := ip.state(e, dT)
		st.Temperature = value
		return st, nil
	case Entropy, Enthalpy:
		return e.inverse(ip, known, value)
	}
	return model.State{}, &InvalidSpecificationError{Pressure: p, Given: []Property{known}, Reason: "superheated lookup needs temperature, entropy or enthalpy"}
}

// inverse bisects along the isobar; h(ΔT) and s(ΔT) increase strictly. A value within
// tol of the saturated-vapour property is the saturated vapour; otherwise the search
// stops once the ΔT bracket is narrower than tol·max(1, |T|).
func (e *SuperheatedEvaluator) inverse(ip *isobarPair, known Property, value float64) (model.State, error) {
	lo, hi := 0.0, ip.max
	fLo, fHi := ip.property(e, known, lo), ip.property(e, known, hi)
	tol := e.opts.Tolerance
	if math.Abs(value-fLo) <= tol*math.Max(1, math.Abs(value)) {
		return saturatedVapor(ip.row, ""), nil
	}
	if value < fLo {
		return model.State{}, &ConvergenceError{Property: known, Value: value, Pressure: ip.p,
			Reason: fmt.Sprintf("below saturated-vapour value %g", fLo)}
	}
	if value > fHi {
		return model.State{}, &ConvergenceError{Property: known, Value: value, Pressure: ip.p,
			Reason: fmt.Sprintf("above grid value %g at T=%g", fHi, ip.row.T+hi)}
	}
	for it := 1; it <= e.opts.MaxIterations; it++ {
		mid := 0.5 * (lo + hi)
		f := ip.property(e, known, mid)
		if f == value || hi-lo <= tol*math.Max(1, math.Abs(ip.row.T+mid)) {
			st := ip.state(e, mid)
			if known == Entropy {
				st.SpecificEntropy = value
			} else {
				st.SpecificEnthalpy = value
			}
			return st, nil
		}
		if f < value {
			lo = mid
		} else {
			hi = mid
		}
	}
	return model.State{}, &ConvergenceError{Property: known, Value: value, Pressure: ip.p,
		Iterations: e.opts.MaxIterations, Reason: "iteration cap reached"}
}
