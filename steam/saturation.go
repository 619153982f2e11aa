package steam

import (
	"fmt"
	"math"
	"sort"

	"steamcycle/model"
)

// SaturationTable holds saturated water properties ordered by increasing pressure.
// It is immutable once built and safe for concurrent readers.
type SaturationTable struct {
	rows []model.SaturationRow
}

func NewSaturationTable(rows []model.SaturationRow) (*SaturationTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("saturation table needs at least 2 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if !(r.Hf < r.Hg) || !(r.Sf < r.Sg) || !(r.Vf < r.Vg) {
			return nil, fmt.Errorf("saturation row %d (p=%g): liquid properties must be below vapour properties", i, r.P)
		}
		if i > 0 && (r.P <= rows[i-1].P || r.T <= rows[i-1].T) {
			return nil, fmt.Errorf("saturation row %d (p=%g): pressure and temperature must increase", i, r.P)
		}
	}
	cp := make([]model.SaturationRow, len(rows))
	copy(cp, rows)
	return &SaturationTable{rows: cp}, nil
}

// Rows returns a copy of the tabulated rows.
func (t *SaturationTable) Rows() []model.SaturationRow {
	cp := make([]model.SaturationRow, len(t.rows))
	copy(cp, t.rows)
	return cp
}

func (t *SaturationTable) PressureRange() (min, max float64) {
	return t.rows[0].P, t.rows[len(t.rows)-1].P
}

func (t *SaturationTable) TemperatureRange() (min, max float64) {
	return t.rows[0].T, t.rows[len(t.rows)-1].T
}

// LookupByPressure interpolates linearly between the two rows bracketing p.
func (t *SaturationTable) LookupByPressure(p float64) (model.SaturationRow, error) {
	lo, hi := t.PressureRange()
	if math.IsNaN(p) || p < lo || p > hi {
		return model.SaturationRow{}, &OutOfRangeError{Property: Pressure, Value: p, Min: lo, Max: hi, Pressure: p}
	}
	i := sort.Search(len(t.rows), func(i int) bool { return t.rows[i].P >= p })
	if t.rows[i].P == p {
		return t.rows[i], nil
	}
	a, b := t.rows[i-1], t.rows[i]
	row := lerpRow(a, b, (p-a.P)/(b.P-a.P))
	row.P = p
	return row, nil
}

// LookupByTemperature interpolates linearly between the two rows bracketing temp.
func (t *SaturationTable) LookupByTemperature(temp float64) (model.SaturationRow, error) {
	lo, hi := t.TemperatureRange()
	if math.IsNaN(temp) || temp < lo || temp > hi {
		return model.SaturationRow{}, &OutOfRangeError{Property: Temperature, Value: temp, Min: lo, Max: hi, Pressure: math.NaN()}
	}
	i := sort.Search(len(t.rows), func(i int) bool { return t.rows[i].T >= temp })
	if t.rows[i].T == temp {
		return t.rows[i], nil
	}
	a, b := t.rows[i-1], t.rows[i]
	row := lerpRow(a, b, (temp-a.T)/(b.T-a.T))
	row.T = temp
	return row, nil
}

func lerp(a, b, w float64) float64 {
	return a + w*(b-a)
}

func lerpRow(a, b model.SaturationRow, w float64) model.SaturationRow {
	return model.SaturationRow{
		T:  lerp(a.T, b.T, w),
		P:  lerp(a.P, b.P, w),
		Hf: lerp(a.Hf, b.Hf, w),
		Hg: lerp(a.Hg, b.Hg, w),
		Sf: lerp(a.Sf, b.Sf, w),
		Sg: lerp(a.Sg, b.Sg, w),
		Vf: lerp(a.Vf, b.Vf, w),
		Vg: lerp(a.Vg, b.Vg, w),
	}
}
