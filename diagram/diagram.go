// Package diagram builds the data for a T-s diagram of a Rankine cycle: the vapour
// dome from the saturation table and the cycle outline from resolved states. Drawing
// is left to the consumer.
package diagram

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/utl"

	"steamcycle/cycle"
	"steamcycle/steam"
)

const segmentPoints = 20

type Point struct {
	S float64 `json:"s"` // kJ/kg·K
	T float64 `json:"t"` // °C
}

type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

type TSDiagram struct {
	Title   string   `json:"title"`
	Series  []Series `json:"series"`
	Markers []Point  `json:"markers"`
	// Fill is the area between the top outline and the state 3 isotherm.
	Fill []Point `json:"fill"`
	SMin float64 `json:"s_min"`
	SMax float64 `json:"s_max"`
	TMin float64 `json:"t_min"`
	TMax float64 `json:"t_max"`
}

// Build assembles the vapour dome and the cycle outline for res.
func Build(r *steam.Resolver, res *cycle.Result) (*TSDiagram, error) {
	rows := r.Saturation().Rows()
	liquid := Series{Name: "saturated liquid", Color: "blue"}
	vapor := Series{Name: "saturated vapor", Color: "red"}
	sMin, sMax := math.Inf(1), math.Inf(-1)
	tMin, tMax := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		liquid.Points = append(liquid.Points, Point{row.Sf, row.T})
		vapor.Points = append(vapor.Points, Point{row.Sg, row.T})
		sMin = math.Min(sMin, row.Sf)
		sMax = math.Max(sMax, row.Sg)
		tMin = math.Min(tMin, row.T)
		tMax = math.Max(tMax, row.T)
	}

	s1, s2, s3 := res.State1, res.State2, res.State3
	pHigh := res.Spec.PHigh
	liqHigh, err := r.Resolve(pHigh, "", steam.WithQuality(0))
	if err != nil {
		return nil, fmt.Errorf("saturated liquid at p_high: %w", err)
	}
	vapHigh, err := r.Resolve(pHigh, "", steam.WithQuality(1))
	if err != nil {
		return nil, fmt.Errorf("saturated vapor at p_high: %w", err)
	}

	// pump exit up to the saturated liquid at p_high
	top := line(s3.SpecificEntropy, liqHigh.SpecificEntropy, s3.Temperature, liqHigh.Temperature)
	// boiling along the high isobar
	top = append(top, line(liqHigh.SpecificEntropy, vapHigh.SpecificEntropy, liqHigh.Temperature, liqHigh.Temperature)...)
	if s1.Temperature > vapHigh.Temperature {
		for _, s := range utl.LinSpace(vapHigh.SpecificEntropy, s1.SpecificEntropy, segmentPoints) {
			st, err := r.Resolve(pHigh, "", steam.WithEntropy(s))
			if err != nil {
				return nil, fmt.Errorf("superheated isobar at s=%g: %w", s, err)
			}
			top = append(top, Point{s, st.Temperature})
		}
	}
	// turbine expansion
	top = append(top, line(s1.SpecificEntropy, s2.SpecificEntropy, s1.Temperature, s2.Temperature)...)
	// state 3 isotherm under the outline
	bottom := make([]Point, len(top))
	for i, pt := range top {
		bottom[i] = Point{pt.S, s3.Temperature}
	}

	fill := make([]Point, 0, 2*len(top))
	fill = append(fill, top...)
	for i := len(bottom) - 1; i >= 0; i-- {
		fill = append(fill, bottom[i])
	}

	return &TSDiagram{
		Title: res.Name,
		Series: []Series{
			liquid,
			vapor,
			{Name: "cycle", Color: "darkgreen", Points: top},
			{Name: "condenser", Color: "black", Points: bottom},
		},
		Markers: []Point{
			{s1.SpecificEntropy, s1.Temperature},
			{s2.SpecificEntropy, s2.Temperature},
			{s3.SpecificEntropy, s3.Temperature},
		},
		Fill: fill,
		SMin: sMin,
		SMax: sMax,
		TMin: tMin,
		TMax: 1.05 * math.Max(tMax, s1.Temperature),
	}, nil
}

func line(sA, sB, tA, tB float64) []Point {
	ss := utl.LinSpace(sA, sB, segmentPoints)
	ts := utl.LinSpace(tA, tB, segmentPoints)
	pts := make([]Point, segmentPoints)
	for i := range pts {
		pts[i] = Point{ss[i], ts[i]}
	}
	return pts
}
