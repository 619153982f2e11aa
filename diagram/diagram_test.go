package diagram

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"

	"steamcycle/cycle"
	"steamcycle/steam"
)

func build(t *testing.T, tHigh *float64) (*cycle.Result, *TSDiagram) {
	r, err := steam.DefaultResolver()
	if err != nil {
		t.Fatal(err)
	}
	res, err := cycle.Evaluate(r, cycle.Spec{Name: "ts", PLow: 8, PHigh: 8000, THigh: tHigh, TurbineEfficiency: 1})
	if err != nil {
		t.Fatal(err)
	}
	d, err := Build(r, res)
	if err != nil {
		t.Fatal(err)
	}
	return res, d
}

func TestBuild_Superheated(t *testing.T) {
	chk.PrintTitle("T-s diagram")
	tHigh := 500.0
	res, d := build(t, &tHigh)

	if len(d.Series) != 4 {
		t.Fatalf("want 4 series, got %d", len(d.Series))
	}
	top := d.Series[2].Points
	if len(top) != 4*segmentPoints {
		t.Errorf("superheated outline should have %d points, got %d", 4*segmentPoints, len(top))
	}
	last := top[len(top)-1]
	chk.Float64(t, "outline ends at state 2 s", 1e-12, last.S, res.State2.SpecificEntropy)
	chk.Float64(t, "outline ends at state 2 T", 1e-12, last.T, res.State2.Temperature)

	// superheated branch climbs monotonically to T1
	sh := top[2*segmentPoints : 3*segmentPoints]
	for i := 1; i < len(sh); i++ {
		if sh[i].T < sh[i-1].T {
			t.Errorf("isobar temperature drops at %d: %g < %g", i, sh[i].T, sh[i-1].T)
		}
	}
	chk.Float64(t, "isobar reaches T1", 1e-2, sh[len(sh)-1].T, 500)
	chk.Float64(t, "t max", 1e-9, d.TMax, 1.05*500)
	if len(d.Fill) != 2*len(top) {
		t.Errorf("fill has %d points", len(d.Fill))
	}
	if _, err := json.Marshal(d); err != nil {
		t.Fatal(err)
	}
}

func TestBuild_Saturated(t *testing.T) {
	_, d := build(t, nil)
	if n := len(d.Series[2].Points); n != 3*segmentPoints {
		t.Errorf("saturated outline should skip the superheated branch, got %d points", n)
	}
	if !(d.SMin < d.SMax) || !(d.TMin < d.TMax) {
		t.Errorf("bad limits %+v", d)
	}
}

func TestBuild_BottomAtPumpInlet(t *testing.T) {
	r, err := steam.DefaultResolver()
	if err != nil {
		t.Fatal(err)
	}
	tHigh := 500.0
	res, err := cycle.Evaluate(r, cycle.Spec{Name: "lossy", PLow: 8, PHigh: 8000, THigh: &tHigh, TurbineEfficiency: 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if !(res.State2.Temperature > res.State3.Temperature+1) {
		t.Fatalf("turbine exit should be superheated: T2=%g T3=%g", res.State2.Temperature, res.State3.Temperature)
	}
	d, err := Build(r, res)
	if err != nil {
		t.Fatal(err)
	}
	top, bottom := d.Series[2].Points, d.Series[3].Points
	if len(bottom) != len(top) {
		t.Fatalf("bottom line has %d points, outline %d", len(bottom), len(top))
	}
	for i, pt := range bottom {
		if pt.T != res.State3.Temperature || pt.S != top[i].S {
			t.Errorf("bottom point %d = %+v, want s=%g T=%g", i, pt, top[i].S, res.State3.Temperature)
			break
		}
	}
}
