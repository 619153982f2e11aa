package circuit

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"steamcycle/integrator"
)

func TestSimulate_FormsAgree(t *testing.T) {
	chk.PrintTitle("rlc current vs charge formulation")
	n := Default()
	opts := integrator.Options{Substeps: 20}
	a, err := n.Simulate(CurrentForm, 0, 10, 500, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := n.Simulate(ChargeForm, 0, 10, 500, opts)
	if err != nil {
		t.Fatal(err)
	}
	for k := range a.Time {
		chk.Float64(t, "i1", 1e-6, a.I1[k], b.I1[k])
		chk.Float64(t, "i2", 1e-6, a.I2[k], b.I2[k])
	}
}

func TestSimulate_Bounded(t *testing.T) {
	tr, err := Default().Simulate(CurrentForm, 0, 10, 500, integrator.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if tr.I1[0] != 0 || tr.I2[0] != 0 {
		t.Error("network must start from rest")
	}
	for k := range tr.Time {
		if math.Abs(tr.I1[k]) > 0.15 || math.Abs(tr.I2[k]) > 0.15 {
			t.Fatalf("t=%g: currents %g %g exceed 0.15 A", tr.Time[k], tr.I1[k], tr.I2[k])
		}
	}
}

func TestSimulate_DCSteadyState(t *testing.T) {
	// a constant source ends with the capacitor blocking: i2 = 0, i1 = v/R
	n := Network{L: 1, R: 10, C: 0.01, Source: func(float64) float64 { return 5 }}
	tr, err := n.Simulate(CurrentForm, 0, 20, 201, integrator.Options{Substeps: 20})
	if err != nil {
		t.Fatal(err)
	}
	last := len(tr.Time) - 1
	chk.Float64(t, "i1", 1e-6, tr.I1[last], 0.5)
	chk.Float64(t, "i2", 1e-6, tr.I2[last], 0)
	chk.Float64(t, "vc", 1e-5, tr.VC[last], -5)
}

func TestSimulate_Errors(t *testing.T) {
	n := Default()
	if _, err := n.Simulate("magnetic", 0, 1, 10, integrator.Options{}); err == nil {
		t.Error("unknown form accepted")
	}
	if _, err := n.Simulate(CurrentForm, 1, 0, 10, integrator.Options{}); err == nil {
		t.Error("reversed interval accepted")
	}
	n.C = 0
	if _, err := n.Simulate(CurrentForm, 0, 1, 10, integrator.Options{}); err == nil {
		t.Error("zero capacitance accepted")
	}
}
