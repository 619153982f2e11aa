package steam

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"steamcycle/model"
)

func testResolver(t *testing.T) *Resolver {
	r, err := DefaultResolver()
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestResolve_QualityAtNodes(t *testing.T) {
	chk.PrintTitle("resolve by quality at table nodes")
	r := testResolver(t)
	for _, row := range r.Saturation().Rows() {
		liq, err := r.Resolve(row.P, "", WithQuality(0))
		if err != nil {
			t.Fatal(err)
		}
		vap, err := r.Resolve(row.P, "", WithQuality(1))
		if err != nil {
			t.Fatal(err)
		}
		if liq.SpecificEntropy != row.Sf || vap.SpecificEntropy != row.Sg {
			t.Errorf("p=%g: entropies %g/%g, want %g/%g", row.P, liq.SpecificEntropy, vap.SpecificEntropy, row.Sf, row.Sg)
		}
		if liq.Phase != model.SubcooledLiquid || vap.Phase != model.SuperheatedVapor {
			t.Errorf("p=%g: phases %v/%v", row.P, liq.Phase, vap.Phase)
		}
		if vap.Label != "saturated vapor" || liq.Label != "saturated liquid" {
			t.Errorf("p=%g: labels %q/%q", row.P, liq.Label, vap.Label)
		}
	}
}

func TestResolve_MonotonicInQuality(t *testing.T) {
	r := testResolver(t)
	for _, p := range []float64{1, 8, 101.325, 8000, 21000} {
		prev := -1.0
		for _, x := range utl.LinSpace(0, 1, 41) {
			st, err := r.Resolve(p, "", WithQuality(x))
			if err != nil {
				t.Fatal(err)
			}
			if st.SpecificEnthalpy <= prev {
				t.Errorf("p=%g x=%g: h=%g not above %g", p, x, st.SpecificEnthalpy, prev)
			}
			prev = st.SpecificEnthalpy
		}
	}
}

func TestResolve_TwoPhaseRoundTrip(t *testing.T) {
	r := testResolver(t)
	for _, p := range []float64{8, 500, 8000} {
		row, _ := r.Saturation().LookupByPressure(p)
		for _, s := range utl.LinSpace(row.Sf, row.Sg, 9)[1:8] {
			st, err := r.Resolve(p, "", WithEntropy(s))
			if err != nil {
				t.Fatal(err)
			}
			if st.Phase != model.TwoPhase {
				t.Fatalf("p=%g s=%g: phase %v", p, s, st.Phase)
			}
			x, _ := st.X()
			back, err := r.Resolve(p, "", WithQuality(x))
			if err != nil {
				t.Fatal(err)
			}
			chk.Float64(t, io.Sf("s p=%g", p), 1e-12, back.SpecificEntropy, s)
			chk.Float64(t, "h consistent", 1e-9, back.SpecificEnthalpy, row.Hf+x*(row.Hg-row.Hf))
		}
	}
}

func TestResolve_EnthalpyDome(t *testing.T) {
	r := testResolver(t)
	row, _ := r.Saturation().LookupByPressure(8)
	h := row.Hf + 0.25*(row.Hg-row.Hf)
	st, err := r.Resolve(8, "Turbine Exit", WithEnthalpy(h))
	if err != nil {
		t.Fatal(err)
	}
	x, ok := st.X()
	if !ok || st.Phase != model.TwoPhase {
		t.Fatalf("want two-phase state, got %v", st)
	}
	chk.Float64(t, "x", 1e-12, x, 0.25)
	chk.Float64(t, "s", 1e-12, st.SpecificEntropy, row.Sf+0.25*(row.Sg-row.Sf))
	if st.Label != "Turbine Exit" {
		t.Errorf("label %q", st.Label)
	}
}

func TestResolve_SaturationTemperatureIsVapor(t *testing.T) {
	r := testResolver(t)
	for _, p := range []float64{8, 100, 8000} {
		row, _ := r.Saturation().LookupByPressure(p)
		st, err := r.Resolve(p, "", WithTemperature(row.T))
		if err != nil {
			t.Fatal(err)
		}
		x, ok := st.X()
		if st.Phase != model.SuperheatedVapor || !ok || x != 1 {
			t.Errorf("p=%g: T=Tsat gave %v", p, st)
		}
		if st.SpecificEntropy != row.Sg {
			t.Errorf("p=%g: s=%g, want sg=%g", p, st.SpecificEntropy, row.Sg)
		}
	}
}

func TestResolve_Subcooled(t *testing.T) {
	r := testResolver(t)
	row, _ := r.Saturation().LookupByPressure(8000)
	st, err := r.Resolve(8000, "feed", WithTemperature(100))
	if err != nil {
		t.Fatal(err)
	}
	if st.Phase != model.SubcooledLiquid {
		t.Fatalf("phase %v", st.Phase)
	}
	if _, ok := st.X(); ok {
		t.Error("sub-cooled state must not carry a quality")
	}
	chk.Float64(t, "T", 1e-15, st.Temperature, 100)
	chk.Float64(t, "h", 1e-15, st.SpecificEnthalpy, row.Hf)
	chk.Float64(t, "s", 1e-15, st.SpecificEntropy, row.Sf)

	clamped, err := r.Resolve(8000, "", WithEntropy(0.5926))
	if err != nil {
		t.Fatal(err)
	}
	if clamped.Phase != model.SubcooledLiquid || clamped.SpecificEntropy != row.Sf || clamped.Temperature != row.T {
		t.Errorf("entropy below sf should clamp to saturated liquid: %v", clamped)
	}
}

func TestResolve_Superheated(t *testing.T) {
	r := testResolver(t)
	st, err := r.Resolve(8000, "Turbine Inlet", WithTemperature(500))
	if err != nil {
		t.Fatal(err)
	}
	if st.Phase != model.SuperheatedVapor {
		t.Fatalf("phase %v", st.Phase)
	}
	back, err := r.Resolve(8000, "", WithEntropy(st.SpecificEntropy))
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "T(s)", 1e-3, back.Temperature, 500)
	back, err = r.Resolve(8000, "", WithEnthalpy(st.SpecificEnthalpy))
	if err != nil {
		t.Fatal(err)
	}
	chk.Float64(t, "T(h)", 1e-3, back.Temperature, 500)
}

func TestResolve_GridTop(t *testing.T) {
	chk.PrintTitle("superheated 7 MPa, 600 °C")
	r := testResolver(t)
	st, err := r.Resolve(7000, "", WithTemperature(600))
	if err != nil {
		t.Fatal(err)
	}
	if chk.Verbose {
		io.Pforan("%v\n", st)
	}
	chk.Float64(t, "h", 3, st.SpecificEnthalpy, 3650.3)
	chk.Float64(t, "s", 0.01, st.SpecificEntropy, 7.091)
	chk.Float64(t, "v", 1e-3, st.SpecificVolume, 0.05566)

	for _, c := range []struct{ p, temp float64 }{{7000, 600}, {3000, 590}, {5, 590}, {12000, 590}} {
		fwd, err := r.Resolve(c.p, "", WithTemperature(c.temp))
		if err != nil {
			t.Fatalf("p=%g T=%g: %v", c.p, c.temp, err)
		}
		byS, err := r.Resolve(c.p, "", WithEntropy(fwd.SpecificEntropy))
		if err != nil {
			t.Fatalf("p=%g s=%g: %v", c.p, fwd.SpecificEntropy, err)
		}
		chk.Float64(t, io.Sf("T(s) p=%g", c.p), 1e-3, byS.Temperature, c.temp)
		byH, err := r.Resolve(c.p, "", WithEnthalpy(fwd.SpecificEnthalpy))
		if err != nil {
			t.Fatalf("p=%g h=%g: %v", c.p, fwd.SpecificEnthalpy, err)
		}
		chk.Float64(t, io.Sf("T(h) p=%g", c.p), 1e-3, byH.Temperature, c.temp)
	}
}

func TestResolve_TemperatureBelowTable(t *testing.T) {
	r := testResolver(t)
	lo, _ := r.Saturation().TemperatureRange()
	for _, temp := range []float64{-273.15, -100, lo - 0.01} {
		_, err := r.Resolve(8000, "", WithTemperature(temp))
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("T=%g: want OutOfRangeError, got %v", temp, err)
			continue
		}
		if oor.Property != Temperature || oor.Value != temp || oor.Pressure != 8000 {
			t.Errorf("T=%g: error should name temperature, value and pressure: %v", temp, err)
		}
	}
	if _, err := r.Resolve(8000, "", WithTemperature(lo)); err != nil {
		t.Errorf("lowest tabulated temperature should still resolve: %v", err)
	}
}

func TestResolve_Errors(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(100000, "", WithQuality(0.5))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("p=100000: want ErrOutOfRange, got %v", err)
	}
	var oor *OutOfRangeError
	if errors.As(err, &oor) && oor.Value != 100000 {
		t.Errorf("error should carry the attempted pressure: %v", err)
	}

	for name, given := range map[string][]Given{
		"none":  nil,
		"two":   {WithQuality(0.5), WithTemperature(100)},
		"x>1":   {WithQuality(1.5)},
		"x<0":   {WithQuality(-0.1)},
		"nan":   {WithEnthalpy(math.NaN())},
		"bogus": {{Property: Pressure, Value: 1}},
	} {
		if _, err := r.Resolve(100, "", given...); !errors.Is(err, ErrInvalidSpecification) {
			t.Errorf("%s: want ErrInvalidSpecification, got %v", name, err)
		}
	}

	if _, err := r.Resolve(8000, "", WithEnthalpy(1e5)); !errors.Is(err, ErrConvergence) {
		t.Errorf("huge enthalpy: want ErrConvergence, got %v", err)
	}
}

func TestResolve_ConcurrentReaders(t *testing.T) {
	r := testResolver(t)
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(i int) {
			_, err := r.Resolve(10+float64(i)*1000, "", WithEntropy(7))
			done <- err
		}(i)
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}
