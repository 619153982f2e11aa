// Package circuit simulates the transient response of the two-loop RLC network: a
// source v(t) drives an inductor L in series with a resistor R that is shunted by a
// capacitor C.
package circuit

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/utl"
	log "github.com/sirupsen/logrus"

	"steamcycle/integrator"
)

// Form selects the state variables used to integrate the network.
type Form string

const (
	// CurrentForm integrates the loop currents (i1, i2).
	CurrentForm Form = "current"
	// ChargeForm integrates (q1, dq1/dt, q2).
	ChargeForm Form = "charge"
)

// Network holds the element values and the source voltage callback.
type Network struct {
	L, R, C float64
	Source  func(t float64) float64
}

// Default is the textbook network: L=20 H, R=10 Ω, C=0.05 F,
// v(t) = 20·sin(20t).
func Default() Network {
	return Network{L: 20, R: 10, C: 0.05, Source: Sine(20, 20)}
}

// Sine returns t -> amplitude·sin(omega·t).
func Sine(amplitude, omega float64) func(float64) float64 {
	return func(t float64) float64 { return amplitude * math.Sin(omega*t) }
}

func (n Network) validate() error {
	if !(n.L > 0) || !(n.R > 0) || !(n.C > 0) {
		return fmt.Errorf("circuit: L, R and C must be positive (L=%g R=%g C=%g)", n.L, n.R, n.C)
	}
	if n.Source == nil {
		return fmt.Errorf("circuit: missing source")
	}
	return nil
}

// currents: i1' = (v - (i1-i2)R)/L, i2' = i1' - i2/(RC)
func (n Network) currents(t float64, x, dx []float64) {
	i1, i2 := x[0], x[1]
	i1dot := (n.Source(t) - (i1-i2)*n.R) / n.L
	dx[0] = i1dot
	dx[1] = i1dot - i2/(n.R*n.C)
}

// charges: q2' = q1' - q2/(RC), q1'' = (v - (q1'-q2')R)/L
func (n Network) charges(t float64, x, dx []float64) {
	q1dot, q2 := x[1], x[2]
	q2dot := q1dot - q2/(n.R*n.C)
	dx[0] = q1dot
	dx[1] = (n.Source(t) - (q1dot-q2dot)*n.R) / n.L
	dx[2] = q2dot
}

// Trace is the sampled response.
type Trace struct {
	Time []float64 `json:"time"`
	I1   []float64 `json:"i1"`
	I2   []float64 `json:"i2"`
	VC   []float64 `json:"vc"`
}

// Simulate integrates the network from rest over [t0, tf] at points evenly spaced
// samples.
func (n Network) Simulate(form Form, t0, tf float64, points int, opts integrator.Options) (*Trace, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}
	if points < 2 || !(tf > t0) {
		return nil, fmt.Errorf("circuit: need tf > t0 and at least 2 points (t0=%g tf=%g points=%d)", t0, tf, points)
	}
	times := utl.LinSpace(t0, tf, points)
	tr := &Trace{
		Time: times,
		I1:   make([]float64, points),
		I2:   make([]float64, points),
		VC:   make([]float64, points),
	}
	switch form {
	case CurrentForm:
		xs, err := integrator.Solve(n.currents, []float64{0, 0}, times, opts)
		if err != nil {
			return nil, err
		}
		for k, x := range xs {
			tr.I1[k], tr.I2[k] = x[0], x[1]
			tr.VC[k] = n.R * (x[1] - x[0])
		}
	case ChargeForm:
		xs, err := integrator.Solve(n.charges, []float64{0, 0, 0}, times, opts)
		if err != nil {
			return nil, err
		}
		for k, x := range xs {
			tr.I1[k] = x[1]
			tr.I2[k] = x[1] - x[2]/(n.R*n.C)
			tr.VC[k] = -x[2] / n.C
		}
	default:
		return nil, fmt.Errorf("circuit: unknown form %q", form)
	}
	log.WithFields(log.Fields{
		"form":   string(form),
		"points": points,
		"tf":     tf,
	}).Debug("circuit simulated")
	return tr, nil
}
