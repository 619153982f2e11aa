// Package integrator solves initial value problems y' = f(t, y) with the classic
// fourth-order Runge-Kutta scheme.
package integrator

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBadTimeGrid = errors.New("integrator: output times must be strictly increasing")
	ErrDiverged    = errors.New("integrator: state is not finite")
)

// Func writes dy/dt at (t, y) into dydt.
type Func func(t float64, y, dydt []float64)

type Options struct {
	// Substeps is the number of RK4 steps taken between two output times.
	Substeps int
}

// Solve integrates f from y0 at times[0] and returns the state at every entry of times.
func Solve(f Func, y0 []float64, times []float64, opts Options) ([][]float64, error) {
	if len(times) == 0 {
		return nil, nil
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return nil, fmt.Errorf("%w: t[%d]=%g, t[%d]=%g", ErrBadTimeGrid, i-1, times[i-1], i, times[i])
		}
	}
	if opts.Substeps < 1 {
		opts.Substeps = 10
	}
	n := len(y0)
	w := newWork(n)
	y := append([]float64(nil), y0...)
	out := make([][]float64, len(times))
	out[0] = append([]float64(nil), y...)
	for i := 1; i < len(times); i++ {
		h := (times[i] - times[i-1]) / float64(opts.Substeps)
		t := times[i-1]
		for k := 0; k < opts.Substeps; k++ {
			w.step(f, t, h, y)
			t += h
		}
		for j, v := range y {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return out[:i], fmt.Errorf("%w: y[%d] at t=%g", ErrDiverged, j, times[i])
			}
		}
		out[i] = append([]float64(nil), y...)
	}
	return out, nil
}

type work struct {
	k1, k2, k3, k4, tmp []float64
}

func newWork(n int) *work {
	return &work{
		k1:  make([]float64, n),
		k2:  make([]float64, n),
		k3:  make([]float64, n),
		k4:  make([]float64, n),
		tmp: make([]float64, n),
	}
}

// step advances y in place by one RK4 step of size h.
func (w *work) step(f Func, t, h float64, y []float64) {
	f(t, y, w.k1)
	for i := range y {
		w.tmp[i] = y[i] + 0.5*h*w.k1[i]
	}
	f(t+0.5*h, w.tmp, w.k2)
	for i := range y {
		w.tmp[i] = y[i] + 0.5*h*w.k2[i]
	}
	f(t+0.5*h, w.tmp, w.k3)
	for i := range y {
		w.tmp[i] = y[i] + h*w.k3[i]
	}
	f(t+h, w.tmp, w.k4)
	for i := range y {
		y[i] += h / 6 * (w.k1[i] + 2*w.k2[i] + 2*w.k3[i] + w.k4[i])
	}
}
