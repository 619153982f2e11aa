package cycle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"steamcycle/steam"
)

// Sweep evaluates independent cycles on up to workers goroutines. Results keep the
// order of specs; the first failure cancels the remaining work.
func Sweep(ctx context.Context, r *steam.Resolver, specs []Spec, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*Result, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Evaluate(r, spec)
			if err != nil {
				return fmt.Errorf("cycle %d (%s): %w", i, spec.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PressureSweep builds specs that share everything with base except p_high.
func PressureSweep(base Spec, pHigh []float64) []Spec {
	specs := make([]Spec, len(pHigh))
	for i, p := range pHigh {
		s := base
		s.PHigh = p
		s.Name = fmt.Sprintf("%s @ %g kPa", base.Name, p)
		specs[i] = s
	}
	return specs
}
