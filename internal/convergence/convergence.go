// Package convergence runs a binomial lattice across a sequence of
// step counts and measures the distance to the closed-form
// Black-Scholes-Merton benchmark at each count.
package convergence

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Point pairs one lattice refinement with its price and the absolute
// distance to the closed-form benchmark.
type Point struct {
	Steps    int     `json:"steps"`
	Lattice  float64 `json:"lattice_price"`
	AbsError float64 `json:"abs_error"`
}

// Result is a complete convergence study, points ordered by step count.
type Result struct {
	Params     pricing.MarketParameters `json:"params"`
	OptionType pricing.OptionType       `json:"option_type"`
	ClosedForm float64                  `json:"closed_form_price"`
	Points     []Point                  `json:"points"`
}

// DefaultSteps is the ladder used when a scenario does not pick its own.
var DefaultSteps = []int{2, 5, 10, 25, 50, 100, 250, 500}

// Study prices the lattice at every step count and compares each price
// with the closed-form value. Pricing calls are pure, so the step
// counts are fanned out concurrently; each worker writes only its own
// slot in the pre-sized results slice.
func Study(p pricing.MarketParameters, typ pricing.OptionType, steps []int) (*Result, error) {
	if len(steps) == 0 {
		steps = DefaultSteps
	}

	benchmark, err := pricing.BlackScholes(p, typ)
	if err != nil {
		return nil, fmt.Errorf("closed-form benchmark: %w", err)
	}
	payoff, err := pricing.PayoffFor(typ)
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(steps))
	var g errgroup.Group
	for i, n := range steps {
		g.Go(func() error {
			lat, err := pricing.NewLattice(p, n)
			if err != nil {
				return fmt.Errorf("lattice n=%d: %w", n, err)
			}
			price := lat.Price(payoff)
			points[i] = Point{Steps: n, Lattice: price, AbsError: math.Abs(price - benchmark)}
			logger.Debugf("lattice n=%d price=%.6f abs_err=%.6f", n, price, points[i].AbsError)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Steps < points[j].Steps })

	return &Result{
		Params:     p,
		OptionType: typ,
		ClosedForm: benchmark,
		Points:     points,
	}, nil
}
