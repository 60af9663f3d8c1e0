package pricing

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Lattice is a recombining forward-tree binomial lattice for European
// options. Up and down factors carry the risk-neutral drift:
//
//	u = exp((r - delta) h + sigma sqrt(h))
//	d = exp((r - delta) h - sigma sqrt(h))
//
// which guarantees u > 1 > d > 0 on sensible inputs and, because an
// up-then-down path lands on the same node as down-then-up, keeps the
// number of distinct terminal prices at n+1 instead of 2^n. Pricing
// sums the terminal binomial distribution directly, so the whole
// evaluation is O(n) rather than a walk over intermediate nodes.
//
// A Lattice is immutable once built and safe for concurrent use.
type Lattice struct {
	params MarketParameters
	steps  int
	step   float64 // h = T/n
	up     float64
	down   float64
	upProb float64 // risk-neutral up probability p*
}

// TerminalNode describes one terminal state of the lattice: the i-th
// node is reached by exactly i up-moves out of steps.
type TerminalNode struct {
	Index       int     `json:"index"`
	Price       float64 `json:"price"`
	Payoff      float64 `json:"payoff"`
	Probability float64 `json:"probability"`
}

// NewLattice derives the per-step geometry from the market parameters
// and validates it eagerly. It fails with a DomainError when the
// parameters are outside their domain, when steps < 1, when u == d
// (degenerate tree), or when p* falls outside (0,1) — the last signals
// an arbitrage-inconsistent lattice rather than silently producing a
// nonsensical price.
func NewLattice(p MarketParameters, steps int) (*Lattice, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if steps < 1 {
		return nil, domainErr("steps", float64(steps), "must be a positive integer")
	}

	h := p.Expiry / float64(steps)
	drift := (p.Rate - p.DivYield) * h
	spread := p.Vol * math.Sqrt(h)

	up := math.Exp(drift + spread)
	down := math.Exp(drift - spread)
	if up == down {
		return nil, domainErr("up_factor", up, "degenerate lattice: u == d")
	}

	upProb := (math.Exp(drift) - down) / (up - down)
	if upProb <= 0 || upProb >= 1 || math.IsNaN(upProb) {
		return nil, domainErr("up_probability", upProb, "outside (0,1): lattice admits arbitrage")
	}

	return &Lattice{
		params: p,
		steps:  steps,
		step:   h,
		up:     up,
		down:   down,
		upProb: upProb,
	}, nil
}

func (l *Lattice) Steps() int             { return l.steps }
func (l *Lattice) StepLength() float64    { return l.step }
func (l *Lattice) UpFactor() float64      { return l.up }
func (l *Lattice) DownFactor() float64    { return l.down }
func (l *Lattice) UpProbability() float64 { return l.upProb }

// Price discounts the expectation of the payoff under the terminal
// binomial distribution:
//
//	e^(-rT) * sum_i pmf(i) * payoff(S u^i d^(n-i), K)
func (l *Lattice) Price(payoff Payoff) float64 {
	dist := l.terminalDist()
	sum := 0.0
	for i := 0; i <= l.steps; i++ {
		sum += dist.Prob(float64(i)) * payoff.Value(l.terminalPrice(i), l.params.Strike)
	}
	return math.Exp(-l.params.Rate*l.params.Expiry) * sum
}

// Nodes returns the n+1 terminal states as a restartable lazy
// sequence, in node-index order. Ranging over it performs no work
// beyond the nodes actually consumed and does not affect Price; it is
// the diagnostic view of the same terminal distribution, kept separate
// from any presentation concern.
func (l *Lattice) Nodes(payoff Payoff) iter.Seq[TerminalNode] {
	return func(yield func(TerminalNode) bool) {
		dist := l.terminalDist()
		for i := 0; i <= l.steps; i++ {
			price := l.terminalPrice(i)
			node := TerminalNode{
				Index:       i,
				Price:       price,
				Payoff:      payoff.Value(price, l.params.Strike),
				Probability: dist.Prob(float64(i)),
			}
			if !yield(node) {
				return
			}
		}
	}
}

func (l *Lattice) terminalPrice(i int) float64 {
	return l.params.Spot * math.Pow(l.up, float64(i)) * math.Pow(l.down, float64(l.steps-i))
}

func (l *Lattice) terminalDist() distuv.Binomial {
	return distuv.Binomial{N: float64(l.steps), P: l.upProb}
}
