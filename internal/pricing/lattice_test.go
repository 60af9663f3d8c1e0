package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestLatticeReferenceCall(t *testing.T) {
	cases := []struct {
		name  string
		steps int
		want  float64
	}{
		// A coarse tree overshoots, a fine one lands near closed form;
		// the error shrinks but not monotonically.
		{"n10", 10, 3.454440},
		{"n500", 500, 3.399920},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, err := NewLattice(refParams, tc.steps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			price := lat.Price(CallPayoff{})
			if math.Abs(price-tc.want) > 1e-3 {
				t.Fatalf("lattice(%d): got %.6f want %.6f", tc.steps, price, tc.want)
			}
		})
	}
}

func TestLatticeGeometry(t *testing.T) {
	lat, err := NewLattice(refParams, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u, d := lat.UpFactor(), lat.DownFactor(); !(u > 1 && 1 > d && d > 0) {
		t.Fatalf("expected u > 1 > d > 0, got u=%g d=%g", u, d)
	}
	if p := lat.UpProbability(); p <= 0 || p >= 1 {
		t.Fatalf("expected p* in (0,1), got %g", p)
	}
	if h := lat.StepLength(); math.Abs(h-refParams.Expiry/10) > 1e-15 {
		t.Fatalf("expected h=T/n, got %g", h)
	}
}

func TestLatticeProbabilityMassSumsToOne(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100, 500} {
		lat, err := NewLattice(refParams, n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		mass := 0.0
		for node := range lat.Nodes(CallPayoff{}) {
			mass += node.Probability
		}
		if math.Abs(mass-1.0) > 1e-9 {
			t.Fatalf("n=%d: probability mass %.12f != 1", n, mass)
		}
	}
}

func TestLatticeNodesMatchPrice(t *testing.T) {
	lat, err := NewLattice(refParams, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The diagnostic sequence is the same distribution Price sums over.
	sum := 0.0
	count := 0
	for node := range lat.Nodes(CallPayoff{}) {
		sum += node.Probability * node.Payoff
		count++
	}
	if count != 51 {
		t.Fatalf("expected n+1=51 nodes, got %d", count)
	}

	want := lat.Price(CallPayoff{})
	got := math.Exp(-refParams.Rate*refParams.Expiry) * sum
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("nodes sum %.12f != price %.12f", got, want)
	}
}

func TestLatticeNodesRestartable(t *testing.T) {
	lat, err := NewLattice(refParams, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := lat.Nodes(PutPayoff{})

	var first []TerminalNode
	for node := range seq {
		first = append(first, node)
	}

	// An early break must not poison a later full pass.
	for node := range seq {
		if node.Index >= 3 {
			break
		}
	}

	i := 0
	for node := range seq {
		if node != first[i] {
			t.Fatalf("restarted sequence diverged at index %d: %+v != %+v", i, node, first[i])
		}
		i++
	}
	if i != len(first) {
		t.Fatalf("restarted sequence yielded %d nodes, want %d", i, len(first))
	}
}

func TestLatticeTerminalPricesOrdered(t *testing.T) {
	lat, err := NewLattice(refParams, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := 0.0
	for node := range lat.Nodes(CallPayoff{}) {
		if node.Price <= prev {
			t.Fatalf("terminal prices not strictly increasing at index %d: %g <= %g", node.Index, node.Price, prev)
		}
		prev = node.Price
	}
}

func TestLatticeDomainErrors(t *testing.T) {
	cases := []struct {
		name   string
		params MarketParameters
		steps  int
	}{
		{"zero_steps", refParams, 0},
		{"negative_steps", refParams, -5},
		{"zero_vol", MarketParameters{Spot: 41, Strike: 40, Vol: 0, Rate: 0.08, Expiry: 0.25}, 10},
		{"zero_expiry", MarketParameters{Spot: 41, Strike: 40, Vol: 0.3, Rate: 0.08, Expiry: 0}, 10},
		// sigma sqrt(h) overflows exp: u=+Inf, d=0, p* collapses to 0.
		{"extreme_vol", MarketParameters{Spot: 41, Strike: 40, Vol: 1e10, Rate: 0.08, Expiry: 1}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLattice(tc.params, tc.steps)
			if err == nil {
				t.Fatal("expected DomainError, got nil")
			}
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DomainError, got %T: %v", err, err)
			}
		})
	}
}
