package pricing

import (
	"math"
	"testing"
)

func TestPayoffNonNegative(t *testing.T) {
	terminals := []float64{0, 0.01, 39.99, 40, 40.01, 100, 1e6}
	strikes := []float64{0.01, 40, 500}

	for _, s := range terminals {
		for _, k := range strikes {
			if v := (CallPayoff{}).Value(s, k); v < 0 {
				t.Fatalf("call payoff negative: S_T=%g K=%g -> %g", s, k, v)
			}
			if v := (PutPayoff{}).Value(s, k); v < 0 {
				t.Fatalf("put payoff negative: S_T=%g K=%g -> %g", s, k, v)
			}
		}
	}
}

// Call(S_T,K) + K == Put(S_T,K) + S_T for all non-negative inputs.
func TestPayoffIdentity(t *testing.T) {
	terminals := []float64{0, 1, 39.5, 40, 40.5, 250}
	strikes := []float64{1, 40, 120}

	for _, s := range terminals {
		for _, k := range strikes {
			lhs := (CallPayoff{}).Value(s, k) + k
			rhs := (PutPayoff{}).Value(s, k) + s
			if math.Abs(lhs-rhs) > 1e-12 {
				t.Fatalf("payoff identity violated at S_T=%g K=%g: %g != %g", s, k, lhs, rhs)
			}
		}
	}
}

func TestDigitalPayoff(t *testing.T) {
	d := DigitalPayoff{Type: Call, Cash: 10}
	if v := d.Value(45, 40); v != 10 {
		t.Fatalf("digital call ITM: got %g want 10", v)
	}
	if v := d.Value(35, 40); v != 0 {
		t.Fatalf("digital call OTM: got %g want 0", v)
	}

	d = DigitalPayoff{Type: Put, Cash: 5}
	if v := d.Value(35, 40); v != 5 {
		t.Fatalf("digital put ITM: got %g want 5", v)
	}
	if v := d.Value(45, 40); v != 0 {
		t.Fatalf("digital put OTM: got %g want 0", v)
	}
}

func TestPayoffFor(t *testing.T) {
	if _, err := PayoffFor(Call); err != nil {
		t.Fatalf("call: unexpected error: %v", err)
	}
	if _, err := PayoffFor(Put); err != nil {
		t.Fatalf("put: unexpected error: %v", err)
	}
	if _, err := PayoffFor(OptionType("butterfly")); err == nil {
		t.Fatal("expected error for unknown payoff")
	}
}
