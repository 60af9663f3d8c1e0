package pricing

import (
	"fmt"
	"math"
)

// Payoff maps a terminal underlying price and a strike to the option's
// cash value at expiry. Implementations must be pure, stateless and
// total over non-negative inputs, and must never return a negative
// value. New variants plug into both pricers without modifying them.
type Payoff interface {
	Value(terminal, strike float64) float64
}

// CallPayoff pays max(S_T - K, 0).
type CallPayoff struct{}

func (CallPayoff) Value(terminal, strike float64) float64 {
	return math.Max(terminal-strike, 0)
}

// PutPayoff pays max(K - S_T, 0).
type PutPayoff struct{}

func (PutPayoff) Value(terminal, strike float64) float64 {
	return math.Max(strike-terminal, 0)
}

// DigitalPayoff pays a fixed cash amount when the option finishes in
// the money, nothing otherwise. It exists to exercise the extension
// point: neither pricer knows about it.
type DigitalPayoff struct {
	Type OptionType
	Cash float64
}

func (d DigitalPayoff) Value(terminal, strike float64) float64 {
	inTheMoney := terminal > strike
	if d.Type == Put {
		inTheMoney = terminal < strike
	}
	if inTheMoney {
		return d.Cash
	}
	return 0
}

// PayoffFor returns the vanilla payoff matching an option type.
func PayoffFor(typ OptionType) (Payoff, error) {
	switch typ {
	case Call:
		return CallPayoff{}, nil
	case Put:
		return PutPayoff{}, nil
	}
	return nil, fmt.Errorf("pricing: unknown option type %q", typ)
}
