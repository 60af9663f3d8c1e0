package pricing

// OptionType selects between the two vanilla European exercise payoffs.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// MarketParameters describes one European option pricing problem.
// The struct is a plain value: both pricers treat it as immutable and
// every pricing call is a pure function of it, so a single instance may
// be shared across concurrent calls.
type MarketParameters struct {
	Spot     float64 `json:"spot" validate:"gt=0"`         // underlying price S
	Strike   float64 `json:"strike" validate:"gt=0"`       // strike K
	Vol      float64 `json:"vol" validate:"gt=0"`          // annualized volatility sigma
	Rate     float64 `json:"rate"`                         // continuously compounded risk-free rate r
	DivYield float64 `json:"div_yield"`                    // continuous dividend yield delta
	Expiry   float64 `json:"expiry_years" validate:"gt=0"` // time to expiry T in years
}

// Validate checks the strict-positivity invariants shared by both
// pricers. Rate and DivYield may legally be zero or negative.
func (p MarketParameters) Validate() error {
	switch {
	case p.Spot <= 0:
		return domainErr("spot", p.Spot, "must be positive")
	case p.Strike <= 0:
		return domainErr("strike", p.Strike, "must be positive")
	case p.Vol <= 0:
		return domainErr("vol", p.Vol, "must be positive")
	case p.Expiry <= 0:
		return domainErr("expiry_years", p.Expiry, "must be positive")
	}
	return nil
}
