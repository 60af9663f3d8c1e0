package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholes returns the Black-Scholes-Merton value of a European
// option under a constant continuous dividend yield.
//
// The closed form is evaluated directly, with no iteration:
//
//	d1 = (ln(S/K) + (r - delta + sigma^2/2) T) / (sigma sqrt(T))
//	d2 = d1 - sigma sqrt(T)
//	call = S e^(-delta T) N(d1) - K e^(-r T) N(d2)
//	put  = K e^(-r T) N(-d2) - S e^(-delta T) N(-d1)
//
// where N is the standard normal CDF (gonum distuv). A DomainError is
// returned before any arithmetic when S, K, sigma or T is not strictly
// positive; the log and the division by sigma sqrt(T) are undefined
// there.
func BlackScholes(p MarketParameters, typ OptionType) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	sqrtT := math.Sqrt(p.Expiry)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate-p.DivYield+0.5*p.Vol*p.Vol)*p.Expiry) / (p.Vol * sqrtT)
	d2 := d1 - p.Vol*sqrtT

	fwdSpot := p.Spot * math.Exp(-p.DivYield*p.Expiry)
	pvStrike := p.Strike * math.Exp(-p.Rate*p.Expiry)

	switch typ {
	case Call:
		return fwdSpot*distuv.UnitNormal.CDF(d1) - pvStrike*distuv.UnitNormal.CDF(d2), nil
	case Put:
		return pvStrike*distuv.UnitNormal.CDF(-d2) - fwdSpot*distuv.UnitNormal.CDF(-d1), nil
	}
	return 0, fmt.Errorf("pricing: unknown option type %q", typ)
}
