// Package scenario loads and validates pricing scenarios from JSON
// config files and resolves missing market inputs from a data
// provider.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Scenario is one pricing job as described by a JSON config file. Spot
// and Vol may be omitted when Underlying is set; they are then resolved
// from market data.
type Scenario struct {
	Underlying   string  `json:"underlying,omitempty"`
	Spot         float64 `json:"spot,omitempty" validate:"omitempty,gt=0"`
	Strike       float64 `json:"strike" validate:"required,gt=0"`
	Vol          float64 `json:"vol,omitempty" validate:"omitempty,gt=0"`
	Rate         float64 `json:"rate"`
	DivYield     float64 `json:"div_yield"`
	ExpiryYears  float64 `json:"expiry_years" validate:"required,gt=0"`
	OptionType   string  `json:"option_type,omitempty" validate:"omitempty,oneof=call put"`
	Steps        []int   `json:"steps,omitempty" validate:"omitempty,dive,gte=1"`
	LookbackDays int     `json:"lookback_days,omitempty" validate:"omitempty,gte=2"`
	TraceSteps   int     `json:"trace_steps,omitempty" validate:"omitempty,gte=1"`
	ReportDir    string  `json:"report_dir,omitempty"`
	Verbosity    int     `json:"verbosity,omitempty" validate:"gte=0,lte=3"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a scenario file, applying defaults.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var sc Scenario
	if err := json.Unmarshal(b, &sc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := validate.Struct(&sc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if sc.OptionType == "" {
		sc.OptionType = string(pricing.Call)
	}
	if sc.ReportDir == "" {
		sc.ReportDir = "./out"
	}
	if sc.LookbackDays == 0 {
		sc.LookbackDays = 252
	}
	return &sc, nil
}

// Resolve fills in Spot and Vol from the provider when the config
// omitted them, and returns the market parameters for the pricers.
// Resolution needs an Underlying; a fully specified scenario never
// touches the provider.
func (sc *Scenario) Resolve(prov data.Provider) (pricing.MarketParameters, error) {
	spot, vol := sc.Spot, sc.Vol

	if spot == 0 || vol == 0 {
		if sc.Underlying == "" {
			return pricing.MarketParameters{}, fmt.Errorf("scenario needs spot and vol, or an underlying to resolve them from")
		}

		if spot == 0 {
			s, err := prov.GetSpot(sc.Underlying)
			if err != nil {
				return pricing.MarketParameters{}, fmt.Errorf("resolving spot: %w", err)
			}
			spot = s
			logger.Infof("resolved spot for %s: %.2f", sc.Underlying, spot)
		}

		if vol == 0 {
			to := time.Now().UTC()
			from := to.AddDate(0, 0, -sc.LookbackDays)
			closes, err := prov.GetDailyCloses(sc.Underlying, from, to)
			if err != nil {
				return pricing.MarketParameters{}, fmt.Errorf("resolving vol: %w", err)
			}
			vol = data.HistoricalVolatility(closes)
			logger.Infof("resolved hist vol for %s: %.2f%%", sc.Underlying, vol*100)
		}
	}

	return pricing.MarketParameters{
		Spot:     spot,
		Strike:   sc.Strike,
		Vol:      vol,
		Rate:     sc.Rate,
		DivYield: sc.DivYield,
		Expiry:   sc.ExpiryYears,
	}, nil
}
