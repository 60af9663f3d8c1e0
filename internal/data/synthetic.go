package data

import (
	"math"
	"math/rand"
	"time"
)

// synthProvider implements Provider with generated data. It stands in
// for a real data source in tests and offline runs.
type synthProvider struct {
	secondary Provider
	rng       *rand.Rand
}

// NewSyntheticProvider returns a provider that generates a geometric
// random walk seeded for reproducibility.
func NewSyntheticProvider(seed int64) Provider {
	return &synthProvider{rng: rand.New(rand.NewSource(seed))}
}

func (synthProv *synthProvider) Secondary() Provider {
	return synthProv.secondary
}

func (synthProv *synthProvider) GetSpot(underlying string) (float64, error) {
	if synthProv.secondary != nil {
		return synthProv.secondary.GetSpot(underlying)
	}
	return 100.0 + float64(synthProv.rng.Intn(200)), nil
}

func (synthProv *synthProvider) GetDailyCloses(underlying string, fromDate, toDate time.Time) ([]float64, error) {
	if synthProv.secondary != nil {
		return synthProv.secondary.GetDailyCloses(underlying, fromDate, toDate)
	}

	price := 100.0 + float64(synthProv.rng.Intn(200))
	dailyVol := 0.20 / math.Sqrt(tradingDaysPerYear)

	var out []float64
	cur := fromDate
	for !cur.After(toDate) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			price *= math.Exp(synthProv.rng.NormFloat64() * dailyVol)
			out = append(out, price)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}
