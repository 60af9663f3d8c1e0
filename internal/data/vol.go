package data

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const tradingDaysPerYear = 252.0

// defaultVol is used when a close history is too short to estimate from.
const defaultVol = 0.30

// HistoricalVolatility annualizes the sample standard deviation of
// daily log returns. Closes must be in ascending date order; fewer
// than two closes falls back to defaultVol.
func HistoricalVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return defaultVol
	}

	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	return stat.StdDev(rets, nil) * math.Sqrt(tradingDaysPerYear)
}
