// Package data provides market data providers used to seed pricing
// scenarios with observed inputs: a spot price and a daily close
// history for estimating volatility.
package data

import "time"

// Provider supplies market observations. Implementations may chain a
// secondary provider and delegate to it when they cannot serve a
// request themselves.
type Provider interface {
	Secondary() Provider
	GetSpot(underlying string) (float64, error)
	GetDailyCloses(underlying string, fromDate, toDate time.Time) ([]float64, error)
}
