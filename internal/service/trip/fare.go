package trip

import (
	"math"
	"time"
)

// FareCalculator prices a trip by time: a flat unlock fee plus a per-minute
// rate. Minutes are rounded up, and a trip is always charged at least one.
type FareCalculator struct {
	BaseFare      float64
	RatePerMinute float64
	Currency      string
}

func NewFareCalculator(baseFare, ratePerMinute float64, currency string) FareCalculator {
	if currency == "" {
		currency = "EGP"
	}
	return FareCalculator{
		BaseFare:      baseFare,
		RatePerMinute: ratePerMinute,
		Currency:      currency,
	}
}

// Calculate returns the fare for the elapsed riding time.
func (f FareCalculator) Calculate(elapsed time.Duration) float64 {
	minutes := math.Ceil(elapsed.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return f.BaseFare + minutes*f.RatePerMinute
}
