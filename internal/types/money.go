// README: Common money value object used across modules.
package types

import "math"

// Money is an amount in minor units (paise for INR).
type Money struct {
	Amount   int64
	Currency string
}

const CurrencyINR = "INR"

// FromMajor converts a major-unit amount (rupees) to Money, rounding to the nearest minor unit.
func FromMajor(v float64, currency string) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

// Major returns the amount in major units.
func (m Money) Major() float64 {
	return float64(m.Amount) / 100
}
