package domain

import "math"

// RewardAmount computes the cashback for a paid total at the given percent
// rate, rounded to cents. Rounding is half-away-from-zero, which is what
// math.Round does on the cent-scaled value.
func RewardAmount(totalPaid, percent float64) float64 {
	return math.Round(totalPaid*percent) / 100
}
