// Package confidence scores how much to trust a derived recommendation
// given the completeness of its input data.
package confidence

import "math"

// Named confidence bands.
const (
	High   = 0.95
	Medium = 0.80
	Low    = 0.60

	// Min is the floor below which a recommendation label is downgraded.
	Min = 0.50
)

// Aggregate combines component scores with a geometric mean, so one
// low-confidence component drags the whole result down.
func Aggregate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	product := 1.0
	for _, s := range scores {
		if s <= 0 {
			return 0
		}
		product *= s
	}

	return math.Pow(product, 1.0/float64(len(scores)))
}

// Decay reduces a base confidence by 10% per missing input.
func Decay(base float64, missing int) float64 {
	if missing <= 0 {
		return base
	}
	return base * math.Pow(0.9, float64(missing))
}

// Clamp bounds a score to [0, 1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Label maps a numeric score to the wire-format confidence label.
func Label(score float64) string {
	switch {
	case score >= High:
		return "High"
	case score >= Low:
		return "Medium"
	default:
		return "Low"
	}
}
