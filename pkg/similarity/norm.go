package similarity

import "math"

// Norm maps a path length d to an agreement score with a logistic decay:
//
//	norm(d) = 1 / (1 - K + e^(alpha*(d-shift))),  K = e^(alpha*(1-shift))
//
// so that norm(1) = 1 and norm(+Inf) = 0.
func Norm(d, alpha, shift float64) float64 {
	if math.IsInf(d, 1) {
		return 0
	}
	k := math.Exp(alpha * (1 - shift))
	return 1 / (1 - k + math.Exp(alpha*(d-shift)))
}
