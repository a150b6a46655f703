package errors

import (
	"math"
)

// CheckNumericalStability checks if values contain NaN or Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, iteration int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// CheckNormalizer checks the denominator of a probability normalization.
// A zero, negative, NaN or Inf sum means the distribution can no longer be
// rescaled to one.
func CheckNormalizer(operation string, sum float64, iteration int) error {
	if err := CheckScalar(operation, sum, iteration); err != nil {
		return err
	}
	if sum <= 0 {
		return NewNumericalInstabilityError(operation, []float64{sum}, iteration)
	}
	return nil
}
