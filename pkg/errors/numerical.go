package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CheckNumericalStability checks a slice of values for NaN or Inf and
// returns a NumericalInstabilityError describing how many values are
// non-finite. It returns nil when every value is finite.
//
// Callers decide whether the result is fatal or a warning: ratio
// features derived from raw census counts are allowed to contain
// non-finite values, so the pipeline reports them through Warn instead
// of aborting.
func CheckNumericalStability(operation string, values []float64) error {
	var bad []float64
	count := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			count++
			if len(bad) < 5 {
				bad = append(bad, v)
			}
		}
	}
	if count == 0 {
		return nil
	}
	return NewNumericalInstabilityError(operation, bad, count, len(values))
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, 1, 1)
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
func CheckMatrix(operation string, m mat.Matrix) error {
	rows, cols := m.Dims()
	var bad []float64
	count := 0

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				count++
				if len(bad) < 5 {
					bad = append(bad, v)
				}
			}
		}
	}
	if count == 0 {
		return nil
	}
	return NewNumericalInstabilityError(operation, bad, count, rows*cols)
}
