package model

import "math"

// StandardScaler standardizes feature vectors to zero mean and unit
// variance using statistics fitted on the training matrix.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes per-column mean and standard deviation. Columns with
// zero variance get scale 1 so transformation stays defined.
func FitScaler(matrix [][]float64) *StandardScaler {
	if len(matrix) == 0 {
		return &StandardScaler{}
	}
	width := len(matrix[0])
	mean := make([]float64, width)
	scale := make([]float64, width)

	for _, row := range matrix {
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(matrix))
	for j := range mean {
		mean[j] /= n
	}

	for _, row := range matrix {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	return &StandardScaler{Mean: mean, Scale: scale}
}

// Transform standardizes one vector without mutating it.
func (s *StandardScaler) Transform(x []float64) []float64 {
	if len(s.Mean) != len(x) {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out
}
