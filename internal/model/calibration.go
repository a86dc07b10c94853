package model

import "math"

// SigmoidCalibration maps raw classifier scores to calibrated
// probabilities with Platt scaling: p = 1 / (1 + exp(A*s + B)).
type SigmoidCalibration struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Calibrate applies the fitted sigmoid to one raw score.
func (c *SigmoidCalibration) Calibrate(score float64) float64 {
	return 1 / (1 + math.Exp(c.A*score+c.B))
}

// FitSigmoid fits the Platt parameters on raw scores and binary targets
// by gradient descent on the cross-entropy loss. The target encoding
// follows Platt's original smoothing to keep the fit stable on small or
// perfectly separated score sets.
func FitSigmoid(scores []float64, targets []int) *SigmoidCalibration {
	if len(scores) == 0 || len(scores) != len(targets) {
		return &SigmoidCalibration{A: -1, B: 0}
	}

	positives, negatives := 0, 0
	for _, t := range targets {
		if t == 1 {
			positives++
		} else {
			negatives++
		}
	}

	hiTarget := (float64(positives) + 1) / (float64(positives) + 2)
	loTarget := 1 / (float64(negatives) + 2)

	a, b := -1.0, 0.0
	lr := 0.1
	const iterations = 5000

	for iter := 0; iter < iterations; iter++ {
		gradA, gradB := 0.0, 0.0
		for i, s := range scores {
			t := loTarget
			if targets[i] == 1 {
				t = hiTarget
			}
			p := 1 / (1 + math.Exp(a*s+b))
			// d(loss)/d(A*s+B) for cross-entropy against the sigmoid.
			d := t - p
			gradA += d * s
			gradB += d
		}
		a -= lr * gradA / float64(len(scores))
		b -= lr * gradB / float64(len(scores))
	}

	return &SigmoidCalibration{A: a, B: b}
}
