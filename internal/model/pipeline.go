package model

// CalibratedPipeline is the serving form of the trained model: standard
// scaling, an entropy decision tree, and sigmoid calibration of the
// tree's positive-class score. It implements the full classifier
// capability set (predict, probabilities, importances).
type CalibratedPipeline struct {
	Scaler      *StandardScaler     `json:"scaler"`
	Tree        *DecisionTree       `json:"tree"`
	Calibration *SigmoidCalibration `json:"calibration"`
}

// Predict returns the class with the higher calibrated probability.
func (p *CalibratedPipeline) Predict(x []float64) int {
	proba := p.PredictProba(x)
	if proba[1] >= 0.5 {
		return 1
	}
	return 0
}

// PredictProba returns [negative, positive] calibrated probabilities.
func (p *CalibratedPipeline) PredictProba(x []float64) []float64 {
	score := p.rawScore(x)
	positive := score
	if p.Calibration != nil {
		positive = p.Calibration.Calibrate(score)
	}
	return []float64{1 - positive, positive}
}

// FeatureImportances unwraps the calibration and scaling layers and reads
// importances from the underlying tree. Callers never reach through the
// nesting themselves.
func (p *CalibratedPipeline) FeatureImportances() []float64 {
	if p.Tree == nil {
		return nil
	}
	return p.Tree.FeatureImportances()
}

// rawScore is the uncalibrated positive-class probability of the tree on
// the scaled vector.
func (p *CalibratedPipeline) rawScore(x []float64) float64 {
	if p.Scaler != nil {
		x = p.Scaler.Transform(x)
	}
	return p.Tree.PredictProba(x)[1]
}
