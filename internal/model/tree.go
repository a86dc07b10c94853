package model

import (
	"math"
)

// TreeNode is one node of a flattened decision tree. Leaf nodes have
// Feature == -1; internal nodes route x[Feature] <= Threshold to Left and
// everything else to Right. Value holds the (class-weighted) sample
// counts per class that reached the node during training.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

// DecisionTree is an entropy-trained binary classification tree stored as
// a flat node array, node 0 being the root. NumFeatures is the width of
// the vectors it was trained on.
type DecisionTree struct {
	Nodes       []TreeNode `json:"nodes"`
	NumFeatures int        `json:"num_features"`
}

// Predict returns the majority class at the leaf the vector lands in.
func (t *DecisionTree) Predict(x []float64) int {
	proba := t.PredictProba(x)
	if proba[1] > proba[0] {
		return 1
	}
	return 0
}

// PredictProba returns the class distribution at the reached leaf.
func (t *DecisionTree) PredictProba(x []float64) []float64 {
	node := t.leaf(x)
	total := node.Value[0] + node.Value[1]
	if total == 0 {
		return []float64{0.5, 0.5}
	}
	return []float64{node.Value[0] / total, node.Value[1] / total}
}

func (t *DecisionTree) leaf(x []float64) *TreeNode {
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.Feature < 0 {
			return node
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// FeatureImportances computes normalized mean-impurity-decrease scores
// per feature from the stored node statistics, matching the definition
// the training pipeline used for its metadata.
func (t *DecisionTree) FeatureImportances() []float64 {
	if len(t.Nodes) == 0 {
		return nil
	}

	width := t.NumFeatures
	for _, node := range t.Nodes {
		if node.Feature >= width {
			width = node.Feature + 1
		}
	}
	importances := make([]float64, width)

	root := t.Nodes[0]
	total := root.Value[0] + root.Value[1]
	if total == 0 {
		return importances
	}

	for _, node := range t.Nodes {
		if node.Feature < 0 {
			continue
		}
		left := t.Nodes[node.Left]
		right := t.Nodes[node.Right]

		n := node.Value[0] + node.Value[1]
		nl := left.Value[0] + left.Value[1]
		nr := right.Value[0] + right.Value[1]
		if n == 0 {
			continue
		}

		decrease := n*entropyOf(node.Value) - nl*entropyOf(left.Value) - nr*entropyOf(right.Value)
		importances[node.Feature] += decrease / total
	}

	sum := 0.0
	for _, imp := range importances {
		sum += imp
	}
	if sum > 0 {
		for i := range importances {
			importances[i] /= sum
		}
	}
	return importances
}

// entropyOf computes the Shannon entropy of a two-class count vector.
func entropyOf(counts []float64) float64 {
	total := counts[0] + counts[1]
	if total == 0 {
		return 0
	}
	entropy := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := c / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}
