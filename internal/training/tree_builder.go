package training

import (
	"math"
	"sort"

	"github.com/adiprasetyo045/diabetes-detector/internal/model"
)

// TreeConfig are the decision-tree growth limits, matching the reference
// training settings for this dataset.
type TreeConfig struct {
	MaxDepth        int
	MinSamplesLeaf  int
	MinSamplesSplit int
}

// DefaultTreeConfig returns the growth limits the production model is
// trained with.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		MaxDepth:        6,
		MinSamplesLeaf:  10,
		MinSamplesSplit: 20,
	}
}

type treeBuilder struct {
	x      [][]float64
	y      []int
	cfg    TreeConfig
	weight [2]float64
	nodes  []model.TreeNode
}

// BuildTree grows an entropy decision tree with balanced class weights on
// the given matrix.
func BuildTree(x [][]float64, y []int, cfg TreeConfig) *model.DecisionTree {
	counts := [2]int{}
	for _, t := range y {
		counts[t]++
	}

	// Balanced weighting: each class contributes equally regardless of
	// its share of the training set.
	n := float64(len(y))
	weight := [2]float64{1, 1}
	for c := 0; c < 2; c++ {
		if counts[c] > 0 {
			weight[c] = n / (2 * float64(counts[c]))
		}
	}

	b := &treeBuilder{x: x, y: y, cfg: cfg, weight: weight}
	samples := make([]int, len(y))
	for i := range samples {
		samples[i] = i
	}
	b.grow(samples, 0)

	width := 0
	if len(x) > 0 {
		width = len(x[0])
	}
	return &model.DecisionTree{Nodes: b.nodes, NumFeatures: width}
}

// grow appends the subtree for the given samples and returns its root
// node index.
func (b *treeBuilder) grow(samples []int, depth int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, model.TreeNode{
		Feature: -1,
		Value:   b.weightedCounts(samples),
	})

	if depth >= b.cfg.MaxDepth || len(samples) < b.cfg.MinSamplesSplit || b.isPure(samples) {
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	b.nodes[idx].Feature = feature
	b.nodes[idx].Threshold = threshold
	leftIdx := b.grow(left, depth+1)
	rightIdx := b.grow(right, depth+1)
	b.nodes[idx].Left = leftIdx
	b.nodes[idx].Right = rightIdx
	return idx
}

func (b *treeBuilder) weightedCounts(samples []int) []float64 {
	counts := []float64{0, 0}
	for _, s := range samples {
		counts[b.y[s]] += b.weight[b.y[s]]
	}
	return counts
}

func (b *treeBuilder) isPure(samples []int) bool {
	first := b.y[samples[0]]
	for _, s := range samples[1:] {
		if b.y[s] != first {
			return false
		}
	}
	return true
}

// bestSplit scans every feature for the threshold with the highest
// weighted entropy gain, honoring the minimum-leaf size on raw counts.
func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	parent := b.weightedCounts(samples)
	parentTotal := parent[0] + parent[1]
	parentEntropy := weightedEntropy(parent)

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0

	width := len(b.x[samples[0]])
	order := make([]int, len(samples))

	for feature := 0; feature < width; feature++ {
		copy(order, samples)
		sort.Slice(order, func(i, j int) bool {
			return b.x[order[i]][feature] < b.x[order[j]][feature]
		})

		left := [2]float64{}
		leftRaw := 0
		for i := 0; i < len(order)-1; i++ {
			s := order[i]
			left[b.y[s]] += b.weight[b.y[s]]
			leftRaw++

			cur, next := b.x[s][feature], b.x[order[i+1]][feature]
			if cur == next {
				continue
			}
			if leftRaw < b.cfg.MinSamplesLeaf || len(order)-leftRaw < b.cfg.MinSamplesLeaf {
				continue
			}

			right := [2]float64{parent[0] - left[0], parent[1] - left[1]}
			lt := left[0] + left[1]
			rt := right[0] + right[1]
			gain := parentEntropy -
				(lt/parentTotal)*weightedEntropy([]float64{left[0], left[1]}) -
				(rt/parentTotal)*weightedEntropy([]float64{right[0], right[1]})

			if gain > bestGain+1e-12 {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func weightedEntropy(counts []float64) float64 {
	total := counts[0] + counts[1]
	if total == 0 {
		return 0
	}
	e := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := c / total
		e -= p * math.Log2(p)
	}
	return e
}
