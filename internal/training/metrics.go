package training

import (
	"sort"

	"github.com/adiprasetyo045/diabetes-detector/internal/model"
)

// Accuracy is the share of predictions matching the targets.
func Accuracy(pred, truth []int) float64 {
	if len(truth) == 0 {
		return 0
	}
	correct := 0
	for i, p := range pred {
		if p == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}

// Confusion tallies the binary confusion matrix.
func Confusion(pred, truth []int) model.ConfusionMatrix {
	var cm model.ConfusionMatrix
	for i, p := range pred {
		switch {
		case truth[i] == 1 && p == 1:
			cm.TP++
		case truth[i] == 1 && p == 0:
			cm.FN++
		case truth[i] == 0 && p == 1:
			cm.FP++
		default:
			cm.TN++
		}
	}
	return cm
}

// WeightedPRF computes support-weighted precision, recall and F1 across
// both classes.
func WeightedPRF(pred, truth []int) (precision, recall, f1 float64) {
	total := float64(len(truth))
	if total == 0 {
		return 0, 0, 0
	}

	for _, class := range []int{0, 1} {
		tp, fp, fn, support := 0.0, 0.0, 0.0, 0.0
		for i, p := range pred {
			if truth[i] == class {
				support++
				if p == class {
					tp++
				} else {
					fn++
				}
			} else if p == class {
				fp++
			}
		}

		var prec, rec, f float64
		if tp+fp > 0 {
			prec = tp / (tp + fp)
		}
		if tp+fn > 0 {
			rec = tp / (tp + fn)
		}
		if prec+rec > 0 {
			f = 2 * prec * rec / (prec + rec)
		}

		w := support / total
		precision += w * prec
		recall += w * rec
		f1 += w * f
	}
	return precision, recall, f1
}

// ROCAUC computes the area under the ROC curve from positive-class
// scores, via the rank statistic with midrank ties.
func ROCAUC(scores []float64, truth []int) float64 {
	type pair struct {
		score float64
		label int
	}
	pairs := make([]pair, len(scores))
	for i := range scores {
		pairs[i] = pair{scores[i], truth[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score < pairs[j].score })

	positives, negatives := 0.0, 0.0
	for _, p := range pairs {
		if p.label == 1 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return 0
	}

	rankSum := 0.0
	i := 0
	for i < len(pairs) {
		j := i
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			j++
		}
		// Midrank for tied scores; ranks are 1-based.
		midrank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if pairs[k].label == 1 {
				rankSum += midrank
			}
		}
		i = j
	}

	return (rankSum - positives*(positives+1)/2) / (positives * negatives)
}
