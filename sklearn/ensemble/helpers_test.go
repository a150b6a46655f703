package ensemble

import (
	"github.com/YuminosukeSato/adaboost/core/model"
)

// referencePool returns the four range classifiers (50,90), (80,130),
// (90,130) and (40,150).
func referencePool() Pool[int] {
	return NewPool[int](
		NewRangeClassifier(50, 90),
		NewRangeClassifier(80, 130),
		NewRangeClassifier(90, 130),
		NewRangeClassifier(40, 150),
	)
}

// windowData returns the features 0..n-1 labelled +1 inside [from, to].
func windowData(n, from, to int) ([]int, []model.Label) {
	dataset := make([]int, n)
	labels := make([]model.Label, n)
	for j := range dataset {
		dataset[j] = j
		labels[j] = model.Negative
		if j >= from && j <= to {
			labels[j] = model.Positive
		}
	}
	return dataset, labels
}

// leaveOneOut returns classifiers h_k that vote -1 only on feature k.
func leaveOneOut(k int) WeakClassifier[int] {
	return ClassifierFunc[int](func(x int) model.Label {
		if x == k {
			return model.Negative
		}
		return model.Positive
	})
}

func allPositive(n int) []model.Label {
	labels := make([]model.Label, n)
	for j := range labels {
		labels[j] = model.Positive
	}
	return labels
}
