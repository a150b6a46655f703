package ensemble

import (
	"cmp"
	"fmt"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

// WeakClassifier maps one feature to a label in {-1, +1}.
//
// Implementations must be pure: deterministic for a given feature, free of
// observable side effects and safe for concurrent use, because the trainer
// may evaluate different slots from different goroutines.
type WeakClassifier[T any] interface {
	model.Analyzer[T]
}

// Pool is an ordered collection of weak classifiers. The index of a
// classifier is its slot; coefficients are addressed by slot.
type Pool[T any] []WeakClassifier[T]

// NewPool builds a pool from the given classifiers in order.
func NewPool[T any](classifiers ...WeakClassifier[T]) Pool[T] {
	return append(Pool[T](nil), classifiers...)
}

// Len returns the number of slots.
func (p Pool[T]) Len() int {
	return len(p)
}

func (p Pool[T]) validate() error {
	if len(p) == 0 {
		return errors.NewValidationError("pool", "must contain at least one classifier", 0)
	}
	for c, clf := range p {
		if clf == nil {
			return errors.NewValidationError(fmt.Sprintf("pool[%d]", c), "classifier must not be nil", nil)
		}
	}
	return nil
}

// ClassifierFunc adapts a plain function to the WeakClassifier interface.
type ClassifierFunc[T any] func(feature T) model.Label

// Analyze implements WeakClassifier.
func (f ClassifierFunc[T]) Analyze(feature T) model.Label {
	return f(feature)
}

// RangeClassifier votes +1 for features strictly inside (Low, High) and -1
// otherwise. Both bounds are exclusive.
type RangeClassifier[T cmp.Ordered] struct {
	Low  T
	High T
}

// NewRangeClassifier returns a classifier accepting the open interval (low, high).
func NewRangeClassifier[T cmp.Ordered](low, high T) RangeClassifier[T] {
	return RangeClassifier[T]{Low: low, High: high}
}

// Analyze implements WeakClassifier.
func (r RangeClassifier[T]) Analyze(feature T) model.Label {
	if feature > r.Low && feature < r.High {
		return model.Positive
	}
	return model.Negative
}

func (r RangeClassifier[T]) String() string {
	return fmt.Sprintf("range(%v, %v)", r.Low, r.High)
}

// validateLabeled checks a dataset and its ground truth: at least one
// example, equal lengths and labels in {-1, +1}.
func validateLabeled[T any](op string, dataset []T, labels []model.Label) error {
	if len(dataset) == 0 {
		return errors.NewValidationError("dataset", "must contain at least one example", 0)
	}
	if len(labels) != len(dataset) {
		return errors.NewDimensionError(op, len(dataset), len(labels), 0)
	}
	for j, l := range labels {
		if !l.Valid() {
			return errors.NewValidationError(fmt.Sprintf("labels[%d]", j), "must be -1 or +1", int(l))
		}
	}
	return nil
}
