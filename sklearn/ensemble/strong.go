package ensemble

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/metrics"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

// StrongClassifier is the weighted-majority vote of a pool under trained
// coefficients. It is immutable and safe for concurrent use as long as the
// pool's classifiers are.
//
// StrongClassifier satisfies WeakClassifier, so a trained ensemble can be
// placed in another pool.
type StrongClassifier[T any] struct {
	pool   Pool[T]
	coef   Coefficients
	active []int
}

var _ WeakClassifier[int] = (*StrongClassifier[int])(nil)

// NewStrongClassifier combines pool with coefficients produced by training on
// the same pool. Slot indices must match; the coefficients are copied.
func NewStrongClassifier[T any](pool Pool[T], coef Coefficients) (*StrongClassifier[T], error) {
	if len(pool) == 0 {
		return nil, errors.NewValidationError("pool", "must contain at least one classifier", 0)
	}
	if len(coef) != len(pool) {
		return nil, errors.NewDimensionError("NewStrongClassifier", len(pool), len(coef), 1)
	}
	for c, alpha := range coef {
		if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
			return nil, errors.NewValidationError(fmt.Sprintf("coefficients[%d]", c), "must be finite", alpha)
		}
		if alpha != 0 && pool[c] == nil {
			return nil, errors.NewValidationError(fmt.Sprintf("pool[%d]", c), "classifier with non-zero coefficient must not be nil", nil)
		}
	}

	s := &StrongClassifier[T]{
		pool: append(Pool[T](nil), pool...),
		coef: coef.Clone(),
	}
	s.active = s.coef.Active()
	return s, nil
}

// DecisionFunction returns the raw score Σ coef[c]·h_c(feature). Slots with a
// zero coefficient are not evaluated.
func (s *StrongClassifier[T]) DecisionFunction(feature T) float64 {
	score := 0.0
	for _, c := range s.active {
		score += s.coef[c] * s.pool[c].Analyze(feature).Float64()
	}
	return score
}

// Analyze returns +1 when the score is non-negative and -1 otherwise.
func (s *StrongClassifier[T]) Analyze(feature T) model.Label {
	return model.LabelFromSign(s.DecisionFunction(feature))
}

// Margin returns |score|, the confidence of the vote.
func (s *StrongClassifier[T]) Margin(feature T) float64 {
	return math.Abs(s.DecisionFunction(feature))
}

// Predict labels every example of dataset.
func (s *StrongClassifier[T]) Predict(dataset []T) []model.Label {
	out := make([]model.Label, len(dataset))
	for j, x := range dataset {
		out[j] = s.Analyze(x)
	}
	return out
}

// Evaluate returns the fraction of examples whose prediction equals the
// label.
func (s *StrongClassifier[T]) Evaluate(dataset []T, labels []model.Label) (float64, error) {
	if err := validateLabeled("Evaluate", dataset, labels); err != nil {
		return 0, err
	}
	return metrics.Accuracy(metrics.LabelsToVec(labels), metrics.LabelsToVec(s.Predict(dataset)))
}

// Report returns the confusion counts and the +1-class precision, recall and
// F1 over dataset.
func (s *StrongClassifier[T]) Report(dataset []T, labels []model.Label) (metrics.BinaryReport, error) {
	if err := validateLabeled("Report", dataset, labels); err != nil {
		return metrics.BinaryReport{}, err
	}
	return metrics.BinaryClassificationReport(metrics.LabelsToVec(labels), metrics.LabelsToVec(s.Predict(dataset)))
}

// Coefficients returns a copy of the coefficients.
func (s *StrongClassifier[T]) Coefficients() Coefficients {
	return s.coef.Clone()
}

// Active returns the slots that take part in the vote.
func (s *StrongClassifier[T]) Active() []int {
	return append([]int(nil), s.active...)
}

// Len returns the pool size.
func (s *StrongClassifier[T]) Len() int {
	return len(s.pool)
}
