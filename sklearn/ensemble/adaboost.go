package ensemble

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
	"github.com/YuminosukeSato/adaboost/pkg/log"
)

const adaBoostModelName = "AdaBoostClassifier"

// AdaBoostClassifier exposes training and prediction over a fixed pool with
// the Fit/Predict/Score estimator surface.
//
//	clf := ensemble.NewAdaBoostClassifier(pool, ensemble.WithNumRounds(50))
//	if err := clf.Fit(dataset, labels); err != nil {
//	    return err
//	}
//	pred, err := clf.Predict(dataset)
type AdaBoostClassifier[T any] struct {
	state *model.StateManager

	mu     sync.RWMutex
	strong *StrongClassifier[T]

	pool   Pool[T]
	cfg    config
	id     string
	logger log.Logger
}

var _ model.Classifier[int] = (*AdaBoostClassifier[int])(nil)

// NewAdaBoostClassifier creates an unfitted estimator over pool. The pool
// slice is copied; the classifiers themselves are shared.
func NewAdaBoostClassifier[T any](pool Pool[T], opts ...Option) *AdaBoostClassifier[T] {
	cfg := newConfig(opts)
	id := uuid.NewString()

	base := cfg.logger
	if base == nil {
		base = log.GetLoggerWithName("ensemble")
	}
	logger := base.With(log.ModelNameKey, adaBoostModelName, log.EstimatorIDKey, id)
	cfg.logger = logger

	return &AdaBoostClassifier[T]{
		state:  model.NewStateManager(),
		pool:   append(Pool[T](nil), pool...),
		cfg:    cfg,
		id:     id,
		logger: logger,
	}
}

// ID returns the estimator id attached to every log record of this instance.
func (a *AdaBoostClassifier[T]) ID() string {
	return a.id
}

// IsFitted reports whether Fit has succeeded at least once.
func (a *AdaBoostClassifier[T]) IsFitted() bool {
	return a.state.IsFitted()
}

// Fit trains the coefficients on dataset and labels. A failed Fit leaves a
// previous successful fit in place.
func (a *AdaBoostClassifier[T]) Fit(dataset []T, labels []model.Label) error {
	start := time.Now()
	logger := a.logger.With(log.OperationKey, log.OperationFit)
	logger.Info("Starting model training",
		log.SamplesKey, len(dataset),
		log.ClassifiersKey, len(a.pool),
		log.MaxRoundsKey, a.cfg.numRounds,
		log.PolicyKey, a.cfg.policy.String(),
	)

	coef, err := newTrainer[T](a.cfg).Train(a.pool, dataset, labels, a.cfg.numRounds)
	if err != nil {
		logger.Error("Model training failed", err, log.ErrorCodeKey, errorCode(err))
		return err
	}

	strong, err := NewStrongClassifier(a.pool, coef)
	if err != nil {
		logger.Error("Model training failed", err, log.ErrorCodeKey, errorCode(err))
		return err
	}

	a.mu.Lock()
	a.strong = strong
	a.mu.Unlock()
	a.state.SetDimensions(len(a.pool), len(dataset))
	a.state.SetFitted()

	logger.Info("Model training completed",
		"active", len(strong.active),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (a *AdaBoostClassifier[T]) fitted(method string) (*StrongClassifier[T], error) {
	if err := a.state.RequireFitted(adaBoostModelName, method); err != nil {
		a.logger.Error("Estimator used before Fit", err, log.ErrorCodeKey, log.ErrorNotFitted)
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.strong, nil
}

// Predict labels every example of dataset.
func (a *AdaBoostClassifier[T]) Predict(dataset []T) ([]model.Label, error) {
	strong, err := a.fitted("Predict")
	if err != nil {
		return nil, err
	}
	if len(dataset) == 0 {
		return nil, errors.NewValidationError("dataset", "must contain at least one example", 0)
	}
	return strong.Predict(dataset), nil
}

// Score returns the accuracy of the fitted ensemble on dataset.
func (a *AdaBoostClassifier[T]) Score(dataset []T, labels []model.Label) (float64, error) {
	strong, err := a.fitted("Score")
	if err != nil {
		return 0, err
	}
	acc, err := strong.Evaluate(dataset, labels)
	if err != nil {
		return 0, err
	}
	a.logger.Debug("Model scored",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, len(dataset),
		log.AccuracyKey, acc,
	)
	return acc, nil
}

// Coefficients returns a copy of the trained coefficients.
func (a *AdaBoostClassifier[T]) Coefficients() (Coefficients, error) {
	strong, err := a.fitted("Coefficients")
	if err != nil {
		return nil, err
	}
	return strong.Coefficients(), nil
}

// Strong returns the fitted StrongClassifier.
func (a *AdaBoostClassifier[T]) Strong() (*StrongClassifier[T], error) {
	return a.fitted("Strong")
}

// GetParams returns the estimator configuration.
func (a *AdaBoostClassifier[T]) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":       len(a.pool),
		"num_rounds":         a.cfg.numRounds,
		"degenerate_policy":  a.cfg.policy.String(),
		"parallel_threshold": a.cfg.parallelThreshold,
	}
}

// State returns a snapshot of the fitted state.
func (a *AdaBoostClassifier[T]) State() model.ModelState {
	return a.state.GetState()
}

func errorCode(err error) string {
	var degenerate *errors.DegenerateWeightError
	var numerical *errors.NumericalInstabilityError
	switch {
	case errors.As(err, &degenerate):
		return log.ErrorDegenerate
	case errors.As(err, &numerical):
		return log.ErrorNumerical
	case errors.IsInvalidArgument(err):
		return log.ErrorInvalidInput
	default:
		return "UNKNOWN"
	}
}
