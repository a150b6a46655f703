// Package log defines standard attribute keys for boosting operations.
//
// Keys follow a hierarchical naming convention ("model.name",
// "data.samples", "boost.round") so log records can be filtered and
// aggregated consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "AdaBoostClassifier", "StrongClassifier"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey is the number of examples (N).
	SamplesKey = "data.samples"

	// ClassifiersKey is the number of weak classifier slots in the pool (M).
	ClassifiersKey = "data.classifiers"
)

// Boosting progress
const (
	// RoundKey is the zero-based boosting round.
	RoundKey = "boost.round"

	// RoundsKey is the number of rounds that completed.
	RoundsKey = "boost.rounds"

	// MaxRoundsKey is the configured round limit.
	MaxRoundsKey = "boost.max_rounds"

	// SlotKey is the classifier slot selected in a round.
	SlotKey = "boost.slot"

	// WeightedErrorKey is the weighted error of the selected slot.
	WeightedErrorKey = "boost.weighted_error"

	// AlphaKey is the coefficient assigned in a round.
	AlphaKey = "boost.alpha"

	// PolicyKey is the degenerate-weight policy in effect.
	PolicyKey = "boost.degenerate_policy"

	// StopReasonKey explains why training ended.
	// Values: "max_rounds", "no_better_than_random", "perfect_fit"
	StopReasonKey = "boost.stop_reason"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	StopMaxRounds          = "max_rounds"
	StopNoBetterThanRandom = "no_better_than_random"
	StopPerfectFit         = "perfect_fit"

	ErrorNotFitted    = "NOT_FITTED"
	ErrorInvalidInput = "INVALID_INPUT"
	ErrorDegenerate   = "DEGENERATE_WEIGHT"
	ErrorNumerical    = "NUMERICAL_INSTABILITY"
)
