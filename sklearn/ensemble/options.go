package ensemble

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/adaboost/pkg/errors"
	"github.com/YuminosukeSato/adaboost/pkg/log"
)

const (
	// DefaultNumRounds is the conventional upper bound on boosting rounds.
	DefaultNumRounds = 100

	// MinWeightedError is the floor applied to a zero weighted error when the
	// degenerate policy clamps instead of failing.
	MinWeightedError = 1e-10

	// DefaultParallelThreshold is the number of prediction-matrix cells
	// (classifiers x examples) above which the matrix is built concurrently.
	DefaultParallelThreshold = 1 << 16
)

// MaxAlpha is the coefficient stored for a classifier with zero weighted
// error under the clamping policies: 0.5*ln((1-MinWeightedError)/MinWeightedError).
var MaxAlpha = 0.5 * math.Log((1-MinWeightedError)/MinWeightedError)

// DegeneratePolicy selects what happens when the best classifier of a round
// has zero weighted error, which would make its coefficient infinite.
type DegeneratePolicy int

const (
	// DegenerateClamp stores MaxAlpha in the slot and stops training. A
	// perfect classifier rescales every weight by the same factor, so every
	// later round would repeat the same selection. Earlier coefficients are kept.
	DegenerateClamp DegeneratePolicy = iota

	// DegenerateShortCircuit discards earlier coefficients and returns a
	// single-classifier result with MaxAlpha in the perfect slot.
	DegenerateShortCircuit

	// DegenerateFail aborts training with errors.DegenerateWeightError.
	DegenerateFail
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateClamp:
		return "clamp"
	case DegenerateShortCircuit:
		return "short-circuit"
	case DegenerateFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ParseDegeneratePolicy parses the names produced by DegeneratePolicy.String.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch strings.ToLower(s) {
	case "clamp":
		return DegenerateClamp, nil
	case "short-circuit", "shortcircuit":
		return DegenerateShortCircuit, nil
	case "fail":
		return DegenerateFail, nil
	default:
		return DegenerateClamp, errors.NewValidationError("degenerate_policy", "must be clamp, short-circuit or fail", s)
	}
}

// RoundInfo describes one completed boosting round.
type RoundInfo struct {
	// Round is the zero-based round index.
	Round int
	// Best is the slot selected in this round.
	Best int
	// WeightedError is the weighted error of Best before reweighting.
	WeightedError float64
	// Alpha is the coefficient stored for Best.
	Alpha float64
	// Errors holds the weighted error of every slot, indexed by slot.
	Errors []float64
	// Weights is the example distribution after this round's normalization.
	Weights []float64
	// Coefficients is a snapshot of all coefficients after this round.
	Coefficients Coefficients
}

// RoundCallback observes training progress. Returning an error aborts
// training; the error is returned wrapped from Train.
type RoundCallback func(info RoundInfo) error

type config struct {
	numRounds         int
	policy            DegeneratePolicy
	parallelThreshold int
	callbacks         []RoundCallback
	logger            log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		numRounds:         DefaultNumRounds,
		policy:            DegenerateClamp,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Trainer or an AdaBoostClassifier.
type Option func(*config)

// WithNumRounds sets the maximum number of boosting rounds used by
// AdaBoostClassifier.Fit. Trainer.Train takes the round count as an argument
// and ignores this option.
func WithNumRounds(n int) Option {
	return func(c *config) {
		c.numRounds = n
	}
}

// WithDegeneratePolicy sets the zero-weighted-error policy.
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithParallelThreshold sets the prediction-matrix size above which weak
// classifiers are evaluated concurrently. A negative value disables
// concurrency.
func WithParallelThreshold(cells int) Option {
	return func(c *config) {
		c.parallelThreshold = cells
	}
}

// WithRoundCallback appends a callback invoked after every completed round.
func WithRoundCallback(cb RoundCallback) Option {
	return func(c *config) {
		if cb != nil {
			c.callbacks = append(c.callbacks, cb)
		}
	}
}

// WithLogger overrides the logger; by default the component logger
// "ensemble.trainer" of the process-wide provider is used.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// RecordHistory returns a callback that appends every RoundInfo to history.
func RecordHistory(history *[]RoundInfo) RoundCallback {
	return func(info RoundInfo) error {
		*history = append(*history, info)
		return nil
	}
}
