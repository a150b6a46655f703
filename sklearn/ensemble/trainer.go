package ensemble

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/core/parallel"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
	"github.com/YuminosukeSato/adaboost/pkg/log"
)

// Coefficients holds one weight per pool slot. A zero entry means the slot
// was never selected and contributes nothing to the strong classifier.
type Coefficients []float64

// Clone returns an independent copy.
func (c Coefficients) Clone() Coefficients {
	if c == nil {
		return nil
	}
	out := make(Coefficients, len(c))
	copy(out, c)
	return out
}

// Active returns the slots with a non-zero coefficient in index order.
func (c Coefficients) Active() []int {
	var active []int
	for slot, alpha := range c {
		if alpha != 0 {
			active = append(active, slot)
		}
	}
	return active
}

// Trainer runs discrete AdaBoost over a fixed pool.
//
// A Trainer holds only configuration; every Train call owns its prediction
// matrix, distribution and coefficients, so one Trainer may be used from
// several goroutines.
type Trainer[T any] struct {
	cfg    config
	logger log.Logger
}

// NewTrainer creates a trainer with the given options.
func NewTrainer[T any](opts ...Option) *Trainer[T] {
	return newTrainer[T](newConfig(opts))
}

func newTrainer[T any](cfg config) *Trainer[T] {
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("ensemble.trainer")
	}
	return &Trainer[T]{cfg: cfg, logger: logger}
}

// Train is a convenience wrapper around NewTrainer[T]().Train.
func Train[T any](pool Pool[T], dataset []T, labels []model.Label, numRounds int) (Coefficients, error) {
	return NewTrainer[T]().Train(pool, dataset, labels, numRounds)
}

// Train assigns a coefficient to every slot of pool by running at most
// numRounds boosting rounds over dataset. The inputs are only read.
//
// Any failure aborts the whole call and no coefficients are returned.
func (t *Trainer[T]) Train(pool Pool[T], dataset []T, labels []model.Label, numRounds int) (Coefficients, error) {
	if err := pool.validate(); err != nil {
		return nil, err
	}
	if err := validateLabeled("Train", dataset, labels); err != nil {
		return nil, err
	}
	if numRounds < 0 {
		return nil, errors.NewValidationError("num_rounds", "must be non-negative", numRounds)
	}

	m, n := len(pool), len(dataset)
	start := time.Now()

	predictions, err := t.predictionMatrix(pool, dataset)
	if err != nil {
		return nil, err
	}

	y := make([]float64, n)
	weights := make([]float64, n)
	for j, l := range labels {
		y[j] = l.Float64()
		weights[j] = 1 / float64(n)
	}
	coef := make(Coefficients, m)
	errs := make([]float64, m)

	stop := log.StopMaxRounds
	completed := 0
	for round := 0; round < numRounds; round++ {
		weightedErrors(predictions, y, weights, errs)
		best := floats.MinIdx(errs)
		eps := errs[best]

		if eps >= 0.5 {
			stop = log.StopNoBetterThanRandom
			t.logger.Info("no classifier beats random guessing, stopping early",
				log.RoundKey, round, log.WeightedErrorKey, eps)
			break
		}

		if eps == 0 {
			if err := t.degenerate(coef, best, round); err != nil {
				return nil, err
			}
			completed++
			stop = log.StopPerfectFit
			// 全例正解なので D は一様にスケールされるだけで、正規化後は変わらない
			if err := t.notify(round, best, eps, coef, errs, weights); err != nil {
				return nil, err
			}
			break
		}

		alpha := 0.5 * math.Log((1-eps)/eps)
		if err := errors.CheckScalar("alpha", alpha, round); err != nil {
			return nil, err
		}
		coef[best] = alpha

		if err := reweight(weights, predictions.RawRowView(best), y, alpha, round); err != nil {
			return nil, err
		}
		completed++

		t.logger.Debug("boosting round",
			log.RoundKey, round, log.SlotKey, best, log.WeightedErrorKey, eps, log.AlphaKey, alpha)
		if err := t.notify(round, best, eps, coef, errs, weights); err != nil {
			return nil, err
		}
	}

	t.logger.Info("training finished",
		log.ClassifiersKey, m,
		log.SamplesKey, n,
		log.RoundsKey, completed,
		log.MaxRoundsKey, numRounds,
		log.StopReasonKey, stop,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return coef, nil
}

// degenerate applies the configured policy to a slot with zero weighted error.
func (t *Trainer[T]) degenerate(coef Coefficients, best, round int) error {
	switch t.cfg.policy {
	case DegenerateFail:
		err := errors.NewDegenerateWeightError(best, round)
		t.logger.Error("zero weighted error", err,
			log.PolicyKey, t.cfg.policy.String(), log.ErrorCodeKey, log.ErrorDegenerate)
		return err
	case DegenerateShortCircuit:
		for c := range coef {
			coef[c] = 0
		}
	case DegenerateClamp:
	default:
		return errors.NewValidationError("degenerate_policy", "unknown policy", int(t.cfg.policy))
	}
	coef[best] = MaxAlpha
	errors.Warn(errors.NewDegenerateWeightWarning(best, round, MaxAlpha))
	t.logger.Warn("zero weighted error, coefficient clamped",
		log.RoundKey, round, log.SlotKey, best, log.AlphaKey, MaxAlpha, log.PolicyKey, t.cfg.policy.String())
	return nil
}

func (t *Trainer[T]) notify(round, best int, eps float64, coef Coefficients, errs, weights []float64) error {
	if len(t.cfg.callbacks) == 0 {
		return nil
	}
	info := RoundInfo{
		Round:         round,
		Best:          best,
		WeightedError: eps,
		Alpha:         coef[best],
		Errors:        append([]float64(nil), errs...),
		Weights:       append([]float64(nil), weights...),
		Coefficients:  coef.Clone(),
	}
	for _, cb := range t.cfg.callbacks {
		if err := cb(info); err != nil {
			return errors.Wrapf(err, "round callback failed at round %d", round)
		}
	}
	return nil
}

// predictionMatrix evaluates every classifier on every example once. Row c
// holds the ±1 outputs of slot c.
func (t *Trainer[T]) predictionMatrix(pool Pool[T], dataset []T) (*mat.Dense, error) {
	m, n := len(pool), len(dataset)
	p := mat.NewDense(m, n, nil)
	slotErrs := make([]error, m)

	parallel.ParallelizeWithThreshold(m, m*n, t.cfg.parallelThreshold, func(start, end int) {
		for c := start; c < end; c++ {
			slotErrs[c] = analyzeSlot(pool[c], c, dataset, p.RawRowView(c))
		}
	})

	for _, err := range slotErrs {
		if err != nil {
			t.logger.Error("failed to build prediction matrix", err, log.ErrorCodeKey, log.ErrorInvalidInput)
			return nil, err
		}
	}
	if t.logger.Enabled(context.Background(), log.LevelDebug) {
		t.logger.Debug("prediction matrix built", log.ClassifiersKey, m, log.SamplesKey, n)
	}
	return p, nil
}

func analyzeSlot[T any](clf WeakClassifier[T], slot int, dataset []T, row []float64) (err error) {
	defer errors.Recover(&err, fmt.Sprintf("Analyze of pool[%d]", slot))

	for j, x := range dataset {
		label := clf.Analyze(x)
		if !label.Valid() {
			return errors.NewValidationError(
				fmt.Sprintf("pool[%d]", slot),
				fmt.Sprintf("weak classifier must return -1 or +1 (example %d)", j),
				int(label))
		}
		row[j] = label.Float64()
	}
	return nil
}

// weightedErrors fills errs[c] with the total weight of the examples slot c
// misclassifies, summed in example order.
func weightedErrors(predictions *mat.Dense, y, weights, errs []float64) {
	for c := range errs {
		row := predictions.RawRowView(c)
		sum := 0.0
		for j, w := range weights {
			if row[j] != y[j] {
				sum += w
			}
		}
		errs[c] = sum
	}
}

// reweight applies D[j] *= exp(-alpha*y[j]*h[j]) and renormalizes.
func reweight(weights, h, y []float64, alpha float64, round int) error {
	for j := range weights {
		weights[j] *= math.Exp(-alpha * y[j] * h[j])
	}
	return normalize(weights, round)
}

func normalize(weights []float64, round int) error {
	z := 0.0
	for _, w := range weights {
		z += w
	}
	if err := errors.CheckNormalizer("weight_normalization", z, round); err != nil {
		return err
	}
	for j := range weights {
		weights[j] /= z
	}
	return errors.CheckNumericalStability("weight_normalization", weights, round)
}
