package ensemble

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
	"github.com/YuminosukeSato/adaboost/pkg/log"
)

func quietTrainer(opts ...Option) *Trainer[int] {
	logger, _ := log.NewTestLogger(log.LevelError)
	return NewTrainer[int](append([]Option{WithLogger(logger)}, opts...)...)
}

// 3事例すべて +1、h_k は事例 k だけを誤分類する。手計算した4ラウンドの経過と一致すること
func TestTrainer_HandComputedTrace(t *testing.T) {
	pool := NewPool(leaveOneOut(0), leaveOneOut(1), leaveOneOut(2))
	dataset := []int{0, 1, 2}
	labels := allPositive(3)

	var history []RoundInfo
	trainer := quietTrainer(WithRoundCallback(RecordHistory(&history)))

	coef, err := trainer.Train(pool, dataset, labels, 4)
	require.NoError(t, err)
	require.Len(t, history, 4)

	wantBest := []int{0, 1, 2, 0}
	wantAlpha := []float64{0.5 * math.Ln2, 0.5 * math.Log(3), 0.5 * math.Log(5), math.Ln2}
	wantWeights := [][]float64{
		{0.5, 0.25, 0.25},
		{1.0 / 3, 0.5, 1.0 / 6},
		{0.2, 0.3, 0.5},
		{0.5, 0.1875, 0.3125},
	}
	for r, info := range history {
		assert.Equal(t, r, info.Round)
		assert.Equal(t, wantBest[r], info.Best, "round %d", r)
		assert.InDelta(t, wantAlpha[r], info.Alpha, 1e-12, "round %d", r)
		assert.InDeltaSlice(t, wantWeights[r], info.Weights, 1e-12, "round %d", r)
	}

	assert.InDeltaSlice(t, []float64{0.5 * math.Ln2, 0, 0}, []float64(history[0].Coefficients), 1e-12)
	assert.InDeltaSlice(t, []float64{0.5 * math.Ln2, 0.5 * math.Log(3), 0.5 * math.Log(5)}, []float64(history[2].Coefficients), 1e-12)

	// slot 0 は round 3 で ln 2 に上書きされ、½ln2 + ln2 にはならない
	assert.InDeltaSlice(t, []float64{math.Ln2, 0.5 * math.Log(3), 0.5 * math.Log(5)}, []float64(coef), 1e-12)

	strong, err := NewStrongClassifier(pool, coef)
	require.NoError(t, err)
	acc, err := strong.Evaluate(dataset, labels)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
}

func TestTrainer_ThreeRounds(t *testing.T) {
	pool := NewPool(leaveOneOut(0), leaveOneOut(1), leaveOneOut(2))
	coef, err := quietTrainer().Train(pool, []int{0, 1, 2}, allPositive(3), 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5 * math.Ln2, 0.5 * math.Log(3), 0.5 * math.Log(5)}, []float64(coef), 1e-12)
}

func TestTrainer_ReferenceRangesStopAfterOneRound(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)

	var history []RoundInfo
	logger, _ := log.NewTestLogger(log.LevelDebug)
	trainer := NewTrainer[int](WithLogger(logger), WithRoundCallback(RecordHistory(&history)))

	coef, err := trainer.Train(referencePool(), dataset, labels, DefaultNumRounds)
	require.NoError(t, err)

	require.Len(t, history, 1)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, history[0].Errors, 1e-12)
	assert.Equal(t, 0, history[0].Best)

	require.Len(t, coef, 4)
	assert.InDelta(t, 0.5*math.Log(3), coef[0], 1e-12)
	assert.Equal(t, []float64{0, 0, 0}, []float64(coef[1:]))

	assert.True(t, logger.ContainsMessage("training finished"))
	assert.True(t, logger.ContainsField(log.StopReasonKey, log.StopNoBetterThanRandom))
	assert.True(t, logger.ContainsField(log.RoundsKey, float64(1)))
	assert.Len(t, logger.EntriesWithMessage("boosting round"), 1)
}

func TestTrainer_WeightsSumToOne(t *testing.T) {
	dataset := make([]int, 40)
	labels := make([]model.Label, 40)
	for j := range dataset {
		dataset[j] = j
		labels[j] = model.LabelFromSign(math.Sin(float64(j)))
	}
	pool := NewPool[int]()
	for lo := -1; lo < 40; lo += 3 {
		pool = append(pool, NewRangeClassifier(lo, lo+7))
	}

	rounds := 0
	trainer := quietTrainer(WithRoundCallback(func(info RoundInfo) error {
		rounds++
		assert.InDelta(t, 1.0, floats.Sum(info.Weights), 1e-9, "round %d", info.Round)
		for _, w := range info.Weights {
			assert.GreaterOrEqual(t, w, 0.0)
		}
		assert.Less(t, info.WeightedError, 0.5)
		return nil
	}))

	coef, err := trainer.Train(pool, dataset, labels, 25)
	require.NoError(t, err)
	assert.Len(t, coef, len(pool))
	assert.Positive(t, rounds)
}

func TestTrainer_TieBreakPrefersLowestSlot(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)
	clf := NewRangeClassifier(5, 11)
	pool := NewPool[int](clf, clf, clf)

	coef, err := quietTrainer().Train(pool, dataset, labels, 1)
	require.NoError(t, err)
	assert.NotZero(t, coef[0])
	assert.Zero(t, coef[1])
	assert.Zero(t, coef[2])
}

func TestTrainer_ZeroRounds(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)
	coef, err := quietTrainer().Train(referencePool(), dataset, labels, 0)
	require.NoError(t, err)
	assert.Equal(t, Coefficients{0, 0, 0, 0}, coef)
}

func TestTrainer_DegeneratePolicies(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)
	pool := append(referencePool(), NewRangeClassifier(7, 13))

	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	for _, policy := range []DegeneratePolicy{DegenerateClamp, DegenerateShortCircuit} {
		t.Run(policy.String(), func(t *testing.T) {
			warnings = nil
			var history []RoundInfo
			coef, err := quietTrainer(WithDegeneratePolicy(policy), WithRoundCallback(RecordHistory(&history))).
				Train(pool, dataset, labels, DefaultNumRounds)
			require.NoError(t, err)

			assert.Equal(t, Coefficients{0, 0, 0, 0, MaxAlpha}, coef)
			assert.False(t, math.IsInf(coef[4], 0))
			require.Len(t, history, 1)
			assert.Equal(t, 4, history[0].Best)
			assert.Zero(t, history[0].WeightedError)

			require.Len(t, warnings, 1)
			var w *errors.DegenerateWeightWarning
			require.True(t, errors.As(warnings[0], &w))
			assert.Equal(t, 4, w.Slot)
			assert.Equal(t, 0, w.Round)

			strong, err := NewStrongClassifier(pool, coef)
			require.NoError(t, err)
			acc, err := strong.Evaluate(dataset, labels)
			require.NoError(t, err)
			assert.Equal(t, 1.0, acc)
		})
	}

	t.Run("fail", func(t *testing.T) {
		coef, err := quietTrainer(WithDegeneratePolicy(DegenerateFail)).Train(pool, dataset, labels, DefaultNumRounds)
		require.Error(t, err)
		assert.Nil(t, coef)

		var dw *errors.DegenerateWeightError
		require.True(t, errors.As(err, &dw))
		assert.Equal(t, 4, dw.Slot)
		assert.Equal(t, 0, dw.Round)
	})
}

func TestTrainer_InvalidArguments(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)

	tests := []struct {
		name    string
		pool    Pool[int]
		dataset []int
		labels  []model.Label
		rounds  int
	}{
		{"empty pool", Pool[int]{}, dataset, labels, 10},
		{"nil classifier", Pool[int]{NewRangeClassifier(0, 1), nil}, dataset, labels, 10},
		{"empty dataset", referencePool(), nil, nil, 10},
		{"length mismatch", referencePool(), dataset, labels[:19], 10},
		{"label out of domain", referencePool(), []int{1, 2}, []model.Label{model.Positive, 0}, 10},
		{"negative rounds", referencePool(), dataset, labels, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coef, err := quietTrainer().Train(tt.pool, tt.dataset, tt.labels, tt.rounds)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
			assert.Nil(t, coef)
		})
	}
}

func TestTrainer_LengthMismatchIsDimensionError(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)
	_, err := quietTrainer().Train(referencePool(), dataset, labels[:10], 1)

	var de *errors.DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 20, de.Expected)
	assert.Equal(t, 10, de.Got)
}

func TestTrainer_RejectsWeakOutputOutsideDomain(t *testing.T) {
	dataset, labels := windowData(5, 1, 2)
	pool := NewPool[int](ClassifierFunc[int](func(int) model.Label { return 0 }))

	_, err := quietTrainer().Train(pool, dataset, labels, 1)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestTrainer_RecoversPanickingClassifier(t *testing.T) {
	dataset, labels := windowData(5, 1, 2)
	pool := NewPool[int](
		NewRangeClassifier(0, 3),
		ClassifierFunc[int](func(x int) model.Label {
			if x == 3 {
				panic("bad feature")
			}
			return model.Positive
		}),
	)

	coef, err := quietTrainer().Train(pool, dataset, labels, 1)
	require.Error(t, err)
	assert.Nil(t, coef)

	var pe *errors.PanicError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad feature", pe.PanicValue)
	assert.Contains(t, pe.Operation, "pool[1]")
}

func TestTrainer_CallbackErrorAbortsTraining(t *testing.T) {
	pool := NewPool(leaveOneOut(0), leaveOneOut(1), leaveOneOut(2))
	stop := errors.New("stop here")

	calls := 0
	coef, err := quietTrainer(WithRoundCallback(func(info RoundInfo) error {
		calls++
		if info.Round == 1 {
			return stop
		}
		return nil
	})).Train(pool, []int{0, 1, 2}, allPositive(3), 4)

	require.Error(t, err)
	assert.True(t, errors.Is(err, stop))
	assert.Nil(t, coef)
	assert.Equal(t, 2, calls)
}

func TestTrainer_Deterministic(t *testing.T) {
	dataset, labels := windowData(60, 20, 35)
	pool := NewPool[int]()
	for lo := 0; lo < 60; lo += 4 {
		pool = append(pool, NewRangeClassifier(lo, lo+12), NewRangeClassifier(lo-6, lo+2))
	}

	first, err := quietTrainer().Train(pool, dataset, labels, 30)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := quietTrainer().Train(pool, dataset, labels, 30)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTrainer_ParallelMatrixMatchesSequential(t *testing.T) {
	dataset, labels := windowData(500, 100, 260)
	pool := NewPool[int]()
	for lo := -10; lo < 500; lo += 7 {
		pool = append(pool, NewRangeClassifier(lo, lo+90))
	}

	sequential := quietTrainer(WithParallelThreshold(-1))
	concurrent := quietTrainer(WithParallelThreshold(0))

	ps, err := sequential.predictionMatrix(pool, dataset)
	require.NoError(t, err)
	pc, err := concurrent.predictionMatrix(pool, dataset)
	require.NoError(t, err)
	assert.True(t, mat.Equal(ps, pc))

	r, c := ps.Dims()
	assert.Equal(t, len(pool), r)
	assert.Equal(t, len(dataset), c)

	cs, err := sequential.Train(pool, dataset, labels, 20)
	require.NoError(t, err)
	cc, err := concurrent.Train(pool, dataset, labels, 20)
	require.NoError(t, err)
	assert.Equal(t, cs, cc)
}

func TestTrainer_DoesNotMutateInputs(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)
	pool := referencePool()

	dataCopy := append([]int(nil), dataset...)
	labelCopy := append([]model.Label(nil), labels...)
	poolCopy := append(Pool[int](nil), pool...)

	_, err := Train(pool, dataset, labels, DefaultNumRounds)
	require.NoError(t, err)

	assert.Equal(t, dataCopy, dataset)
	assert.Equal(t, labelCopy, labels)
	assert.Equal(t, poolCopy, pool)
}

func TestNormalize_Underflow(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
	}{
		{"zero sum", []float64{0, 0, 0}},
		{"nan", []float64{math.NaN(), 0.5}},
		{"inf", []float64{math.Inf(1), 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := normalize(tt.weights, 7)
			require.Error(t, err)

			var ne *errors.NumericalInstabilityError
			require.True(t, errors.As(err, &ne))
			assert.Equal(t, "weight_normalization", ne.Operation)
			assert.Equal(t, 7, ne.Iteration)
		})
	}

	w := []float64{1, 3}
	require.NoError(t, normalize(w, 0))
	assert.Equal(t, []float64{0.25, 0.75}, w)
}

func TestCoefficients_ActiveAndClone(t *testing.T) {
	c := Coefficients{0, 1.5, 0, -0.2}
	assert.Equal(t, []int{1, 3}, c.Active())

	clone := c.Clone()
	clone[0] = 9
	assert.Zero(t, c[0])
	assert.Nil(t, Coefficients(nil).Clone())
}

func BenchmarkTrain(b *testing.B) {
	dataset, labels := windowData(2000, 500, 1200)
	pool := NewPool[int]()
	for lo := 0; lo < 2000; lo += 20 {
		pool = append(pool, NewRangeClassifier(lo, lo+400))
	}
	logger, _ := log.NewTestLogger(log.LevelError)
	trainer := NewTrainer[int](WithLogger(logger))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := trainer.Train(pool, dataset, labels, DefaultNumRounds); err != nil {
			b.Fatal(err)
		}
	}
}
