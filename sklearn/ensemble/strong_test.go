package ensemble

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

func TestNewStrongClassifier_Validation(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		_, err := NewStrongClassifier(Pool[int]{}, Coefficients{})
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := NewStrongClassifier(referencePool(), Coefficients{1, 2})
		var de *errors.DimensionError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 4, de.Expected)
		assert.Equal(t, 2, de.Got)
		assert.Equal(t, 1, de.Axis)
	})

	t.Run("non-finite coefficient", func(t *testing.T) {
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := NewStrongClassifier(referencePool(), Coefficients{0, bad, 0, 0})
			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve), "coef %v", bad)
		}
	})

	t.Run("nil classifier with weight", func(t *testing.T) {
		pool := Pool[int]{NewRangeClassifier(0, 1), nil}
		_, err := NewStrongClassifier(pool, Coefficients{1, 1})
		assert.True(t, errors.IsInvalidArgument(err))

		_, err = NewStrongClassifier(pool, Coefficients{1, 0})
		assert.NoError(t, err)
	})
}

func TestStrongClassifier_WeightedVote(t *testing.T) {
	pool := NewPool[int](NewRangeClassifier(0, 10), NewRangeClassifier(5, 20))
	strong, err := NewStrongClassifier(pool, Coefficients{1, 2})
	require.NoError(t, err)

	tests := []struct {
		x      int
		score  float64
		label  model.Label
		margin float64
	}{
		{7, 3, model.Positive, 3},
		{2, -1, model.Negative, 1},
		{15, 1, model.Positive, 1},
		{30, -3, model.Negative, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, strong.DecisionFunction(tt.x), "x=%d", tt.x)
		assert.Equal(t, tt.label, strong.Analyze(tt.x), "x=%d", tt.x)
		assert.Equal(t, tt.margin, strong.Margin(tt.x), "x=%d", tt.x)
	}
	assert.Equal(t, []model.Label{model.Positive, model.Negative}, strong.Predict([]int{7, 2}))
}

func TestStrongClassifier_ZeroScoreVotesPositive(t *testing.T) {
	pool := NewPool[int](NewRangeClassifier(0, 10), NewRangeClassifier(10, 20))
	strong, err := NewStrongClassifier(pool, Coefficients{0.7, 0.7})
	require.NoError(t, err)
	assert.Zero(t, strong.DecisionFunction(5))
	assert.Equal(t, model.Positive, strong.Analyze(5))

	untrained, err := NewStrongClassifier(pool, Coefficients{0, 0})
	require.NoError(t, err)
	assert.Empty(t, untrained.Active())
	assert.Equal(t, model.Positive, untrained.Analyze(100))
}

func TestStrongClassifier_SkipsZeroCoefficients(t *testing.T) {
	calls := 0
	counting := ClassifierFunc[int](func(int) model.Label {
		calls++
		return model.Negative
	})
	pool := NewPool[int](NewRangeClassifier(0, 10), counting)

	strong, err := NewStrongClassifier(pool, Coefficients{1, 0})
	require.NoError(t, err)
	strong.Analyze(3)
	assert.Zero(t, calls)
	assert.Equal(t, []int{0}, strong.Active())
	assert.Equal(t, 2, strong.Len())
}

func TestStrongClassifier_CopiesCoefficients(t *testing.T) {
	coef := Coefficients{1, 0, 0, 0}
	strong, err := NewStrongClassifier(referencePool(), coef)
	require.NoError(t, err)

	coef[0] = -5
	assert.Equal(t, Coefficients{1, 0, 0, 0}, strong.Coefficients())

	out := strong.Coefficients()
	out[1] = 3
	assert.Equal(t, []int{0}, strong.Active())
}

func TestStrongClassifier_ReferenceRanges(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)
	pool := referencePool()

	coef, err := quietTrainer().Train(pool, dataset, labels, DefaultNumRounds)
	require.NoError(t, err)
	strong, err := NewStrongClassifier(pool, coef)
	require.NoError(t, err)

	acc, err := strong.Evaluate(dataset, labels)
	require.NoError(t, err)
	assert.Equal(t, 0.75, acc)

	report, err := strong.Report(dataset, labels)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TruePositive)
	assert.Equal(t, 0, report.FalsePositive)
	assert.Equal(t, 15, report.TrueNegative)
	assert.Equal(t, 5, report.FalseNegative)
	assert.Equal(t, 0.75, report.Accuracy)
	assert.Zero(t, report.Precision)
	assert.Equal(t, 20, report.Total())
}

// 1ラウンドの強識別器は重み付き誤差最小の弱識別器と同じ予測をする
func TestStrongClassifier_AtLeastAsGoodAsBestWeak(t *testing.T) {
	dataset := make([]int, 50)
	labels := make([]model.Label, 50)
	for j := range dataset {
		dataset[j] = j
		labels[j] = model.LabelFromSign(math.Cos(float64(j) / 4))
	}
	pool := NewPool[int]()
	for lo := -5; lo < 50; lo += 5 {
		pool = append(pool, NewRangeClassifier(lo, lo+15))
	}

	coef, err := quietTrainer().Train(pool, dataset, labels, 1)
	require.NoError(t, err)
	strong, err := NewStrongClassifier(pool, coef)
	require.NoError(t, err)
	strongAcc, err := strong.Evaluate(dataset, labels)
	require.NoError(t, err)

	bestWeak := 0.0
	for _, clf := range pool {
		correct := 0
		for j, x := range dataset {
			if clf.Analyze(x) == labels[j] {
				correct++
			}
		}
		bestWeak = math.Max(bestWeak, float64(correct)/float64(len(dataset)))
	}
	assert.GreaterOrEqual(t, strongAcc, bestWeak)
}

func TestStrongClassifier_EvaluateValidation(t *testing.T) {
	strong, err := NewStrongClassifier(referencePool(), Coefficients{1, 0, 0, 0})
	require.NoError(t, err)

	_, err = strong.Evaluate(nil, nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = strong.Evaluate([]int{1, 2}, []model.Label{model.Positive})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = strong.Report([]int{1}, []model.Label{2})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestStrongClassifier_CanBePooledAgain(t *testing.T) {
	dataset, labels := windowData(20, 8, 12)

	// (7,30) と (-10,13) の AND を負の定数項で表す
	always := ClassifierFunc[int](func(int) model.Label { return model.Positive })
	inner, err := NewStrongClassifier(
		NewPool[int](NewRangeClassifier(7, 30), NewRangeClassifier(-10, 13), always),
		Coefficients{1, 1, -1.5})
	require.NoError(t, err)

	pool := append(referencePool(), inner)
	coef, err := quietTrainer().Train(pool, dataset, labels, 10)
	require.NoError(t, err)
	assert.Equal(t, Coefficients{0, 0, 0, 0, MaxAlpha}, coef)

	outer, err := NewStrongClassifier(pool, coef)
	require.NoError(t, err)
	acc, err := outer.Evaluate(dataset, labels)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
}
