// Package metrics は二値分類の評価指標を提供する
package metrics

import (
	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LabelsToVec はラベル列をgonumのベクトルに変換する
func LabelsToVec(labels []model.Label) *mat.VecDense {
	if len(labels) == 0 {
		return nil
	}
	data := make([]float64, len(labels))
	for i, l := range labels {
		data[i] = l.Float64()
	}
	return mat.NewVecDense(len(labels), data)
}

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValidationError(op, "empty vector", 0)
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// Accuracy は正解率（予測が正解と一致した事例の割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率 (1 - Accuracy) を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BinaryReport は {-1, +1} ラベルの混同行列と、+1 を陽性クラスとする指標
type BinaryReport struct {
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int

	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// Total は評価した事例数を返す
func (r BinaryReport) Total() int {
	return r.TruePositive + r.FalsePositive + r.TrueNegative + r.FalseNegative
}

// BinaryClassificationReport は {-1, +1} ラベルの混同行列と指標を計算する。
// 陽性予測が1件もない場合の適合率、陽性事例が1件もない場合の再現率は 0 とする
func BinaryClassificationReport(yTrue, yPred *mat.VecDense) (BinaryReport, error) {
	n, err := checkPair("BinaryClassificationReport", yTrue, yPred)
	if err != nil {
		return BinaryReport{}, err
	}

	var r BinaryReport
	for i := 0; i < n; i++ {
		truth, pred := model.Label(yTrue.AtVec(i)), model.Label(yPred.AtVec(i))
		if !truth.Valid() {
			return BinaryReport{}, errors.NewValidationError("yTrue", "labels must be -1 or +1", yTrue.AtVec(i))
		}
		if !pred.Valid() {
			return BinaryReport{}, errors.NewValidationError("yPred", "labels must be -1 or +1", yPred.AtVec(i))
		}
		switch {
		case truth == model.Positive && pred == model.Positive:
			r.TruePositive++
		case truth == model.Negative && pred == model.Positive:
			r.FalsePositive++
		case truth == model.Negative && pred == model.Negative:
			r.TrueNegative++
		default:
			r.FalseNegative++
		}
	}

	r.Accuracy = float64(r.TruePositive+r.TrueNegative) / float64(n)
	if p := r.TruePositive + r.FalsePositive; p > 0 {
		r.Precision = float64(r.TruePositive) / float64(p)
	}
	if p := r.TruePositive + r.FalseNegative; p > 0 {
		r.Recall = float64(r.TruePositive) / float64(p)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r, nil
}
