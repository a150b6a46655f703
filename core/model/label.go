package model

import "fmt"

// Label は二値分類のラベル。値は {-1, +1} のいずれか
type Label int

const (
	// Negative は負例ラベル (-1)
	Negative Label = -1
	// Positive は正例ラベル (+1)
	Positive Label = 1
)

// Valid はラベルが {-1, +1} に含まれるかを返す
func (l Label) Valid() bool {
	return l == Negative || l == Positive
}

// Float64 はラベルを重み計算用の浮動小数点数に変換する
func (l Label) Float64() float64 {
	return float64(l)
}

func (l Label) String() string {
	switch l {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	default:
		return fmt.Sprintf("invalid(%d)", int(l))
	}
}

// LabelFromSign は実数値の符号からラベルを返す。0 は正例として扱う
func LabelFromSign(v float64) Label {
	if v >= 0 {
		return Positive
	}
	return Negative
}
