package model

// Analyzer は1つの特徴量を二値ラベルに写像する識別器のインターフェース
type Analyzer[T any] interface {
	// Analyze は特徴量に対するラベル (-1 または +1) を返す
	Analyze(feature T) Label
}

// Fitter は学習可能なモデルのインターフェース
type Fitter[T any] interface {
	// Fit はモデルを訓練データで学習させる
	Fit(dataset []T, labels []Label) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor[T any] interface {
	// Predict は入力データの各事例に対する予測を行う
	Predict(dataset []T) ([]Label, error)
}

// Scorer はスコアを計算できるモデルのインターフェース
type Scorer[T any] interface {
	// Score は正解率を返す
	Score(dataset []T, labels []Label) (float64, error)
}

// Classifier は二値分類モデルのインターフェース
type Classifier[T any] interface {
	Fitter[T]
	Predictor[T]
	Scorer[T]

	// IsFitted はモデルが学習済みかどうかを返す
	IsFitted() bool
}
