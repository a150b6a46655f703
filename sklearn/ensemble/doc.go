// Package ensemble implements discrete AdaBoost over a fixed pool of binary
// weak classifiers.
//
// Training never fits new weak learners. It assigns one coefficient per
// slot of a caller-assembled Pool by iteratively reweighting the training
// examples. The result combines with the same pool into a StrongClassifier,
// a weighted-majority vote that is itself a WeakClassifier and can therefore
// be pooled again.
//
// # Quick start
//
//	pool := ensemble.NewPool[int](
//	    ensemble.NewRangeClassifier(50, 90),
//	    ensemble.NewRangeClassifier(80, 130),
//	)
//	coef, err := ensemble.Train(pool, dataset, labels, ensemble.DefaultNumRounds)
//	if err != nil {
//	    return err
//	}
//	strong, err := ensemble.NewStrongClassifier(pool, coef)
//	if err != nil {
//	    return err
//	}
//	accuracy, err := strong.Evaluate(dataset, labels)
//
// AdaBoostClassifier wraps the same steps behind the Fit/Predict/Score
// estimator surface used by the rest of the library.
//
// # Semantics worth knowing
//
//   - Coefficients has one entry per pool slot; slots never selected stay 0.
//   - Ties on the minimal weighted error go to the lowest slot index.
//   - Training stops early once the best weighted error reaches 0.5.
//   - A slot selected again overwrites its previous coefficient; the
//     contributions of earlier selections are not summed.
//   - A zero weighted error is handled by the configured DegeneratePolicy;
//     no policy stores an infinite coefficient.
package ensemble
