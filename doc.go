// Package adaboost is a small boosting library for Go, built for services
// that need an interpretable binary classifier over cheap hand-written rules.
//
// It implements discrete AdaBoost over a fixed pool of weak classifiers: the
// pool is assembled once, training assigns one coefficient per slot, and the
// strong classifier is the weighted-majority vote of the pool.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/adaboost/pkg/dataio"
//	    "github.com/YuminosukeSato/adaboost/sklearn/ensemble"
//	)
//
//	func main() {
//	    pool := ensemble.NewPool[float64](
//	        ensemble.NewRangeClassifier(50.0, 90.0),
//	        ensemble.NewRangeClassifier(40.0, 150.0),
//	    )
//	    features, err := dataio.ReadFeatures("data/train.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    labels := dataio.WindowLabels(len(features), 8, 12)
//
//	    clf := ensemble.NewAdaBoostClassifier(pool, ensemble.WithNumRounds(100))
//	    if err := clf.Fit(features, labels); err != nil {
//	        log.Fatal(err)
//	    }
//	    acc, _ := clf.Score(features, labels)
//	    fmt.Println("accuracy:", acc)
//	}
//
// # Packages
//
//   - sklearn/ensemble: weak classifier contract, trainer, strong classifier
//     and the AdaBoostClassifier estimator
//   - core/model: labels, estimator interfaces and fitted-state management
//   - core/parallel: chunked parallel loops
//   - metrics: accuracy and binary classification reports
//   - pkg/dataio: CSV and .npy loading
//   - pkg/errors: structured errors and warnings
//   - pkg/log: structured logging on zerolog
//   - performance: repeated-run timing
//
// The adaboost command (cmd/adaboost) trains, benchmarks and plots from the
// command line.
//
// # License
//
// adaboost is released under the MIT License.
package adaboost
