// Command adaboost trains discrete AdaBoost over range classifiers on a
// one-dimensional feature file and reports the result.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
