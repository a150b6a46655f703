package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/adaboost/performance"
	"github.com/YuminosukeSato/adaboost/pkg/log"
	"github.com/YuminosukeSato/adaboost/sklearn/ensemble"
)

type benchFlags struct {
	dataFlags
	repeat int
}

func newBenchCmd() *cobra.Command {
	var f benchFlags
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated training and prediction on the training set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.OutOrStdout(), &f)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&f.repeat, "repeat", 1000, "Number of train+predict iterations")
	return cmd
}

func runBench(w io.Writer, f *benchFlags) error {
	features, labels, err := f.load()
	if err != nil {
		return err
	}
	pool, err := f.pool()
	if err != nil {
		return err
	}
	opts, err := f.options()
	if err != nil {
		return err
	}
	trainer := ensemble.NewTrainer[float64](opts...)

	timings, err := performance.Measure("train+predict", f.repeat, func() error {
		coef, err := trainer.Train(pool, features, labels, f.rounds)
		if err != nil {
			return err
		}
		strong, err := ensemble.NewStrongClassifier(pool, coef)
		if err != nil {
			return err
		}
		_, err = strong.Evaluate(features, labels)
		return err
	})
	if err != nil {
		return err
	}

	log.GetLoggerWithName("cli.bench").Info("benchmark finished", "timings", timings)

	fmt.Fprintf(w, "iterations: %d\n", timings.Iterations)
	fmt.Fprintf(w, "mean: %v\n", timings.Mean())
	fmt.Fprintf(w, "stddev: %v\n", timings.StdDev())
	fmt.Fprintf(w, "min: %v\n", timings.Min())
	fmt.Fprintf(w, "max: %v\n", timings.Max())
	fmt.Fprintf(w, "allocs/op: %d (%d B/op)\n", timings.AllocsPerOp(), timings.AllocBytesPerOp())
	return nil
}
