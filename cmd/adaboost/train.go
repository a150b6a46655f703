package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/metrics"
	"github.com/YuminosukeSato/adaboost/pkg/dataio"
	"github.com/YuminosukeSato/adaboost/pkg/log"
	"github.com/YuminosukeSato/adaboost/sklearn/ensemble"
)

type trainFlags struct {
	dataFlags
	plot   string
	output string
}

func newTrainCmd() *cobra.Command {
	var f trainFlags
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train coefficients and report training-set accuracy",
		Example: `  adaboost train --data data/adaboost_data_train.csv --limit 20
  adaboost train --data x.npy --labels y.npy --range 0:5 --range 3:9 --plot curve.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd.OutOrStdout(), &f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.plot, "plot", "", "Write the per-round learning curve to this image (.png, .svg, .pdf)")
	cmd.Flags().StringVar(&f.output, "output", "", "Write training-set predictions to this file (.csv or .npy)")
	return cmd
}

func runTrain(w io.Writer, f *trainFlags) error {
	logger := log.GetLoggerWithName("cli.train")

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

	var history []ensemble.RoundInfo
	opts = append(opts, ensemble.WithRoundCallback(ensemble.RecordHistory(&history)))
	clf := ensemble.NewAdaBoostClassifier(pool, opts...)
	if err := clf.Fit(features, labels); err != nil {
		return err
	}

	strong, err := clf.Strong()
	if err != nil {
		return err
	}
	report, err := strong.Report(features, labels)
	if err != nil {
		return err
	}
	if err := printSummary(w, pool, strong.Coefficients(), report, len(history)); err != nil {
		return err
	}

	if f.plot != "" {
		if len(history) == 0 {
			logger.Warn("no completed rounds, learning curve not written", "path", f.plot)
		} else {
			curve, err := learningCurve(pool, history, features, labels)
			if err != nil {
				return err
			}
			if err := curve.save(f.plot); err != nil {
				return err
			}
			logger.Info("learning curve written", "path", f.plot, log.RoundsKey, len(history))
		}
	}

	if f.output != "" {
		if err := dataio.WriteLabels(f.output, strong.Predict(features)); err != nil {
			return err
		}
		logger.Info("predictions written", "path", f.output, log.SamplesKey, len(features))
	}
	return nil
}

func printSummary(w io.Writer, pool ensemble.Pool[float64], coef ensemble.Coefficients, report metrics.BinaryReport, rounds int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "slot\tclassifier\tcoefficient\n")
	for c, clf := range pool {
		fmt.Fprintf(tw, "%d\t%v\t%.6f\n", c, clf, coef[c])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nrounds: %d\n", rounds)
	fmt.Fprintf(w, "examples: %d\n", report.Total())
	fmt.Fprintf(w, "accuracy: %.4f\n", report.Accuracy)
	fmt.Fprintf(w, "precision: %.4f  recall: %.4f  f1: %.4f\n", report.Precision, report.Recall, report.F1)
	fmt.Fprintf(w, "confusion: tp=%d fp=%d tn=%d fn=%d\n",
		report.TruePositive, report.FalsePositive, report.TrueNegative, report.FalseNegative)
	return nil
}

// curve holds one point per completed round.
type curve struct {
	weightedError []float64
	accuracy      []float64
}

// learningCurve replays the coefficient snapshot of every round and scores
// the partial ensemble on the training set.
func learningCurve(pool ensemble.Pool[float64], history []ensemble.RoundInfo, features []float64, labels []model.Label) (curve, error) {
	c := curve{
		weightedError: lo.Map(history, func(info ensemble.RoundInfo, _ int) float64 {
			return info.WeightedError
		}),
		accuracy: make([]float64, len(history)),
	}
	for i, info := range history {
		strong, err := ensemble.NewStrongClassifier(pool, info.Coefficients)
		if err != nil {
			return curve{}, err
		}
		acc, err := strong.Evaluate(features, labels)
		if err != nil {
			return curve{}, err
		}
		c.accuracy[i] = acc
	}
	return c, nil
}
