package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/adaboost/core/model"
	"github.com/YuminosukeSato/adaboost/pkg/dataio"
	"github.com/YuminosukeSato/adaboost/pkg/errors"
	"github.com/YuminosukeSato/adaboost/sklearn/ensemble"
)

// referenceRanges is the pool used when no --range is given.
var referenceRanges = []string{"50:90", "80:130", "90:130", "40:150"}

// dataFlags are shared by train and bench.
type dataFlags struct {
	data         string
	labels       string
	positiveFrom int
	positiveTo   int
	limit        int
	rounds       int
	ranges       []string
	policy       string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "Feature file (.csv or .npy)")
	cmd.Flags().StringVar(&f.labels, "labels", "", "Label file with -1/+1 entries; overrides --positive-from/--positive-to")
	cmd.Flags().IntVar(&f.positiveFrom, "positive-from", 8, "First example index labelled +1 when no label file is given")
	cmd.Flags().IntVar(&f.positiveTo, "positive-to", 12, "Last example index labelled +1 when no label file is given")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Use only the first N features (0 = all)")
	cmd.Flags().IntVar(&f.rounds, "rounds", ensemble.DefaultNumRounds, "Maximum number of boosting rounds")
	cmd.Flags().StringSliceVar(&f.ranges, "range", nil, "Weak classifier LO:HI accepting LO < x < HI (repeatable; default: 50:90,80:130,90:130,40:150)")
	cmd.Flags().StringVar(&f.policy, "policy", ensemble.DegenerateClamp.String(), "Zero weighted error policy (clamp, short-circuit, fail)")
	_ = cmd.MarkFlagRequired("data")
}

// load reads the features and derives or reads the labels.
func (f *dataFlags) load() ([]float64, []model.Label, error) {
	features, err := dataio.ReadFeatures(f.data)
	if err != nil {
		return nil, nil, err
	}
	if f.limit > 0 && f.limit < len(features) {
		features = features[:f.limit]
	}

	if f.labels == "" {
		return features, dataio.WindowLabels(len(features), f.positiveFrom, f.positiveTo), nil
	}
	labels, err := dataio.ReadLabels(f.labels)
	if err != nil {
		return nil, nil, err
	}
	if f.limit > 0 && f.limit < len(labels) {
		labels = labels[:f.limit]
	}
	return features, labels, nil
}

func (f *dataFlags) pool() (ensemble.Pool[float64], error) {
	ranges := f.ranges
	if len(ranges) == 0 {
		ranges = referenceRanges
	}
	return parsePool(ranges)
}

func (f *dataFlags) options() ([]ensemble.Option, error) {
	policy, err := ensemble.ParseDegeneratePolicy(f.policy)
	if err != nil {
		return nil, err
	}
	return []ensemble.Option{
		ensemble.WithNumRounds(f.rounds),
		ensemble.WithDegeneratePolicy(policy),
	}, nil
}

func parsePool(ranges []string) (ensemble.Pool[float64], error) {
	pool := make(ensemble.Pool[float64], 0, len(ranges))
	for _, rng := range ranges {
		lo, hi, ok := strings.Cut(rng, ":")
		if !ok {
			return nil, errors.NewValidationError("range", "must be LO:HI", rng)
		}
		low, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		if err != nil {
			return nil, errors.NewValidationError("range", "LO is not a number", rng)
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil {
			return nil, errors.NewValidationError("range", "HI is not a number", rng)
		}
		if low >= high {
			return nil, errors.NewValidationError("range", fmt.Sprintf("LO must be below HI in %q", rng), rng)
		}
		pool = append(pool, ensemble.NewRangeClassifier(low, high))
	}
	return pool, nil
}
