// Package performance measures repeated training and prediction runs.
//
// Measure wraps any function; it is a decorator outside the boosting core and
// never changes what the wrapped function computes.
package performance

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

// Timings is the result of a Measure call.
type Timings struct {
	Name       string
	Iterations int
	// Durations holds the wall time of every iteration in order.
	Durations []time.Duration

	// Allocation figures cover the whole run, read from runtime.MemStats.
	TotalAllocBytes uint64
	Mallocs         uint64
	NumGC           uint32
}

func (t Timings) nanos() []float64 {
	out := make([]float64, len(t.Durations))
	for i, d := range t.Durations {
		out[i] = float64(d.Nanoseconds())
	}
	return out
}

// Mean returns the mean iteration time.
func (t Timings) Mean() time.Duration {
	if len(t.Durations) == 0 {
		return 0
	}
	return time.Duration(stat.Mean(t.nanos(), nil))
}

// StdDev returns the sample standard deviation of the iteration time.
func (t Timings) StdDev() time.Duration {
	if len(t.Durations) < 2 {
		return 0
	}
	_, std := stat.MeanStdDev(t.nanos(), nil)
	return time.Duration(std)
}

// Min returns the fastest iteration.
func (t Timings) Min() time.Duration {
	if len(t.Durations) == 0 {
		return 0
	}
	return time.Duration(floats.Min(t.nanos()))
}

// Max returns the slowest iteration.
func (t Timings) Max() time.Duration {
	if len(t.Durations) == 0 {
		return 0
	}
	return time.Duration(floats.Max(t.nanos()))
}

// Total returns the summed iteration time.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, d := range t.Durations {
		total += d
	}
	return total
}

// AllocBytesPerOp returns the average number of bytes allocated per iteration.
func (t Timings) AllocBytesPerOp() uint64 {
	if t.Iterations == 0 {
		return 0
	}
	return t.TotalAllocBytes / uint64(t.Iterations)
}

// AllocsPerOp returns the average number of heap allocations per iteration.
func (t Timings) AllocsPerOp() uint64 {
	if t.Iterations == 0 {
		return 0
	}
	return t.Mallocs / uint64(t.Iterations)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (t Timings) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", t.Name).
		Int("iterations", t.Iterations).
		Dur("mean", t.Mean()).
		Dur("stddev", t.StdDev()).
		Dur("min", t.Min()).
		Dur("max", t.Max()).
		Uint64("alloc_bytes_per_op", t.AllocBytesPerOp()).
		Uint64("allocs_per_op", t.AllocsPerOp()).
		Uint32("num_gc", t.NumGC)
}

// Measure runs fn repeat times and records the wall time of each call. The
// first error stops the run and is returned with the timings gathered so far.
// Panics inside fn are returned as errors.PanicError.
func Measure(name string, repeat int, fn func() error) (Timings, error) {
	if repeat <= 0 {
		return Timings{Name: name}, errors.NewValidationError("repeat", "must be positive", repeat)
	}

	t := Timings{Name: name, Durations: make([]time.Duration, 0, repeat)}

	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	var err error
	for i := 0; i < repeat; i++ {
		start := time.Now()
		err = errors.SafeExecute(name, fn)
		t.Durations = append(t.Durations, time.Since(start))
		t.Iterations++
		if err != nil {
			err = errors.Wrapf(err, "%s: iteration %d", name, i)
			break
		}
	}

	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	t.TotalAllocBytes = after.TotalAlloc - before.TotalAlloc
	t.Mallocs = after.Mallocs - before.Mallocs
	t.NumGC = after.NumGC - before.NumGC
	return t, err
}
