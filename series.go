package motion

import (
	"fmt"
	"math"
	"sort"

	"github.com/midbel/slices"
)

type Sample struct {
	Time  float64
	Value float64
}

func MakeSample(t, v float64) Sample {
	return Sample{
		Time:  t,
		Value: v,
	}
}

// TimeSeries is a non empty list of samples sorted by strictly increasing
// time. Use NewTimeSeries to get one that has been checked.
type TimeSeries []Sample

func NewTimeSeries(samples []Sample) (TimeSeries, error) {
	if len(samples) == 0 {
		return nil, &InvalidSeriesError{Reason: "series has no sample"}
	}
	for i := range samples {
		if math.IsNaN(samples[i].Time) || math.IsInf(samples[i].Time, 0) {
			return nil, &InvalidSeriesError{Index: i, Reason: "sample time is not a finite number"}
		}
		if i > 0 && samples[i].Time <= samples[i-1].Time {
			return nil, &InvalidSeriesError{
				Index:  i,
				Reason: fmt.Sprintf("time %g does not follow %g", samples[i].Time, samples[i-1].Time),
			}
		}
	}
	ts := make(TimeSeries, len(samples))
	copy(ts, samples)
	return ts, nil
}

// Search returns the index of the first sample whose time is not before t.
// The index never goes past the last sample.
func (ts TimeSeries) Search(t float64) int {
	if len(ts) == 0 {
		return 0
	}
	return sort.Search(len(ts)-1, func(i int) bool {
		return ts[i].Time >= t
	})
}

// At resolves the value of the series at t. Times before the first sample
// give the first value. Other times are interpolated between the sample found
// by Search and the one preceding it, which extends the last segment for times
// after the last sample.
func (ts TimeSeries) At(t float64) float64 {
	if len(ts) == 0 {
		return math.NaN()
	}
	var (
		i = ts.Search(t)
		a = ts[i]
	)
	if i == 0 || a.Time == t {
		return a.Value
	}
	var (
		b = ts[i-1]
		f = (t - a.Time) / (b.Time - a.Time)
	)
	return a.Value*(1-f) + b.Value*f
}

func (ts TimeSeries) Span() (float64, float64) {
	if len(ts) == 0 {
		return math.NaN(), math.NaN()
	}
	return slices.Fst(ts).Time, slices.Lst(ts).Time
}

// Bounds returns the smallest and largest values of the series. NaN values are
// skipped; both results are NaN when nothing is left.
func (ts TimeSeries) Bounds() (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for _, s := range ts {
		if math.IsNaN(s.Value) {
			continue
		}
		if math.IsNaN(lo) || s.Value < lo {
			lo = s.Value
		}
		if math.IsNaN(hi) || s.Value > hi {
			hi = s.Value
		}
	}
	return lo, hi
}

func (ts TimeSeries) Len() int {
	return len(ts)
}
