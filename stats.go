package motion

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

const DefaultWhisker = 1.5

// Summary holds the boxplot statistics of one channel in one snapshot.
type Summary struct {
	Count        int
	Min          float64
	LowerWhisker float64
	Q1           float64
	Median       float64
	Q3           float64
	UpperWhisker float64
	Max          float64
}

// UndefinedSummary is returned when there is nothing to summarize.
func UndefinedSummary() Summary {
	nan := math.NaN()
	return Summary{
		Min:          nan,
		LowerWhisker: nan,
		Q1:           nan,
		Median:       nan,
		Q3:           nan,
		UpperWhisker: nan,
		Max:          nan,
	}
}

func (s Summary) Defined() bool {
	return s.Count > 0
}

func (s Summary) IQR() float64 {
	return s.Q3 - s.Q1
}

// Ticks returns the values marked on an interquartile axis.
func (s Summary) Ticks() []float64 {
	if !s.Defined() {
		return nil
	}
	return []float64{s.LowerWhisker, s.Q1, s.Median, s.Q3, s.UpperWhisker}
}

// Summarize computes the boxplot statistics of values with whiskers at k
// times the interquartile range. NaN values are ignored. The boolean is false
// when no value is left.
func Summarize(values []float64, k float64) (Summary, bool) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return UndefinedSummary(), false
	}
	sample := stats.Sample{Xs: xs}
	sample.Sort()

	var s Summary
	s.Count = len(xs)
	s.Min, s.Max = sample.Bounds()
	s.Q1 = quantile(sample.Xs, 0.25)
	s.Median = quantile(sample.Xs, 0.5)
	s.Q3 = quantile(sample.Xs, 0.75)

	var (
		iqr = s.Q3 - s.Q1
		lo  = s.Q1 - k*iqr
		hi  = s.Q3 + k*iqr
	)
	s.LowerWhisker, s.UpperWhisker = s.Min, s.Max
	for _, v := range sample.Xs {
		if v >= lo {
			s.LowerWhisker = v
			break
		}
	}
	for i := len(sample.Xs) - 1; i >= 0; i-- {
		if v := sample.Xs[i]; v <= hi {
			s.UpperWhisker = v
			break
		}
	}
	return s, true
}

// quantile interpolates linearly between the order statistics of the sorted
// list xs.
func quantile(xs []float64, p float64) float64 {
	n := len(xs)
	switch {
	case n == 0:
		return math.NaN()
	case p <= 0 || n == 1:
		return xs[0]
	case p >= 1:
		return xs[n-1]
	}
	var (
		h = float64(n-1) * p
		i = int(math.Floor(h))
	)
	if i+1 >= n {
		return xs[n-1]
	}
	return xs[i] + (h-float64(i))*(xs[i+1]-xs[i])
}

type Aggregate string

const (
	AggrMax    Aggregate = "max"
	AggrMean   Aggregate = "mean"
	AggrMedian Aggregate = "median"
	AggrMin    Aggregate = "min"
)

func Aggregates() []Aggregate {
	return []Aggregate{AggrMax, AggrMean, AggrMedian, AggrMin}
}

func ParseAggregate(str string) (Aggregate, error) {
	switch a := Aggregate(strings.ToLower(strings.TrimSpace(str))); a {
	case AggrMax, AggrMean, AggrMedian, AggrMin:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrAggregate, str)
	}
}

// Apply reduces values to a single number. NaN values are ignored and NaN is
// returned when nothing is left.
func (a Aggregate) Apply(values []float64) float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return math.NaN()
	}
	sample := stats.Sample{Xs: xs}
	switch a {
	case AggrMax:
		_, max := sample.Bounds()
		return max
	case AggrMin:
		min, _ := sample.Bounds()
		return min
	case AggrMean:
		return sample.Mean()
	case AggrMedian:
		sample.Sort()
		return quantile(sample.Xs, 0.5)
	default:
		return math.NaN()
	}
}
