package motion

import (
	"errors"
	"math"
	"testing"
)

func TestTimeSeries_At(t *testing.T) {
	var (
		a = makeSerie(1990, 100, 2000, 200)
		b = makeSerie(1990, 100, 2000, 0)
		c = makeSerie(1990, 10, 1995, 20, 2005, 40)
	)
	tests := []struct {
		Name  string
		Serie TimeSeries
		Time  float64
		Want  float64
	}{
		{Name: "increasing", Serie: a, Time: 1995, Want: 150},
		{Name: "decreasing", Serie: b, Time: 1995, Want: 50},
		{Name: "first-sample", Serie: a, Time: 1990, Want: 100},
		{Name: "last-sample", Serie: a, Time: 2000, Want: 200},
		{Name: "before-first", Serie: a, Time: 1950, Want: 100},
		{Name: "after-last", Serie: a, Time: 2010, Want: 300},
		{Name: "inner-sample", Serie: c, Time: 1995, Want: 20},
		{Name: "uneven-spacing", Serie: c, Time: 2000, Want: 30},
		{Name: "single-sample", Serie: makeSerie(2000, 7), Time: 1990, Want: 7},
		{Name: "single-sample-after", Serie: makeSerie(2000, 7), Time: 2010, Want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := tt.Serie.At(tt.Time)
			if math.Abs(got-tt.Want) > 1e-9 {
				t.Errorf("value at %g: want %g, got %g", tt.Time, tt.Want, got)
			}
		})
	}
}

func TestTimeSeries_Search(t *testing.T) {
	ts := makeSerie(1990, 1, 1995, 2, 2000, 3)
	tests := []struct {
		Time float64
		Want int
	}{
		{Time: 1980, Want: 0},
		{Time: 1990, Want: 0},
		{Time: 1992, Want: 1},
		{Time: 1995, Want: 1},
		{Time: 1999, Want: 2},
		{Time: 2050, Want: 2},
	}
	for _, tt := range tests {
		if got := ts.Search(tt.Time); got != tt.Want {
			t.Errorf("search %g: want %d, got %d", tt.Time, tt.Want, got)
		}
	}
}

func TestNewTimeSeries(t *testing.T) {
	tests := []struct {
		Name    string
		Samples []Sample
		Index   int
	}{
		{Name: "empty"},
		{Name: "unordered", Samples: makeSerie(2000, 1, 1990, 2), Index: 1},
		{Name: "duplicate", Samples: makeSerie(1990, 1, 1995, 2, 1995, 3), Index: 2},
		{Name: "nan-time", Samples: makeSerie(1990, 1, math.NaN(), 2), Index: 1},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := NewTimeSeries(tt.Samples)
			var ie *InvalidSeriesError
			if !errors.As(err, &ie) {
				t.Fatalf("expected invalid series error, got %v", err)
			}
			if ie.Index != tt.Index {
				t.Errorf("index: want %d, got %d", tt.Index, ie.Index)
			}
		})
	}
	ts, err := NewTimeSeries(makeSerie(1990, 1, 2000, math.NaN()))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if lo, hi := ts.Bounds(); lo != 1 || hi != 1 {
		t.Errorf("bounds should skip NaN values: got [%g, %g]", lo, hi)
	}
	if fst, lst := ts.Span(); fst != 1990 || lst != 2000 {
		t.Errorf("span: want [1990, 2000], got [%g, %g]", fst, lst)
	}
}
