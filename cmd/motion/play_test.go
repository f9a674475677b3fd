package main

import (
	"testing"
	"time"

	"github.com/midbel/motion"
)

func sampleChart(t *testing.T) *motion.Scatter {
	t.Helper()
	series := func(from, to float64) map[string]motion.TimeSeries {
		return map[string]motion.TimeSeries{
			"income":     {motion.MakeSample(1990, from), motion.MakeSample(2000, to)},
			"population": {motion.MakeSample(1990, 1), motion.MakeSample(2000, 2)},
		}
	}
	entities := []motion.Entity{
		{Key: "A", Attrs: map[string]string{"region": "north"}, Series: series(100, 200)},
		{Key: "B", Attrs: map[string]string{"region": "south"}, Series: series(50, 80)},
	}
	data, err := motion.NewDataset(motion.Metadata{Title: "play"}, entities)
	if err != nil {
		t.Fatalf("unexpected error building dataset: %s", err)
	}
	cfg := motion.DefaultConfig()
	cfg.Duration = time.Second
	cfg.Bindings = map[motion.Channel]string{
		motion.X:      "income",
		motion.Y:      "income",
		motion.Radius: "population",
		motion.Color:  "region",
	}
	chart, err := motion.New(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error building chart: %s", err)
	}
	return chart
}

func TestPlay(t *testing.T) {
	defer func(hover float64) {
		playHover = hover
	}(playHover)

	tests := []struct {
		Hover  float64
		Frames int
		Last   float64
	}{
		{Hover: 0, Frames: 11, Last: 2000},
		{Hover: 0.5, Frames: 6, Last: 1995},
	}
	for _, tt := range tests {
		playHover = tt.Hover
		chart := sampleChart(t)
		frames, err := play(chart, 100*time.Millisecond)
		if err != nil {
			t.Fatalf("hover %g: unexpected error: %s", tt.Hover, err)
		}
		if len(frames) != tt.Frames {
			t.Errorf("hover %g: want %d frames, got %d", tt.Hover, tt.Frames, len(frames))
			continue
		}
		if frames[0].Time != 1990 {
			t.Errorf("hover %g: first frame at %g", tt.Hover, frames[0].Time)
		}
		if got := frames[len(frames)-1].Time; got != tt.Last {
			t.Errorf("hover %g: last frame: want %g, got %g", tt.Hover, tt.Last, got)
		}
		for i := 1; i < len(frames); i++ {
			if frames[i].Time <= frames[i-1].Time {
				t.Errorf("hover %g: frames out of order at %d", tt.Hover, i)
			}
		}
		if chart.State() != motion.Interactive {
			t.Errorf("hover %g: want %s, got %s", tt.Hover, motion.Interactive, chart.State())
		}
		if chart.Time() != tt.Last {
			t.Errorf("hover %g: chart time: want %g, got %g", tt.Hover, tt.Last, chart.Time())
		}
	}
}
