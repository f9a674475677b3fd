package motion_test

import (
	"fmt"
	"time"

	"github.com/midbel/motion"
)

func serie(values ...float64) motion.TimeSeries {
	var ts motion.TimeSeries
	for i := 0; i+1 < len(values); i += 2 {
		ts = append(ts, motion.MakeSample(values[i], values[i+1]))
	}
	return ts
}

func Example() {
	data, err := motion.NewDataset(motion.Metadata{Title: "nations"}, []motion.Entity{
		{
			Key:   "A",
			Attrs: map[string]string{"name": "A", "group": "north"},
			Series: map[string]motion.TimeSeries{
				"x": serie(0, 100, 10, 200),
				"y": serie(0, 10, 10, 20),
			},
		},
		{
			Key:   "B",
			Attrs: map[string]string{"name": "B", "group": "south"},
			Series: map[string]motion.TimeSeries{
				"x": serie(0, 100, 10, 0),
				"y": serie(0, 30, 10, 40),
			},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	cfg := motion.DefaultConfig()
	cfg.Families[motion.X] = motion.Linear
	cfg.Bindings = map[motion.Channel]string{
		motion.X:     "x",
		motion.Y:     "y",
		motion.Color: "group",
		motion.Key:   "name",
	}
	cfg.Duration = 10 * time.Second

	chart, err := motion.New(data, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	chart.Play()
	chart.Tick(5 * time.Second)
	chart.Rebind(motion.Y, "x")

	snap := chart.Snapshot()
	for _, r := range snap.Records {
		fmt.Printf("%s: x=%g y=%g\n", r.Key, r.Value(motion.X), r.Value(motion.Y))
	}
	fmt.Println(chart.State(), chart.Time())
	// Output:
	// A: x=150 y=150
	// B: x=50 y=50
	// interactive 5
}
