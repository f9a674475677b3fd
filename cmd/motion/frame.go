package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-moremath/vec"
	"github.com/midbel/motion"
	"github.com/spf13/cobra"
)

var (
	frameTime   float64
	frameCount  int
	frameOut    string
	frameFamily []string
	frameZoom   []string
	frameAggr   string
)

var frameCmd = &cobra.Command{
	Use:   "frame <config>",
	Short: "write the chart at given times",
	Long: `Write the chart as it is at one time, or at --count times evenly spread
over the time range of the dataset.

Scales can be changed before drawing with --scale channel=family and
--zoom channel.

Examples:
  motion frame --time 1995 nations.motion > 1995.svg
  motion frame --count 5 --out frames nations.motion
  motion frame --time 2000 --scale x=linear --zoom y nations.motion`,
	Args: cobra.ExactArgs(1),
	RunE: runFrame,
}

func init() {
	frameCmd.Flags().Float64Var(&frameTime, "time", math.NaN(), "time of the frame (default first time of the dataset)")
	frameCmd.Flags().IntVar(&frameCount, "count", 0, "number of frames spread over the time range")
	frameCmd.Flags().StringVar(&frameOut, "out", "", "output file, or directory with --count")
	frameCmd.Flags().StringSliceVar(&frameFamily, "scale", nil, "scale family of a channel (channel=family)")
	frameCmd.Flags().StringSliceVar(&frameZoom, "zoom", nil, "channels whose domain fits the data")
	frameCmd.Flags().StringVar(&frameAggr, "aggregate", "", "aggregate drawn on positional axes")
	rootCmd.AddCommand(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	chart, cfg, err := loadChart(cmd.Context(), args[0], newLogger())
	if err != nil {
		return err
	}
	if err := adjust(chart); err != nil {
		return err
	}
	style, err := newStyle()
	if err != nil {
		return err
	}
	out := frameOut
	if out == "" {
		out = cfg.Output
	}
	if frameCount <= 0 {
		t := frameTime
		if math.IsNaN(t) {
			t, _ = chart.Dataset().TimeRange()
		}
		chart.Display(t)
		if out == "" {
			return style.Render(os.Stdout, chart.Frame())
		}
		return writeFrame(style, out, chart.Frame())
	}
	if out == "" {
		out = "."
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	from, to := chart.Dataset().TimeRange()
	var frames []motion.Frame
	for _, t := range vec.Linspace(from, to, frameCount) {
		chart.Display(t)
		frames = append(frames, chart.Frame())
	}
	for i, f := range frames {
		file := filepath.Join(out, fmt.Sprintf("%s-%s.svg", playPrefix, f.Label))
		if f.Label == "" {
			file = filepath.Join(out, fmt.Sprintf("%s-%04d.svg", playPrefix, i))
		}
		if err := writeFrame(style, file, f); err != nil {
			return err
		}
	}
	return nil
}

func adjust(chart *motion.Scatter) error {
	for _, str := range frameFamily {
		ch, fam, ok := strings.Cut(str, "=")
		if !ok {
			return fmt.Errorf("%s: expected channel=family", str)
		}
		c, err := motion.ParseChannel(ch)
		if err != nil {
			return err
		}
		if err := chart.SetFamily(c, fam); err != nil {
			return err
		}
	}
	for _, str := range frameZoom {
		c, err := motion.ParseChannel(str)
		if err != nil {
			return err
		}
		if err := chart.ToggleZoom(c); err != nil {
			return err
		}
	}
	if frameAggr != "" {
		return chart.SetAggregate(frameAggr)
	}
	return nil
}
