package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/midbel/motion"
	"github.com/midbel/motion/render"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	playFPS    int
	playDir    string
	playJobs   int
	playHover  float64
	playPrefix string
)

var playCmd = &cobra.Command{
	Use:   "play <config>",
	Short: "run the animation and write one svg file per frame",
	Long: `Run the animation of the chart from the first to the last time of its
dataset and write every frame that changes as an svg file.

With --hover, the animation is interrupted after the given share of its
duration, as if the pointer entered the chart.

Examples:
  motion play nations.motion
  motion play --fps 10 --dir frames nations.motion
  motion play --hover 0.5 nations.motion`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playFPS, "fps", 25, "frames per second of animation")
	playCmd.Flags().StringVar(&playDir, "dir", "", "directory where frames are written")
	playCmd.Flags().IntVar(&playJobs, "jobs", 4, "number of frames written concurrently")
	playCmd.Flags().Float64Var(&playHover, "hover", 0, "share of the animation after which it is interrupted")
	playCmd.Flags().StringVar(&playPrefix, "prefix", "frame", "prefix of the frame files")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playFPS <= 0 {
		return fmt.Errorf("fps must be positive")
	}
	logger := newLogger()
	chart, cfg, err := loadChart(cmd.Context(), args[0], logger)
	if err != nil {
		return err
	}
	dir := playDir
	if dir == "" {
		dir = cfg.Output
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	style, err := newStyle()
	if err != nil {
		return err
	}
	frames, err := play(chart, time.Second/time.Duration(playFPS))
	if err != nil {
		return err
	}
	logger.Info("animation done", "frames", len(frames), "state", chart.State())
	return writeFrames(cmd.Context(), style, dir, frames)
}

func play(chart *motion.Scatter, delta time.Duration) ([]motion.Frame, error) {
	if err := chart.Play(); err != nil {
		return nil, err
	}
	frames := []motion.Frame{chart.Frame()}
	for chart.State() == motion.Running {
		if playHover > 0 && chart.Progress() >= playHover {
			chart.Hover()
			break
		}
		if chart.Tick(delta) {
			frames = append(frames, chart.Frame())
		}
	}
	return frames, nil
}

func writeFrames(ctx context.Context, style render.Style, dir string, frames []motion.Frame) error {
	grp, ctx := errgroup.WithContext(ctx)
	if playJobs > 0 {
		grp.SetLimit(playJobs)
	}
	for i := range frames {
		var (
			f    = frames[i]
			file = filepath.Join(dir, fmt.Sprintf("%s-%04d.svg", playPrefix, i))
		)
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFrame(style, file, f)
		})
	}
	return grp.Wait()
}

func writeFrame(style render.Style, file string, f motion.Frame) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := style.Render(w, f); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
