package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/midbel/motion"
	"github.com/midbel/motion/decode"
	"github.com/midbel/motion/render"
	"github.com/midbel/motion/source"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	dataFile   string
	dataFormat string
	timeField  string
	markShape  string
	fontFamily string
)

var rootCmd = &cobra.Command{
	Use:   "motion",
	Short: "animated scatter charts over time series",
	Long: `motion draws scatter charts whose entities move over time.

A chart is described by a small configuration file:

  load nations.json
  bind x income using log
  bind y lifeExpectancy
  bind radius population
  bind color region
  set duration 30s
  render to frames`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "dataset to load instead of the one of the configuration")
	rootCmd.PersistentFlags().StringVar(&dataFormat, "format", "", "format of the dataset (json, yaml, csv)")
	rootCmd.PersistentFlags().StringVar(&timeField, "time-field", source.DefaultTime, "time column of csv datasets")
	rootCmd.PersistentFlags().StringVar(&markShape, "shape", "circle", "shape of marks (circle, square, diamond)")
	rootCmd.PersistentFlags().StringVar(&fontFamily, "font", "", "font family of texts")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newStyle() (render.Style, error) {
	style := render.DefaultStyle
	shape, err := render.ParseShape(markShape)
	if err != nil {
		return style, err
	}
	style.Shape = shape
	if fontFamily != "" {
		style.Text.Families = []string{fontFamily}
	}
	return style, nil
}

// loadChart reads the configuration in file, loads its dataset and builds the
// chart described.
func loadChart(ctx context.Context, file string, logger *slog.Logger) (*motion.Scatter, *motion.Config, error) {
	cfg, err := decode.DecodeFile(file)
	if err != nil {
		return nil, nil, err
	}
	if dataFile != "" {
		cfg.Source = dataFile
	}
	if cfg.Source == "" {
		return nil, nil, fmt.Errorf("%s: no dataset to load", file)
	}
	opts := source.Options{
		Key:  cfg.Bindings[motion.Key],
		Time: timeField,
	}
	if dataFormat != "" {
		if opts.Format, err = source.ParseFormat(dataFormat); err != nil {
			return nil, nil, err
		}
	}
	data, err := source.Load(ctx, cfg.Source, opts)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("dataset loaded", "source", cfg.Source, "entities", data.Len())

	chart, err := motion.New(data, *cfg, motion.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return chart, cfg, nil
}
