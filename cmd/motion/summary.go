package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/midbel/motion"
	"github.com/spf13/cobra"
)

var (
	summaryTime    float64
	summaryWhisker float64
	summaryFields  []string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <config>",
	Short: "print the distribution of the positional channels at a time",
	Long: `Print the five number summary of the values of the x and y channels at
one time, with the whiskers of the boxplot and the aggregate of the chart.

With --field, a field is bound to y in turn and summarized.

Examples:
  motion summary --time 1995 nations.motion
  motion summary --time 2000 --whisker 3 --field population nations.motion`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().Float64Var(&summaryTime, "time", math.NaN(), "time to summarize (default last time of the dataset)")
	summaryCmd.Flags().Float64Var(&summaryWhisker, "whisker", 0, "length of whiskers in interquartile ranges")
	summaryCmd.Flags().StringSliceVar(&summaryFields, "field", nil, "fields bound to y and summarized")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	chart, _, err := loadChart(cmd.Context(), args[0], newLogger())
	if err != nil {
		return err
	}
	if summaryWhisker > 0 {
		if err := chart.SetWhisker(summaryWhisker); err != nil {
			return err
		}
	}
	t := summaryTime
	if math.IsNaN(t) {
		_, t = chart.Dataset().TimeRange()
	}
	chart.Display(t)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	fmt.Fprintf(tw, "channel\tfield\tcount\tmin\tlower\tq1\tmedian\tq3\tupper\tmax\t%s\t\n", chart.Aggregate())
	printSummary(tw, chart, motion.X)
	printSummary(tw, chart, motion.Y)
	for _, f := range summaryFields {
		if err := chart.Rebind(motion.Y, f); err != nil {
			return err
		}
		printSummary(tw, chart, motion.Y)
	}
	return nil
}

func printSummary(w *tabwriter.Writer, chart *motion.Scatter, ch motion.Channel) {
	var (
		b  = chart.Binding(ch)
		s  = chart.Summary(ch)
		fs = chart.Frame().Channel(ch)
	)
	if !s.Defined() {
		fmt.Fprintf(w, "%s\t%s\t0\t-\t-\t-\t-\t-\t-\t-\t-\t\n", ch, b.Accessor.Field)
		return
	}
	values := []float64{
		s.Min,
		s.LowerWhisker,
		s.Q1,
		s.Median,
		s.Q3,
		s.UpperWhisker,
		s.Max,
		fs.Aggregate,
	}
	fmt.Fprintf(w, "%s\t%s\t%d\t", ch, b.Accessor.Field, s.Count)
	for _, v := range values {
		fmt.Fprintf(w, "%s\t", motion.FormatTick(v))
	}
	fmt.Fprintln(w)
}
