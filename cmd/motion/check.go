package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/midbel/motion"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <config>",
	Short: "check a configuration against its dataset",
	Long: `Load the configuration and its dataset, then print the fields found in
the dataset and how each channel is bound.

Entities missing a field bound to a channel are reported. The command fails
when a binding can not be honored.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	chart, cfg, err := loadChart(cmd.Context(), args[0], newLogger())
	if err != nil {
		return err
	}
	var (
		data     = chart.Dataset()
		from, to = data.TimeRange()
		tw       = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	)
	fmt.Fprintf(os.Stdout, "%s: %d %s from %s to %s\n", cfg.Source, data.Len(), motion.Plural("entity", float64(data.Len())), motion.TimeLabel(from), motion.TimeLabel(to))

	fmt.Fprintln(tw, "field\tkind\tlabel\t")
	for _, f := range data.Fields() {
		k, _ := data.Kind(f)
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", f, k, data.Label(f))
	}
	fmt.Fprintln(tw)

	reg := motion.NewRegistry(data)
	fmt.Fprintln(tw, "channel\tfield\tscale\tdomain\tmissing\t")
	for _, ch := range motion.Channels() {
		b := chart.Binding(ch)
		if !b.Bound() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t\n", ch)
			continue
		}
		var missing []string
		if err := reg.Bind(ch, b.Accessor.Field); err != nil {
			var mf *motion.MissingFieldError
			if !errors.As(err, &mf) {
				return err
			}
			missing = mf.Keys
		}
		family := string(b.Family)
		if ch == motion.Key {
			family = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", ch, b.Accessor.Field, family, b.Domain(), strings.Join(missing, ","))
	}
	return tw.Flush()
}
