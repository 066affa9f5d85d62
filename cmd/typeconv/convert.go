package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wippyai/typeconv/internal/telemetry"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		to    string
		from  string
		stats bool
	)

	cmd := &cobra.Command{
		Use:   "convert --to <type> <yaml-value>",
		Short: "Convert a YAML value to the given type",
		Long: `Parse the value as YAML and convert it with the top-ranked converter.
YAML sequences arrive as []any. Use --from to convert to an intermediate type
first, for example:

  typeconv convert --from 'int[]' --to IntArray '[1, 2, 3]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.types.resolve(to)
			if err != nil {
				return err
			}

			var value any
			if err := yaml.Unmarshal([]byte(args[0]), &value); err != nil {
				return fmt.Errorf("failed to parse YAML value: %w", err)
			}

			ctx := cmd.Context()
			s, err := a.open(ctx, stats)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			if from != "" {
				staging, err := a.types.resolve(from)
				if err != nil {
					return err
				}
				if value, err = s.engine.Convert(value, staging); err != nil {
					return err
				}
				a.logger.Debug("staged value", zap.Stringer("type", staging))
			}

			result, err := s.engine.Convert(value, target)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, "%v\n", result); err != nil {
				return err
			}
			if !stats {
				return nil
			}

			counts, err := telemetry.CollectConversions(ctx, s.reader)
			if err != nil {
				return fmt.Errorf("failed to collect metrics: %w", err)
			}
			return writeStats(w, counts)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target type name (required)")
	cmd.Flags().StringVar(&from, "from", "", "Intermediate type to convert to first")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print conversion counts after converting")
	cobra.CheckErr(cmd.MarkFlagRequired("to"))

	return cmd
}

func writeStats(w io.Writer, counts []telemetry.ConversionCount) error {
	t := newTable("Converter", "Outcome", "Count")
	for _, c := range counts {
		t.Row(c.Converter, string(c.Outcome), strconv.FormatInt(c.Count, 10))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
