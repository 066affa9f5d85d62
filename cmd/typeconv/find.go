package main

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wippyai/typeconv/convert"
	"github.com/wippyai/typeconv/errors"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <input-type> <output-type>",
		Short: "Show the converters selected for a type pair, best first",
		Long: `Show every registered converter able to convert the input type to the
output type, in the order the engine ranks them. Only the first row is ever
invoked by a conversion.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.types.resolve(args[0])
			if err != nil {
				return err
			}
			out, err := a.types.resolve(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			found := s.engine.Find(in, out)
			if len(found) == 0 {
				return errors.NoConverterFound(in, out)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), candidatesTable(found, in, out))
			return err
		},
	}
}

func candidatesTable(found []convert.Descriptor, in, out reflect.Type) string {
	t := newTable("#", "Converter", "Priority", "Specificity", "Input", "Output")
	for i, d := range found {
		t.Row(
			strconv.Itoa(i+1),
			d.Name,
			priorityString(d.Priority),
			strconv.Itoa(convert.Specificity(d, in, out)),
			d.Input.String(),
			d.Output.String(),
		)
	}
	return t.Render()
}
