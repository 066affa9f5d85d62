package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wippyai/typeconv/kind"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the primitive kinds and their type names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), kindsTable())
			return err
		},
	}
}

func kindsTable() string {
	t := newTable("Kind", "Array", "Go", "Container", "Size", "WIT")
	for _, k := range kind.All() {
		t.Row(
			k.String(),
			k.ArrayName(),
			k.SliceType().String(),
			k.ContainerName(),
			fmt.Sprint(k.Size()),
			witTypeStr(k.WIT()),
		)
	}
	return t.Render()
}
