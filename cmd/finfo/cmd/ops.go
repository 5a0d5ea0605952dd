package cmd

import (
	"fmt"

	"github.com/gobeaver/finfo"
	"github.com/spf13/cobra"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the available operations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, op := range finfo.Ops() {
				state := "off"
				if op.DefaultEnabled() {
					state = "on"
				}
				fmt.Fprintf(out, "%-9s %-4s %s\n", op, state, op.Summary())
			}
		},
	}
}
