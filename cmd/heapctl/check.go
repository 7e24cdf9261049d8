package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace>",
		Short: "Replay a trace with heap invariants checked after every op",
		Long: `The check command replays a trace like run, but additionally validates
every heap invariant (boundary tags, sentinels, free-list integrity) after
each operation. It exits non-zero at the first violation.

Example:
  heapctl check workload.trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args[0], true)
		},
	}
}
