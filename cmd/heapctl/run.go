package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/memlab/heapkit/heap/trace"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>",
		Short: "Replay a trace and print allocator statistics",
		Long: `The run command replays an alloc/free trace against the allocator,
filling every payload with a per-id pattern that is re-checked on free,
and prints a summary report.

Example:
  heapctl run workload.trace
  heapctl run --bump --chunk 65536 workload.trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args[0], false)
		},
	}
}

func runTrace(path string, verifyEveryOp bool) error {
	t, err := trace.ParseFile(path)
	if err != nil {
		return err
	}
	printVerbose("parsed %d operations from %s\n", len(t.Ops), path)

	a, cleanup, err := newAllocator()
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := trace.Run(a, t, &trace.RunOptions{Verify: verifyEveryOp})
	if err != nil {
		return err
	}
	report.Format(os.Stdout)
	return nil
}
