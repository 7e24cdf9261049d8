package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memlab/heapkit/heap"
	"github.com/memlab/heapkit/heap/alloc"
)

var (
	// Global flags
	heapMax   int64
	chunkSize int64
	poison    bool
	useBump   bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Replay and check allocation traces against the heapkit allocator",
	Long: `heapctl drives the heapkit dynamic memory allocator with alloc/free
trace files. Traces are flat text: 'a <id> <size>' allocates, 'f <id>'
frees, '#' starts a comment.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		Int64Var(&heapMax, "heap-max", 1<<30, "Maximum heap size in bytes")
	rootCmd.PersistentFlags().
		Int64Var(&chunkSize, "chunk", 0, "Heap extension chunk in bytes (0 = default)")
	rootCmd.PersistentFlags().
		BoolVar(&poison, "poison", false, "Poison released payloads")
	rootCmd.PersistentFlags().
		BoolVar(&useBump, "bump", false, "Use the append-only bump allocator")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAllocator builds the heap and allocator selected by the global flags.
// The returned cleanup releases the heap.
func newAllocator() (alloc.Allocator, func(), error) {
	h, err := heap.New(heapMax)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { h.Close() }

	opts := &alloc.Options{ChunkSize: chunkSize, Poison: poison}
	var a alloc.Allocator
	if useBump {
		a, err = alloc.NewBump(h, opts)
	} else {
		a, err = alloc.New(h, opts)
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

// printVerbose prints a message when verbose mode is enabled.
func printVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
