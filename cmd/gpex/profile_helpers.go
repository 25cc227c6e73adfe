package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gpex/internal/prof"
)

// setupProfiling starts the profiles requested by --cpuprofile,
// --memprofile and --runtime-trace. The returned stop func is never nil.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var paths prof.Paths
	var err error
	if paths.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return func() {}, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if paths.Mem, err = flags.GetString("memprofile"); err != nil {
		return func() {}, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if paths.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return func() {}, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !paths.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(paths)
	if err != nil {
		return func() {}, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}, nil
}
