package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gpex/internal/driver"
	"gpex/internal/program"
	"gpex/internal/ui"
	"gpex/internal/vm"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] <artifact|dir>",
	Short: "Print the storage buffer layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(cmd, args[0])
		if err != nil {
			return err
		}
		withValues, err := cmd.Flags().GetBool("values")
		if err != nil {
			return fmt.Errorf("failed to get values flag: %w", err)
		}
		opts := ui.LayoutOptions{Color: useColor()}
		if withValues {
			if opts.Values, err = evaluate(cmd.Context(), prog); err != nil {
				return err
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderLayout(prog, opts))
		return nil
	},
}

func init() {
	layoutCmd.Flags().Bool("values", false, "evaluate the init shader and show values")
}

// loadProgram reads an artifact file or compiles a project directory.
func loadProgram(cmd *cobra.Command, path string) (*program.Program, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		prog, bag, err := driver.LoadArtifact(path)
		if err != nil {
			_ = printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), "text", bag, nil)
			return nil, err
		}
		return prog, nil
	}
	st, err := loadSettings(cmd, path)
	if err != nil {
		return nil, err
	}
	res, err := driver.Compile(cmd.Context(), st.root, st.opts)
	if err != nil {
		if res != nil {
			_ = printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), "text", res.Bag, res.FileSet)
		}
		return nil, err
	}
	return res.Program, nil
}

func evaluate(ctx context.Context, prog *program.Program) (map[string]int32, error) {
	machine, err := vm.New(prog)
	if err != nil {
		return nil, err
	}
	if err := machine.Run(ctx); err != nil {
		return nil, err
	}
	return machine.Snapshot()
}
