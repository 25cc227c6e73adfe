package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Report diagnostics without writing an artifact",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, format, res, err := compileProject(cmd, args, false)
		if res == nil {
			return err
		}
		if printErr := printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, res.Bag, res.FileSet); printErr != nil {
			return printErr
		}
		if err != nil {
			dumpTrace(cmd)
			return err
		}
		if !st.quiet && format != "json" {
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d module(s), %s\n", res.FileSet.Len(), summary(res.Bag))
		}
		if st.timings {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().String("format", "text", "diagnostics format (text|pretty|json)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("verify-shader", false, "validate the init shader with naga")
}
