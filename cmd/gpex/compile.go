package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gpex/internal/buildpipeline"
	"gpex/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [dir]",
	Short: "Compile a GPEx project into a buffer layout and init shader",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("format", "text", "diagnostics format (text|pretty|json)")
	compileCmd.Flags().StringP("output", "o", "", "artifact path (.json for JSON, msgpack otherwise)")
	compileCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	compileCmd.Flags().Bool("verify-shader", false, "validate the init shader with naga")
	compileCmd.Flags().String("spirv", "", "also write the init shader as SPIR-V to this file")
	compileCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	st, format, res, err := compileProject(cmd, args, true)
	if res == nil {
		return err
	}
	if err != nil {
		_ = printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, res.Bag, res.FileSet)
		dumpTrace(cmd)
		return err
	}

	spirvPath, err := cmd.Flags().GetString("spirv")
	if err != nil {
		return fmt.Errorf("failed to get spirv flag: %w", err)
	}
	writeErr := driver.WriteArtifact(res, st.output, nil)
	if writeErr == nil && spirvPath != "" {
		writeErr = driver.WriteSPIRV(res, spirvPath)
	}
	if err := printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, res.Bag, res.FileSet); err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}

	if !st.quiet && format != "json" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d field(s), %d byte(s), %s [%s]\n",
			st.output, len(res.Program.Buffer.Fields), res.Program.Buffer.Size, summary(res.Bag), res.Fingerprint.Short())
	}
	if st.timings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	return nil
}

// compileProject is shared by compile and check. A nil result means the
// command failed before the driver ran.
func compileProject(cmd *cobra.Command, args []string, allowUI bool) (settings, string, *driver.Result, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return settings{}, "", nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readDiagFormat(formatStr)
	if err != nil {
		return settings{}, "", nil, err
	}
	st, err := loadSettings(cmd, dir)
	if err != nil {
		return st, format, nil, err
	}

	useUI := false
	if allowUI {
		uiStr, err := cmd.Flags().GetString("ui")
		if err != nil {
			return st, format, nil, fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := readUIMode(uiStr)
		if err != nil {
			return st, format, nil, err
		}
		useUI = !st.quiet && format != "json" && resolveMode(mode, isTerminal(os.Stderr))
	}

	var res *driver.Result
	if useUI {
		res, err = compileWithUI(cmd.Context(), "compile "+st.root, st.root, st.opts)
	} else {
		if st.timings && !st.quiet {
			st.opts.Progress = &buildpipeline.LineSink{W: cmd.ErrOrStderr()}
		}
		res, err = driver.Compile(cmd.Context(), st.root, st.opts)
	}
	return st, format, res, err
}
