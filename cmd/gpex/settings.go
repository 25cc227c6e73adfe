package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"gpex/internal/driver"
	"gpex/internal/project"
)

// settings merge gpex.toml with command-line flags; flags win when set.
type settings struct {
	root     string
	manifest *project.Manifest
	opts     driver.Options
	output   string
	quiet    bool
	timings  bool
}

func loadSettings(cmd *cobra.Command, dir string) (settings, error) {
	var st settings
	manifest, root, err := project.Resolve(dir)
	if err != nil {
		return st, err
	}
	st.manifest = manifest
	st.root = root

	flags := cmd.Root().PersistentFlags()
	if st.quiet, err = flags.GetBool("quiet"); err != nil {
		return st, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.timings, err = flags.GetBool("timings"); err != nil {
		return st, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return st, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && manifest.Build.MaxDiagnostics > 0 {
		maxDiagnostics = manifest.Build.MaxDiagnostics
	}
	st.opts = driver.Options{
		MaxDiagnostics:   maxDiagnostics,
		WarningsAsErrors: manifest.Build.WarningsAsErrors,
		VerifyShader:     manifest.Build.VerifyShader,
	}

	local := cmd.Flags()
	if local.Lookup("warnings-as-errors") != nil && local.Changed("warnings-as-errors") {
		if st.opts.WarningsAsErrors, err = local.GetBool("warnings-as-errors"); err != nil {
			return st, err
		}
	}
	if local.Lookup("verify-shader") != nil && local.Changed("verify-shader") {
		if st.opts.VerifyShader, err = local.GetBool("verify-shader"); err != nil {
			return st, err
		}
	}

	switch {
	case local.Lookup("output") != nil && local.Changed("output"):
		if st.output, err = local.GetString("output"); err != nil {
			return st, err
		}
	case manifest.Build.Output != "":
		st.output = filepath.Join(manifest.Dir(), filepath.FromSlash(manifest.Build.Output))
	default:
		st.output = driver.DefaultOutput(root)
	}
	return st, nil
}
