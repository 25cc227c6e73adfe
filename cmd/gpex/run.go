package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gpex/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <artifact|dir>",
	Short: "Evaluate the init shader on the host and print buffer values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := cmd.Flags().GetStringArray("var")
		if err != nil {
			return fmt.Errorf("failed to get var flag: %w", err)
		}
		prog, err := loadProgram(cmd, args[0])
		if err != nil {
			return err
		}
		machine, err := vm.New(prog)
		if err != nil {
			return err
		}
		if err := machine.Run(cmd.Context()); err != nil {
			return err
		}
		if len(keys) == 0 {
			keys = prog.Keys()
		}
		for _, key := range keys {
			v, err := machine.ReadField(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", key, v)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringArray("var", nil, "field key to print (<dot path>:<name>); repeatable")
}
