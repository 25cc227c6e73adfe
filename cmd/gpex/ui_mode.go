package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// resolveMode maps auto to the tty check.
func resolveMode(mode uiMode, tty bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return tty
	}
}

// applyColorFlag sets the global fatih/color switch from --color.
func applyColorFlag(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readUIMode(value)
	if err != nil {
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	color.NoColor = !resolveMode(mode, isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == "")
	return nil
}

func useColor() bool {
	return !color.NoColor
}
