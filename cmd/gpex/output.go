package main

import (
	"fmt"
	"io"
	"strings"

	"gpex/internal/diag"
	"gpex/internal/diagfmt"
	"gpex/internal/source"
)

func readDiagFormat(value string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(value)); f {
	case "text", "pretty", "json":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text|pretty|json)", value)
	}
}

// printDiagnostics writes bag in the chosen format. JSON goes to stdout so
// it can be piped; the human forms go to stderr.
func printDiagnostics(stdout, stderr io.Writer, format string, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil {
		return nil
	}
	switch format {
	case "json":
		return diagfmt.JSON(stdout, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "pretty":
		return diagfmt.Pretty(stderr, bag, fs, diagfmt.PrettyOpts{Color: useColor(), ShowNotes: true, Context: true})
	default:
		if err := diagfmt.Text(stderr, bag, fs, diagfmt.TextOpts{Color: useColor()}); err != nil {
			return err
		}
		if n := bag.Dropped(); n > 0 {
			_, err := fmt.Fprintf(stderr, "... %d more diagnostics not shown\n", n)
			return err
		}
		return nil
	}
}

func summary(bag *diag.Bag) string {
	errs, warns := bag.Count(diag.SevError), bag.Count(diag.SevWarning)
	return fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
}
