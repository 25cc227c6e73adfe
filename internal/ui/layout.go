package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gpex/internal/program"
)

// LayoutOptions control RenderLayout.
type LayoutOptions struct {
	Color  bool
	Values map[string]int32 // optional, from the host evaluator
}

// RenderLayout prints the buffer fields ordered by offset:
//
//	OFFSET  SIZE  FIELD
//	     0     4  root:_root_value
func RenderLayout(prog *program.Program, opts LayoutOptions) string {
	keys := prog.Keys()
	keyWidth := runewidth.StringWidth("FIELD")
	for _, k := range keys {
		keyWidth = max(keyWidth, runewidth.StringWidth(k))
	}

	header, dim := plain, plain
	if opts.Color {
		header = lipgloss.NewStyle().Bold(true).Render
		dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render
	}

	var b strings.Builder
	head := fmt.Sprintf("%6s  %4s  %s", "OFFSET", "SIZE", runewidth.FillRight("FIELD", keyWidth))
	if opts.Values != nil {
		head += "  VALUE"
	}
	b.WriteString(header(strings.TrimRight(head, " ")))
	b.WriteByte('\n')
	for _, k := range keys {
		f, _ := prog.Field(k)
		line := fmt.Sprintf("%6d  %4d  %s", f.Offset, f.Size, runewidth.FillRight(k, keyWidth))
		if opts.Values != nil {
			if v, ok := opts.Values[k]; ok {
				line += fmt.Sprintf("  %d", v)
			} else {
				line += "  " + dim("-")
			}
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	b.WriteString(dim(fmt.Sprintf("%d field(s), %d byte(s)", len(keys), prog.Buffer.Size)))
	b.WriteByte('\n')
	return b.String()
}

func plain(strs ...string) string { return strings.Join(strs, " ") }
