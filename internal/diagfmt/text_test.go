package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gpex/internal/diag"
	"gpex/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("proj/main.gpex", "main", []byte("var a = b;\nvar b = a;\n"))
	bag := diag.NewBag(0)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.SemaCircularDependency, source.Span{File: id, Start: 4, End: 5}, "`a` item has circular dependencies").
		WithNote(source.Span{File: id, Start: 8, End: 9}, "depends on this item").
		WithNote(source.Span{File: id, Start: 19, End: 20}, "depends on itself").
		Emit()
	diag.ReportError(r, diag.ProjModuleNotFound, source.Span{}, "`x.y` module not found").
		WithNote(source.Span{}, `cannot read "proj/x/y.gpex"`).
		Emit()
	return bag, fs
}

func TestTextDisplayForm(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Text(&buf, bag, fs, TextOpts{}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "error: `a` item has circular dependencies (at proj/main.gpex:1:5)\n" +
		"  --> info: depends on this item (at proj/main.gpex:1:9)\n" +
		"  --> info: depends on itself (at proj/main.gpex:2:9)\n" +
		"error: `x.y` module not found\n" +
		"  --> info: cannot read \"proj/x/y.gpex\"\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContext(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "   1 | var a = b;\n") {
		t.Fatalf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "           ^\n") {
		t.Fatalf("missing caret:\n%s", out)
	}
	if strings.Contains(out, "-->") {
		t.Fatalf("notes must be hidden without ShowNotes:\n%s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Errors != 2 {
		t.Fatalf("count=%d errors=%d", out.Count, out.Errors)
	}
	first := out.Diagnostics[0]
	if first.Code != "SEM3003" || first.Location == nil || first.Location.StartCol != 5 {
		t.Fatalf("unexpected first diagnostic %+v", first)
	}
	if out.Diagnostics[1].Location != nil {
		t.Fatalf("location-less diagnostic got a location")
	}
	if len(first.Notes) != 2 || first.Notes[1].Location.StartLine != 2 {
		t.Fatalf("unexpected notes %+v", first.Notes)
	}
}
