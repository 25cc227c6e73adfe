package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gpex/internal/source"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDotPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"root.gpex", "root"},
		{"inner/inner2/inner.gpex", "inner.inner2.inner"},
		{filepath.Join("a", "b.gpex"), "a.b"},
	}
	for _, tc := range cases {
		if got := DotPath(tc.in); got != tc.want {
			t.Errorf("DotPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "root.gpex"), []byte("var x = 1;"))
	writeFile(t, filepath.Join(root, "inner", "inner2", "inner.gpex"), append([]byte{0xEF, 0xBB, 0xBF}, "const Y = 2;"...))
	writeFile(t, filepath.Join(root, "notes.txt"), []byte("ignored"))

	files, err := ReadSources(context.Background(), root)
	if err != nil {
		t.Fatalf("ReadSources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].DotPath != "inner.inner2.inner" || files[1].DotPath != "root" {
		t.Fatalf("unexpected order: %q, %q", files[0].DotPath, files[1].DotPath)
	}
	if !files[0].HadBOM || string(files[0].Content) != "const Y = 2;" {
		t.Fatalf("BOM not stripped: %q", files[0].Content)
	}
	if files[1].HadBOM {
		t.Fatalf("root.gpex has no BOM")
	}
}

func TestReadSourcesMissingRoot(t *testing.T) {
	_, err := ReadSources(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}
	var rerr *ReadError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ReadError, got %T", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), []byte("[project]\nname = \"demo\"\n"))
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "main.gpex"), []byte(""))
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, []byte(`[project]
name = "demo"
root = "src"

[build]
warnings_as_errors = true
max_diagnostics = 20
output = "out/demo.gpexc"
`))
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != "demo" || !m.Build.WarningsAsErrors || m.Build.MaxDiagnostics != 20 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	src, err := m.SourceRoot()
	if err != nil {
		t.Fatalf("SourceRoot: %v", err)
	}
	if src != filepath.Join(dir, "src") {
		t.Fatalf("source root = %q", src)
	}
}

func TestLoadManifestRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key": "[project]\nnmae = \"x\"\n",
		"negative":    "[build]\nmax_diagnostics = -1\n",
		"syntax":      "[project\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, []byte(content))
			if _, err := LoadManifest(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSourceRootEscapes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, []byte("[project]\nroot = \"../elsewhere\"\n"))
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.SourceRoot(); err == nil {
		t.Fatal("expected escape error")
	}
}

func TestFingerprint(t *testing.T) {
	build := func(dot, content string) Digest {
		fs := source.NewFileSet()
		fs.AddVirtual("main.gpex", dot, []byte(content))
		return Fingerprint(fs)
	}
	a := build("main", "var x = 1;")
	if a != build("main", "var x = 1;") {
		t.Fatal("fingerprint not deterministic")
	}
	if a == build("main", "var x = 2;") {
		t.Fatal("content change not detected")
	}
	if a == build("other", "var x = 1;") {
		t.Fatal("dot path change not detected")
	}
	if len(a.Short()) != 12 {
		t.Fatalf("short = %q", a.Short())
	}
}
