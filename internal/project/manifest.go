package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed gpex.toml.
type Manifest struct {
	// Path of the manifest file; empty when the project has none.
	Path    string
	Project ProjectSection
	Build   BuildSection
}

type ProjectSection struct {
	Name string `toml:"name"`
	// Root is the sources directory relative to the manifest.
	Root string `toml:"root"`
}

type BuildSection struct {
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	Output           string `toml:"output"`
	VerifyShader     bool   `toml:"verify_shader"`
}

type manifestFile struct {
	Project ProjectSection `toml:"project"`
	Build   BuildSection   `toml:"build"`
}

// LoadManifest parses a gpex.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Build.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
	}
	return &Manifest{
		Path:    path,
		Project: ProjectSection{Name: strings.TrimSpace(cfg.Project.Name), Root: strings.TrimSpace(cfg.Project.Root)},
		Build:   cfg.Build,
	}, nil
}

// Dir returns the directory of the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// SourceRoot resolves [project].root against the manifest directory and
// makes sure it stays inside it.
func (m *Manifest) SourceRoot() (string, error) {
	root := m.Project.Root
	if root == "" {
		return m.Dir(), nil
	}
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid [project].root %q: must be relative", root)
	}
	rootPath := filepath.Join(m.Dir(), filepath.Clean(filepath.FromSlash(root)))
	if !pathWithin(m.Dir(), rootPath) {
		return "", fmt.Errorf("invalid [project].root %q: escapes project directory", root)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("invalid [project].root %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid [project].root %q: not a directory", root)
	}
	return rootPath, nil
}

// Resolve finds the manifest governing dir. Without one, dir itself is the
// source root and the returned manifest is empty.
func Resolve(dir string) (*Manifest, string, error) {
	path, ok, err := FindManifest(dir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return &Manifest{}, dir, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, "", err
	}
	root, err := m.SourceRoot()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return m, root, nil
}

func pathWithin(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
