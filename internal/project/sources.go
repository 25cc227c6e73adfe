package project

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extension of GPEx source files.
const Extension = ".gpex"

// maxParallelReads bounds concurrent file reads.
const maxParallelReads = 8

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceFile is one `.gpex` file read from disk.
type SourceFile struct {
	Path    string // root joined with the relative path
	DotPath string // relative path without extension, separators replaced by dots
	Content []byte
	HadBOM  bool
}

// ReadError is an I/O failure while reading a project.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ReadSources collects every `.gpex` file below root, sorted by path.
func ReadSources(ctx context.Context, root string) ([]SourceFile, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &ReadError{Path: path, Err: err}
		}
		if !d.IsDir() && filepath.Ext(path) == Extension {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	files := make([]SourceFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return &ReadError{Path: path, Err: err}
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return &ReadError{Path: path, Err: err}
			}
			content, err := decodeUTF8(raw)
			if err != nil {
				return &ReadError{Path: path, Err: err}
			}
			files[i] = SourceFile{
				Path:    path,
				DotPath: DotPath(rel),
				Content: content,
				HadBOM:  bytes.HasPrefix(raw, utf8BOM),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// DotPath converts a root-relative file path to a module dot path:
// inner/inner2/inner.gpex -> inner.inner2.inner.
func DotPath(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), Extension)
	return strings.ReplaceAll(rel, "/", ".")
}

// decodeUTF8 drops a leading BOM and replaces invalid sequences.
func decodeUTF8(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	return out, err
}
