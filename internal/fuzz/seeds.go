package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 64 << 10 // 64 KiB
	seedRoot     = "testdata"
)

var languageSeeds = []string{
	"",
	"var x = 1;",
	"pub var _root_value = 2;",
	"const LIMIT = -2_147_483_648;\nvar v = LIMIT;",
	"import a.b;\npub import ~.c;\nvar z = shared;",
	"import ~.~.up;",
	"var a = b;\nvar b = c;\nvar c = a;",
	"// comment only\n",
	"var x = 99999999999;",
	"pub const X = 1;",
	"var const = 1;",
	"import a.b 5;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	// testdata/*.gpex, если есть
	_ = filepath.WalkDir(seedRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".gpex" {
			return nil
		}
		// #nosec G304 -- path comes from the package testdata walk
		src, err := os.ReadFile(path)
		if err == nil {
			f.Add(clamp(src))
		}
		return nil
	})
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return bytes.Clone(input)
}
