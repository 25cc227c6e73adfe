package source

import (
	"crypto/sha256"
	"fmt"

	"fortio.org/safecast"
)

// FileSet owns the source files of one compilation.
// Files keep the order in which they were added; the compiler adds them
// sorted by path, so FileID order is the canonical module order.
type FileSet struct {
	files []File
	byDot map[string]FileID // dot path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 8),
		byDot: make(map[string]FileID),
	}
}

// Add stores a file, normalizes CRLF line endings, computes LineIdx and Hash,
// and returns a new FileID.
func (fileSet *FileSet) Add(path, dotPath string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %q is too large: %w", path, err))
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}

	next, err := safecast.Conv[uint32](len(fileSet.files) + 1)
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(next)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizePath(path),
		DotPath: dotPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	if _, exists := fileSet.byDot[dotPath]; !exists {
		fileSet.byDot[dotPath] = id
	}
	return id
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name, dotPath string, content []byte) FileID {
	return fileSet.Add(name, dotPath, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	if id == NoFileID || int(id) > len(fileSet.files) {
		panic(fmt.Sprintf("source: invalid file id %d", id))
	}
	return &fileSet.files[id-1]
}

// Len returns the number of files.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// IDs returns all file ids in insertion order.
func (fileSet *FileSet) IDs() []FileID {
	ids := make([]FileID, len(fileSet.files))
	for i := range fileSet.files {
		ids[i] = fileSet.files[i].ID
	}
	return ids
}

// LookupDotPath finds the first file registered under the given dot path.
func (fileSet *FileSet) LookupDotPath(dotPath string) (FileID, bool) {
	id, ok := fileSet.byDot[dotPath]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.Content, f.LineIdx, span.Start), toLineCol(f.Content, f.LineIdx, span.End)
}

// Text returns the source slice covered by span.
func (fileSet *FileSet) Text(span Span) string {
	if !span.IsValid() {
		return ""
	}
	f := fileSet.Get(span.File)
	end := min(int(span.End), len(f.Content))
	start := min(int(span.Start), end)
	return string(f.Content[start:end])
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content)) //nolint:gosec // checked in Add
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}
