package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	// IDs are 1-based; NoFileID marks a location-less span.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID is the sentinel for "no file".
const NoFileID FileID = 0

const (
	// FileVirtual indicates the file was added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string // путь на диске (или виртуальное имя)
	DotPath string // логический путь модуля: inner.inner2.inner
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in characters
}
