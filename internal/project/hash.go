package project

import (
	"crypto/sha256"
	"encoding/hex"

	"gpex/internal/source"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит хеш: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Fingerprint hashes every file of the set together with its dot path.
// Files are combined in FileID order, which is sorted by path.
func Fingerprint(fs *source.FileSet) Digest {
	parts := make([]Digest, 0, fs.Len())
	for _, id := range fs.IDs() {
		f := fs.Get(id)
		parts = append(parts, Combine(sha256.Sum256([]byte(f.DotPath)), f.Hash))
	}
	return Combine(Digest{}, parts...)
}

// String returns the hex form.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters.
func (d Digest) Short() string {
	return d.String()[:12]
}
