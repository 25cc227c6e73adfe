package program

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the artifact format changes
const SchemaVersion uint16 = 1

var (
	// ErrInvalidProgram is returned for artifacts that cannot be decoded.
	ErrInvalidProgram = errors.New("invalid compiled program")
	// ErrSchemaMismatch is returned for artifacts of another schema version.
	ErrSchemaMismatch = errors.New("unsupported program schema")
)

type envelope struct {
	Schema  uint16   `msgpack:"schema" json:"schema"`
	Program *Program `msgpack:"program" json:"program"`
}

// Format selects the artifact encoding.
type Format uint8

const (
	FormatMsgpack Format = iota
	FormatJSON
)

// FormatFor picks JSON for `.json` paths and msgpack otherwise.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMsgpack
}

// Encode writes prog to w.
func Encode(w io.Writer, prog *Program, format Format) error {
	env := envelope{Schema: SchemaVersion, Program: prog}
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}
	return msgpack.NewEncoder(w).Encode(&env)
}

// Decode reads a program from r.
func Decode(r io.Reader, format Format) (*Program, error) {
	var env envelope
	var err error
	if format == FormatJSON {
		err = json.NewDecoder(r).Decode(&env)
	} else {
		err = msgpack.NewDecoder(r).Decode(&env)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: version %d", ErrSchemaMismatch, env.Schema)
	}
	if env.Program == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidProgram)
	}
	if env.Program.Buffer.Fields == nil {
		env.Program.Buffer.Fields = map[string]Field{}
	}
	if err := env.Program.Check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	return env.Program, nil
}

// Save writes prog next to path and atomically renames it into place.
func Save(path string, prog *Program) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = Encode(f, prog, FormatFor(path)); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// Load reads an artifact written by Save.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, FormatFor(path))
}
