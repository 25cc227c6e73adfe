package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	for i, b := range content {
		if b == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			continue
		}
		out = append(out, b)
	}
	return out, len(out) != len(content)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/16+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // content length is checked in Add
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line and a 1-based character column.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	if int(off) > len(content) {
		off = uint32(len(content)) //nolint:gosec // bounded by the check above
	}

	// бинпоиск: находим количество переводов строки строго до off
	line, _ := slices.BinarySearch(lineIdx, off)

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	col := utf8.RuneCount(content[startOff:off]) + 1
	return LineCol{Line: uint32(line + 1), Col: uint32(col)} //nolint:gosec // bounded by content length
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
