package source

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the resulting slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Fast path: no \r at all.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// buildLineIndex records the byte offset of every \n in content.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol converts a byte offset into a 1-based line and 0-based column.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// No newlines: the whole file is a single line.
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off}
	}

	// Binary search for the largest lineIdx[i] strictly before off.
	// A \n at offset off itself counts as the last byte of its line.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if hi < 0 {
		return LineCol{Line: 1, Col: off}
	}
	return LineCol{Line: uint32(hi + 2), Col: off - lineIdx[hi] - 1}
}

func normalizePath(p string) string {
	// keep paths uniform in cross-platform output
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves path against the current working directory.
func AbsolutePath(path string) (string, error) {
	return filepath.Abs(path)
}

// RelativePath rewrites path relative to baseDir. Paths outside baseDir fall
// back to the absolute form instead of producing "../" chains.
func RelativePath(path, baseDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the final path element.
func BaseName(path string) string {
	return filepath.Base(path)
}

// Cwd returns the current working directory or "." when it cannot be resolved.
func Cwd() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
