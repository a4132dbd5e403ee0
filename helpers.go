package pyext

import (
	"path/filepath"
	"runtime"
	"strings"
)

// MatchesExtension checks if a filename has any of the given extensions.
//
// The check is case-insensitive and accepts extensions with or without the
// leading dot, so MatchesExtension("X.PYX", "pyx") is true.
func MatchesExtension(filename string, extensions ...string) bool {
	have := filepath.Ext(filename)
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.EqualFold(have, ext) {
			return true
		}
	}
	return false
}

// platformExtension returns the loadable-module suffix the host CPython
// expects for compiled extensions.
func platformExtension() string {
	if runtime.GOOS == "windows" {
		return ".pyd"
	}
	return ".so"
}

// moduleRelPath maps a dotted module name to its source-tree-relative
// artifact path, e.g. "a.b.y" → "a/b/y.so".
func moduleRelPath(module string) string {
	return filepath.FromSlash(strings.ReplaceAll(module, ".", "/")) + platformExtension()
}

// splitLines converts raw subprocess output into trimmed lines for
// diagnostics. A trailing newline does not produce an empty final line.
func splitLines(output []byte) []string {
	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// uniqueStrings drops empty entries and duplicates while preserving order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var result []string

	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}
