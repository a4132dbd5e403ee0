package pyext

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanSources walks the source root and returns one SourceUnit per file
// matching the native source extension, sorted by path for reproducible
// ordering. Re-scanning an unchanged tree yields an equivalent set.
//
// A missing or non-directory root is a ConfigurationError, as is a pair of
// paths whose derived module names collide (e.g. a.b.pyx and a/b.pyx).
func ScanSources(root, sourceExt string) ([]SourceUnit, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("scan root %s is not a directory", root),
		}
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !MatchesExtension(d.Name(), sourceExt) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, &IOError{Op: "scan sources under", Path: root, Err: err}
	}

	sort.Strings(paths)

	units := make([]SourceUnit, 0, len(paths))
	byModule := make(map[string]string, len(paths))
	for _, rel := range paths {
		module := ModuleName(rel)
		if prev, dup := byModule[module]; dup {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("module name %s derived from both %s and %s", module, prev, rel),
			}
		}
		byModule[module] = rel
		units = append(units, SourceUnit{Path: rel, Module: module})
	}

	return units, nil
}

// ModuleName derives the dotted module name for a root-relative source
// path: the extension is stripped and path separators become dots, so
// "a/b/y.pyx" names the module "a.b.y". The result is usable directly as a
// toolchain target identifier.
func ModuleName(relPath string) string {
	slashed := filepath.ToSlash(relPath)
	slashed = strings.TrimSuffix(slashed, filepath.Ext(slashed))
	return strings.ReplaceAll(slashed, "/", ".")
}
