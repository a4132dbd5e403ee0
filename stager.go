package pyext

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// StageArtifacts copies every compiled artifact from the intermediate build
// directory back into the source tree at its namespace path, so a freshly
// compiled module is importable from its original location without an
// install step. Pre-existing artifacts are overwritten; re-running with the
// same inputs reproduces the same placement.
//
// The returned paths are relative to the source root, in artifact order.
// Any copy failure is an IOError and aborts staging.
func StageArtifacts(sourceDir string, artifacts []CompiledArtifact, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	staged := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		rel := moduleRelPath(artifact.Module)
		dest := filepath.Join(sourceDir, rel)

		if err := copyFile(artifact.Path, dest); err != nil {
			return nil, &IOError{Op: "stage artifact", Path: dest, Err: err}
		}

		logger.Debug("staged artifact", "module", artifact.Module, "path", dest)
		staged = append(staged, filepath.ToSlash(rel))
	}

	return staged, nil
}

// copyFile copies src to dest, creating parent directories and truncating
// any existing file. The source file mode is preserved.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
