package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Toolchain defines the interface the Driver compiles through.
//
// The production implementation shells out to an external compiler
// front-end; tests substitute in-process fakes. Implementations must be
// stateless and safe for concurrent use: the Driver calls Compile from
// multiple workers at once, each with a distinct artifact path.
type Toolchain interface {
	// Name returns the human-readable toolchain name used in logs.
	Name() string

	// Compile builds one specification and writes the loadable module to
	// artifactPath. It returns the toolchain's combined output lines,
	// which are attached to the CompilationError on failure.
	//
	// Source paths inside the spec are relative to the source root; the
	// artifact path is already unique per module, so no coordination
	// between concurrent calls is required.
	Compile(ctx context.Context, spec BuildSpec, artifactPath string) ([]string, error)
}

// DefaultToolchainCommand is the compiler front-end invoked when no other
// command is configured.
const DefaultToolchainCommand = "pyxcc"

// ExecToolchain compiles by invoking an external front-end once per
// specification, using the argument contract documented in the package
// comment. The front-end is always passed --force, so every invocation
// recompiles from scratch; there is no dependency-based skip logic.
type ExecToolchain struct {
	Command string            // Front-end binary, DefaultToolchainCommand if empty
	WorkDir string            // Directory source paths are relative to
	Env     map[string]string // Extra environment for the subprocess
}

// Name returns the front-end binary name.
func (t *ExecToolchain) Name() string {
	return filepath.Base(t.command())
}

func (t *ExecToolchain) command() string {
	if t.Command != "" {
		return t.Command
	}
	return DefaultToolchainCommand
}

// Compile invokes the front-end and verifies the artifact was produced.
func (t *ExecToolchain) Compile(ctx context.Context, spec BuildSpec, artifactPath string) ([]string, error) {
	args := []string{
		"--module", spec.Module,
		"--output", artifactPath,
		"--language", spec.Dialect,
		"--force",
	}
	for _, dir := range spec.IncludeDirs {
		args = append(args, "-I", dir)
	}
	for _, lib := range spec.Libraries {
		args = append(args, "-l", lib)
	}
	for _, def := range spec.Defines {
		args = append(args, "-D", def.String())
	}
	args = append(args, spec.ExtraFlags...)
	args = append(args, spec.Sources...)

	cmd := exec.CommandContext(ctx, t.command(), args...)
	cmd.Dir = t.WorkDir

	cmd.Env = os.Environ()
	for key, value := range t.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	output, err := cmd.CombinedOutput()
	lines := splitLines(output)
	if err != nil {
		return lines, err
	}

	// A zero exit without the artifact is still a failed compilation.
	if _, statErr := os.Stat(artifactPath); statErr != nil {
		return lines, fmt.Errorf("toolchain exited cleanly but %s was not produced", artifactPath)
	}

	return lines, nil
}
