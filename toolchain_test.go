package pyext

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// stubFrontEnd records its argv to ARGS_FILE and touches the --output path
// unless PYXCC_SKIP_OUTPUT is set.
const stubFrontEnd = `#!/bin/sh
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--output" ]; then out="$a"; fi
  prev="$a"
done
printf '%s\n' "$@" > "$ARGS_FILE"
if [ -z "$PYXCC_SKIP_OUTPUT" ]; then : > "$out"; fi
exit "${PYXCC_EXIT:-0}"
`

func execToolchainFixture(t *testing.T) (*ExecToolchain, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub front-end is a shell script")
	}

	dir := t.TempDir()
	command := installTool(t, dir, "pyxcc-stub", stubFrontEnd)
	argsFile := filepath.Join(dir, "argv.txt")

	return &ExecToolchain{
		Command: command,
		WorkDir: dir,
		Env:     map[string]string{"ARGS_FILE": argsFile},
	}, argsFile
}

func TestExecToolchainArgumentContract(t *testing.T) {
	toolchain, argsFile := execToolchainFixture(t)

	spec := BuildSpec{
		Module:      "a.b.y",
		Sources:     []string{"a/b/y.pyx", "a/b/glue.cpp"},
		IncludeDirs: []string{"/opt/numpy/include", "vendor/cpp"},
		Libraries:   []string{"m"},
		Defines:     []Define{{Name: "NPY_NO_DEPRECATED_API", Value: "NPY_1_7_API_VERSION"}},
		Dialect:     DialectCxx,
		ExtraFlags:  []string{"-O2"},
	}
	artifact := filepath.Join(t.TempDir(), "y.so")

	if _, err := toolchain.Compile(context.Background(), spec, artifact); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	raw, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("stub did not record argv: %v", err)
	}
	argv := strings.Split(strings.TrimSpace(string(raw)), "\n")

	want := []string{
		"--module", "a.b.y",
		"--output", artifact,
		"--language", "c++",
		"--force",
		"-I", "/opt/numpy/include",
		"-I", "vendor/cpp",
		"-l", "m",
		"-D", "NPY_NO_DEPRECATED_API=NPY_1_7_API_VERSION",
		"-O2",
		"a/b/y.pyx", "a/b/glue.cpp",
	}
	if len(argv) != len(want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}

	if _, err := os.Stat(artifact); err != nil {
		t.Errorf("artifact not produced: %v", err)
	}
}

func TestExecToolchainNonZeroExit(t *testing.T) {
	toolchain, _ := execToolchainFixture(t)
	toolchain.Env["PYXCC_EXIT"] = "2"

	artifact := filepath.Join(t.TempDir(), "m.so")
	_, err := toolchain.Compile(context.Background(), BuildSpec{Module: "m", Dialect: DialectCxx}, artifact)
	if err == nil {
		t.Error("expected an error for a non-zero toolchain exit")
	}
}

func TestExecToolchainMissingArtifact(t *testing.T) {
	toolchain, _ := execToolchainFixture(t)
	toolchain.Env["PYXCC_SKIP_OUTPUT"] = "1"

	artifact := filepath.Join(t.TempDir(), "m.so")
	_, err := toolchain.Compile(context.Background(), BuildSpec{Module: "m", Dialect: DialectCxx}, artifact)
	if err == nil || !strings.Contains(err.Error(), "not produced") {
		t.Errorf("expected a missing-artifact error, got %v", err)
	}
}

func TestExecToolchainName(t *testing.T) {
	if got := (&ExecToolchain{}).Name(); got != DefaultToolchainCommand {
		t.Errorf("default Name() = %q, want %q", got, DefaultToolchainCommand)
	}
	if got := (&ExecToolchain{Command: "/usr/bin/other-cc"}).Name(); got != "other-cc" {
		t.Errorf("Name() = %q, want other-cc", got)
	}
}
