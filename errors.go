package pyext

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid build setup: a missing scan root or
// colliding module names. It is fatal and never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// CompilationError reports a toolchain failure for one module. It carries
// the offending module name and the raw toolchain diagnostics so the
// wrapping CLI can surface them verbatim.
//
// The message format keeps the full output attached:
//
//	compiling munkres.munkres failed: exit status 1
//
//	Toolchain output:
//	munkres/cpp/Munkres.cpp:14: error: ...
type CompilationError struct {
	Module string   // Module whose compilation failed
	Output []string // Raw toolchain output lines, stdout and stderr combined
	Err    error    // Underlying subprocess or verification error
}

func (e *CompilationError) Error() string {
	var prefix string
	if e.Err != nil {
		prefix = fmt.Sprintf("compiling %s failed: %v", e.Module, e.Err)
	} else {
		prefix = fmt.Sprintf("compiling %s failed", e.Module)
	}

	if out := strings.TrimSpace(strings.Join(e.Output, "\n")); out != "" {
		return prefix + "\n\nToolchain output:\n" + out
	}
	return prefix
}

func (e *CompilationError) Unwrap() error { return e.Err }

// IOError reports a filesystem failure while preparing the build directory
// or staging artifacts. It is fatal and never retried.
type IOError struct {
	Op   string // What was being attempted, e.g. "stage artifact"
	Path string // Path the operation failed on
	Err  error  // Underlying error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
