// Package pyext provides native extension compilation support for Python
// source trees.
//
// This package is the Go equivalent of the build_ext driver used by
// Cython-based projects: it discovers .pyx modules under a source root,
// assembles one build specification per module, compiles every specification
// through an external toolchain with bounded parallelism, and copies the
// resulting binaries back into the source tree so the modules are importable
// in place.
//
// # Pipeline
//
// A build is a strict five-stage transform with no feedback loops:
//
//	ScanSources → BuildSpecs → (+ vendored specs) → Driver.CompileAll → StageArtifacts
//
// Each stage consumes the previous stage's output list and owns it until the
// hand-off; no stage keeps a reference after it completes.
//
// # Basic Usage
//
// Run a full build through the single entry point:
//
//	opts := &pyext.Options{
//	    Name:      "graphmatch",
//	    SourceDir: "graphmatch",
//	    BuildDir:  "build",
//	}
//
//	opts, err := pyext.Build(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, artifact := range opts.Artifacts {
//	    fmt.Println(artifact.Module, artifact.Path)
//	}
//
// The same Options value is returned augmented with the produced
// specifications, artifacts and staged paths.
//
// # Toolchain Contract
//
// The compiler toolchain is an opaque executable invoked once per
// specification. The default front-end honors this argument contract:
//
//	pyxcc --module a.b.y --output <path> --language c++ --force
//	      [-I dir]... [-l lib]... [-D NAME=VALUE]... [flags...] sources...
//
// Any front-end accepting the same contract can be substituted through
// Options.Command, and tests may replace the subprocess entirely by
// implementing the Toolchain interface.
//
// # Failure Semantics
//
// All errors are fatal at this layer. A single failing module aborts the
// whole build: no new compilations are scheduled, in-flight compiler
// subprocesses are drained rather than killed, and the first failure is
// surfaced as a CompilationError carrying the module name and the raw
// toolchain output. No partial artifact list is ever returned.
//
// # Platform Support
//
// Compiled modules use the .so suffix on Linux and macOS and .pyd on
// Windows, matching what the host CPython loader expects.
package pyext
