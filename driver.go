package pyext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Driver compiles a full distribution with bounded parallelism.
//
// Workers pull pending specifications off a shared limit (errgroup.SetLimit)
// and publish results into an index-tagged slice, so the returned artifact
// list always matches the input specification order no matter which worker
// finishes first.
//
// On the first compilation failure the Driver stops scheduling new
// toolchain invocations and drains the ones already running; subprocesses
// are never killed mid-flight. The build is all-or-nothing: any failure
// means no artifact list is returned.
type Driver struct {
	BuildDir  string       // Intermediate directory artifacts are written under
	Workers   int          // Concurrent toolchain invocations, 2 × CPUs if <= 0
	Toolchain Toolchain    // Compiler implementation
	Logger    *slog.Logger // Structured logger, slog.Default() if nil
}

// CompileAll compiles every specification in the distribution and returns
// one CompiledArtifact per spec, in input order.
//
// Duplicate module names are rejected with a ConfigurationError before any
// toolchain invocation. A failing module surfaces as a CompilationError
// carrying its name and the raw toolchain output.
func (d *Driver) CompileAll(ctx context.Context, dist Distribution) ([]CompiledArtifact, error) {
	specs := dist.Specs
	if err := validateUniqueModules(specs); err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}

	// The toolchain subprocess runs with the source root as its working
	// directory, so artifact paths must not depend on the subprocess cwd.
	buildDir, err := filepath.Abs(d.BuildDir)
	if err != nil {
		return nil, &IOError{Op: "resolve build directory", Path: d.BuildDir, Err: err}
	}

	logger := d.logger()
	logger.Info("compiling distribution",
		"name", dist.Name,
		"modules", len(specs),
		"toolchain", d.Toolchain.Name(),
		"workers", d.workerCount(len(specs)))

	artifacts := make([]CompiledArtifact, len(specs))
	var failed atomic.Bool

	group := new(errgroup.Group)
	group.SetLimit(d.workerCount(len(specs)))

	for i, spec := range specs {
		group.Go(func() error {
			// Graceful drain: once any module has failed, pending work is
			// skipped instead of spawning more subprocesses. Running
			// invocations are left to finish.
			if failed.Load() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				failed.Store(true)
				return err
			}

			artifactPath := artifactPath(buildDir, spec.Module)
			if err := os.MkdirAll(filepath.Dir(artifactPath), 0o755); err != nil {
				failed.Store(true)
				return &IOError{Op: "prepare build directory for", Path: artifactPath, Err: err}
			}

			logger.Debug("compiling module", "module", spec.Module, "sources", spec.Sources)
			output, err := d.Toolchain.Compile(ctx, spec, artifactPath)
			if err != nil {
				failed.Store(true)
				return &CompilationError{Module: spec.Module, Output: output, Err: err}
			}

			artifacts[i] = CompiledArtifact{
				Module:  spec.Module,
				Sources: append([]string(nil), spec.Sources...),
				Path:    artifactPath,
			}
			logger.Debug("compiled module", "module", spec.Module, "artifact", artifactPath)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// artifactPath mirrors the module namespace under the build directory:
// module a.b.y compiles to <buildDir>/a/b/y.<ext>. The build directory is
// always absolute by the time specs are dispatched.
func artifactPath(buildDir, module string) string {
	return filepath.Join(buildDir, moduleRelPath(module))
}

func (d *Driver) workerCount(pending int) int {
	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if workers > pending {
		workers = pending
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func validateUniqueModules(specs []BuildSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if _, dup := seen[spec.Module]; dup {
			return &ConfigurationError{
				Reason: fmt.Sprintf("duplicate module name %s submitted to the driver", spec.Module),
			}
		}
		seen[spec.Module] = struct{}{}
	}
	return nil
}
