package pyext

import (
	"context"
	"fmt"
)

// Default locations and naming, matching the layout the packaging step
// expects.
const (
	DefaultDistName  = "graphmatch"
	DefaultSourceDir = "graphmatch"
	DefaultBuildDir  = "build"
)

// Build runs the full pipeline: scan the source tree, assemble the
// specification list (discovered modules plus the vendored table), compile
// everything in parallel and stage the artifacts back into the source tree.
//
// The passed Options value is normalized in place, augmented with the build
// outputs (Specs, Artifacts, Staged, Manifest) and returned. Every error is
// fatal: the remaining stages are skipped and no partial success is
// reported.
func Build(ctx context.Context, opts *Options) (*Options, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Name == "" {
		opts.Name = DefaultDistName
	}
	if opts.SourceDir == "" {
		opts.SourceDir = DefaultSourceDir
	}
	if opts.BuildDir == "" {
		opts.BuildDir = DefaultBuildDir
	}
	logger := opts.logger()

	cfg := DefaultToolchainConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if cfg.SourceExt == "" {
		cfg.SourceExt = ".pyx"
	}
	if cfg.Dialect == "" {
		cfg.Dialect = DialectCxx
	}

	// Scanning happens before any subprocess: a missing root must fail
	// without the toolchain ever being spawned.
	units, err := ScanSources(opts.SourceDir, cfg.SourceExt)
	if err != nil {
		return opts, err
	}
	logger.Info("scanned source tree", "root", opts.SourceDir, "modules", len(units))

	toolchain := opts.Toolchain
	if toolchain == nil {
		if !opts.SkipToolCheck {
			if err := CheckRequiredTools(DefaultToolRequirements()); err != nil {
				return opts, &ConfigurationError{Reason: err.Error()}
			}
		}
		toolchain = &ExecToolchain{Command: opts.Command, WorkDir: opts.SourceDir}
	}

	// Every specification carries the numeric include path. The default
	// toolchain can probe the host interpreter for it; a substituted
	// toolchain must be configured with one explicitly.
	if cfg.NumericIncludeDir == "" {
		if opts.Toolchain != nil {
			return opts, &ConfigurationError{Reason: "numeric include directory is not configured"}
		}
		dir, err := NumpyIncludeDir(ctx)
		if err != nil {
			return opts, &ConfigurationError{Reason: err.Error()}
		}
		cfg.NumericIncludeDir = dir
	}

	extras := opts.ExtraSpecs
	if extras == nil {
		extras = VendoredSpecs(cfg)
	}

	specs, err := AssembleSpecs(units, extras, cfg)
	if err != nil {
		return opts, err
	}
	opts.Specs = specs

	driver := &Driver{
		BuildDir:  opts.BuildDir,
		Workers:   opts.Workers,
		Toolchain: toolchain,
		Logger:    logger,
	}

	artifacts, err := driver.CompileAll(ctx, Distribution{Name: opts.Name, Specs: specs})
	if err != nil {
		return opts, err
	}
	opts.Artifacts = artifacts

	staged, err := StageArtifacts(opts.SourceDir, artifacts, logger)
	if err != nil {
		return opts, err
	}
	opts.Staged = staged

	opts.Manifest = &ExtensionManifest{
		Name:      opts.Name,
		Artifacts: artifacts,
		Staged:    staged,
	}
	logger.Info("build complete",
		"name", opts.Name,
		"artifacts", len(artifacts),
		"destination", opts.SourceDir)

	return opts, nil
}

// String summarizes the manifest for logs and error reports.
func (m *ExtensionManifest) String() string {
	return fmt.Sprintf("%s (%d modules)", m.Name, len(m.Artifacts))
}
