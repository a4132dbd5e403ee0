package pyext

import "log/slog"

// SourceUnit is a single compilable source file discovered under the scan
// root.
//
// The module name is a deterministic function of the relative path: strip
// the source extension and replace path separators with dots. Two distinct
// paths under the same root therefore never share a name unless the tree
// itself is ambiguous (e.g. a.b.pyx next to a/b.pyx), which the scanner
// rejects.
type SourceUnit struct {
	Path   string // Path relative to the scan root, slash-separated
	Module string // Dotted module name derived from Path
}

// Define is one preprocessor definition passed to the toolchain.
type Define struct {
	Name  string
	Value string
}

// String renders the definition in NAME=VALUE form, or just NAME when the
// value is empty.
func (d Define) String() string {
	if d.Value == "" {
		return d.Name
	}
	return d.Name + "=" + d.Value
}

// BuildSpec is a normalized compilation request for one module.
//
// Module names must be unique across the full list submitted to the Driver;
// a duplicate is a build configuration error, not a recoverable condition.
// Source paths are relative to the source root.
type BuildSpec struct {
	Module      string   // Dotted target module name, unique per build
	Sources     []string // One or more source files, relative to the source root
	IncludeDirs []string // Include directories passed to the toolchain
	Libraries   []string // Libraries linked into the module
	Defines     []Define // Preprocessor definitions
	Dialect     string   // Target language dialect (always a compiled dialect)
	ExtraFlags  []string // Additional toolchain flags
}

// CompiledArtifact is the binary produced by compiling one BuildSpec.
//
// Artifacts are created by the Driver under the intermediate build
// directory and relocated into the source tree by StageArtifacts; after
// staging they are never mutated again.
type CompiledArtifact struct {
	Module  string   // Module name the artifact was compiled from
	Sources []string // Source files that produced the artifact
	Path    string   // Location under the intermediate build directory
}

// Distribution is the ephemeral aggregate handed to the toolchain
// invocation step: a symbolic project name plus the full ordered
// specification list. It is never persisted.
type Distribution struct {
	Name  string
	Specs []BuildSpec
}

// ExtensionManifest is the hand-off to the packaging step: the project name
// and the order-preserved list of compiled modules with their staged
// locations inside the source tree.
type ExtensionManifest struct {
	Name      string
	Artifacts []CompiledArtifact
	Staged    []string // Staged paths relative to the source root
}

// ToolchainConfig is the immutable compilation policy threaded through the
// specification builder. It is explicit rather than ambient so tests can
// substitute alternate configurations.
//
// The zero value is not useful; start from DefaultToolchainConfig.
type ToolchainConfig struct {
	SourceExt         string   // Native source extension (".pyx")
	NumericIncludeDir string   // NumPy include directory, added to every spec
	IncludeDirs       []string // Additional include directories for every spec
	Libraries         []string // Libraries linked into every spec
	Defines           []Define // Definitions injected into every spec
	Dialect           string   // Language dialect for every spec
	ExtraFlags        []string // Flags appended to every spec
}

// DialectCxx is the native compiled-language dialect every specification
// targets. The interpreted host dialect is never used.
const DialectCxx = "c++"

// DefaultToolchainConfig returns the fixed compilation policy: Cython
// sources, C++ dialect, and the definition that silences deprecated NumPy
// API warnings. The NumPy include directory is left empty and resolved at
// build time (see NumpyIncludeDir) unless the caller fills it in.
func DefaultToolchainConfig() ToolchainConfig {
	return ToolchainConfig{
		SourceExt: ".pyx",
		Dialect:   DialectCxx,
		Defines: []Define{
			{Name: "NPY_NO_DEPRECATED_API", Value: "NPY_1_7_API_VERSION"},
		},
	}
}

// Options configures a full build and carries its outputs.
//
// Input fields:
//   - Name: symbolic project name for the distribution (default "graphmatch")
//   - SourceDir: scan root, also the final artifact destination (default "graphmatch")
//   - BuildDir: intermediate build directory, created freely (default "build")
//   - Workers: parallel compiler invocations (default 2 × host CPUs)
//   - Command: toolchain front-end binary for the default exec toolchain
//   - Config: compilation policy (default DefaultToolchainConfig)
//   - ExtraSpecs: hand-authored specs appended after discovery; nil means
//     the built-in vendored table, an empty slice means none
//   - Toolchain: compiler implementation (default ExecToolchain)
//   - Logger: structured logger (default slog.Default())
//   - SkipToolCheck: skip the PATH preflight for the default toolchain
//
// Output fields, populated by Build:
//   - Specs: the full ordered specification list that was compiled
//   - Artifacts: one compiled artifact per spec, input order preserved
//   - Staged: source-tree-relative paths of the staged binaries
//   - Manifest: the packaging hand-off aggregate
type Options struct {
	Name      string
	SourceDir string
	BuildDir  string
	Workers   int
	Command   string
	Config    *ToolchainConfig

	ExtraSpecs []BuildSpec
	Toolchain  Toolchain
	Logger     *slog.Logger

	SkipToolCheck bool

	// Build outputs
	Specs     []BuildSpec
	Artifacts []CompiledArtifact
	Staged    []string
	Manifest  *ExtensionManifest
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
