package pyext

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// optionsFile is the on-disk YAML shape accepted by LoadOptions. Only the
// orchestrator-level knobs live here; the vendored specification table is a
// static list in source and deliberately not configurable.
type optionsFile struct {
	Name              string            `yaml:"name"`
	SourceDir         string            `yaml:"source_dir"`
	BuildDir          string            `yaml:"build_dir"`
	Workers           int               `yaml:"workers"`
	Command           string            `yaml:"command"`
	NumericIncludeDir string            `yaml:"numeric_include_dir"`
	IncludeDirs       []string          `yaml:"include_dirs"`
	Libraries         []string          `yaml:"libraries"`
	Defines           map[string]string `yaml:"defines"`
	ExtraFlags        []string          `yaml:"extra_flags"`
	SkipToolCheck     bool              `yaml:"skip_tool_check"`
}

// LoadOptions reads build options from a YAML file. Fields absent from the
// file keep their Build-time defaults, and defines from the file are
// appended to the fixed policy defines in key order for reproducible
// specifications.
//
// Example file:
//
//	name: graphmatch
//	source_dir: graphmatch
//	build_dir: build
//	workers: 8
//	defines:
//	  CYTHON_TRACE: "0"
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}

	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse options file %s: %w", path, err)
	}

	cfg := DefaultToolchainConfig()
	cfg.NumericIncludeDir = file.NumericIncludeDir
	cfg.IncludeDirs = file.IncludeDirs
	cfg.Libraries = file.Libraries
	cfg.ExtraFlags = file.ExtraFlags

	names := make([]string, 0, len(file.Defines))
	for name := range file.Defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cfg.Defines = append(cfg.Defines, Define{Name: name, Value: file.Defines[name]})
	}

	return &Options{
		Name:          file.Name,
		SourceDir:     file.SourceDir,
		BuildDir:      file.BuildDir,
		Workers:       file.Workers,
		Command:       file.Command,
		Config:        &cfg,
		SkipToolCheck: file.SkipToolCheck,
	}, nil
}
