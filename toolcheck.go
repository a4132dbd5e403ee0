package pyext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ToolRequirement describes one build tool dependency of the default exec
// toolchain. Alternatives handle platform differences: macOS ships clang++,
// Windows uses cl, Linux defaults to g++.
type ToolRequirement struct {
	// Name is the primary tool binary (e.g. "cython").
	Name string

	// Alternatives are binaries that also satisfy the requirement.
	Alternatives []string

	// Optional tools are checked but never fail the preflight.
	Optional bool

	// Purpose is a short human-readable reason the tool is needed.
	Purpose string
}

// DefaultToolRequirements returns the tools the default front-end needs on
// PATH: a Cython transpiler, a C++ compiler and a Python interpreter for
// probing the NumPy include directory.
func DefaultToolRequirements() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:         "cython",
			Alternatives: []string{"cythonize"},
			Purpose:      "Cython transpiler for .pyx sources",
		},
		{
			Name:         "g++",
			Alternatives: []string{"clang++", "c++", "cl"},
			Purpose:      "C++ compiler for native modules",
		},
		{
			Name:         "python3",
			Alternatives: []string{"python"},
			Purpose:      "Python interpreter for environment probes",
		},
	}
}

// CheckToolAvailable reports whether a tool can be found on PATH.
func CheckToolAvailable(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies a list of requirements and collects every
// missing required tool into a single error so the user sees the whole
// preflight failure at once.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil
		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if found || req.Optional {
			continue
		}
		if req.Purpose != "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
		} else {
			missing = append(missing, req.Name)
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s not found in PATH", missing[0])
	default:
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
}

// NumpyIncludeDir asks the host Python interpreter where the NumPy headers
// live. The interpreter can be overridden through the PYTHON environment
// variable.
func NumpyIncludeDir(ctx context.Context) (string, error) {
	python := os.Getenv("PYTHON")
	if python == "" {
		python = "python3"
	}

	cmd := exec.CommandContext(ctx, python, "-c", "import numpy; print(numpy.get_include())")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("probing numpy include directory: %w", err)
	}

	dir := strings.TrimSpace(string(output))
	if dir == "" {
		return "", fmt.Errorf("probing numpy include directory: %s printed nothing", python)
	}
	return dir, nil
}
