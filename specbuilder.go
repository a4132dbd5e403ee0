package pyext

import "fmt"

// BuildSpecs maps each discovered source unit to one normalized BuildSpec
// under the given policy. This is a pure 1:1 transform: the NumPy include
// directory is always present, the dialect is always the compiled dialect,
// and the deprecated-API suppression define is always injected. Nothing
// else is added by default.
func BuildSpecs(units []SourceUnit, cfg ToolchainConfig) []BuildSpec {
	specs := make([]BuildSpec, 0, len(units))
	for _, unit := range units {
		specs = append(specs, BuildSpec{
			Module:      unit.Module,
			Sources:     []string{unit.Path},
			IncludeDirs: uniqueStrings(append([]string{cfg.NumericIncludeDir}, cfg.IncludeDirs...)),
			Libraries:   append([]string(nil), cfg.Libraries...),
			Defines:     append([]Define(nil), cfg.Defines...),
			Dialect:     cfg.Dialect,
			ExtraFlags:  append([]string(nil), cfg.ExtraFlags...),
		})
	}
	return specs
}

// VendoredSpecs returns the hand-authored specifications for modules that
// do not follow the discovery convention. This is a deliberately
// closed-world table, not a plugin mechanism: each entry wraps an
// externally vendored library with a small number of bespoke sources.
//
// The single entry today is munkres.munkres, which pairs a Cython glue file
// with the vendored C++ assignment-algorithm implementation and needs the
// vendor directory on the include path.
func VendoredSpecs(cfg ToolchainConfig) []BuildSpec {
	return []BuildSpec{
		{
			Module: "munkres.munkres",
			Sources: []string{
				"munkres/munkres.pyx",
				"munkres/cpp/Munkres.cpp",
			},
			IncludeDirs: uniqueStrings([]string{cfg.NumericIncludeDir, "munkres/cpp"}),
			Dialect:     cfg.Dialect,
		},
	}
}

// specRegistry accumulates specifications from ordered sources (discovered
// modules first, vendored extras second) and rejects duplicate module
// names.
type specRegistry struct {
	specs []BuildSpec
	seen  map[string]struct{}
}

func newSpecRegistry() *specRegistry {
	return &specRegistry{seen: make(map[string]struct{})}
}

func (r *specRegistry) register(specs ...BuildSpec) error {
	for _, spec := range specs {
		if _, dup := r.seen[spec.Module]; dup {
			return &ConfigurationError{
				Reason: fmt.Sprintf("duplicate module name %s in build specifications", spec.Module),
			}
		}
		r.seen[spec.Module] = struct{}{}
		r.specs = append(r.specs, spec)
	}
	return nil
}

// AssembleSpecs produces the full ordered specification list for a build:
// one spec per discovered unit followed by the hand-authored extras. An
// extra whose module name collides with a discovered module is a
// ConfigurationError.
func AssembleSpecs(units []SourceUnit, extras []BuildSpec, cfg ToolchainConfig) ([]BuildSpec, error) {
	registry := newSpecRegistry()
	if err := registry.register(BuildSpecs(units, cfg)...); err != nil {
		return nil, err
	}
	if err := registry.register(extras...); err != nil {
		return nil, err
	}
	return registry.specs, nil
}
