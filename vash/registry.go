// =======================
// vash/registry.go
// =======================

package vash

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed algorithms.yaml
var registryYAML []byte

// algorithmSpec is one frozen registry entry. Values are copied out of the
// registry; nothing hands out a pointer into it.
type algorithmSpec struct {
	name       Algorithm
	deprecated bool
	seed       seedKind
	gradient   gradientStyle
	exclusion  bool
	minDepth   int
	maxDepth   int
	ops        [numOperations]OpParams
}

type registryDoc struct {
	Algorithms []registryEntry `yaml:"algorithms"`
}

type registryEntry struct {
	Name       string                   `yaml:"name"`
	Deprecated bool                     `yaml:"deprecated"`
	Seed       string                   `yaml:"seed"`
	Gradient   string                   `yaml:"gradient"`
	Exclusion  bool                     `yaml:"exclusion"`
	MinDepth   int                      `yaml:"min_depth"`
	MaxDepth   int                      `yaml:"max_depth"`
	Operations map[string]registryOpRow `yaml:"operations"`
}

type registryOpRow struct {
	Ratio    float64  `yaml:"ratio"`
	Channels *float64 `yaml:"channels"`
}

var (
	registryOnce sync.Once
	registry     []algorithmSpec
)

func loadedRegistry() []algorithmSpec {
	registryOnce.Do(func() {
		registry = mustLoadRegistry(registryYAML)
	})
	return registry
}

func mustLoadRegistry(doc []byte) []algorithmSpec {
	specs, err := parseRegistry(doc)
	if err != nil {
		panic(err)
	}
	return specs
}

func parseRegistry(doc []byte) ([]algorithmSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)

	var raw registryDoc
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding algorithm registry")
	}

	seen := make(map[string]bool, len(raw.Algorithms))
	specs := make([]algorithmSpec, 0, len(raw.Algorithms))
	for _, entry := range raw.Algorithms {
		if seen[entry.Name] {
			return nil, errors.Errorf("algorithm %q is listed twice", entry.Name)
		}
		seen[entry.Name] = true

		spec, err := entry.compile()
		if err != nil {
			return nil, errors.Wrapf(err, "algorithm %q", entry.Name)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (e registryEntry) compile() (algorithmSpec, error) {
	spec := algorithmSpec{
		name:       Algorithm(e.Name),
		deprecated: e.Deprecated,
		exclusion:  e.Exclusion,
		minDepth:   e.MinDepth,
		maxDepth:   e.MaxDepth,
	}
	if e.Name == "" {
		return spec, errors.New("empty name")
	}
	if e.MinDepth < 1 || e.MaxDepth < e.MinDepth {
		return spec, errors.Errorf("bad depth range [%d,%d]", e.MinDepth, e.MaxDepth)
	}

	switch e.Seed {
	case "lcg":
		spec.seed = seedLCG
	case "twister":
		spec.seed = seedTwister
	case "hkdf":
		spec.seed = seedHKDF
	default:
		return spec, errors.Errorf("unknown seed backend %q", e.Seed)
	}

	switch e.Gradient {
	case "legacy":
		spec.gradient = gradientLegacy
	case "rotated":
		spec.gradient = gradientRotated
	default:
		return spec, errors.Errorf("unknown gradient style %q", e.Gradient)
	}

	if len(e.Operations) != int(numOperations) {
		return spec, errors.Errorf("expected %d operations, got %d", numOperations, len(e.Operations))
	}
	for name, row := range e.Operations {
		op, err := ParseOperation(name)
		if err != nil {
			return spec, err
		}
		if row.Ratio < 0 {
			return spec, errors.Errorf("%s: negative ratio %v", name, row.Ratio)
		}
		channels := 3.0
		if row.Channels != nil {
			channels = *row.Channels
		}
		if channels < 0 || channels > 3 {
			return spec, errors.Errorf("%s: channels %v outside [0,3]", name, channels)
		}
		spec.ops[op] = OpParams{Ratio: row.Ratio, Channels: channels}
	}
	return spec, nil
}

func lookupAlgorithm(algo Algorithm) (algorithmSpec, error) {
	for _, spec := range loadedRegistry() {
		if spec.name == algo {
			return spec, nil
		}
	}
	return algorithmSpec{}, errors.Wrapf(ErrUnknownAlgorithm, "%q", string(algo))
}

// KnownAlgorithms lists the registry in its published order, newest first.
func KnownAlgorithms() []AlgorithmInfo {
	specs := loadedRegistry()
	out := make([]AlgorithmInfo, len(specs))
	for i, spec := range specs {
		out[i] = AlgorithmInfo{Name: spec.name, Deprecated: spec.deprecated}
	}
	return out
}
