package config

import (
	"fmt"
	"os"

	"github.com/xraph/strata"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML mapping and returns one value provider per leaf,
// keyed by its dotted path. Sequences are leaves.
func FromYAML(data []byte, opts ...Option) ([]strata.Provider, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	flat := make(map[string]any)
	flatten("", doc, flat)

	return providers(flat, opts), nil
}

// FromYAMLFile reads and decodes the YAML file at path.
func FromYAMLFile(path string, opts ...Option) ([]strata.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read yaml: %w", err)
	}

	return FromYAML(data, opts...)
}

func flatten(prefix string, value any, out map[string]any) {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			flatten(join(prefix, k), child, out)
		}
	case map[any]any:
		for k, child := range v {
			flatten(join(prefix, fmt.Sprint(k)), child, out)
		}
	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
