package config

import (
	"sort"

	"github.com/xraph/strata"
)

// Option configures how keys are turned into tokens.
type Option func(*options)

type options struct {
	prefix string
	inRoot bool
}

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// InRoot makes every provider root scoped.
func InRoot() Option {
	return func(o *options) {
		o.inRoot = true
	}
}

func providers[V any](values map[string]V, opts []Option) []strata.Provider {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]strata.Provider, 0, len(keys))
	for _, k := range keys {
		out = append(out, strata.ValueProvider{
			Provide:       strata.Name(o.prefix + k),
			Value:         values[k],
			ProvideInRoot: o.inRoot,
		})
	}

	return out
}

// String resolves the setting key from inj as a string.
func String(inj strata.Injector, key string) (string, error) {
	return strata.Get[string](inj, strata.Name(key))
}
