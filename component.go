package strata

import (
	"errors"
	"reflect"
)

type injectMarker struct{}

// InjectHere passed at a constructor position asks a Component constructor to
// inject the declared dependency there even though an argument was supplied.
var InjectHere = injectMarker{}

// WantedPositions returns the positions of raw that receive an injected
// dependency: deps declares a token there and raw either stops before it or
// holds InjectHere.
func WantedPositions(raw []any, deps []Token) []int {
	var wanted []int

	for idx, dep := range deps {
		if dep == nil {
			continue
		}

		if idx >= len(raw) || raw[idx] == InjectHere {
			wanted = append(wanted, idx)
		}
	}

	return wanted
}

// MergeArgs combines caller arguments with resolved dependencies. resolved is
// aligned with deps; only the positions named by WantedPositions are read
// from it. Every other supplied argument passes through untouched, an
// explicit nil included. Positions that end up with no value are unset.
func MergeArgs(raw []any, deps []Token, resolved []any) Args {
	n := max(len(raw), len(deps))
	merged := make(Args, n)

	for idx := range merged {
		if idx < len(raw) {
			merged[idx] = raw[idx]
		} else {
			merged[idx] = unset
		}
	}

	for _, idx := range WantedPositions(raw, deps) {
		if idx < len(resolved) {
			merged[idx] = resolved[idx]
		}
	}

	return merged
}

// Constructor builds T from a partial argument list.
type Constructor[T any] func(args ...any) (T, error)

// ComponentOption configures Component.
type ComponentOption func(*componentConfig)

type componentConfig struct {
	injector Injector
	catalog  *Catalog
}

// WithComponentInjector resolves the component's dependencies from inj
// instead of the app injector. Without it the app injector is looked up on
// every call, and its catalog supplies the dependency list.
func WithComponentInjector(inj Injector) ComponentOption {
	return func(c *componentConfig) {
		c.injector = inj
	}
}

// WithComponentCatalog reads the component's metadata from catalog.
func WithComponentCatalog(catalog *Catalog) ComponentOption {
	return func(c *componentConfig) {
		c.catalog = catalog
	}
}

// Component returns a constructor for cls that can be called directly by
// user code. Missing arguments at positions with a declared dependency, and
// positions holding InjectHere, are resolved from the designated injector;
// everything else is passed through. Injectors never call the returned
// constructor, they call the class constructor with a fully resolved list.
//
// Example:
//
//	newFoo := strata.Component(Foo, strata.WithComponentInjector(root))
//	foo, err := newFoo(11, 22) // position 2 injected
func Component[T any](cls *Class[T], opts ...ComponentOption) Constructor[T] {
	var cfg componentConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(args ...any) (T, error) {
		var zero T

		inj := cfg.injector
		if inj == nil {
			// A missing app injector only matters if something must be injected.
			inj, _ = App()
		}

		meta := cfg.catalogFor(inj).Lookup(cls)

		wanted := WantedPositions(args, meta.Deps)
		resolved := make([]any, len(meta.Deps))

		if len(wanted) > 0 && inj == nil {
			return zero, ErrNoAppInjector
		}

		for _, idx := range wanted {
			v, err := inj.Get(meta.Deps[idx])
			if err != nil {
				return zero, err
			}

			resolved[idx] = v
		}

		v, err := cls.New(MergeArgs(args, meta.Deps, resolved)...)
		if err != nil {
			if errors.Is(err, ErrAbstractClassSentinel) {
				return zero, err
			}

			return zero, NewConstructionError(cls, err)
		}

		if err := bindMembers(v, cls, meta.Members); err != nil {
			return zero, err
		}

		return v, nil
	}
}

// catalogFor returns the explicit catalog, else the one inj reads, else DefaultCatalog.
func (c componentConfig) catalogFor(inj Injector) *Catalog {
	if c.catalog != nil {
		return c.catalog
	}

	if r, ok := inj.(*ResolvingInjector); ok && r != nil {
		return r.catalog
	}

	return DefaultCatalog
}

// memberBinder is implemented by *Member[T].
type memberBinder interface {
	bindMember(tok Token, inj Injector)
}

// bindMembers points every declared member field of instance at its token,
// replacing whatever the constructor stored there.
func bindMembers(instance any, cls ClassToken, specs []MemberSpec) error {
	if len(specs) == 0 {
		return nil
	}

	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidMember(cls, specs[0].Field, "instance is not a pointer to a struct")
	}

	sv := rv.Elem()

	for _, spec := range specs {
		field := sv.FieldByName(spec.Field)
		if !field.IsValid() {
			return ErrInvalidMember(cls, spec.Field, "no such field")
		}

		if !field.CanSet() {
			return ErrInvalidMember(cls, spec.Field, "field is not exported")
		}

		binder, ok := field.Addr().Interface().(memberBinder)
		if !ok {
			return ErrInvalidMember(cls, spec.Field, "field is not a strata.Member")
		}

		binder.bindMember(spec.Token, spec.Injector)
	}

	return nil
}
