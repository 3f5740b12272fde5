// Package strata is a hierarchical dependency injection engine.
//
// Injectors form a tree. Each injector owns two singleton caches, one for
// class tokens and one for id tokens, plus an ordered list of local provider
// overrides. Resolving a token walks a fixed precedence: scope pins first,
// then local overrides, then instances already cached up the parent chain,
// and finally local construction of class tokens.
//
// # Quick Start
//
//	var Bar = strata.NewClass("Bar", func(strata.Args) (*Bar, error) { return &Bar{}, nil })
//	var Foo = strata.NewClass("Foo", func(a strata.Args) (*Foo, error) {
//	    return &Foo{Bar: strata.Arg[*Bar](a, 0, nil)}, nil
//	})
//
//	strata.DefaultCatalog.Inject(Foo, 0, Bar)
//
//	root, _ := strata.New()
//	foo, _ := strata.GetClass(root, Foo)
//
// # Metadata
//
// Constructor dependencies and scope pins are not stored on tokens. They are
// read from a Catalog, a side table passed to injectors with WithCatalog.
// Children inherit their parent's catalog. DefaultCatalog serves everything else.
//
// # Cycles
//
// A token requested again while it is being built fails with
// ErrCircularDependency instead of recursing.
package strata

// Injector is the contract shared by every node in an injector tree.
type Injector interface {
	// Has reports whether a singleton for tok is cached here or at an ancestor.
	Has(tok Token) bool

	// WhoHas returns the nearest injector, starting with this one, that caches tok.
	WhoHas(tok Token) Injector

	// Get resolves the singleton for tok, creating it if necessary.
	Get(tok Token) (any, error)

	// GetStrict returns this injector's own singleton for tok, building it
	// here if needed. Scope pins and ancestors are not consulted.
	GetStrict(tok Token) (any, error)

	// CreateInstance builds a fresh, uncached instance of cls.
	CreateInstance(cls ClassToken) (any, error)

	// Reset drops this injector's cached singletons.
	Reset()

	// Parent returns the parent injector, or nil for a root.
	Parent() Injector

	// Root returns the top-most injector of the tree.
	Root() Injector
}
