package strata

import "sync"

// Meta is the dependency metadata recorded for one class.
type Meta struct {
	// Deps is the constructor dependency list. A nil entry is a gap: that
	// position is left to the constructor's own default.
	Deps []Token

	// InRoot pins the class's singleton to the top-most injector.
	InRoot bool

	// In pins the class's singleton to one specific injector.
	In Injector

	// Members lists struct fields resolved on every read.
	Members []MemberSpec
}

// MemberSpec declares an injected member field.
type MemberSpec struct {
	Field    string
	Token    Token
	Injector Injector // nil means the app injector at read time
}

// Catalog is the side table that maps class tokens to their metadata.
// Injectors only read it. A Catalog is safe for concurrent use.
type Catalog struct {
	entries map[ClassToken]*Meta
	mu      sync.RWMutex
}

// DefaultCatalog is used by injectors created without WithCatalog and without a parent.
var DefaultCatalog = NewCatalog()

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[ClassToken]*Meta)}
}

func (c *Catalog) entry(cls ClassToken) *Meta {
	m, ok := c.entries[cls]
	if !ok {
		m = &Meta{}
		c.entries[cls] = m
	}

	return m
}

// Inject declares dep at constructor position index of cls. A position that
// already has a dependency keeps it, so wrappers composed over Inject apply once.
func (c *Catalog) Inject(cls ClassToken, index int, dep Token) *Catalog {
	if index < 0 {
		return c
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.entry(cls)
	for len(m.Deps) <= index {
		m.Deps = append(m.Deps, nil)
	}

	if m.Deps[index] == nil {
		m.Deps[index] = dep
	}

	return c
}

// Deps replaces the whole constructor dependency list of cls.
//
// Example:
//
//	strata.DefaultCatalog.Deps(Foo, nil, nil, Bar) // Bar at position 2
func (c *Catalog) Deps(cls ClassToken, deps ...Token) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry(cls).Deps = append([]Token(nil), deps...)

	return c
}

// RootService pins cls to the root of whichever tree resolves it.
func (c *Catalog) RootService(cls ClassToken) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry(cls).InRoot = true

	return c
}

// ProvidedIn pins cls to inj regardless of where it is requested.
func (c *Catalog) ProvidedIn(cls ClassToken, inj Injector) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry(cls).In = inj

	return c
}

// Member declares that the exported field of cls's instance is a Member
// resolving dep from inj. A nil inj defers to the app injector.
func (c *Catalog) Member(cls ClassToken, field string, dep Token, inj Injector) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.entry(cls)
	for i, spec := range m.Members {
		if spec.Field == field {
			m.Members[i] = MemberSpec{Field: field, Token: dep, Injector: inj}
			return c
		}
	}

	m.Members = append(m.Members, MemberSpec{Field: field, Token: dep, Injector: inj})

	return c
}

// Lookup returns a copy of the metadata recorded for cls.
func (c *Catalog) Lookup(cls ClassToken) Meta {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.entries[cls]
	if !ok {
		return Meta{}
	}

	return Meta{
		Deps:    append([]Token(nil), m.Deps...),
		InRoot:  m.InRoot,
		In:      m.In,
		Members: append([]MemberSpec(nil), m.Members...),
	}
}

// Forget removes all metadata for cls.
func (c *Catalog) Forget(cls ClassToken) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cls)
}
