package strata

// Shared fixtures for the package tests.

type fooService struct {
	foo string
	bar *barService
}

type barService struct {
	bar string
}

type valueService struct {
	value string
}

type greeter interface {
	SayHello() string
}

type staticGreeter string

func (g staticGreeter) SayHello() string { return string(g) }

// letterService says its own letter after everything its dependencies say.
type letterService struct {
	letter string
	deps   []*letterService
}

func (s *letterService) SayHello() string {
	out := ""
	for _, d := range s.deps {
		out += d.SayHello()
	}

	return out + s.letter
}

func letter(l string) func(Args) (*letterService, error) {
	return func(a Args) (*letterService, error) {
		s := &letterService{letter: l}
		for i := 0; i < a.Len(); i++ {
			s.deps = append(s.deps, Arg[*letterService](a, i, nil))
		}

		return s, nil
	}
}

func newBarClass(name string) *Class[*barService] {
	return NewClass(name, func(Args) (*barService, error) {
		return &barService{bar: "BAR"}, nil
	})
}

// newFooClass returns a class whose constructor takes a *barService at position 0.
func newFooClass(name string) *Class[*fooService] {
	return NewClass(name, func(a Args) (*fooService, error) {
		return &fooService{foo: "FOO", bar: Arg[*barService](a, 0, nil)}, nil
	})
}

// fooBarPair declares foo depending on bar in a fresh catalog.
func fooBarPair() (*Catalog, *Class[*fooService], *Class[*barService]) {
	catalog := NewCatalog()
	foo := newFooClass("FooService")
	bar := newBarClass("BarService")
	catalog.Deps(foo, bar)

	return catalog, foo, bar
}

// disposeRecorder records the order in which Dispose or Close is called.
type disposeRecorder struct {
	name string
	log  *[]string
	err  error
}

func (d *disposeRecorder) Dispose() error {
	*d.log = append(*d.log, d.name)
	return d.err
}

type closerRecorder struct {
	name string
	log  *[]string
}

func (c *closerRecorder) Close() error {
	*c.log = append(*c.log, c.name)
	return nil
}
