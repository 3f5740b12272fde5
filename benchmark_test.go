package strata

import "testing"

// Benchmark singleton resolution.
func BenchmarkGet_Cached(b *testing.B) {
	catalog, foo, _ := fooBarPair()
	inj := MustNew(WithCatalog(catalog))

	// Warm up cache
	_, _ = inj.Get(foo)

	for i := 0; i < b.N; i++ {
		_, _ = inj.Get(foo)
	}
}

func BenchmarkGet_FromAncestor(b *testing.B) {
	catalog, foo, _ := fooBarPair()
	root := MustNew(WithCatalog(catalog))
	leaf := MustNew(WithParent(MustNew(WithParent(MustNew(WithParent(root))))))

	_, _ = root.Get(foo)

	for i := 0; i < b.N; i++ {
		_, _ = leaf.Get(foo)
	}
}

func BenchmarkCreateInstance(b *testing.B) {
	catalog, foo, _ := fooBarPair()
	inj := MustNew(WithCatalog(catalog))

	for i := 0; i < b.N; i++ {
		_, _ = inj.CreateInstance(foo)
	}
}

func BenchmarkGet_DependencyTree(b *testing.B) {
	catalog := NewCatalog()

	a := NewClass("A", letter("a"))
	bb := NewClass("B", letter("b"))
	c := NewClass("C", letter("c"))
	catalog.Deps(bb, a)
	catalog.Deps(c, a, bb)

	for i := 0; i < b.N; i++ {
		inj := MustNew(WithCatalog(catalog))
		_, _ = inj.Get(c)
	}
}

func BenchmarkMergeArgs(b *testing.B) {
	deps := []Token{nil, nil, Name("dep"), nil}
	resolved := []any{nil, nil, "dep", nil}
	raw := []any{1, 2}

	for i := 0; i < b.N; i++ {
		_ = MergeArgs(raw, deps, resolved)
	}
}
