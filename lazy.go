package strata

import (
	"fmt"
	"sync"
)

// Member is a struct field resolved on every read. Declare it with
// Catalog.Member; the injector binds it right after construction.
//
// Example:
//
//	type Foo struct {
//	    Bar strata.Member[*Bar]
//	}
//
//	catalog.Member(FooClass, "Bar", BarClass, nil)
//	bar, err := foo.Bar.Get()
type Member[T any] struct {
	token    Token
	injector Injector
}

// NewMember creates a member bound to tok. A nil inj defers to the app injector at read time.
func NewMember[T any](tok Token, inj Injector) Member[T] {
	return Member[T]{token: tok, injector: inj}
}

func (m *Member[T]) bindMember(tok Token, inj Injector) {
	m.token = tok
	m.injector = inj
}

// Token returns the token the member resolves.
func (m Member[T]) Token() Token {
	return m.token
}

// Get resolves the member's token.
func (m Member[T]) Get() (T, error) {
	var zero T

	if m.token == nil {
		return zero, ErrUnresolvable(nil)
	}

	inj := m.injector
	if inj == nil {
		var err error
		if inj, err = App(); err != nil {
			return zero, err
		}
	}

	return Get[T](inj, m.token)
}

// MustGet resolves the member's token, panicking on error.
func (m Member[T]) MustGet() T {
	value, err := m.Get()
	if err != nil {
		panic(fmt.Sprintf("member %s failed: %v", tokenName(m.token), err))
	}

	return value
}

// Lazy wraps a dependency that is resolved on first access.
// This is useful for deferring resolution of expensive services
// until they're actually needed.
type Lazy[T any] struct {
	injector Injector
	token    Token
	mu       sync.Once
	value    T
	err      error
	resolved bool
}

// NewLazy creates a new lazy dependency wrapper. A nil inj uses the app
// injector as it is on first access.
func NewLazy[T any](inj Injector, tok Token) *Lazy[T] {
	return &Lazy[T]{
		injector: inj,
		token:    tok,
	}
}

// Get resolves the dependency and returns it.
// The resolution happens only once; subsequent calls return the cached value or error.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Do(func() {
		inj := l.injector
		if inj == nil {
			if inj, l.err = App(); l.err != nil {
				return
			}
		}

		l.value, l.err = Get[T](inj, l.token)
		l.resolved = l.err == nil
	})

	return l.value, l.err
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", tokenName(l.token), err))
	}

	return value
}

// IsResolved returns true if the dependency has been resolved.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Token returns the token of the dependency.
func (l *Lazy[T]) Token() Token {
	return l.token
}
