package strata

import (
	"fmt"
	"reflect"
)

// TokenKind tells class tokens from id tokens.
type TokenKind int

const (
	// KindID is an opaque key with no construction path of its own.
	KindID TokenKind = iota

	// KindClass is a constructible type, usable both as a key and as a default implementation.
	KindClass
)

// String returns the human-readable name of the kind.
func (k TokenKind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// Token identifies a requested dependency. Tokens are compared by identity,
// so every implementation must be comparable.
type Token interface {
	fmt.Stringer
	Kind() TokenKind
}

// ClassToken is a token that can construct its own instances.
// Use NewClass or NewAbstract to create one.
type ClassToken interface {
	Token

	// Abstract reports whether the class has no constructor and must be provided.
	Abstract() bool

	construct(args Args) (any, error)
}

// Class is a typed class token.
//
// Example:
//
//	var BarService = strata.NewClass("BarService", func(strata.Args) (*Bar, error) {
//	    return &Bar{}, nil
//	})
type Class[T any] struct {
	name string
	ctor func(args Args) (T, error)
}

// NewClass creates a class token with the given constructor. The constructor
// receives the positional arguments resolved from the class's declared
// dependencies; positions without a declared dependency are unset.
// An empty name defaults to the Go type name of T.
func NewClass[T any](name string, ctor func(args Args) (T, error)) *Class[T] {
	if name == "" {
		name = reflect.TypeFor[T]().String()
	}

	return &Class[T]{name: name, ctor: ctor}
}

// NewAbstract creates a class token with no constructor. It works as an
// interface key: resolving it requires a provider somewhere in scope.
func NewAbstract[T any](name string) *Class[T] {
	return NewClass[T](name, nil)
}

// String returns the class name.
func (c *Class[T]) String() string { return c.name }

// Kind implements Token.
func (c *Class[T]) Kind() TokenKind { return KindClass }

// Abstract implements ClassToken.
func (c *Class[T]) Abstract() bool { return c.ctor == nil }

// New calls the raw constructor directly, without any injection.
func (c *Class[T]) New(args ...any) (T, error) {
	if c.ctor == nil {
		var zero T
		return zero, ErrAbstractClass(c)
	}

	return c.ctor(Args(args))
}

func (c *Class[T]) construct(args Args) (any, error) {
	if c.ctor == nil {
		return nil, ErrAbstractClass(c)
	}

	v, err := c.ctor(args)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// ID is a typed opaque token.
//
// Example:
//
//	var Port = strata.NewID[int]("http.port")
type ID[T any] struct {
	name string
}

// NewID creates a typed id token. Two calls with the same name yield distinct tokens.
func NewID[T any](name string) *ID[T] {
	return &ID[T]{name: name}
}

// String returns the token name.
func (t *ID[T]) String() string { return t.name }

// Kind implements Token.
func (t *ID[T]) Kind() TokenKind { return KindID }

// Name is an id token compared by value. Equal strings are the same token.
type Name string

// String implements Token.
func (n Name) String() string { return string(n) }

// Kind implements Token.
func (n Name) Kind() TokenKind { return KindID }

// IsClassToken reports whether tok can construct itself.
func IsClassToken(tok Token) bool {
	if tok == nil || tok.Kind() != KindClass {
		return false
	}

	_, ok := tok.(ClassToken)

	return ok
}

func tokenName(tok Token) string {
	if tok == nil {
		return "<nil>"
	}

	return tok.String()
}

// =============================================================================
// ARGS
// =============================================================================

type unsetArg struct{}

// unset marks a constructor position that received no value.
var unset any = unsetArg{}

// Args is the positional argument list handed to a class constructor.
type Args []any

// Len returns the number of positions, set or not.
func (a Args) Len() int { return len(a) }

// Has reports whether position i received a value. An explicit nil counts as a value.
func (a Args) Has(i int) bool {
	return i >= 0 && i < len(a) && a[i] != unset
}

// At returns the value at position i, or nil when the position is unset.
func (a Args) At(i int) any {
	if !a.Has(i) {
		return nil
	}

	return a[i]
}

// Arg returns position i as T. Unset positions yield def, and so do
// supplied values of another type: a caller passing the wrong type gets the
// default silently. Use ArgOK where that mistake must surface. An explicit
// nil yields the zero value of T.
func Arg[T any](a Args, i int, def T) T {
	if !a.Has(i) {
		return def
	}

	v, _, err := ArgOK[T](a, i)
	if err != nil {
		return def
	}

	return v
}

// ArgOK returns position i as T. ok reports whether the position was supplied.
// A supplied value of another type fails with ErrTypeMismatch naming the
// position. An explicit nil yields the zero value of T.
func ArgOK[T any](a Args, i int) (v T, ok bool, err error) {
	if !a.Has(i) {
		return v, false, nil
	}

	if a[i] == nil {
		return v, true, nil
	}

	typed, match := a[i].(T)
	if !match {
		return v, true, ErrTypeMismatch(Name(fmt.Sprintf("arg %d", i)), a[i])
	}

	return typed, true, nil
}
