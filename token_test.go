package strata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name    string
		tok     Token
		kind    TokenKind
		isClass bool
	}{
		{"class", newBarClass("Bar"), KindClass, true},
		{"abstract class", NewAbstract[greeter]("Greeter"), KindClass, true},
		{"typed id", NewID[int]("port"), KindID, false},
		{"name", Name("db.host"), KindID, false},
		{"nil", nil, KindID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isClass, IsClassToken(tt.tok))

			if tt.tok != nil {
				assert.Equal(t, tt.kind, tt.tok.Kind())
			}
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "id", KindID.String())
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "unknown", TokenKind(9).String())
}

func TestTokenIdentity(t *testing.T) {
	assert.NotSame(t, NewID[int]("port"), NewID[int]("port"))
	assert.Equal(t, Token(Name("port")), Token(Name("port")))

	inj := MustNew(
		WithCatalog(NewCatalog()),
		WithProviders(UseValue(Name("port"), 8080)),
	)

	v, err := Get[int](inj, Name("port"))
	require.NoError(t, err)
	assert.Equal(t, 8080, v)
}

func TestClass_Names(t *testing.T) {
	named := newBarClass("Bar")
	assert.Equal(t, "Bar", named.String())

	unnamed := NewClass("", func(Args) (*barService, error) { return &barService{}, nil })
	assert.Equal(t, "*strata.barService", unnamed.String())

	assert.Equal(t, "port", NewID[int]("port").String())
	assert.Equal(t, "<nil>", tokenName(nil))
}

func TestClass_New(t *testing.T) {
	cls := newFooClass("Foo")
	bar := &barService{bar: "raw"}

	foo, err := cls.New(bar)
	require.NoError(t, err)
	assert.Same(t, bar, foo.bar)
	assert.False(t, cls.Abstract())

	abstract := NewAbstract[greeter]("Greeter")
	assert.True(t, abstract.Abstract())

	_, err = abstract.New()
	assert.ErrorIs(t, err, ErrAbstractClassSentinel)
}

func TestArgs(t *testing.T) {
	args := Args{1, nil, unset, "x"}

	assert.Equal(t, 4, args.Len())
	assert.True(t, args.Has(0))
	assert.True(t, args.Has(1))
	assert.False(t, args.Has(2))
	assert.False(t, args.Has(4))
	assert.False(t, args.Has(-1))

	assert.Equal(t, 1, args.At(0))
	assert.Nil(t, args.At(1))
	assert.Nil(t, args.At(2))

	assert.Equal(t, 1, Arg(args, 0, 5))
	assert.Equal(t, 0, Arg(args, 1, 5))
	assert.Equal(t, 5, Arg(args, 2, 5))
	assert.Equal(t, 5, Arg(args, 3, 5))
	assert.Equal(t, "x", Arg(args, 3, "def"))
	assert.Equal(t, 5, Arg(args, 10, 5))
	assert.Equal(t, 5, Arg[int](nil, 0, 5))
}

func TestArgOK(t *testing.T) {
	args := Args{1, nil, unset, "x"}

	v, ok, err := ArgOK[int](args, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok, err = ArgOK[int](args, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok, err = ArgOK[int](args, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ArgOK[int](args, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	// A supplied value of the wrong type is reported, not replaced.
	_, ok, err = ArgOK[int](args, 3)
	assert.True(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatchSentinel))
	assert.Contains(t, err.Error(), "arg 3")
}

func TestArgOK_ComponentPassThrough(t *testing.T) {
	cls := NewClass("Strict", func(a Args) (*valueService, error) {
		name, _, err := ArgOK[string](a, 0)
		if err != nil {
			return nil, err
		}

		return &valueService{value: name}, nil
	})

	newStrict := Component(cls, WithComponentInjector(MustNew(WithCatalog(NewCatalog()))))

	v, err := newStrict("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", v.value)

	_, err = newStrict(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionFailedSentinel))
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}
